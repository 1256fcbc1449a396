package rocks

import (
	"math"
	"strings"
)

// Badge is a pure predicate over the whole collection. Recomputed on every
// evaluation, order-independent.
type Badge struct {
	ID          string
	Title       string
	Description string
	Condition   func(collection []SavedRock) bool
}

// Badges returns the full achievement table.
func Badges() []Badge {
	return []Badge{
		{
			ID:          "novice",
			Title:       "Novice Rockhound",
			Description: "Save your first specimen to the collection",
			Condition:   func(c []SavedRock) bool { return len(c) >= 1 },
		},
		{
			ID:          "collector",
			Title:       "Serious Collector",
			Description: "Save 5 rocks to your library",
			Condition:   func(c []SavedRock) bool { return len(c) >= 5 },
		},
		{
			ID:          "igneous",
			Title:       "Magma Master",
			Description: "Collect an Igneous rock",
			Condition:   hasCategory("igneous"),
		},
		{
			ID:          "sedimentary",
			Title:       "Sediment Seeker",
			Description: "Collect a Sedimentary rock",
			Condition:   hasCategory("sedimentary"),
		},
		{
			ID:          "metamorphic",
			Title:       "Pressure Player",
			Description: "Collect a Metamorphic rock",
			Condition:   hasCategory("metamorphic"),
		},
		{
			ID:          "mineral",
			Title:       "Crystal Clear",
			Description: "Collect a Mineral or Crystal",
			Condition: func(c []SavedRock) bool {
				return hasCategory("mineral")(c) || hasCategory("crystal")(c)
			},
		},
		{
			ID:          "valuable",
			Title:       "Treasure Hunter",
			Description: "Find a rock with valuable elements",
			Condition: func(c []SavedRock) bool {
				for _, r := range c {
					if len(r.ValuableElements) > 0 {
						return true
					}
				}
				return false
			},
		},
		{
			ID:          "pro",
			Title:       "Master Geologist",
			Description: "Reach a collection size of 10 specimens",
			Condition:   func(c []SavedRock) bool { return len(c) >= 10 },
		},
	}
}

func hasCategory(word string) func([]SavedRock) bool {
	return func(c []SavedRock) bool {
		for _, r := range c {
			if strings.Contains(strings.ToLower(r.Category), word) {
				return true
			}
		}
		return false
	}
}

// BadgeStatus is one evaluated badge for display.
type BadgeStatus struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
}

// EvaluateBadges runs every badge predicate against the collection.
func EvaluateBadges(collection []SavedRock) []BadgeStatus {
	badges := Badges()
	out := make([]BadgeStatus, 0, len(badges))
	for _, b := range badges {
		out = append(out, BadgeStatus{
			ID:          b.ID,
			Title:       b.Title,
			Description: b.Description,
			Unlocked:    b.Condition(collection),
		})
	}
	return out
}

// Progress is unlocked-count over total badges, rounded to nearest percent.
func Progress(collection []SavedRock) int {
	badges := Badges()
	unlocked := 0
	for _, b := range badges {
		if b.Condition(collection) {
			unlocked++
		}
	}
	return int(math.Round(float64(unlocked) / float64(len(badges)) * 100))
}
