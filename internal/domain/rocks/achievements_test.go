package rocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func unlockedIDs(statuses []BadgeStatus) []string {
	out := []string{}
	for _, s := range statuses {
		if s.Unlocked {
			out = append(out, s.ID)
		}
	}
	return out
}

func rockInCategory(category string) SavedRock {
	return SavedRock{Analysis: Analysis{Category: category}}
}

func TestEvaluateBadgesEmptyCollection(t *testing.T) {
	statuses := EvaluateBadges(nil)
	assert.Len(t, statuses, 8)
	assert.Empty(t, unlockedIDs(statuses))
	assert.Equal(t, 0, Progress(nil))
}

func TestEvaluateBadgesSingleIgneous(t *testing.T) {
	c := []SavedRock{rockInCategory("Igneous Rock")}
	assert.ElementsMatch(t, []string{"novice", "igneous"}, unlockedIDs(EvaluateBadges(c)))
	assert.Equal(t, 25, Progress(c))
}

func TestEvaluateBadgesCategoryMatchIsSubstringAndCaseInsensitive(t *testing.T) {
	c := []SavedRock{rockInCategory("metaMORPHIC (foliated)")}
	assert.Contains(t, unlockedIDs(EvaluateBadges(c)), "metamorphic")
}

func TestEvaluateBadgesMineralOrCrystal(t *testing.T) {
	assert.Contains(t, unlockedIDs(EvaluateBadges([]SavedRock{rockInCategory("Mineral")})), "mineral")
	assert.Contains(t, unlockedIDs(EvaluateBadges([]SavedRock{rockInCategory("Crystal")})), "mineral")
}

func TestEvaluateBadgesValuableElements(t *testing.T) {
	c := []SavedRock{{Analysis: Analysis{Category: "Mineral", ValuableElements: []string{"Gold"}}}}
	assert.Contains(t, unlockedIDs(EvaluateBadges(c)), "valuable")
}

func TestEvaluateBadgesCollectionSize(t *testing.T) {
	c := make([]SavedRock, 10)
	for i := range c {
		c[i] = rockInCategory("Sedimentary Rock")
	}
	ids := unlockedIDs(EvaluateBadges(c))
	assert.Contains(t, ids, "novice")
	assert.Contains(t, ids, "collector")
	assert.Contains(t, ids, "pro")
}
