package rocks

import (
	"strings"
)

// RockID tipe untuk SavedRock
type RockID string

// PhysicalProperties value object. Semua field free-text; kosong berarti
// tidak teridentifikasi.
type PhysicalProperties struct {
	Color           string `json:"color,omitempty"`
	Hardness        string `json:"hardness,omitempty"`
	Lustre          string `json:"lustre,omitempty"`
	Transparency    string `json:"transparency,omitempty"`
	Streak          string `json:"streak,omitempty"`
	Cleavage        string `json:"cleavage,omitempty"`
	Fracture        string `json:"fracture,omitempty"`
	SpecificGravity string `json:"specificGravity,omitempty"`
}

// Alternative is a visually similar specimen the primary identification
// could be confused with.
type Alternative struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Analysis is one structured identification produced from a single image.
// Always produced by Sanitize, so every field may be assumed well-typed.
type Analysis struct {
	IsRock             bool               `json:"isRock"`
	Name               string             `json:"name"`
	ScientificName     string             `json:"scientificName,omitempty"`
	ChemicalFormula    string             `json:"chemicalFormula,omitempty"`
	Category           string             `json:"category"`
	Description        string             `json:"description"`
	PhysicalProperties PhysicalProperties `json:"physicalProperties"`
	CrystalSystem      string             `json:"crystalSystem,omitempty"`
	Occurrence         string             `json:"occurrence,omitempty"`
	CommonUses         []string           `json:"commonUses"`
	EstimatedValue     string             `json:"estimatedValue"`
	ValuableElements   []string           `json:"valuableElements"`
	Alternatives       []Alternative      `json:"alternatives"`
	FunFact            string             `json:"funFact,omitempty"`
	ConfidenceScore    float64            `json:"confidenceScore"`
}

// Aggregate Root: SavedRock. Created on explicit save, never mutated after.
// JSON field names match the legacy browser library blob so old exports
// still load.
type SavedRock struct {
	Analysis
	ID       RockID `json:"id"`
	Date     int64  `json:"date"` // epoch millis
	Image    string `json:"image"`
	ImageURL string `json:"imageURL,omitempty"`
}

// FilterAll sentinel category yang match semua entry.
const FilterAll = "All"

// MatchesCategory reports whether the entry's category contains the filter
// term, case-insensitive. FilterAll matches unconditionally.
func (r SavedRock) MatchesCategory(filter string) bool {
	if filter == FilterAll {
		return true
	}
	return strings.Contains(strings.ToLower(r.Category), strings.ToLower(filter))
}

// SameAnalysis reports whether the analysis is the one already captured by
// this entry. Name+description equality, same heuristic the UI uses to
// disable a second save.
func (r SavedRock) SameAnalysis(a Analysis) bool {
	return r.Name == a.Name && r.Description == a.Description
}

// DisplayValue renders a short value summary for collection cards.
func DisplayValue(val string) string {
	if strings.TrimSpace(val) == "" {
		return "Value info unavailable"
	}
	prefix := "$"
	if f := strings.Fields(val); len(f) > 0 && f[0] == "Very" {
		prefix = ""
	}
	if len(val) > 15 {
		return strings.TrimSpace(prefix+" "+val[:15]) + "..."
	}
	return strings.TrimSpace(prefix + " " + val)
}
