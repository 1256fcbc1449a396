package rocks

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Field defaults applied when the model omits or mangles a required field.
const (
	defaultName        = "Unknown Specimen"
	defaultCategory    = "Unknown"
	defaultDescription = "No description available."
	defaultValue       = "Unknown"
	defaultAltName     = "Unknown"
	defaultAltReason   = "No reason provided"
)

// Parse decodes a raw AI response body and sanitizes it. The unmarshal step
// is the only thing that can fail; everything past it is total.
func Parse(raw []byte) (Analysis, error) {
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return Analysis{}, fmt.Errorf("decode analysis response: %w", err)
	}
	return Sanitize(data), nil
}

// Sanitize coerces an untrusted, loosely-typed response object into a strict
// Analysis. The model's output schema is a hint, not a guarantee: scalars
// arrive wrapped in objects, arrays arrive as bare strings, fields go
// missing. This is the sole trust boundary; downstream consumers assume the
// result is well-typed. Never fails.
func Sanitize(data map[string]any) Analysis {
	a := Analysis{
		IsRock:           truthy(data["isRock"]),
		Name:             asString(data["name"], defaultName),
		Category:         asString(data["category"], defaultCategory),
		Description:      asString(data["description"], defaultDescription),
		CommonUses:       asStringArray(data["commonUses"]),
		EstimatedValue:   asString(data["estimatedValue"], defaultValue),
		ValuableElements: asStringArray(data["valuableElements"]),
		Alternatives:     asAlternatives(data["alternatives"]),
	}

	// Optional fields stay empty unless the model sent something usable.
	if v := data["scientificName"]; truthy(v) {
		a.ScientificName = asString(v, "")
	}
	if v := data["chemicalFormula"]; truthy(v) {
		a.ChemicalFormula = asString(v, "")
	}
	if v := data["crystalSystem"]; truthy(v) {
		a.CrystalSystem = asString(v, "")
	}
	if v := data["occurrence"]; truthy(v) {
		a.Occurrence = asString(v, "")
	}
	if v := data["funFact"]; truthy(v) {
		a.FunFact = asString(v, "")
	}
	if n, ok := asNumber(data["confidenceScore"]); ok {
		a.ConfidenceScore = n
	}

	props, _ := data["physicalProperties"].(map[string]any)
	a.PhysicalProperties = PhysicalProperties{
		Color:           asString(props["color"], ""),
		Hardness:        asString(props["hardness"], ""),
		Lustre:          asString(props["lustre"], ""),
		Transparency:    asString(props["transparency"], ""),
		Streak:          asString(props["streak"], ""),
		Cleavage:        asString(props["cleavage"], ""),
		Fracture:        asString(props["fracture"], ""),
		SpecificGravity: asString(props["specificGravity"], ""),
	}

	return a
}

// asString coerces any value into a string. Objects prefer a text/value
// property before falling back to their JSON form.
func asString(v any, def string) string {
	switch t := v.(type) {
	case nil:
		return def
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	case map[string]any:
		if s, ok := t["text"].(string); ok && s != "" {
			return s
		}
		if s, ok := t["value"].(string); ok && s != "" {
			return s
		}
		return jsonDump(t)
	case []any:
		return jsonDump(t)
	default:
		return def
	}
}

func asStringArray(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, asString(item, ""))
		}
		return out
	case string:
		// single bare string instead of an array
		return []string{t}
	default:
		return []string{}
	}
}

func asAlternatives(v any) []Alternative {
	switch t := v.(type) {
	case []any:
		out := make([]Alternative, 0, len(t))
		for _, item := range t {
			m, _ := item.(map[string]any)
			out = append(out, Alternative{
				Name:   asString(m["name"], defaultAltName),
				Reason: asString(m["reason"], defaultAltReason),
			})
		}
		return out
	case map[string]any:
		// single object instead of an array
		if _, ok := t["name"]; ok {
			return []Alternative{{
				Name:   asString(t["name"], defaultAltName),
				Reason: asString(t["reason"], defaultAltReason),
			}}
		}
		return []Alternative{}
	default:
		return []Alternative{}
	}
}

// asNumber passes numeric values through and rejects everything else.
func asNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// truthy mirrors loose-typing truthiness: empty strings, zero, NaN and nil
// are false, any other value (objects and arrays included) is true.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case int:
		return t != 0
	case int64:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	default:
		return true
	}
}

func jsonDump(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
