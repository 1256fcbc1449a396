package prompt

import (
	"fmt"
	"strings"
)

// SystemInstruction pins the model to the geologist role and honest scoring.
func SystemInstruction() string {
	return "You are an expert geologist and mineralogist. Your goal is to accurately identify rocks and minerals from images. " +
		"Be extremely precise with physical properties (hardness, cleavage, streak). " +
		"When suggesting 'alternatives', focus on visual accuracy—suggest rocks that look almost identical to the image but are different species " +
		"(e.g., Citrine vs. Heat-treated Amethyst, Pyrite vs. Gold). Be honest with your confidence score. " +
		"Use provided location context to rule out geologically impossible matches for that area."
}

// UserPrompt builds the identification instruction, optionally narrowed by
// where the specimen was found.
func UserPrompt(location string) string {
	text := "Identify this object. If it is a rock, mineral, or crystal, provide a detailed geological analysis. " +
		"Provide the chemical formula, crystal system, cleavage, fracture, and specific gravity. " +
		"Include an estimated market value, list any potential valuable elements, and provide a confidence score (0-100) for your identification. " +
		"Critically evaluate visual look-alikes for the 'alternatives' section."

	if strings.TrimSpace(location) != "" {
		text += fmt.Sprintf("\n\nGEOGRAPHIC CONTEXT: The user found this specimen in or near: %q. "+
			"Use this location to narrow down possibilities to rocks and minerals known to occur in this region.", location)
	}
	return text
}

// JSONSchemaHint describes the expected response object for providers
// without native schema-constrained output (plain JSON mode).
func JSONSchemaHint() string {
	return `You must produce one valid JSON object only (no markdown, no commentary, no code fences) with this shape:
{
  "isRock": <bool, false if the image is not a rock/mineral/crystal/gemstone>,
  "name": "<common name>",
  "scientificName": "<scientific or chemical name, optional>",
  "chemicalFormula": "<e.g. SiO2, optional>",
  "category": "<Igneous|Sedimentary|Metamorphic|Mineral|Gemstone|...>",
  "description": "<concise summary: what it is, how it forms, typical uses>",
  "physicalProperties": {
    "color": "", "hardness": "<Mohs estimate>", "lustre": "", "transparency": "",
    "streak": "", "cleavage": "", "fracture": "", "specificGravity": ""
  },
  "crystalSystem": "<optional>",
  "occurrence": "<typical geological environment, optional>",
  "commonUses": ["<string>"],
  "estimatedValue": "<realistic market value range>",
  "valuableElements": ["<e.g. Gold, Lithium; empty array if none>"],
  "alternatives": [{"name": "<look-alike>", "reason": "<distinguishing visual cue>"}, {"name": "", "reason": ""}],
  "funFact": "<optional>",
  "confidenceScore": <integer 0-100>
}
Provide exactly 2 alternatives, both visually very similar to the uploaded image.`
}
