package gemini

import "google.golang.org/genai"

// analysisSchema constrains the model's structured output to the analysis
// shape. Field descriptions double as instructions, so they carry the same
// guidance as the prompt.
func analysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"isRock": {
				Type:        genai.TypeBoolean,
				Description: "True if the image contains a rock, mineral, crystal, or gemstone. False if it is something else (animal, plant, object, etc.).",
			},
			"name": {
				Type:        genai.TypeString,
				Description: "Common name of the rock or mineral.",
			},
			"scientificName": {
				Type:        genai.TypeString,
				Description: "Scientific or chemical name if applicable.",
			},
			"chemicalFormula": {
				Type:        genai.TypeString,
				Description: "Chemical formula (e.g., SiO2, CaCO3). Use standard notation.",
			},
			"category": {
				Type:        genai.TypeString,
				Description: "Classification: Igneous, Sedimentary, Metamorphic, Mineral, Gemstone, etc.",
			},
			"description": {
				Type:        genai.TypeString,
				Description: "A concise summary of what the rock is, how it forms, and its typical uses.",
			},
			"physicalProperties": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"color":           {Type: genai.TypeString},
					"hardness":        {Type: genai.TypeString, Description: "Mohs hardness scale estimate"},
					"lustre":          {Type: genai.TypeString},
					"transparency":    {Type: genai.TypeString},
					"streak":          {Type: genai.TypeString},
					"cleavage":        {Type: genai.TypeString, Description: "Description of cleavage properties"},
					"fracture":        {Type: genai.TypeString, Description: "Description of fracture pattern"},
					"specificGravity": {Type: genai.TypeString, Description: "Specific gravity or density estimate"},
				},
			},
			"crystalSystem": {
				Type:        genai.TypeString,
				Description: "Crystal system (e.g., Hexagonal, Cubic, Triclinic, Amorphous).",
			},
			"occurrence": {
				Type:        genai.TypeString,
				Description: "Typical geological environment where this is found (e.g., 'Hydrothermal veins', 'Metamorphic rocks').",
			},
			"commonUses": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "List of common industrial, jewelry, or decorative uses.",
			},
			"estimatedValue": {
				Type:        genai.TypeString,
				Description: "Estimated market value range (e.g., '$5 - $20 per gram', '$50 for a specimen', 'Very low commercial value', or 'High value gemstone'). Be realistic.",
			},
			"valuableElements": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "List of specific valuable elements, rare earth metals, or industrial minerals that might be chemically present in or associated with this rock type (e.g., 'Gold', 'Silver', 'Copper', 'Tungsten', 'Lithium', 'Thorium'). Return an empty array if typically containing no economically significant elements.",
			},
			"alternatives": {
				Type:        genai.TypeArray,
				Description: "Provide exactly 2 distinct alternative identifications. These MUST be rocks/minerals that are visually VERY similar to the uploaded image (common visual look-alikes) that a user might confuse with the primary result. Do not provide random alternatives.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":   {Type: genai.TypeString},
						"reason": {Type: genai.TypeString, Description: "Specific visual cue to distinguish it from the primary result (e.g. 'Has 90-degree cleavage unlike Quartz')."},
					},
					Required: []string{"name", "reason"},
				},
			},
			"funFact": {
				Type:        genai.TypeString,
				Description: "An interesting or unique fact about this specimen.",
			},
			"confidenceScore": {
				Type:        genai.TypeInteger,
				Description: "A number between 0 and 100 representing confidence in this identification based on visual clarity and distinctiveness of features.",
			},
		},
		Required: []string{"isRock", "name", "category", "description", "physicalProperties", "estimatedValue", "valuableElements", "alternatives", "confidenceScore"},
	}
}
