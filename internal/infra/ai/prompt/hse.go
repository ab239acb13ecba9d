package prompt

import (
	"fmt"

	"github.com/sashabaranov/go-openai/jsonschema"
)

// SchemaName labels the structured output format sent to the provider.
const SchemaName = "hse_assessment"

// GetSystemPrompt provides the role and output rules.
func GetSystemPrompt() string {
	return `You are an expert in Health, Safety, and Environment (HSE) in a factory setting. You must produce one valid JSON object only (no markdown, no commentary). Do not include code fences.

Requirements:
- hazardType, proposedSolution and responsiblePerson are objects with two keys: "ar" (Arabic) and "fr" (French). Both keys MUST be filled.
- severity is exactly one of: "low", "medium", "high", "critical".

Schema (example with empty values):
{
  "hazardType": {"ar": "<string>", "fr": "<string>"},
  "severity": "<low|medium|high|critical>",
  "proposedSolution": {"ar": "<string>", "fr": "<string>"},
  "responsiblePerson": {"ar": "<string>", "fr": "<string>"}
}`
}

// GetUserPrompt wraps the reporter's location and description around the attached image.
func GetUserPrompt(location, description string) string {
	return fmt.Sprintf(`Analyze the following case using the attached image and description:
- Location: %s
- Problem Description: %s

1. hazardType: the hazard type (e.g., electrical, mechanical, chemical), in Arabic ("ar") and French ("fr").
2. severity: one of "low", "medium", "high", "critical" ONLY.
3. proposedSolution: the recommended corrective action, in Arabic and French.
4. responsiblePerson: the appropriate person or department (e.g., Maintenance Department, Electrical Team), in Arabic and French.`,
		location, description)
}

func bilingual(desc string) jsonschema.Definition {
	return jsonschema.Definition{
		Type:        jsonschema.Object,
		Description: desc,
		Properties: map[string]jsonschema.Definition{
			"ar": {Type: jsonschema.String},
			"fr": {Type: jsonschema.String},
		},
		Required: []string{"ar", "fr"},
	}
}

// ResponseSchema is the fixed output schema. severity is left as a free string;
// unknown values are coerced after parsing.
func ResponseSchema() jsonschema.Definition {
	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"hazardType":        bilingual("hazard type"),
			"severity":          {Type: jsonschema.String, Description: "low, medium, high or critical"},
			"proposedSolution":  bilingual("recommended corrective action"),
			"responsiblePerson": bilingual("person or department in charge"),
		},
		Required: []string{"hazardType", "severity", "proposedSolution", "responsiblePerson"},
	}
}
