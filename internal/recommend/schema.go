package recommend

import "github.com/sdutta/afsmeter/internal/llm"

// RecommendationSchema defines the JSON schema for LLM improvement
// recommendation responses.
var RecommendationSchema = &llm.Schema{
	Name:        "area-recommendations",
	Description: "Concrete improvement recommendations for the weakest assessment areas",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"recommendations": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"area_id": map[string]any{
							"type":        "string",
							"description": "The ID of the area this recommendation targets, from the provided list",
						},
						"title": map[string]any{
							"type":        "string",
							"description": "Short imperative summary of the recommendation",
						},
						"rationale": map[string]any{
							"type":        "string",
							"description": "One or two sentences on why this matters given the current score",
						},
						"actions": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "2-4 concrete first steps, each a single sentence",
						},
						"priority": map[string]any{
							"type":        "string",
							"enum":        []any{"high", "medium", "low"},
							"description": "Relative urgency based on score and gap to the next maturity level",
						},
					},
					"required":             []any{"area_id", "title", "rationale", "actions", "priority"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"recommendations"},
		"additionalProperties": false,
	},
}
