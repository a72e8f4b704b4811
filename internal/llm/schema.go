package llm

// BuildRecipeJSONSchema returns the RecipeDraft shape as a generic map in
// JSON-Schema form. It is embedded in the prompt as guidance for the model
// and is not enforced on responses: every field is optional and numeric
// fields tolerate string values, so the only response-side guarantee is
// "valid JSON object" (see ParseDraft).
func BuildRecipeJSONSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":       map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
			"ingredients": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"steps": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"prep_time": numberish(),
			"cook_time": numberish(),
			"servings":  numberish(),
			"tags": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"maxItems": 3,
			},
			"protein":  numberish(),
			"calories": numberish(),
		},
	}
}

// numberish admits both numbers and numeric-looking strings; models return either.
func numberish() map[string]any {
	return map[string]any{"type": []string{"number", "string"}}
}
