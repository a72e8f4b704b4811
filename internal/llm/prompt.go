package llm

import (
	"strings"
)

// BuildExtractionPrompt composes the single instruction prompt shared by the
// vision and text paths. Only the subject line and the trailing source block
// differ per path; every extraction rule applies to both.
func BuildExtractionPrompt(req ExtractRequest) string {
	var subject string
	switch req.Kind {
	case SourceImage:
		subject = "the image provided, which contains a recipe"
	default:
		platform := req.Platform
		if platform == "" {
			platform = "video"
		}
		subject = "the following " + platform + " recipe description"
	}

	parts := []string{
		"You are a precise recipe parser. Extract structured information from " + subject + ".",
		"",
		"Rules:",
		"- Output **only valid JSON** with the exact keys listed below.",
		"- Do not include any commentary or text outside the JSON.",
		"- If a value is missing (protein, calories, servings), make a reasonable estimate.",
		"- Preserve **all steps from the recipe** in the same logical order, even if they seem redundant.",
		"- If steps are unclear or merged, split them into clear cooking actions.",
		"- If the recipe has distinguishable parts (e.g., batter vs. sauce), annotate each step with the part name in parentheses.",
		"",
		"Formatting rules:",
		"- title: short string",
		"- description: a concise one-liner with an edgy joke",
		"- ingredients: array of strings (include relevant emojis for each item)",
		"- steps: array of concise cooking instructions (cover every step, no skipping)",
		"- prep_time: number (minutes)",
		"- cook_time: number (minutes)",
		"- servings: number",
		"- tags: array of up to 3 strings (e.g., cuisine, style, diet)",
		"- protein: number (grams)",
		"- calories: number (Cal)",
	}

	if req.Kind != SourceImage {
		platform := req.Platform
		if platform == "" {
			platform = "video"
		}
		parts = append(parts,
			"",
			platform+" description and URL:",
			"Recipe from "+platform+":",
			req.SourceText,
			"",
			"Video URL: "+req.SourceURL,
		)
	}

	return strings.Join(parts, "\n")
}
