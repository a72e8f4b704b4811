package extract

import "strings"

// recipeKeywords gates the expensive transcription path. A false negative
// only costs a fallback transcription; a false positive is caught later by
// the extraction model.
var recipeKeywords = []string{"recipe", "ingredients", "cook", "bake", "boil", "serve"}

// LooksLikeRecipe reports whether text plausibly describes a recipe.
func LooksLikeRecipe(text string) bool {
	lower := strings.ToLower(text)
	for _, word := range recipeKeywords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
