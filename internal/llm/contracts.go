package llm

import "context"

// SourceKind distinguishes the two extraction entry points.
type SourceKind string

const (
	SourceImage SourceKind = "image"
	SourceVideo SourceKind = "video"
)

// RecipeDraft is the structured object produced by the extraction pipeline.
// Every field is optional and may be string-typed even where a number is
// expected; the pipeline guarantees parseability, not field types. Downstream
// consumers own any coercion.
type RecipeDraft map[string]any

// ExtractRequest carries everything the model call needs for one extraction.
type ExtractRequest struct {
	Kind SourceKind

	// Vision path: inline data: URL for the uploaded image.
	ImageDataURL string

	// Text path: the recipe-like source text (caption or transcript),
	// the platform label it came from, and the resolved media URL.
	SourceText string
	SourceURL  string
	Platform   string
}

// RecipeExtractor is the interface the pipeline depends on. The second return
// is the raw model content, retained for logging and history only.
type RecipeExtractor interface {
	ExtractRecipe(ctx context.Context, req ExtractRequest) (RecipeDraft, []byte, error)
}
