package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/flavorfolio/recipe-extractor/internal/common"
)

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// ParseDraft parses raw model content into a RecipeDraft. The only
// thing enforced here is "syntactically valid JSON object": field presence and
// types stay the model's responsibility under the prompt contract, and the
// parsed object is handed back unmodified. The raw text is logged on failure
// but never surfaced to the end user.
func ParseDraft(raw string, logger *slog.Logger) (RecipeDraft, error) {
	if logger == nil {
		logger = slog.Default()
	}
	content := strings.TrimSpace(raw)
	if content == "" {
		return nil, common.NewAppError(common.ErrUpstreamEmpty, "AI did not return any content", nil)
	}

	if err := ValidateJSONAgainstSchema(map[string]any{"type": "object"}, []byte(content)); err != nil {
		logger.Error("llm.validate.invalid_output", "error", err, "raw", truncate(content, 2000))
		return nil, common.NewAppError(common.ErrInvalidModelOutput, "Failed to parse recipe with AI", err)
	}

	dec := json.NewDecoder(strings.NewReader(content))
	dec.UseNumber() // keep numeric fields exactly as the model wrote them
	var draft RecipeDraft
	if err := dec.Decode(&draft); err != nil {
		logger.Error("llm.validate.decode_error", "error", err, "raw", truncate(content, 2000))
		return nil, common.NewAppError(common.ErrInvalidModelOutput, "Failed to parse recipe with AI", err)
	}
	return draft, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…(truncated)"
}
