package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/flavorfolio/recipe-extractor/internal/common"
	"github.com/flavorfolio/recipe-extractor/internal/llm"
)

// content part shapes for the chat-completions messages array
type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

// ExtractRecipe implements llm.RecipeExtractor over chat/completions. The
// vision path sends the prompt plus the inline image; the text path sends a
// single text prompt with the source text and URL already embedded. Both
// request a JSON-object response at low temperature.
func (c *Client) ExtractRecipe(ctx context.Context, req llm.ExtractRequest) (llm.RecipeDraft, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	model := c.cfg.TextModel
	if req.Kind == llm.SourceImage {
		model = c.cfg.VisionModel
	}

	prompt := llm.BuildExtractionPrompt(req)
	schema := llm.BuildRecipeJSONSchema()

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"kind", string(req.Kind),
		"model", model,
		"temp", c.cfg.Temperature,
		"source_len", len(req.SourceText),
		"has_image", req.ImageDataURL != "",
	)

	var userContent any = prompt
	if req.Kind == llm.SourceImage {
		userContent = []contentPart{
			{Type: "text", Text: prompt},
			{Type: "image_url", ImageURL: &imageURL{URL: req.ImageDataURL}},
		}
	}

	body := map[string]any{
		"model":           model,
		"temperature":     c.cfg.Temperature,
		"max_tokens":      c.cfg.MaxTokens,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "user", "content": userContent},
			{"role": "system", "content": "JSON Schema:\n" + mustJSON(schema)},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}
	raw, status, httpErr := llm.SendJSON(ctx, c.httpClient, endpoint, body, headers, c.log)
	if httpErr != nil {
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "status", status, "error", httpErr,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, raw, classifyHTTPError(status, httpErr)
	}

	var cc struct {
		Choices []struct {
			Message *struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("llm.extract.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, raw, common.NewAppError(common.ErrUpstreamEmpty, "Failed to parse recipe with AI", err)
	}
	if len(cc.Choices) == 0 {
		c.log.Error("llm.extract.no_choices", "req_id", rid, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, raw, common.NewAppError(common.ErrUpstreamEmpty, "AI did not return any content", nil)
	}
	if cc.Choices[0].Message == nil {
		c.log.Error("llm.extract.no_message", "req_id", rid, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, raw, common.NewAppError(common.ErrUpstreamEmpty, "AI did not return any content", nil)
	}

	content := cc.Choices[0].Message.Content
	draft, err := llm.ParseDraft(content, c.log)
	if err != nil {
		return nil, []byte(content), err
	}

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"kind", string(req.Kind),
		"keys", len(draft),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return draft, []byte(content), nil
}

func classifyHTTPError(status int, cause error) error {
	switch {
	case status == http.StatusTooManyRequests:
		return common.NewAppError(common.ErrRateLimited, "AI service is rate limited, try again shortly", cause)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return common.NewAppError(common.ErrUpstreamAuth, "AI service rejected our credentials", cause)
	case status == 0:
		return common.NewAppError(common.ErrTransientNetwork, "Failed to reach AI service", cause)
	default:
		return common.NewAppError(common.ErrUpstreamEmpty, "Failed to parse recipe with AI", cause)
	}
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
