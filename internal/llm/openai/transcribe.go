package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Transcribe submits a downloaded media binary to the speech-to-text endpoint
// as multipart form data and returns the transcript text. Failures are plain
// errors; the caller treats this as a best-effort stage.
func (c *Client) Transcribe(ctx context.Context, media []byte, filename string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	hdr.Set("Content-Type", "audio/mp4")
	part, err := w.CreatePart(hdr)
	if err != nil {
		return "", fmt.Errorf("create form part: %w", err)
	}
	if _, err := part.Write(media); err != nil {
		return "", fmt.Errorf("write media: %w", err)
	}
	if err := w.WriteField("model", c.cfg.TranscribeModel); err != nil {
		return "", fmt.Errorf("write model field: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", w.FormDataContentType())

	c.log.Info("llm.transcribe.request", "req_id", rid, "model", c.cfg.TranscribeModel, "media_bytes", len(media))

	resp, err := c.transcribeHTTP.Do(req)
	if err != nil {
		c.log.Error("llm.transcribe.send_error", "req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return "", err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Warn("llm.transcribe.response_body_close_error", "req_id", rid, "error", cerr)
		}
	}()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		c.log.Error("llm.transcribe.upstream_error", "req_id", rid, "status", resp.StatusCode,
			"body", truncateBytes(raw, 500), "elapsed_ms", time.Since(start).Milliseconds())
		return "", fmt.Errorf("transcription status %d", resp.StatusCode)
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode transcription response: %w", err)
	}

	c.log.Info("llm.transcribe.ok", "req_id", rid, "text_len", len(out.Text),
		"elapsed_ms", time.Since(start).Milliseconds())
	return out.Text, nil
}

func truncateBytes(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "…(truncated)"
}
