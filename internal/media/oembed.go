package media

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// userAgent keeps the oEmbed endpoints from rejecting the request outright.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"

// Describer fetches a lightweight caption for a resolved media URL from the
// platform's public oEmbed endpoint, without downloading the media itself.
// It is strictly best-effort: every failure degrades to an empty result.
type Describer struct {
	client    *http.Client
	endpoints map[Platform]string
	log       *slog.Logger
}

func NewDescriber(timeout time.Duration, logger *slog.Logger) *Describer {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Describer{
		client: &http.Client{Timeout: timeout},
		endpoints: map[Platform]string{
			PlatformTikTok:    "https://www.tiktok.com/oembed",
			PlatformInstagram: "https://www.instagram.com/api/oembed/",
		},
		log: logger,
	}
}

// SetEndpoint overrides the oEmbed endpoint for a platform. Used by tests.
func (d *Describer) SetEndpoint(p Platform, endpoint string) {
	d.endpoints[p] = endpoint
}

// Describe returns the caption/title for resolvedURL, or "" if the platform is
// unsupported, the endpoint is unreachable, returns non-2xx, or omits the field.
func (d *Describer) Describe(ctx context.Context, resolvedURL string) string {
	platform := DetectPlatform(resolvedURL)
	base, ok := d.endpoints[platform]
	if !ok {
		d.log.Info("media.describe.unsupported_platform", "url", resolvedURL)
		return ""
	}

	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	endpoint := base + sep + "url=" + url.QueryEscape(resolvedURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		d.log.Error("media.describe.bad_request", "error", err)
		return ""
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		d.log.Warn("media.describe.failed", "url", resolvedURL, "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		d.log.Warn("media.describe.non_2xx", "url", resolvedURL, "status", resp.StatusCode)
		return ""
	}

	var payload struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		d.log.Warn("media.describe.decode_error", "url", resolvedURL, "error", err)
		return ""
	}

	d.log.Info("media.describe.ok", "url", resolvedURL, "title_len", len(payload.Title))
	return payload.Title
}
