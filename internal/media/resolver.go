package media

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Resolver follows redirects on a short link to find the canonical media URL.
type Resolver struct {
	client *http.Client
	log    *slog.Logger
}

func NewResolver(timeout time.Duration, logger *slog.Logger) *Resolver {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		client: &http.Client{Timeout: timeout},
		log:    logger,
	}
}

// Resolve issues a single header-only request that follows redirects and
// returns the final URL. The response body is never downloaded. Any failure
// returns ("", false); the orchestrator maps that to a user-facing error.
func (r *Resolver) Resolve(ctx context.Context, shortURL string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, shortURL, nil)
	if err != nil {
		r.log.Error("media.resolve.bad_url", "url", shortURL, "error", err)
		return "", false
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Error("media.resolve.failed", "url", shortURL, "error", err)
		return "", false
	}
	defer resp.Body.Close()

	final := resp.Request.URL.String()
	r.log.Info("media.resolve.ok", "url", shortURL, "resolved", final)
	return final, true
}
