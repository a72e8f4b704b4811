package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Downloader fetches a media binary over HTTP with a hard size cap.
type Downloader struct {
	client   *http.Client
	maxBytes int64
	log      *slog.Logger
}

func NewDownloader(timeout time.Duration, maxBytes int64, logger *slog.Logger) *Downloader {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	if maxBytes <= 0 {
		maxBytes = 64 << 20
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Downloader{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
		log:      logger,
	}
}

// Download fetches mediaURL into memory. The payload is handed straight to the
// transcription call, so it is never written to disk.
func (d *Downloader) Download(ctx context.Context, mediaURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	start := time.Now()
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, d.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read media: %w", err)
	}
	if int64(len(data)) > d.maxBytes {
		return nil, fmt.Errorf("media exceeds %d byte limit", d.maxBytes)
	}

	d.log.Info("media.download.ok", "url", mediaURL, "bytes", len(data),
		"elapsed_ms", time.Since(start).Milliseconds())
	return data, nil
}
