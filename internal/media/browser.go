package media

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"
)

// Browser renders a media page headlessly to locate the direct source URL of
// its primary video element. A fresh browser context is launched and torn down
// per invocation, so no call ever observes another call's page state.
type Browser struct {
	timeout time.Duration
	log     *slog.Logger
}

func NewBrowser(timeout time.Duration, logger *slog.Logger) *Browser {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Browser{timeout: timeout, log: logger}
}

// LocateVideoSource navigates to pageURL and evaluates the src of the first
// <video> element. The allocator and tab are always released, including on
// timeout or navigation failure.
func (b *Browser) LocateVideoSource(ctx context.Context, pageURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	start := time.Now()
	var src string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("video", chromedp.ByQuery),
		chromedp.Evaluate(`document.querySelector("video")?.src ?? ""`, &src),
	)
	if err != nil {
		b.log.Warn("media.browser.failed", "url", pageURL, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return "", fmt.Errorf("render page: %w", err)
	}
	if src == "" {
		b.log.Warn("media.browser.no_video_src", "url", pageURL)
		return "", fmt.Errorf("no video src found on page")
	}

	b.log.Info("media.browser.ok", "url", pageURL, "elapsed_ms", time.Since(start).Milliseconds())
	return src, nil
}
