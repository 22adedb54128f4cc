package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// Browser fetches pages through a headless Chrome instance. Some pages only
// embed their full state payload after client-side rendering; this fetcher
// exists for those.
type Browser struct {
	allocCtx context.Context
	cancel   context.CancelFunc
	timeout  time.Duration
}

// NewBrowser starts a headless browser allocator. Callers must Close it.
func NewBrowser(timeout time.Duration) *Browser {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgents[0]),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Browser{allocCtx: allocCtx, cancel: cancel, timeout: timeout}
}

// Close releases the browser allocator.
func (b *Browser) Close() {
	if b.cancel != nil {
		b.cancel()
	}
}

// Fetch navigates to the page and returns the rendered markup.
func (b *Browser) Fetch(ctx context.Context, url string) (string, error) {
	browserCtx, cancel := chromedp.NewContext(b.allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, b.timeout)
	defer cancel()

	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-browserCtx.Done():
		}
	}()

	var markup string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(`body`, chromedp.ByQuery),
		chromedp.Sleep(1*time.Second), // let JS embed the state payload
		chromedp.OuterHTML(`html`, &markup, chromedp.ByQuery),
	)
	if err != nil {
		return "", &FetchError{URL: url, Attempts: 1, Err: fmt.Errorf("chromedp: %w", err)}
	}
	if markup == "" {
		return "", &FetchError{URL: url, Attempts: 1, Err: fmt.Errorf("empty page content")}
	}
	if strings.Contains(markup, sentinelNotFound) {
		return "", &PageNotFoundError{URL: url}
	}
	return markup, nil
}
