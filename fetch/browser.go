package fetch

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"ebay-scraper/config"
	"ebay-scraper/utils"
)

// BrowserFetcher renders pages in headless Chrome before parsing. Useful when
// the marketplace serves challenge pages to plain HTTP clients.
type BrowserFetcher struct {
	allocCtx context.Context
	cancels  []context.CancelFunc
	timeout  time.Duration
	retry    *utils.RetryConfig
	logger   *utils.Logger
}

// NewBrowserFetcher starts a headless browser allocator. Callers must Close
// the fetcher to release it.
func NewBrowserFetcher(cfg *config.Config, logger *utils.Logger) *BrowserFetcher {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(cfg.UserAgent),
	)
	if bin := findChromeBinary(cfg.ChromeBin); bin != "" {
		logger.Info("[fetch] Using browser binary: %s", bin)
		opts = append(opts, chromedp.ExecPath(bin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)

	// Suppress chromedp log noise
	silentCtx, cancelSilent := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	return &BrowserFetcher{
		allocCtx: silentCtx,
		cancels:  []context.CancelFunc{cancelSilent, cancelAlloc},
		timeout:  time.Duration(cfg.FetchTimeoutMs) * time.Millisecond,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		logger: logger,
	}
}

// Fetch renders the page in a fresh tab and parses the resulting markup.
func (f *BrowserFetcher) Fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	var html string

	err := f.retry.Do("render-page", func() error {
		if err := ctx.Err(); err != nil {
			return &Error{URL: pageURL, Err: err}
		}

		tabCtx, cancel := chromedp.NewContext(f.allocCtx)
		defer cancel()

		tabCtx, cancelTimeout := context.WithTimeout(tabCtx, f.timeout)
		defer cancelTimeout()

		err := chromedp.Run(tabCtx,
			chromedp.Navigate(pageURL),
			chromedp.Sleep(2*time.Second),
			chromedp.OuterHTML("html", &html),
		)
		if err != nil {
			return &Error{URL: pageURL, Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	f.logger.Debug("[fetch] Rendered %s (%d bytes)", pageURL, len(html))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &Error{URL: pageURL, Err: err}
	}
	return doc, nil
}

// Close shuts the browser down.
func (f *BrowserFetcher) Close() error {
	for _, cancel := range f.cancels {
		cancel()
	}
	return nil
}

// findChromeBinary locates a Chrome/Chromium binary, preferring the
// explicitly configured path.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
