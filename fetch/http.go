package fetch

import (
	"bytes"
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"ebay-scraper/config"
	"ebay-scraper/utils"
)

// HTTPFetcher retrieves pages with a plain HTTP client. This is the default
// mode; eBay result pages render fine without JavaScript.
type HTTPFetcher struct {
	client *resty.Client
	retry  *utils.RetryConfig
}

// NewHTTPFetcher builds a fetcher honoring the configured timeout, User-Agent
// and retry policy.
func NewHTTPFetcher(cfg *config.Config, logger *utils.Logger) *HTTPFetcher {
	client := resty.New().
		SetTimeout(time.Duration(cfg.FetchTimeoutMs) * time.Millisecond).
		SetHeader("User-Agent", cfg.UserAgent).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))

	return &HTTPFetcher{
		client: client,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Fetch GETs the page and parses the body. Non-2xx statuses, transport
// failures and unparseable bodies all come back as *Error.
func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	var doc *goquery.Document

	err := f.retry.Do("fetch-page", func() error {
		res, err := f.client.R().SetContext(ctx).Get(pageURL)
		if err != nil {
			return &Error{URL: pageURL, Err: err}
		}
		if res.StatusCode() < 200 || res.StatusCode() > 299 {
			return &Error{URL: pageURL, StatusCode: res.StatusCode()}
		}

		d, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
		if err != nil {
			return &Error{URL: pageURL, Err: err}
		}
		doc = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}
