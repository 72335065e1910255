package ebay

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"ebay-scraper/config"
	"ebay-scraper/fetch"
	"ebay-scraper/models"
	"ebay-scraper/services"
	"ebay-scraper/utils"
)

// fakeFetcher serves canned HTML per URL and records every call.
type fakeFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	fail  map[string]error
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, pageURL string) (*goquery.Document, error) {
	f.mu.Lock()
	f.calls = append(f.calls, pageURL)
	f.mu.Unlock()

	if err, ok := f.fail[pageURL]; ok {
		return nil, err
	}
	html, ok := f.pages[pageURL]
	if !ok {
		return nil, &fetch.Error{URL: pageURL, StatusCode: 404}
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestScraper(f fetch.Fetcher) *Scraper {
	cfg := &config.Config{MaxConcurrency: 1, RateLimitMs: 0}
	logger := utils.NewLogger()
	return New(cfg, logger, f, services.NewStatsService(logger, "£"))
}

func TestRunTwoPageSearch(t *testing.T) {
	params := models.SearchParameters{
		Keywords:  []string{"phone"},
		MinPrice:  "50",
		MaxPrice:  "",
		Condition: "used",
		Pages:     2,
	}
	tpl := buildQueryTemplate(params.Keywords, params.MinPrice, params.MaxPrice, params.Condition)

	page1 := resultsHTML(
		listingHTML("Phone Alpha", "£55.00"),
		listingHTML("Tablet Stand", "£12.00"),
		listingHTML("Phone Beta", "£80.00"),
		listingHTML("Charging Cable", "£6.00"),
		listingHTML("Smartphone Gamma", "£65.00"),
	)
	page2 := resultsHTML(
		listingHTML("Phone Delta", "£95.00"),
		listingHTML("Screen Protector", "£4.00"),
		listingHTML("Phone Epsilon", "£70.00"),
		listingHTML("Headphone Zeta", "£60.00"),
		listingHTML("Laptop Sleeve", "£18.00"),
	)

	f := &fakeFetcher{pages: map[string]string{
		pageURL(tpl, 1): page1,
		pageURL(tpl, 2): page2,
	}}

	summary, err := newTestScraper(f).Run(context.Background(), params)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if summary.Count != 6 {
		t.Errorf("Count: got %d, want 6", summary.Count)
	}
	if f.callCount() != 2 {
		t.Errorf("fetch calls: got %d, want 2", f.callCount())
	}

	titles := make(map[string]bool, len(summary.Products))
	for _, p := range summary.Products {
		titles[p.Title] = true
	}
	if !titles["Phone Alpha"] || !titles["Phone Delta"] {
		t.Error("matched set should cover items from both pages")
	}
	if titles["Tablet Stand"] || titles["Laptop Sleeve"] {
		t.Error("non-matching items leaked into the matched set")
	}

	if summary.Lowest.Title != "Phone Alpha" || summary.Lowest.Price != 55 {
		t.Errorf("Lowest: got (%q, %.2f), want (Phone Alpha, 55)", summary.Lowest.Title, summary.Lowest.Price)
	}
	if summary.Highest.Title != "Phone Delta" || summary.Highest.Price != 95 {
		t.Errorf("Highest: got (%q, %.2f), want (Phone Delta, 95)", summary.Highest.Title, summary.Highest.Price)
	}
}

func TestRunValidatesBeforeFetching(t *testing.T) {
	tests := []struct {
		name    string
		params  models.SearchParameters
		wantErr error
	}{
		{"no keywords", models.SearchParameters{Pages: 1}, ErrNoKeywords},
		{"blank keywords", models.SearchParameters{Keywords: []string{" ", ""}, Pages: 1}, ErrNoKeywords},
		{"zero pages", models.SearchParameters{Keywords: []string{"phone"}, Pages: 0}, ErrInvalidPages},
	}

	for _, tt := range tests {
		f := &fakeFetcher{}
		_, err := newTestScraper(f).Run(context.Background(), tt.params)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: got error %v, want %v", tt.name, err, tt.wantErr)
		}
		if f.callCount() != 0 {
			t.Errorf("%s: %d fetches happened before validation failed", tt.name, f.callCount())
		}
	}
}

func TestRunAbortsOnFetchFailure(t *testing.T) {
	params := models.SearchParameters{Keywords: []string{"phone"}, Pages: 2}
	tpl := buildQueryTemplate(params.Keywords, "", "", "")

	f := &fakeFetcher{
		pages: map[string]string{
			pageURL(tpl, 1): resultsHTML(listingHTML("Phone Alpha", "£55.00")),
		},
		fail: map[string]error{
			pageURL(tpl, 2): &fetch.Error{URL: pageURL(tpl, 2), StatusCode: 503},
		},
	}

	summary, err := newTestScraper(f).Run(context.Background(), params)
	if err == nil {
		t.Fatal("expected the page failure to abort the search")
	}
	if summary != nil {
		t.Error("no summary should be produced for a failed search")
	}

	var fe *fetch.Error
	if !errors.As(err, &fe) {
		t.Fatalf("expected *fetch.Error, got %T: %v", err, err)
	}
	if fe.StatusCode != 503 {
		t.Errorf("StatusCode: got %d, want 503", fe.StatusCode)
	}
}

func TestRunAbortsOnParseError(t *testing.T) {
	params := models.SearchParameters{Keywords: []string{"phone"}, Pages: 1}
	tpl := buildQueryTemplate(params.Keywords, "", "", "")

	f := &fakeFetcher{pages: map[string]string{
		pageURL(tpl, 1): resultsHTML(listingHTML("Phone Alpha", "£12.34.56")),
	}}

	summary, err := newTestScraper(f).Run(context.Background(), params)
	if err == nil {
		t.Fatal("expected the malformed price to abort the search")
	}
	if summary != nil {
		t.Error("no summary should be produced for a failed search")
	}

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
}

func TestRunWithNoMatchesIsValid(t *testing.T) {
	params := models.SearchParameters{Keywords: []string{"phone"}, Pages: 1}
	tpl := buildQueryTemplate(params.Keywords, "", "", "")

	f := &fakeFetcher{pages: map[string]string{
		pageURL(tpl, 1): resultsHTML(listingHTML("Garden Gnome", "£8.00")),
	}}

	summary, err := newTestScraper(f).Run(context.Background(), params)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Count != 0 {
		t.Errorf("Count: got %d, want 0", summary.Count)
	}
	if summary.Median != nil || summary.Lowest != nil || summary.Highest != nil {
		t.Error("no statistics should be populated when nothing matched")
	}
}
