// Package ebay drives sold-listings searches against eBay UK: it builds the
// query URL, walks the requested result pages, filters items by keyword and
// summarizes the matched prices.
package ebay

import (
	"context"
	"errors"
	"strings"
	"sync"

	"ebay-scraper/config"
	"ebay-scraper/fetch"
	"ebay-scraper/models"
	"ebay-scraper/services"
	"ebay-scraper/utils"
)

// Validation failures, surfaced before any page is fetched.
var (
	ErrNoKeywords   = errors.New("search requires at least one non-empty keyword")
	ErrInvalidPages = errors.New("page count must be at least 1")
)

// Scraper runs one search at a time: validate, fetch every requested page,
// extract matching products, aggregate.
type Scraper struct {
	cfg     *config.Config
	logger  *utils.Logger
	fetcher fetch.Fetcher
	stats   *services.StatsService
	pool    *utils.WorkerPool
}

// New creates a ready-to-use Scraper.
func New(cfg *config.Config, logger *utils.Logger, fetcher fetch.Fetcher, stats *services.StatsService) *Scraper {
	return &Scraper{
		cfg:     cfg,
		logger:  logger,
		fetcher: fetcher,
		stats:   stats,
		pool:    utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
	}
}

// Run executes one search. Any page failure aborts the whole run; a partial
// result would skew the statistics.
func (s *Scraper) Run(ctx context.Context, params models.SearchParameters) (*models.SearchSummary, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	template := buildQueryTemplate(params.Keywords, params.MinPrice, params.MaxPrice, params.Condition)
	terms := make([]string, len(params.Keywords))
	for i, kw := range params.Keywords {
		terms[i] = strings.ToLower(kw)
	}

	s.logger.Info("[ebay] Searching %d page(s) for: %s", params.Pages, strings.Join(params.Keywords, " "))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Results land under their page index, so the accumulated order is
	// page-then-document no matter how fetches interleave.
	perPage := make([][]models.MatchedProduct, params.Pages)

	var (
		mu       sync.Mutex
		firstErr error
	)
	for page := 1; page <= params.Pages; page++ {
		page := page
		s.pool.Submit(func() {
			if ctx.Err() != nil {
				return
			}
			products, err := s.searchPage(ctx, template, page, terms)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				cancel()
				return
			}
			perPage[page-1] = products
		})
	}
	s.pool.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	var matched []models.MatchedProduct
	for _, products := range perPage {
		matched = append(matched, products...)
	}

	s.logger.Info("[ebay] %d matching product(s) across %d page(s)", len(matched), params.Pages)
	return s.stats.Summarize(matched), nil
}

func (s *Scraper) searchPage(ctx context.Context, template string, page int, terms []string) ([]models.MatchedProduct, error) {
	url := pageURL(template, page)
	s.logger.Debug("[ebay] Page %d: %s", page, url)

	doc, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return extractMatches(doc, terms)
}

// validateParams rejects parameter sets that could never produce a meaningful
// search, before any network access happens.
func validateParams(p models.SearchParameters) error {
	if p.Pages < 1 {
		return ErrInvalidPages
	}
	for _, kw := range p.Keywords {
		if strings.TrimSpace(kw) != "" {
			return nil
		}
	}
	return ErrNoKeywords
}
