package services

import (
	"fmt"
	"sort"
	"strings"

	"ebay-scraper/models"
	"ebay-scraper/utils"
)

// StatsService computes and presents price statistics over matched products.
type StatsService struct {
	logger   *utils.Logger
	currency string
}

// NewStatsService creates a StatsService formatting prices with the given
// currency symbol.
func NewStatsService(logger *utils.Logger, currency string) *StatsService {
	return &StatsService{logger: logger, currency: currency}
}

// Summarize derives count, mean, median, lowest and highest over the matched
// set. The input slice is copied, never mutated; summarizing the same input
// twice yields identical summaries.
func (s *StatsService) Summarize(matches []models.MatchedProduct) *models.SearchSummary {
	summary := &models.SearchSummary{Count: len(matches)}
	if len(matches) == 0 {
		return summary
	}

	products := make([]models.MatchedProduct, len(matches))
	copy(products, matches)

	// Stable: equal prices keep their page-then-document order.
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Price < products[j].Price
	})

	var total float64
	for _, p := range products {
		total += p.Price
	}
	summary.Mean = total / float64(len(products))

	mid := len(products) / 2
	if len(products)%2 == 1 {
		median := products[mid]
		summary.Median = &median
	} else {
		// Averaged price, paired with the upper-middle element's title.
		summary.Median = &models.MatchedProduct{
			Title: products[mid].Title,
			Price: (products[mid-1].Price + products[mid].Price) / 2,
		}
	}

	lowest := products[0]
	highest := products[len(products)-1]
	summary.Lowest = &lowest
	summary.Highest = &highest
	summary.Products = products

	return summary
}

// Print renders the price report to stdout.
func (s *StatsService) Print(r *models.SearchSummary) {
	thin := strings.Repeat("─", 54)

	fmt.Println()
	fmt.Printf("\033[1;33m  Sold Listing Price Report\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Products matched: \033[1m%d\033[0m\n", r.Count)

	if r.Count == 0 {
		fmt.Printf("  No sold listings matched the search terms\n\n")
		return
	}

	fmt.Printf("  Lowest price: \033[1;32m%s%.2f\033[0m - %s\n",
		s.currency, r.Lowest.Price, truncate(r.Lowest.Title, 60))
	fmt.Printf("  Median price: \033[1;32m%s%.2f\033[0m - %s\n",
		s.currency, r.Median.Price, truncate(r.Median.Title, 60))
	fmt.Printf("  Highest price: \033[1;32m%s%.2f\033[0m - %s\n",
		s.currency, r.Highest.Price, truncate(r.Highest.Title, 60))
	fmt.Printf("  Mean (average) price: \033[1;32m%s%.2f\033[0m\n\n",
		s.currency, r.Mean)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
