package models

// SearchParameters describes one search run. Built once per run by the CLI
// and treated as immutable from then on.
type SearchParameters struct {
	Keywords  []string
	MinPrice  string // empty means no minimum filter
	MaxPrice  string // empty means no maximum filter
	Condition string // new, used, refurbished, any or empty
	Pages     int
}

// MatchedProduct is a sold listing whose title matched the search terms.
// Title keeps its original casing; Price is the currency-stripped value.
type MatchedProduct struct {
	Title string
	Price float64
}

// SearchSummary holds the price statistics computed over the matched set.
// Median, Lowest and Highest are nil when Count is zero.
type SearchSummary struct {
	Count   int
	Mean    float64
	Median  *MatchedProduct
	Lowest  *MatchedProduct
	Highest *MatchedProduct

	// Products is the full matched set, sorted ascending by price.
	Products []MatchedProduct
}
