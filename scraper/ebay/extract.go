package ebay

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ebay-scraper/models"
)

// Result-page structure. When eBay changes its markup these constants change,
// not the pipeline logic.
const (
	itemSelector  = ".s-item"
	titleSelector = ".s-item__title span"
	priceSelector = ".s-item__price .POSITIVE"
)

// nonNumeric matches every character that cannot appear in a plain decimal.
var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// ParseError reports a matched item whose price text could not be normalized
// to a number. It aborts the search: silently skipping the item would skew
// the statistics and hide a markup change.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse price %q", e.Raw)
}

// extractMatches walks one results page and returns the products whose title
// contains at least one of the target terms. Terms must arrive lower-cased.
// Items missing a title or price node are skipped whole; output keeps
// document order.
func extractMatches(doc *goquery.Document, terms []string) ([]models.MatchedProduct, error) {
	var (
		matched  []models.MatchedProduct
		parseErr error
	)

	doc.Find(itemSelector).EachWithBreak(func(_ int, item *goquery.Selection) bool {
		titleNode := item.Find(titleSelector).First()
		priceNode := item.Find(priceSelector).First()
		if titleNode.Length() == 0 || priceNode.Length() == 0 {
			return true
		}

		title := strings.TrimSpace(titleNode.Text())
		if !matchesAny(strings.ToLower(title), terms) {
			return true
		}

		price, err := normalizePrice(strings.TrimSpace(priceNode.Text()))
		if err != nil {
			parseErr = err
			return false
		}

		matched = append(matched, models.MatchedProduct{Title: title, Price: price})
		return true
	})

	if parseErr != nil {
		return nil, parseErr
	}
	return matched, nil
}

// matchesAny reports whether any term is a substring of the lower-cased
// title. Substring, not token, semantics: "cell" matches "cellular".
func matchesAny(loweredTitle string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(loweredTitle, term) {
			return true
		}
	}
	return false
}

// normalizePrice strips currency symbols and separators, keeping digits and
// decimal points, then parses the remainder.
func normalizePrice(raw string) (float64, error) {
	cleaned := nonNumeric.ReplaceAllString(raw, "")
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, &ParseError{Raw: raw}
	}
	return price, nil
}
