package ebay

import (
	"strconv"
	"strings"
)

const (
	baseURL = "https://www.ebay.co.uk/sch/i.html"

	// pagePlaceholder marks where pageURL substitutes the page number.
	pagePlaceholder = "{page}"
)

// conditionCodes maps condition names to eBay's LH_ItemCondition values.
// Anything not listed here (including "any") applies no condition filter.
var conditionCodes = map[string]string{
	"new":         "1000",
	"refurbished": "2000",
	"used":        "3000",
}

// buildQueryTemplate returns the sold-listings search URL with a {page}
// placeholder for the page number. Keywords are joined with a literal %20 and
// not otherwise escaped; callers pass pre-sanitized terms. The completed and
// sold filters are always on.
func buildQueryTemplate(keywords []string, minPrice, maxPrice, condition string) string {
	params := []string{
		"_from=R40",
		"_nkw=" + strings.Join(keywords, "%20"),
		"_sacat=0",
		"_fsrp=1",
		"LH_Complete=1",
		"LH_Sold=1",
		"_pgn=" + pagePlaceholder,
		"rt=nc",
	}

	if code, ok := conditionCodes[strings.ToLower(condition)]; ok {
		params = append(params, "LH_ItemCondition="+code)
	}
	if minPrice != "" {
		params = append(params, "_udlo="+minPrice)
	}
	if maxPrice != "" {
		params = append(params, "_udhi="+maxPrice)
	}

	return baseURL + "?" + strings.Join(params, "&")
}

// pageURL substitutes the page number into a query template.
func pageURL(template string, page int) string {
	return strings.ReplaceAll(template, pagePlaceholder, strconv.Itoa(page))
}
