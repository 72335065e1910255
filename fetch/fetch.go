// Package fetch retrieves marketplace result pages and parses them into
// queryable documents.
package fetch

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher retrieves one results page and parses it into a document the
// extraction layer can query.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*goquery.Document, error)
}

// Error describes a failed page retrieval. StatusCode is zero when the
// failure happened below the HTTP layer.
type Error struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
