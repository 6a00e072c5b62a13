// Package track checks product pages for their current price and keeps the
// price history of saved ideas up to date.
package track

import (
	"context"

	"github.com/fwojciec/giftwatch"
)

var _ giftwatch.PriceChecker = (*Checker)(nil)

// Checker fetches a page with retry and runs the extractor over it.
type Checker struct {
	Fetcher   giftwatch.Fetcher
	Extractor giftwatch.PriceExtractor

	// Retry defaults to DefaultRetryPolicy when Attempts is zero.
	Retry RetryPolicy

	// Logger, if set, receives one line per retry.
	Logger LogFunc
}

// CheckPrice returns the current price of the page at url. Fetch failures
// that survive the retry budget are reported as a request-error result
// carrying only the failure kind.
func (c *Checker) CheckPrice(ctx context.Context, url string) *giftwatch.PriceResult {
	policy := c.Retry
	if policy.Attempts == 0 {
		policy = DefaultRetryPolicy()
	}

	html, err := FetchWithRetryPolicy(ctx, url, c.Fetcher.Fetch, c.Logger, policy)
	if err != nil {
		return giftwatch.RequestError(giftwatch.FetchErrorKindOf(err))
	}
	return c.Extractor.ExtractPrice(html)
}
