package giftwatch

import (
	"context"
	"strings"
)

// Source tags that do not come from an extraction strategy.
const (
	SourceNotFound     = "not-found"
	SourceManual       = "manual"
	sourceRequestError = "request-error"
)

// PriceResult holds the outcome of extracting a price from a page.
type PriceResult struct {
	// Price is the extracted amount. Zero means no price was found;
	// otherwise it is always positive and finite.
	Price float64

	// Currency is empty when no price was found.
	Currency Currency

	// Source identifies the strategy and field that produced the result,
	// e.g. "json-ld:price", "meta:og:price:amount", "text:eur",
	// "request-error:timeout" or "not-found". It is always set.
	Source string
}

// Found reports whether the result carries a price.
func (r *PriceResult) Found() bool {
	return r != nil && r.Price > 0
}

// NotFound returns the result for a page without any price signal.
func NotFound() *PriceResult {
	return &PriceResult{Source: SourceNotFound}
}

// RequestError returns the result for a page that could not be fetched.
// The source carries only the failure kind so it stays comparable across
// checks.
func RequestError(kind FetchErrorKind) *PriceResult {
	return &PriceResult{Source: sourceRequestError + ":" + string(kind)}
}

// IsRequestError reports whether source was produced by RequestError.
func IsRequestError(source string) bool {
	return strings.HasPrefix(source, sourceRequestError+":")
}

// PriceExtractor extracts the current price from raw HTML.
type PriceExtractor interface {
	// ExtractPrice never fails: malformed or price-less HTML yields
	// a result with Source "not-found".
	ExtractPrice(html string) *PriceResult
}

// PriceChecker fetches a product page and extracts its current price.
// Implementations hide retry logic and the extraction strategy chain.
type PriceChecker interface {
	// CheckPrice never fails: fetch failures are reported as a result
	// with a "request-error:<kind>" source.
	CheckPrice(ctx context.Context, url string) *PriceResult
}
