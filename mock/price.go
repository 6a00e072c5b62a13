package mock

import (
	"context"

	"github.com/fwojciec/giftwatch"
)

var _ giftwatch.PriceExtractor = (*PriceExtractor)(nil)

// PriceExtractor is a mock implementation of giftwatch.PriceExtractor.
type PriceExtractor struct {
	ExtractPriceFn func(html string) *giftwatch.PriceResult
}

func (e *PriceExtractor) ExtractPrice(html string) *giftwatch.PriceResult {
	return e.ExtractPriceFn(html)
}

var _ giftwatch.PriceChecker = (*PriceChecker)(nil)

// PriceChecker is a mock implementation of giftwatch.PriceChecker.
type PriceChecker struct {
	CheckPriceFn func(ctx context.Context, url string) *giftwatch.PriceResult
}

func (c *PriceChecker) CheckPrice(ctx context.Context, url string) *giftwatch.PriceResult {
	return c.CheckPriceFn(ctx, url)
}
