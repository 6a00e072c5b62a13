package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/giftwatch"
)

// Ensure LoggingChecker implements giftwatch.PriceChecker.
var _ giftwatch.PriceChecker = (*LoggingChecker)(nil)

// LoggingChecker wraps a PriceChecker and logs every result.
type LoggingChecker struct {
	next   giftwatch.PriceChecker
	logger *slog.Logger
}

// NewLoggingChecker creates a new LoggingChecker.
func NewLoggingChecker(next giftwatch.PriceChecker, logger *slog.Logger) *LoggingChecker {
	return &LoggingChecker{next: next, logger: logger}
}

// CheckPrice delegates to the wrapped checker. Request errors are logged
// at warn level, everything else at info.
func (c *LoggingChecker) CheckPrice(ctx context.Context, url string) (result *giftwatch.PriceResult) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if giftwatch.IsRequestError(result.Source) {
			level = slog.LevelWarn
		}
		c.logger.Log(ctx, level, "price check",
			"url", url,
			"price", result.Price,
			"currency", string(result.Currency),
			"source", result.Source,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return c.next.CheckPrice(ctx, url)
}
