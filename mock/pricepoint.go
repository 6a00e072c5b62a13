package mock

import (
	"context"

	"github.com/fwojciec/giftwatch"
)

var _ giftwatch.PricePointService = (*PricePointService)(nil)

// PricePointService is a mock implementation of giftwatch.PricePointService.
type PricePointService struct {
	CreatePricePointFn     func(ctx context.Context, point *giftwatch.PricePoint) error
	FindPricePointsFn      func(ctx context.Context, ideaID string) ([]*giftwatch.PricePoint, error)
	FindLatestPricePointFn func(ctx context.Context, ideaID string) (*giftwatch.PricePoint, error)
}

func (s *PricePointService) CreatePricePoint(ctx context.Context, point *giftwatch.PricePoint) error {
	return s.CreatePricePointFn(ctx, point)
}

func (s *PricePointService) FindPricePoints(ctx context.Context, ideaID string) ([]*giftwatch.PricePoint, error) {
	return s.FindPricePointsFn(ctx, ideaID)
}

func (s *PricePointService) FindLatestPricePoint(ctx context.Context, ideaID string) (*giftwatch.PricePoint, error) {
	return s.FindLatestPricePointFn(ctx, ideaID)
}
