package mock

import (
	"context"
	"time"

	"github.com/fwojciec/giftwatch"
)

var _ giftwatch.AlertService = (*AlertService)(nil)

// AlertService is a mock implementation of giftwatch.AlertService.
type AlertService struct {
	SetAlertFn           func(ctx context.Context, alert *giftwatch.Alert) error
	FindAlertByIdeaFn    func(ctx context.Context, ideaID string) (*giftwatch.Alert, error)
	MarkAlertTriggeredFn func(ctx context.Context, ideaID string, at time.Time) error
}

func (s *AlertService) SetAlert(ctx context.Context, alert *giftwatch.Alert) error {
	return s.SetAlertFn(ctx, alert)
}

func (s *AlertService) FindAlertByIdea(ctx context.Context, ideaID string) (*giftwatch.Alert, error) {
	return s.FindAlertByIdeaFn(ctx, ideaID)
}

func (s *AlertService) MarkAlertTriggered(ctx context.Context, ideaID string, at time.Time) error {
	return s.MarkAlertTriggeredFn(ctx, ideaID, at)
}
