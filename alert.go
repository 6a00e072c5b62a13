package giftwatch

import (
	"context"
	"time"
)

// Alert fires when an idea's price drops to or below a threshold.
// Each idea has at most one alert.
type Alert struct {
	ID              string     `json:"id"`
	IdeaID          string     `json:"ideaId"`
	Threshold       float64    `json:"threshold"`
	Active          bool       `json:"active"`
	LastTriggeredAt *time.Time `json:"lastTriggeredAt"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// Validate returns an error if the alert contains invalid fields.
func (a *Alert) Validate() error {
	if a.IdeaID == "" {
		return Errorf(EINVALID, "alert idea ID required")
	}
	if a.Threshold < 0 {
		return Errorf(EINVALID, "alert threshold must not be negative")
	}
	return nil
}

// Triggered reports whether price satisfies the alert.
func (a *Alert) Triggered(price float64) bool {
	return a.Active && price > 0 && price <= a.Threshold
}

// AlertService represents a service for managing price alerts.
type AlertService interface {
	// SetAlert creates the alert for an idea or replaces its threshold and
	// active flag. Returns ENOTFOUND if the idea does not exist.
	SetAlert(ctx context.Context, alert *Alert) error

	// FindAlertByIdea retrieves the alert for an idea.
	// Returns ENOTFOUND if the idea has no alert.
	FindAlertByIdea(ctx context.Context, ideaID string) (*Alert, error)

	// MarkAlertTriggered records when an idea's alert last fired.
	// Returns ENOTFOUND if the idea has no alert.
	MarkAlertTriggered(ctx context.Context, ideaID string, at time.Time) error
}
