package giftwatch

import (
	"context"
	"time"
)

// PricePoint is a single price observation for an idea.
type PricePoint struct {
	ID        string    `json:"id"`
	IdeaID    string    `json:"ideaId"`
	Price     float64   `json:"price"`
	Currency  Currency  `json:"currency"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the price point contains invalid fields.
func (p *PricePoint) Validate() error {
	if p.IdeaID == "" {
		return Errorf(EINVALID, "price point idea ID required")
	}
	if !(p.Price > 0) {
		return Errorf(EINVALID, "price must be greater than zero")
	}
	return p.Currency.Validate()
}

// PricePointService represents a service for recording price observations.
type PricePointService interface {
	// CreatePricePoint records a new observation.
	// Returns ENOTFOUND if the idea does not exist.
	CreatePricePoint(ctx context.Context, point *PricePoint) error

	// FindPricePoints returns the observations for an idea, oldest first.
	FindPricePoints(ctx context.Context, ideaID string) ([]*PricePoint, error)

	// FindLatestPricePoint returns the most recent observation for an idea.
	// Returns ENOTFOUND if the idea has no observations.
	FindLatestPricePoint(ctx context.Context, ideaID string) (*PricePoint, error)
}
