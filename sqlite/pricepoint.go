package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/giftwatch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ giftwatch.PricePointService = (*PricePointService)(nil)

// PricePointService implements giftwatch.PricePointService using SQLite.
type PricePointService struct {
	db *DB
}

// NewPricePointService creates a new PricePointService.
func NewPricePointService(db *DB) *PricePointService {
	return &PricePointService{db: db}
}

const pricePointColumns = "id, idea_id, price, currency, source, created_at"

func scanPricePoint(row rowScanner) (*giftwatch.PricePoint, error) {
	var point giftwatch.PricePoint
	var createdAt string

	if err := row.Scan(&point.ID, &point.IdeaID, &point.Price, &point.Currency, &point.Source, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if point.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &point, nil
}

// CreatePricePoint records a new observation for an existing idea.
func (s *PricePointService) CreatePricePoint(ctx context.Context, point *giftwatch.PricePoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	if err := requireIdea(ctx, s.db, point.IdeaID); err != nil {
		return err
	}

	point.ID = uuid.New().String()
	point.CreatedAt = time.Now().UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO price_points (id, idea_id, price, currency, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, point.ID, point.IdeaID, point.Price, string(point.Currency), point.Source, formatTime(point.CreatedAt))

	return err
}

// FindPricePoints returns the observations for an idea, oldest first.
// Observations recorded within the same second keep insertion order.
func (s *PricePointService) FindPricePoints(ctx context.Context, ideaID string) ([]*giftwatch.PricePoint, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+pricePointColumns+`
		FROM price_points
		WHERE idea_id = ?
		ORDER BY created_at ASC, rowid ASC
	`, ideaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []*giftwatch.PricePoint
	for rows.Next() {
		point, err := scanPricePoint(rows)
		if err != nil {
			return nil, err
		}
		points = append(points, point)
	}

	return points, rows.Err()
}

// FindLatestPricePoint returns the most recent observation for an idea.
func (s *PricePointService) FindLatestPricePoint(ctx context.Context, ideaID string) (*giftwatch.PricePoint, error) {
	point, err := scanPricePoint(s.db.QueryRowContext(ctx, `
		SELECT `+pricePointColumns+`
		FROM price_points
		WHERE idea_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`, ideaID))
	if err == sql.ErrNoRows {
		return nil, giftwatch.Errorf(giftwatch.ENOTFOUND, "no prices recorded")
	}
	if err != nil {
		return nil, err
	}
	return point, nil
}
