package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/giftwatch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ giftwatch.AlertService = (*AlertService)(nil)

// AlertService implements giftwatch.AlertService using SQLite.
type AlertService struct {
	db *DB
}

// NewAlertService creates a new AlertService.
func NewAlertService(db *DB) *AlertService {
	return &AlertService{db: db}
}

// SetAlert creates the idea's alert or updates its threshold and active
// flag. An existing alert keeps its ID, creation time and trigger history.
func (s *AlertService) SetAlert(ctx context.Context, alert *giftwatch.Alert) error {
	if err := alert.Validate(); err != nil {
		return err
	}
	if err := requireIdea(ctx, s.db, alert.IdeaID); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO alerts (id, idea_id, threshold, active, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(idea_id) DO UPDATE SET
			threshold = excluded.threshold,
			active = excluded.active
	`, uuid.New().String(), alert.IdeaID, alert.Threshold, boolToInt(alert.Active),
		formatTime(time.Now().Truncate(time.Second)))
	if err != nil {
		return err
	}

	stored, err := s.FindAlertByIdea(ctx, alert.IdeaID)
	if err != nil {
		return err
	}
	*alert = *stored
	return nil
}

// FindAlertByIdea retrieves the alert for an idea.
func (s *AlertService) FindAlertByIdea(ctx context.Context, ideaID string) (*giftwatch.Alert, error) {
	var alert giftwatch.Alert
	var active int
	var lastTriggeredAt sql.NullString
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, idea_id, threshold, active, last_triggered_at, created_at
		FROM alerts
		WHERE idea_id = ?
	`, ideaID).Scan(&alert.ID, &alert.IdeaID, &alert.Threshold, &active, &lastTriggeredAt, &createdAt)

	if err == sql.ErrNoRows {
		return nil, giftwatch.Errorf(giftwatch.ENOTFOUND, "alert not found")
	}
	if err != nil {
		return nil, err
	}

	alert.Active = active != 0
	if alert.LastTriggeredAt, err = parseNullRFC3339(lastTriggeredAt, "last_triggered_at"); err != nil {
		return nil, err
	}
	if alert.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}

	return &alert, nil
}

// MarkAlertTriggered records when an idea's alert last fired.
func (s *AlertService) MarkAlertTriggered(ctx context.Context, ideaID string, at time.Time) error {
	result, err := s.db.ExecContext(ctx, "UPDATE alerts SET last_triggered_at = ? WHERE idea_id = ?", formatTime(at), ideaID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return giftwatch.Errorf(giftwatch.ENOTFOUND, "alert not found")
	}

	return nil
}
