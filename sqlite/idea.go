package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/giftwatch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ giftwatch.IdeaService = (*IdeaService)(nil)

// IdeaService implements giftwatch.IdeaService using SQLite.
type IdeaService struct {
	db *DB
}

// NewIdeaService creates a new IdeaService.
func NewIdeaService(db *DB) *IdeaService {
	return &IdeaService{db: db}
}

const ideaColumns = "id, title, url, person, occasion, notes, currency, active, created_at"

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanIdea(row rowScanner) (*giftwatch.Idea, error) {
	var idea giftwatch.Idea
	var active int
	var createdAt string

	if err := row.Scan(&idea.ID, &idea.Title, &idea.URL, &idea.Person, &idea.Occasion, &idea.Notes,
		&idea.Currency, &active, &createdAt); err != nil {
		return nil, err
	}

	var err error
	idea.Active = active != 0
	if idea.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &idea, nil
}

// CreateIdea creates a new active idea. An empty currency defaults to EUR.
func (s *IdeaService) CreateIdea(ctx context.Context, idea *giftwatch.Idea) error {
	idea.Title = strings.TrimSpace(idea.Title)
	idea.URL = strings.TrimSpace(idea.URL)
	if idea.Currency == "" {
		idea.Currency = giftwatch.DefaultCurrency
	}
	if err := idea.Validate(); err != nil {
		return err
	}

	idea.ID = uuid.New().String()
	idea.Active = true
	idea.CreatedAt = time.Now().UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ideas (id, title, url, person, occasion, notes, currency, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, idea.ID, idea.Title, idea.URL, idea.Person, idea.Occasion, idea.Notes,
		string(idea.Currency), boolToInt(idea.Active), formatTime(idea.CreatedAt))

	return err
}

// FindIdeaByID retrieves an idea by ID.
func (s *IdeaService) FindIdeaByID(ctx context.Context, id string) (*giftwatch.Idea, error) {
	idea, err := scanIdea(s.db.QueryRowContext(ctx, "SELECT "+ideaColumns+" FROM ideas WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, giftwatch.Errorf(giftwatch.ENOTFOUND, "idea not found")
	}
	if err != nil {
		return nil, err
	}
	return idea, nil
}

// FindIdeas retrieves ideas matching the filter, newest first.
func (s *IdeaService) FindIdeas(ctx context.Context, filter giftwatch.IdeaFilter) ([]*giftwatch.Idea, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + ideaColumns + " FROM ideas WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Active != nil {
		query.WriteString(" AND active = ?")
		args = append(args, boolToInt(*filter.Active))
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ideas []*giftwatch.Idea
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			return nil, err
		}
		ideas = append(ideas, idea)
	}

	return ideas, rows.Err()
}

// UpdateIdea updates an existing idea.
func (s *IdeaService) UpdateIdea(ctx context.Context, id string, upd giftwatch.IdeaUpdate) (*giftwatch.Idea, error) {
	idea, err := s.FindIdeaByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		idea.Title = strings.TrimSpace(*upd.Title)
	}
	if upd.URL != nil {
		idea.URL = strings.TrimSpace(*upd.URL)
	}
	if upd.Person != nil {
		idea.Person = *upd.Person
	}
	if upd.Occasion != nil {
		idea.Occasion = *upd.Occasion
	}
	if upd.Notes != nil {
		idea.Notes = *upd.Notes
	}
	if upd.Currency != nil {
		idea.Currency = *upd.Currency
	}
	if upd.Active != nil {
		idea.Active = *upd.Active
	}

	if err := idea.Validate(); err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE ideas
		SET title = ?, url = ?, person = ?, occasion = ?, notes = ?, currency = ?, active = ?
		WHERE id = ?
	`, idea.Title, idea.URL, idea.Person, idea.Occasion, idea.Notes,
		string(idea.Currency), boolToInt(idea.Active), id)
	if err != nil {
		return nil, err
	}

	return idea, nil
}

// DeleteIdea permanently removes an idea together with its price history
// and alert.
func (s *IdeaService) DeleteIdea(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM ideas WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return giftwatch.Errorf(giftwatch.ENOTFOUND, "idea not found")
	}

	return nil
}
