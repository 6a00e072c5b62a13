package giftwatch

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// Idea represents a gift idea: a product link whose price is tracked.
type Idea struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Person    string    `json:"person"`
	Occasion  string    `json:"occasion"`
	Notes     string    `json:"notes"`
	Currency  Currency  `json:"currency"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

var httpURLRe = regexp.MustCompile(`(?i)^https?://`)

// IsValidURL reports whether url is an http:// or https:// link.
func IsValidURL(url string) bool {
	return httpURLRe.MatchString(strings.TrimSpace(url))
}

// Validate returns an error if the idea contains invalid fields.
func (i *Idea) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return Errorf(EINVALID, "idea title required")
	}
	if !IsValidURL(i.URL) {
		return Errorf(EINVALID, "idea URL must start with http:// or https://")
	}
	return i.Currency.Validate()
}

// IdeaService represents a service for managing gift ideas.
type IdeaService interface {
	// CreateIdea creates a new idea. New ideas are active.
	CreateIdea(ctx context.Context, idea *Idea) error

	// FindIdeaByID retrieves an idea by ID.
	// Returns ENOTFOUND if idea does not exist.
	FindIdeaByID(ctx context.Context, id string) (*Idea, error)

	// FindIdeas retrieves ideas matching the filter, newest first.
	FindIdeas(ctx context.Context, filter IdeaFilter) ([]*Idea, error)

	// UpdateIdea updates an existing idea.
	// Returns ENOTFOUND if idea does not exist.
	UpdateIdea(ctx context.Context, id string, upd IdeaUpdate) (*Idea, error)

	// DeleteIdea permanently removes an idea with its prices and alert.
	// Returns ENOTFOUND if idea does not exist.
	DeleteIdea(ctx context.Context, id string) error
}

// IdeaFilter represents a filter for FindIdeas.
type IdeaFilter struct {
	ID     *string `json:"id"`
	Active *bool   `json:"active"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// IdeaUpdate represents fields that can be updated on an idea.
type IdeaUpdate struct {
	Title    *string   `json:"title"`
	URL      *string   `json:"url"`
	Person   *string   `json:"person"`
	Occasion *string   `json:"occasion"`
	Notes    *string   `json:"notes"`
	Currency *Currency `json:"currency"`
	Active   *bool     `json:"active"`
}
