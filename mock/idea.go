package mock

import (
	"context"

	"github.com/fwojciec/giftwatch"
)

var _ giftwatch.IdeaService = (*IdeaService)(nil)

// IdeaService is a mock implementation of giftwatch.IdeaService.
type IdeaService struct {
	CreateIdeaFn   func(ctx context.Context, idea *giftwatch.Idea) error
	FindIdeaByIDFn func(ctx context.Context, id string) (*giftwatch.Idea, error)
	FindIdeasFn    func(ctx context.Context, filter giftwatch.IdeaFilter) ([]*giftwatch.Idea, error)
	UpdateIdeaFn   func(ctx context.Context, id string, upd giftwatch.IdeaUpdate) (*giftwatch.Idea, error)
	DeleteIdeaFn   func(ctx context.Context, id string) error
}

func (s *IdeaService) CreateIdea(ctx context.Context, idea *giftwatch.Idea) error {
	return s.CreateIdeaFn(ctx, idea)
}

func (s *IdeaService) FindIdeaByID(ctx context.Context, id string) (*giftwatch.Idea, error) {
	return s.FindIdeaByIDFn(ctx, id)
}

func (s *IdeaService) FindIdeas(ctx context.Context, filter giftwatch.IdeaFilter) ([]*giftwatch.Idea, error) {
	return s.FindIdeasFn(ctx, filter)
}

func (s *IdeaService) UpdateIdea(ctx context.Context, id string, upd giftwatch.IdeaUpdate) (*giftwatch.Idea, error) {
	return s.UpdateIdeaFn(ctx, id, upd)
}

func (s *IdeaService) DeleteIdea(ctx context.Context, id string) error {
	return s.DeleteIdeaFn(ctx, id)
}
