package categorize

import (
	"context"
)

type Repository interface {
	FindCategory(ctx context.Context, description string) (string, error)
	CreateMapping(ctx context.Context, pattern, category string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest tries to find a category for the given transaction description.
// Returns empty string if no mapping matches.
func (s *Service) Suggest(ctx context.Context, description string) (string, error) {
	return s.repo.FindCategory(ctx, description)
}

// Learn remembers a new mapping between a description pattern and a category.
func (s *Service) Learn(ctx context.Context, pattern, category string) error {
	return s.repo.CreateMapping(ctx, pattern, category)
}
