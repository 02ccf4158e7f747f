package category

import (
	"context"
	"strings"

	"mebelshop/internal/apperr"
	"mebelshop/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for categories.
type Service interface {
	List(ctx context.Context) ([]CategoryCount, error)
	ListNames(ctx context.Context) ([]string, error)
	Create(ctx context.Context, name string) (*Category, error)
	Delete(ctx context.Context, id int64) error
}

// service implements the Service interface
type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]CategoryCount, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListCategories"),
	)

	categories, err := s.repo.List(ctx)
	if err != nil {
		log.Error("failed to list categories", zap.Error(err))
		return nil, err
	}

	log.Debug("list categories success", zap.Int("count", len(categories)))
	return categories, nil
}

func (s *service) ListNames(ctx context.Context) ([]string, error) {
	return s.repo.ListNames(ctx)
}

func (s *service) Create(ctx context.Context, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validationf("category name cannot be empty")
	}

	return s.repo.Create(ctx, name)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
