package product

import (
	"context"
	"strings"

	"mebelshop/internal/apperr"
	"mebelshop/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service defines the business logic for the product catalog.
type Service interface {
	List(ctx context.Context, filter Filter) ([]Product, error)
	Get(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, req NewProductRequest) (*Product, error)
	Update(ctx context.Context, req UpdateProductRequest) error
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, filter Filter) ([]Product, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Get(ctx context.Context, id int64) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFoundf("product %d not found", id)
	}
	return p, nil
}

func (s *service) Create(ctx context.Context, req NewProductRequest) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
		zap.String("name", req.Name),
	)

	categoryID, err := s.validate(ctx, req.Name, req.Price, req.Stock, req.CategoryName)
	if err != nil {
		log.Warn("validation failed", zap.Error(err))
		return nil, err
	}

	return s.repo.Create(ctx, req, categoryID)
}

func (s *service) Update(ctx context.Context, req UpdateProductRequest) error {
	categoryID, err := s.validate(ctx, req.Name, req.Price, req.Stock, req.CategoryName)
	if err != nil {
		return err
	}

	return s.repo.Update(ctx, req, categoryID)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// validate checks the shared create/update field rules and resolves the
// category name to its id. A nil id with no error means "no category".
func (s *service) validate(ctx context.Context, name string, price decimal.Decimal, stock int, categoryName string) (*int64, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validationf("product name cannot be empty")
	}
	if !price.IsPositive() {
		return nil, apperr.Validationf("price must be positive, got %s", price)
	}
	if stock < 0 {
		return nil, apperr.Validationf("stock cannot be negative, got %d", stock)
	}

	if categoryName == "" {
		return nil, nil
	}

	categoryID, err := s.repo.CategoryIDByName(ctx, categoryName)
	if err != nil {
		return nil, err
	}
	if categoryID == nil {
		return nil, apperr.Validationf("category %q does not exist", categoryName)
	}

	return categoryID, nil
}
