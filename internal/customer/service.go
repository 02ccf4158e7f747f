package customer

import (
	"context"
	"strings"

	"mebelshop/internal/apperr"
)

// Service defines the business logic for customers.
type Service interface {
	List(ctx context.Context, search string) ([]Customer, error)
	Get(ctx context.Context, id int64) (*Customer, error)
	Create(ctx context.Context, req NewCustomerRequest) (*Customer, error)
	Update(ctx context.Context, req UpdateCustomerRequest) error
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, search string) ([]Customer, error) {
	return s.repo.List(ctx, search)
}

func (s *service) Get(ctx context.Context, id int64) (*Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFoundf("customer %d not found", id)
	}
	return c, nil
}

func (s *service) Create(ctx context.Context, req NewCustomerRequest) (*Customer, error) {
	if err := validateNames(req.FirstName, req.LastName); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, req)
}

func (s *service) Update(ctx context.Context, req UpdateCustomerRequest) error {
	if err := validateNames(req.FirstName, req.LastName); err != nil {
		return err
	}
	return s.repo.Update(ctx, req)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func validateNames(first, last string) error {
	if strings.TrimSpace(first) == "" || strings.TrimSpace(last) == "" {
		return apperr.Validationf("first and last name are required")
	}
	return nil
}
