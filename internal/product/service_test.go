package product

import (
	"context"
	"testing"

	"mebelshop/internal/apperr"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, filter Filter) ([]Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Product), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) CategoryIDByName(ctx context.Context, name string) (*int64, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*int64), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, req NewProductRequest, categoryID *int64) (*Product, error) {
	args := m.Called(ctx, req, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, req UpdateProductRequest, categoryID *int64) error {
	args := m.Called(ctx, req, categoryID)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func validRequest() NewProductRequest {
	return NewProductRequest{
		Name:         `Диван "Комфорт"`,
		Price:        decimal.NewFromInt(45000),
		Stock:        5,
		CategoryName: "Диваны",
		Material:     "Ткань, дерево",
		Color:        "Бежевый",
		Description:  "Мягкий удобный диван",
	}
}

func TestService_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		req := validRequest()
		catID := int64(1)

		repo.On("CategoryIDByName", mock.Anything, "Диваны").Return(&catID, nil)
		repo.On("Create", mock.Anything, req, &catID).
			Return(&Product{ID: 1, Name: req.Name, Price: req.Price, Stock: req.Stock, CategoryID: &catID, CategoryName: req.CategoryName}, nil)

		p, err := svc.Create(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, int64(1), p.ID)
		repo.AssertExpectations(t)
	})

	t.Run("Unknown category rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		req := validRequest()
		req.CategoryName = "Гамаки"

		repo.On("CategoryIDByName", mock.Anything, "Гамаки").Return(nil, nil)

		_, err := svc.Create(context.Background(), req)
		assert.True(t, apperr.IsValidation(err))
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("Non-positive price rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		req := validRequest()
		req.Price = decimal.Zero

		_, err := svc.Create(context.Background(), req)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("Negative stock rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		req := validRequest()
		req.Stock = -1

		_, err := svc.Create(context.Background(), req)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("Empty name rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		req := validRequest()
		req.Name = "  "

		_, err := svc.Create(context.Background(), req)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("No category is allowed", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		req := validRequest()
		req.CategoryName = ""

		repo.On("Create", mock.Anything, req, (*int64)(nil)).
			Return(&Product{ID: 2, Name: req.Name}, nil)

		p, err := svc.Create(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, int64(2), p.ID)
		repo.AssertNotCalled(t, "CategoryIDByName")
	})
}

func TestService_Update(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		catID := int64(3)
		req := UpdateProductRequest{
			ID:           6,
			Name:         "Стол обеденный",
			Price:        decimal.NewFromInt(27000),
			Stock:        3,
			CategoryName: "Столы",
		}

		repo.On("CategoryIDByName", mock.Anything, "Столы").Return(&catID, nil)
		repo.On("Update", mock.Anything, req, &catID).Return(nil)

		assert.NoError(t, svc.Update(context.Background(), req))
	})

	t.Run("NotFound passthrough", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		req := UpdateProductRequest{
			ID:    99,
			Name:  "Тумба",
			Price: decimal.NewFromInt(5000),
		}

		repo.On("Update", mock.Anything, req, (*int64)(nil)).
			Return(apperr.NotFoundf("product 99 not found"))

		assert.True(t, apperr.IsNotFound(svc.Update(context.Background(), req)))
	})
}

func TestService_Get(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByID", mock.Anything, int64(1)).
			Return(&Product{ID: 1, Name: `Диван "Комфорт"`}, nil)

		p, err := svc.Get(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), p.ID)
	})

	t.Run("Missing becomes NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByID", mock.Anything, int64(99)).Return(nil, nil)

		_, err := svc.Get(context.Background(), 99)
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestService_ListRoundTrip(t *testing.T) {
	// Two identical calls with no writes in between return identical results.
	repo := new(MockRepository)
	svc := NewService(repo)

	expected := []Product{{ID: 1, Name: `Диван "Комфорт"`}}
	repo.On("List", mock.Anything, Filter{}).Return(expected, nil).Twice()

	first, err := svc.List(context.Background(), Filter{})
	require.NoError(t, err)
	second, err := svc.List(context.Background(), Filter{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	repo.AssertExpectations(t)
}
