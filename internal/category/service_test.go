package category

import (
	"context"
	"errors"
	"testing"

	"mebelshop/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context) ([]CategoryCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]CategoryCount), args.Error(1)
}

func (m *MockRepository) ListNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, name string) (*Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Category), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_List(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	expected := []CategoryCount{
		{Category: Category{ID: 1, Name: "Диваны"}, ProductCount: 3},
	}
	repo.On("List", mock.Anything).Return(expected, nil)

	res, err := svc.List(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, expected, res)
	repo.AssertExpectations(t)
}

func TestService_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", mock.Anything, "Диваны").
			Return(&Category{ID: 1, Name: "Диваны"}, nil)

		res, err := svc.Create(context.Background(), "  Диваны  ")
		assert.NoError(t, err)
		assert.Equal(t, int64(1), res.ID)
	})

	t.Run("Empty name rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.Create(context.Background(), "   ")
		assert.True(t, apperr.IsValidation(err))
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("Repo error passthrough", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", mock.Anything, "Шкафы").Return(nil, errors.New("db down"))

		_, err := svc.Create(context.Background(), "Шкафы")
		assert.Error(t, err)
	})
}

func TestService_Delete(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("Delete", mock.Anything, int64(7)).Return(apperr.Conflictf("category has 2 products"))

	err := svc.Delete(context.Background(), 7)
	assert.True(t, apperr.IsConflict(err))
}
