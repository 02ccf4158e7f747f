package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestKinds(t *testing.T) {
	t.Run("Validation", func(t *testing.T) {
		err := Validationf("price must be positive, got %s", "-5")
		assert.True(t, IsValidation(err))
		assert.False(t, IsConflict(err))
		assert.False(t, IsNotFound(err))
		assert.Equal(t, "price must be positive, got -5", err.Error())
	})

	t.Run("Conflict", func(t *testing.T) {
		err := Conflictf("email already registered")
		assert.True(t, IsConflict(err))
		assert.Equal(t, KindConflict, KindOf(err))
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFoundf("product %d not found", 42)
		assert.True(t, IsNotFound(err))
	})

	t.Run("Wrapped errors keep their kind", func(t *testing.T) {
		err := fmt.Errorf("delete category: %w", Conflictf("category has products"))
		assert.True(t, IsConflict(err))
	})

	t.Run("Plain errors have no kind", func(t *testing.T) {
		err := errors.New("connection reset")
		assert.Equal(t, Kind(0), KindOf(err))
		assert.False(t, IsValidation(err))
	})
}

func TestIsUniqueViolation(t *testing.T) {
	t.Run("pq unique violation", func(t *testing.T) {
		err := &pq.Error{Code: pq.ErrorCode(PgUniqueViolation)}
		assert.True(t, IsUniqueViolation(err))
	})

	t.Run("other pq error", func(t *testing.T) {
		err := &pq.Error{Code: "23503"}
		assert.False(t, IsUniqueViolation(err))
	})

	t.Run("non pq error", func(t *testing.T) {
		assert.False(t, IsUniqueViolation(errors.New("boom")))
	})
}
