package seed

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSeedData(t *testing.T) {
	t.Run("Populated database is left alone", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM categories`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(8))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(16))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM customers`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))
		mock.ExpectCommit()

		err = EnsureSeedData(context.Background(), db)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty database gets the full dataset", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM categories`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		for range seedCategories {
			mock.ExpectExec(`INSERT INTO categories \(name\) VALUES \(\$1\)`).
				WillReturnResult(sqlmock.NewResult(0, 1))
		}

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		categoryRows := sqlmock.NewRows([]string{"id", "name"})
		for i, name := range seedCategories {
			categoryRows.AddRow(int64(i+1), name)
		}
		mock.ExpectQuery(`SELECT id, name FROM categories`).WillReturnRows(categoryRows)
		for range seedProducts {
			mock.ExpectExec(`INSERT INTO products`).
				WillReturnResult(sqlmock.NewResult(0, 1))
		}

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM customers`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		for range seedCustomers {
			mock.ExpectExec(`INSERT INTO customers`).
				WillReturnResult(sqlmock.NewResult(0, 1))
		}

		mock.ExpectCommit()

		err = EnsureSeedData(context.Background(), db)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown category aborts the seed", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM categories`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(8))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		// a category list missing the very first product's category
		mock.ExpectQuery(`SELECT id, name FROM categories`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(2), "Кресла"))
		mock.ExpectRollback()

		err = EnsureSeedData(context.Background(), db)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown seed category")
	})
}

func TestSeedDatasetShape(t *testing.T) {
	assert.Len(t, seedCategories, 8)
	assert.Len(t, seedProducts, 16)
	assert.Len(t, seedCustomers, 6)

	known := make(map[string]bool, len(seedCategories))
	for _, name := range seedCategories {
		known[name] = true
	}
	for _, p := range seedProducts {
		assert.True(t, known[p.Category], "product %q references unknown category %q", p.Name, p.Category)
		assert.True(t, p.Price.IsPositive())
		assert.GreaterOrEqual(t, p.Stock, 0)
	}
}
