package category

import (
	"context"
	"database/sql"
	"fmt"

	"mebelshop/internal/apperr"
	"mebelshop/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]CategoryCount, error)
	ListNames(ctx context.Context) ([]string, error)
	Create(ctx context.Context, name string) (*Category, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]CategoryCount, error) {
	query := `
		SELECT
			c.id,
			c.name,
			COUNT(p.id)
		FROM categories c
		LEFT JOIN products p ON c.id = p.category_id
		GROUP BY c.id, c.name
		ORDER BY c.name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []CategoryCount

	for rows.Next() {
		var c CategoryCount
		if err := rows.Scan(&c.ID, &c.Name, &c.ProductCount); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	return categories, nil
}

func (r *repository) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list category names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan category name: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

func (r *repository) Create(ctx context.Context, name string) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateCategory"),
		zap.String("name", name),
	)

	query := `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING id, name
	`

	var c Category
	err := r.db.QueryRowContext(ctx, query, name).Scan(&c.ID, &c.Name)
	if err != nil {
		if apperr.IsUniqueViolation(err) {
			log.Warn("duplicate category name")
			return nil, apperr.Conflictf("category %q already exists", name)
		}
		log.Error("failed to create category", zap.Error(err))
		return nil, fmt.Errorf("create category: %w", err)
	}

	log.Info("category created", zap.Int64("category_id", c.ID))
	return &c, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "DeleteCategory"),
		zap.Int64("category_id", id),
	)

	var productCount int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE category_id = $1`, id,
	).Scan(&productCount)
	if err != nil {
		return fmt.Errorf("count products in category: %w", err)
	}

	if productCount > 0 {
		log.Warn("delete blocked by products", zap.Int64("product_count", productCount))
		return apperr.Conflictf("category has %d products", productCount)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFoundf("category %d not found", id)
	}

	log.Info("category deleted")
	return nil
}
