package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"mebelshop/internal/apperr"
	"mebelshop/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, filter Filter) ([]Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	CategoryIDByName(ctx context.Context, name string) (*int64, error)
	Create(ctx context.Context, req NewProductRequest, categoryID *int64) (*Product, error)
	Update(ctx context.Context, req UpdateProductRequest, categoryID *int64) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	p.id,
	p.name,
	p.price,
	p.stock,
	p.category_id,
	COALESCE(c.name, ''),
	p.material,
	p.color,
	p.description
`

func (r *repository) List(ctx context.Context, filter Filter) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListProducts"),
	)

	start := time.Now()

	// ---------- where ----------
	where := []string{}
	args := []any{}

	if filter.CategoryName != "" {
		where = append(where, fmt.Sprintf("c.name = $%d", len(args)+1))
		args = append(args, filter.CategoryName)
	}

	if filter.Search != "" {
		idx := len(args) + 1
		where = append(where, fmt.Sprintf(
			"(p.name ILIKE $%d OR p.material ILIKE $%d OR p.color ILIKE $%d OR p.description ILIKE $%d)",
			idx, idx, idx, idx,
		))
		args = append(args, "%"+filter.Search+"%")
	}

	// ---------- query ----------
	query := `
	SELECT ` + productColumns + `
	FROM products p
	LEFT JOIN categories c ON p.category_id = c.id`

	if len(where) > 0 {
		query += "\n\tWHERE " + strings.Join(where, " AND ")
	}
	query += "\n\tORDER BY p.name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []Product

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	log.Debug("list products success",
		zap.Int("count", len(products)),
		zap.Duration("duration", time.Since(start)),
	)

	return products, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Product, error) {
	query := `
	SELECT ` + productColumns + `
	FROM products p
	LEFT JOIN categories c ON p.category_id = c.id
	WHERE p.id = $1`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}

	return p, nil
}

func (r *repository) CategoryIDByName(ctx context.Context, name string) (*int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM categories WHERE name = $1`, name,
	).Scan(&id)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve category %q: %w", name, err)
	}

	return &id, nil
}

func (r *repository) Create(ctx context.Context, req NewProductRequest, categoryID *int64) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateProduct"),
		zap.String("name", req.Name),
	)

	query := `
	INSERT INTO products (name, price, stock, category_id, material, color, description)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id
	`

	p := &Product{
		Name:         req.Name,
		Price:        req.Price,
		Stock:        req.Stock,
		CategoryID:   categoryID,
		CategoryName: req.CategoryName,
		Material:     req.Material,
		Color:        req.Color,
		Description:  req.Description,
	}

	err := r.db.QueryRowContext(
		ctx, query,
		req.Name, req.Price, req.Stock, nullableID(categoryID),
		req.Material, req.Color, req.Description,
	).Scan(&p.ID)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, fmt.Errorf("create product: %w", err)
	}

	log.Info("product created", zap.Int64("product_id", p.ID))
	return p, nil
}

func (r *repository) Update(ctx context.Context, req UpdateProductRequest, categoryID *int64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = $1, price = $2, stock = $3, category_id = $4,
		    material = $5, color = $6, description = $7
		WHERE id = $8
	`,
		req.Name, req.Price, req.Stock, nullableID(categoryID),
		req.Material, req.Color, req.Description, req.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFoundf("product %d not found", req.ID)
	}

	return nil
}

// Delete removes the product row unconditionally. Historical order lines keep
// their product_name snapshot and the FK sets product_id to NULL.
func (r *repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFoundf("product %d not found", id)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var p Product
	var categoryID sql.NullInt64

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Price,
		&p.Stock,
		&categoryID,
		&p.CategoryName,
		&p.Material,
		&p.Color,
		&p.Description,
	)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		p.CategoryID = &categoryID.Int64
	}

	return &p, nil
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
