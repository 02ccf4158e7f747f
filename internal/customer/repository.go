package customer

import (
	"context"
	"database/sql"
	"fmt"

	"mebelshop/internal/apperr"
	"mebelshop/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, search string) ([]Customer, error)
	GetByID(ctx context.Context, id int64) (*Customer, error)
	Create(ctx context.Context, req NewCustomerRequest) (*Customer, error)
	Update(ctx context.Context, req UpdateCustomerRequest) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Empty emails are stored as NULL so the unique index only applies to real
// addresses.
const customerColumns = `id, first_name, last_name, phone, COALESCE(email, '')`

func (r *repository) List(ctx context.Context, search string) ([]Customer, error) {
	query := `
	SELECT ` + customerColumns + `
	FROM customers`

	args := []any{}
	if search != "" {
		query += `
	WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR phone ILIKE $1 OR email ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += `
	ORDER BY last_name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []Customer

	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.Email); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}

	return customers, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Customer, error) {
	var c Customer
	err := r.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id,
	).Scan(&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.Email)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get customer %d: %w", id, err)
	}

	return &c, nil
}

func (r *repository) Create(ctx context.Context, req NewCustomerRequest) (*Customer, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateCustomer"),
	)

	query := `
	INSERT INTO customers (first_name, last_name, phone, email)
	VALUES ($1, $2, $3, NULLIF($4, ''))
	RETURNING id
	`

	c := &Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
	}

	err := r.db.QueryRowContext(ctx, query,
		req.FirstName, req.LastName, req.Phone, req.Email,
	).Scan(&c.ID)
	if err != nil {
		if apperr.IsUniqueViolation(err) {
			log.Warn("duplicate email", zap.String("email", req.Email))
			return nil, apperr.Conflictf("email %q already registered", req.Email)
		}
		log.Error("failed to create customer", zap.Error(err))
		return nil, fmt.Errorf("create customer: %w", err)
	}

	log.Info("customer created", zap.Int64("customer_id", c.ID))
	return c, nil
}

func (r *repository) Update(ctx context.Context, req UpdateCustomerRequest) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE customers
		SET first_name = $1, last_name = $2, phone = $3, email = NULLIF($4, '')
		WHERE id = $5
	`, req.FirstName, req.LastName, req.Phone, req.Email, req.ID)
	if err != nil {
		if apperr.IsUniqueViolation(err) {
			return apperr.Conflictf("email %q already registered", req.Email)
		}
		return fmt.Errorf("update customer: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFoundf("customer %d not found", req.ID)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "DeleteCustomer"),
		zap.Int64("customer_id", id),
	)

	var orderCount int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE customer_id = $1`, id,
	).Scan(&orderCount)
	if err != nil {
		return fmt.Errorf("count customer orders: %w", err)
	}

	if orderCount > 0 {
		log.Warn("delete blocked by orders", zap.Int64("order_count", orderCount))
		return apperr.Conflictf("customer has %d orders", orderCount)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFoundf("customer %d not found", id)
	}

	log.Info("customer deleted")
	return nil
}
