package order

import (
	"context"
	"database/sql"
	"fmt"

	"mebelshop/internal/apperr"
	"mebelshop/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, status *OrderStatus) ([]Order, error)
	Detail(ctx context.Context, orderID int64) ([]DetailRow, error)
	SetStatus(ctx context.Context, orderID int64, status OrderStatus) error
	CreateOrderTx(ctx context.Context, order NewOrder) (int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, status *OrderStatus) ([]Order, error) {
	query := `
	SELECT
		o.id,
		o.customer_id,
		c.first_name || ' ' || c.last_name,
		o.order_date,
		o.total_amount,
		o.status,
		o.payment_method
	FROM orders o
	JOIN customers c ON o.customer_id = c.id`

	args := []any{}
	if status != nil {
		query += `
	WHERE o.status = $1`
		args = append(args, *status)
	}

	// Newest orders first.
	query += `
	ORDER BY o.id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []Order

	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID,
			&o.CustomerID,
			&o.CustomerName,
			&o.OrderDate,
			&o.TotalAmount,
			&o.Status,
			&o.PaymentMethod,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	return orders, nil
}

func (r *repository) Detail(ctx context.Context, orderID int64) ([]DetailRow, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)`, orderID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check order: %w", err)
	}
	if !exists {
		return nil, apperr.NotFoundf("order %d not found", orderID)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT product_name, quantity, price_per_unit, subtotal
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("order detail: %w", err)
	}
	defer rows.Close()

	var items []DetailRow

	for rows.Next() {
		var row DetailRow
		if err := rows.Scan(&row.ProductName, &row.Quantity, &row.PricePerUnit, &row.Subtotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, row)
	}

	return items, rows.Err()
}

func (r *repository) SetStatus(ctx context.Context, orderID int64, status OrderStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`, status, orderID,
	)
	if err != nil {
		return fmt.Errorf("set order status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFoundf("order %d not found", orderID)
	}

	return nil
}

// CreateOrderTx persists an order, its items and the stock decrements as one
// transaction. A decrement that would drive stock negative aborts the whole
// thing, so either every row lands or none does.
func (r *repository) CreateOrderTx(ctx context.Context, order NewOrder) (int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.Int64("customer_id", order.CustomerID),
		zap.Int("items", len(order.Items)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin checkout tx: %w", err)
	}
	defer tx.Rollback()

	// 1. Insert order
	var orderID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (customer_id, order_date, total_amount, status, payment_method)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`,
		order.CustomerID,
		order.PlacedAt.Format(orderDateLayout),
		order.TotalAmount,
		StatusNew,
		order.PaymentMethod,
	).Scan(&orderID)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return 0, fmt.Errorf("insert order: %w", err)
	}

	// 2. Insert order items + deduct stock
	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, quantity, price_per_unit, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)
		`,
			orderID,
			item.ProductID,
			item.ProductName,
			item.Quantity,
			item.PricePerUnit,
			item.Subtotal,
		)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Int64("product_id", item.ProductID),
				zap.Error(err),
			)
			return 0, fmt.Errorf("insert order item: %w", err)
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE products
			SET stock = stock - $1
			WHERE id = $2 AND stock >= $1
		`, item.Quantity, item.ProductID)
		if err != nil {
			return 0, fmt.Errorf("deduct stock: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		if affected == 0 {
			log.Warn("insufficient stock at commit time",
				zap.Int64("product_id", item.ProductID),
				zap.Int("quantity", item.Quantity),
			)
			return 0, apperr.Validationf(
				"insufficient stock for %q", item.ProductName,
			)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit checkout tx: %w", err)
	}

	log.Info("order created", zap.Int64("order_id", orderID))
	return orderID, nil
}
