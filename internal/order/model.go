package order

import (
	"strings"
	"time"

	"mebelshop/internal/apperr"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusNew        OrderStatus = "NEW"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// ParseStatus maps user-facing input to a status. Any status is reachable
// from any other; there is no transition restriction.
func ParseStatus(s string) (OrderStatus, error) {
	switch OrderStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusNew:
		return StatusNew, nil
	case StatusProcessing:
		return StatusProcessing, nil
	case StatusDelivered:
		return StatusDelivered, nil
	case StatusCancelled:
		return StatusCancelled, nil
	}
	return "", apperr.Validationf("unknown order status %q", s)
}

// orderDateLayout matches the minute-precision dates shown on order rows.
const orderDateLayout = "2006-01-02 15:04"

type Order struct {
	ID            int64           `json:"id"`
	CustomerID    int64           `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	OrderDate     string          `json:"order_date"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        OrderStatus     `json:"status"`
	PaymentMethod string          `json:"payment_method"`
}

// DetailRow is one line of an order as shown in the detail view. The product
// name is the snapshot taken at checkout, so it survives product deletion.
type DetailRow struct {
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// NewOrder is the input of CreateOrderTx: a fully priced cart ready to be
// persisted. Order items are immutable once written.
type NewOrder struct {
	CustomerID    int64
	TotalAmount   decimal.Decimal
	PaymentMethod string
	PlacedAt      time.Time
	Items         []NewOrderItem
}

type NewOrderItem struct {
	ProductID    int64
	ProductName  string
	Quantity     int
	PricePerUnit decimal.Decimal
	Subtotal     decimal.Decimal
}
