package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// State tracks where a cart is in the order-assembly workflow.
type State string

const (
	StateEmpty     State = "EMPTY"
	StateBuilding  State = "BUILDING"
	StateReady     State = "READY"
	StateCommitted State = "COMMITTED"
)

// Line is one product in the cart. UnitPrice is snapshotted when the line is
// first added and never follows later catalog price changes.
type Line struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Cart is the transient order being assembled. It is a plain value passed
// into and returned from the workflow operations; nothing about it is
// persisted until checkout.
type Cart struct {
	ID           uuid.UUID `json:"id"`
	CustomerID   int64     `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	Lines        []Line    `json:"lines"`
	State        State     `json:"state"`

	// OrderID is set on the committed copy returned by Checkout.
	OrderID int64 `json:"order_id,omitempty"`
}

// New returns an empty cart with a fresh session id.
func New() Cart {
	return Cart{ID: uuid.New(), State: StateEmpty}
}

// Total is the sum of the line subtotals.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Subtotal)
	}
	return total
}

// QuantityOf reports how many units of a product are already in the cart.
func (c Cart) QuantityOf(productID int64) int {
	for _, line := range c.Lines {
		if line.ProductID == productID {
			return line.Quantity
		}
	}
	return 0
}

func (c Cart) nextState() State {
	switch {
	case len(c.Lines) == 0:
		return StateEmpty
	case c.CustomerID != 0:
		return StateReady
	default:
		return StateBuilding
	}
}
