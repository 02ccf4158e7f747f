package cart

import (
	"context"
	"time"

	"mebelshop/internal/apperr"
	"mebelshop/internal/customer"
	"mebelshop/internal/logger"
	"mebelshop/internal/order"
	"mebelshop/internal/product"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service is the order-assembly workflow. Every operation takes the cart by
// value and returns the updated copy; the caller owns the session.
type Service interface {
	SelectCustomer(ctx context.Context, c Cart, customerID int64) (Cart, error)
	AddLine(ctx context.Context, c Cart, productID int64, quantity int) (Cart, error)
	RemoveLine(c Cart, productID int64) Cart
	Clear(c Cart) Cart
	Checkout(ctx context.Context, c Cart, paymentMethod string) (Cart, Cart, error)
}

type service struct {
	products  product.Repository
	customers customer.Repository
	orders    order.Repository
	now       func() time.Time
}

func NewService(products product.Repository, customers customer.Repository, orders order.Repository) Service {
	return &service{
		products:  products,
		customers: customers,
		orders:    orders,
		now:       time.Now,
	}
}

func (s *service) SelectCustomer(ctx context.Context, c Cart, customerID int64) (Cart, error) {
	ctx = logger.WithSessionID(ctx, c.ID.String())

	cust, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return c, err
	}
	if cust == nil {
		return c, apperr.NotFoundf("customer %d not found", customerID)
	}

	c.CustomerID = cust.ID
	c.CustomerName = cust.DisplayName()
	c.State = c.nextState()

	logger.FromCtx(ctx).Info("customer selected for order",
		zap.Int64("customer_id", cust.ID),
		zap.String("customer_name", c.CustomerName),
	)

	return c, nil
}

// AddLine puts quantity units of a product into the cart. If the product is
// already a line, quantities merge; the merged quantity may never exceed the
// product's current stock.
func (s *service) AddLine(ctx context.Context, c Cart, productID int64, quantity int) (Cart, error) {
	ctx = logger.WithSessionID(ctx, c.ID.String())
	log := logger.FromCtx(ctx).With(
		zap.Int64("product_id", productID),
		zap.Int("quantity", quantity),
	)

	if quantity <= 0 {
		return c, apperr.Validationf("quantity must be positive, got %d", quantity)
	}

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return c, err
	}
	if p == nil {
		return c, apperr.NotFoundf("product %d not found", productID)
	}

	if p.Stock == 0 {
		return c, apperr.Validationf("%q is out of stock", p.Name)
	}

	merged := quantity + c.QuantityOf(productID)
	if merged > p.Stock {
		log.Warn("stock exceeded",
			zap.Int("requested", merged),
			zap.Int("stock", p.Stock),
		)
		return c, apperr.Validationf(
			"only %d of %q in stock, requested %d", p.Stock, p.Name, merged,
		)
	}

	found := false
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = merged
			c.Lines[i].Subtotal = c.Lines[i].UnitPrice.Mul(decimalFromInt(merged))
			found = true
			break
		}
	}

	if !found {
		// Snapshot the current catalog price; later price changes must not
		// affect this line.
		c.Lines = append(c.Lines, Line{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  quantity,
			Subtotal:  p.Price.Mul(decimalFromInt(quantity)),
		})
	}

	c.State = c.nextState()

	log.Info("line added",
		zap.String("product_name", p.Name),
		zap.String("cart_total", c.Total().String()),
	)

	return c, nil
}

func (s *service) RemoveLine(c Cart, productID int64) Cart {
	lines := make([]Line, 0, len(c.Lines))
	for _, line := range c.Lines {
		if line.ProductID != productID {
			lines = append(lines, line)
		}
	}
	c.Lines = lines
	c.State = c.nextState()
	return c
}

// Clear drops the lines but keeps the selected customer, matching how the
// shop floor works: a cleared basket does not deselect the buyer.
func (s *service) Clear(c Cart) Cart {
	c.Lines = nil
	c.State = StateEmpty
	return c
}

// Checkout turns the cart into a persisted order and returns the committed
// cart (carrying the order id) together with a fresh empty cart for the next
// sale. On any failure the store is left untouched and the input cart is
// returned unchanged.
func (s *service) Checkout(ctx context.Context, c Cart, paymentMethod string) (Cart, Cart, error) {
	ctx = logger.WithSessionID(ctx, c.ID.String())
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
	)

	if c.CustomerID == 0 {
		return c, c, apperr.Validationf("no customer selected")
	}
	if len(c.Lines) == 0 {
		return c, c, apperr.Validationf("cart is empty")
	}

	items := make([]order.NewOrderItem, 0, len(c.Lines))
	for _, line := range c.Lines {
		items = append(items, order.NewOrderItem{
			ProductID:    line.ProductID,
			ProductName:  line.Name,
			Quantity:     line.Quantity,
			PricePerUnit: line.UnitPrice,
			Subtotal:     line.Subtotal,
		})
	}

	orderID, err := s.orders.CreateOrderTx(ctx, order.NewOrder{
		CustomerID:    c.CustomerID,
		TotalAmount:   c.Total(),
		PaymentMethod: paymentMethod,
		PlacedAt:      s.now(),
		Items:         items,
	})
	if err != nil {
		log.Error("checkout failed", zap.Error(err))
		return c, c, err
	}

	committed := c
	committed.State = StateCommitted
	committed.OrderID = orderID

	log.Info("order committed",
		zap.Int64("order_id", orderID),
		zap.String("total", c.Total().String()),
	)

	return committed, New(), nil
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
