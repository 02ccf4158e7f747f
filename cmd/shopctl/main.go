package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"mebelshop/internal/cart"
	"mebelshop/internal/category"
	"mebelshop/internal/config"
	"mebelshop/internal/customer"
	"mebelshop/internal/db"
	"mebelshop/internal/logger"
	"mebelshop/internal/order"
	"mebelshop/internal/product"
	"mebelshop/internal/seed"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: shopctl <command> [arguments]

commands:
  products [-category NAME] [-search TEXT]   list the catalog
  categories                                  list categories with product counts
  customers [-search TEXT]                    list customers
  orders [-status STATUS]                     list orders
  order <id>                                  show one order with its items
  checkout -customer ID -pay METHOD ID:QTY... place an order for the given items
  seed                                        ensure the starter dataset`)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	ctx := context.Background()
	if err := seed.EnsureSeedData(ctx, database); err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	categoryRepo := category.NewRepository(database)
	categorySvc := category.NewService(categoryRepo)

	customerRepo := customer.NewRepository(database)
	customerSvc := customer.NewService(customerRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)

	cartSvc := cart.NewService(productRepo, customerRepo, orderRepo)

	args := os.Args[2:]
	var err error
	switch os.Args[1] {
	case "products":
		err = listProducts(ctx, productSvc, args)
	case "categories":
		err = listCategories(ctx, categorySvc)
	case "customers":
		err = listCustomers(ctx, customerSvc, args)
	case "orders":
		err = listOrders(ctx, orderSvc, args)
	case "order":
		err = showOrder(ctx, orderSvc, args)
	case "checkout":
		err = runCheckout(ctx, cartSvc, args)
	case "seed":
		// already ran above
	default:
		usage()
	}
	if err != nil {
		log.Fatal(err)
	}
}

func listProducts(ctx context.Context, svc product.Service, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	categoryName := fs.String("category", "", "filter by category name")
	search := fs.String("search", "", "substring search over name, material, color, description")
	fs.Parse(args)

	items, err := svc.List(ctx, product.Filter{CategoryName: *categoryName, Search: *search})
	if err != nil {
		return err
	}
	for _, p := range items {
		fmt.Printf("%d\t%s\t%s\t%d шт.\t%s\t%s\t%s\n",
			p.ID, p.Name, p.Price.StringFixed(2), p.Stock, p.CategoryName, p.Material, p.Color)
	}
	return nil
}

func listCategories(ctx context.Context, svc category.Service) error {
	items, err := svc.List(ctx)
	if err != nil {
		return err
	}
	for _, c := range items {
		fmt.Printf("%d\t%s\t%d товаров\n", c.ID, c.Name, c.ProductCount)
	}
	return nil
}

func listCustomers(ctx context.Context, svc customer.Service, args []string) error {
	fs := flag.NewFlagSet("customers", flag.ExitOnError)
	search := fs.String("search", "", "substring search over name, phone, email")
	fs.Parse(args)

	items, err := svc.List(ctx, *search)
	if err != nil {
		return err
	}
	for _, c := range items {
		fmt.Printf("%d\t%s\t%s\t%s\n", c.ID, c.DisplayName(), c.Phone, c.Email)
	}
	return nil
}

func listOrders(ctx context.Context, svc order.Service, args []string) error {
	fs := flag.NewFlagSet("orders", flag.ExitOnError)
	statusFlag := fs.String("status", "", "filter by status (NEW, PROCESSING, DELIVERED, CANCELLED)")
	fs.Parse(args)

	var status *order.OrderStatus
	if *statusFlag != "" {
		parsed, err := order.ParseStatus(*statusFlag)
		if err != nil {
			return err
		}
		status = &parsed
	}

	items, err := svc.List(ctx, status)
	if err != nil {
		return err
	}
	for _, o := range items {
		fmt.Printf("%d\t%s\t%s\t%s\t%s\t%s\n",
			o.ID, o.CustomerName, o.OrderDate, o.TotalAmount.StringFixed(2), o.Status, o.PaymentMethod)
	}
	return nil
}

func showOrder(ctx context.Context, svc order.Service, args []string) error {
	if len(args) != 1 {
		usage()
	}
	orderID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid order id %q", args[0])
	}

	rows, err := svc.Detail(ctx, orderID)
	if err != nil {
		return err
	}
	for _, r := range rows {
		fmt.Printf("%s\t%d x %s\t= %s\n",
			r.ProductName, r.Quantity, r.PricePerUnit.StringFixed(2), r.Subtotal.StringFixed(2))
	}
	return nil
}

// runCheckout drives the whole cart workflow in one process: select the
// customer, add each ID:QTY item, then commit.
func runCheckout(ctx context.Context, svc cart.Service, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	customerID := fs.Int64("customer", 0, "customer id")
	payment := fs.String("pay", "Наличные", "payment method")
	fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("checkout needs at least one ID:QTY item")
	}

	c := cart.New()
	ctx = logger.WithSessionID(ctx, c.ID.String())

	c, err := svc.SelectCustomer(ctx, c, *customerID)
	if err != nil {
		return err
	}

	for _, arg := range fs.Args() {
		productID, quantity, err := parseItem(arg)
		if err != nil {
			return err
		}
		c, err = svc.AddLine(ctx, c, productID, quantity)
		if err != nil {
			return err
		}
	}

	committed, _, err := svc.Checkout(ctx, c, *payment)
	if err != nil {
		return err
	}

	fmt.Printf("заказ №%d оформлен, сумма %s\n", committed.OrderID, committed.Total().StringFixed(2))
	return nil
}

func parseItem(arg string) (int64, int, error) {
	colon := strings.IndexByte(arg, ':')
	if colon < 0 {
		return 0, 0, fmt.Errorf("invalid item %q, expected ID:QTY", arg)
	}
	productID, err := strconv.ParseInt(arg[:colon], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid product id in %q", arg)
	}
	quantity, err := strconv.Atoi(arg[colon+1:])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid quantity in %q", arg)
	}
	return productID, quantity, nil
}
