package product

import "github.com/shopspring/decimal"

type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	CategoryID   *int64          `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name,omitempty"`
	Material     string          `json:"material"`
	Color        string          `json:"color"`
	Description  string          `json:"description"`
}

// Filter narrows List results. Search is a case-insensitive substring match
// over name, material, color and description; CategoryName matches the joined
// category name exactly.
type Filter struct {
	CategoryName string
	Search       string
}

type NewProductRequest struct {
	Name         string
	Price        decimal.Decimal
	Stock        int
	CategoryName string
	Material     string
	Color        string
	Description  string
}

type UpdateProductRequest struct {
	ID           int64
	Name         string
	Price        decimal.Decimal
	Stock        int
	CategoryName string
	Material     string
	Color        string
	Description  string
}
