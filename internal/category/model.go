package category

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoryCount pairs a category with the number of products referencing it.
// The count is computed on read, never stored.
type CategoryCount struct {
	Category
	ProductCount int64 `json:"product_count"`
}
