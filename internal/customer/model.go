package customer

type Customer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// DisplayName is how the presentation layer shows a customer on an order row.
func (c Customer) DisplayName() string {
	return c.FirstName + " " + c.LastName
}

type NewCustomerRequest struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
}

type UpdateCustomerRequest struct {
	ID        int64
	FirstName string
	LastName  string
	Phone     string
	Email     string
}
