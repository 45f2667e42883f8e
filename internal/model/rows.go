package model

import "time"

// Rows owned by the remote data store. Field tags follow the REST row shape
// the data service returns; amounts are integer minor currency units.

type Customer struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"` // unique
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"` // minor units
	Currency    string `json:"currency"`
	CategoryID  int64  `json:"category_id"`
	Active      bool   `json:"active"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ProductImage struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	URL       string `json:"url"`
	Position  int32  `json:"position"`
}

type Order struct {
	ID          string    `json:"id"` // uuid
	CustomerID  int64     `json:"customer_id"`
	GatewayID   string    `json:"gateway_order_id"`
	Receipt     string    `json:"receipt"`
	AmountMinor int64     `json:"amount"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"` // CREATED, PAID, FAILED
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type OrderItem struct {
	ID        int64  `json:"id"`
	OrderID   string `json:"order_id"`
	ProductID int64  `json:"product_id"`
	Quantity  int32  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"` // minor units
	Currency  string `json:"currency"`
}

// RecentOrder is a row of the read-only recent-orders analytics view.
type RecentOrder struct {
	OrderID       string    `json:"order_id"`
	CustomerEmail string    `json:"customer_email"`
	AmountMinor   int64     `json:"amount"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// TopProduct is a row of the top-products analytics view.
type TopProduct struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Sold      int64  `json:"sold"`
}
