package dto

// CheckoutRequest is the storefront checkout payload. Amount is in minor
// currency units (paise, cents); callers never send major units.
type CheckoutRequest struct {
	AmountMinor int64  `json:"amount"`
	Currency    string `json:"currency"`
	Receipt     string `json:"receipt"`
	Email       string `json:"customer_email"`
	Phone       string `json:"customer_phone"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
}

type Prefill struct {
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

type Theme struct {
	Color string `json:"color"`
}

// CheckoutConfig is everything the storefront needs to open the gateway's
// payment widget for the created order.
type CheckoutConfig struct {
	Key         string  `json:"key"`
	OrderID     string  `json:"order_id"`
	AmountMinor int64   `json:"amount"`
	Currency    string  `json:"currency"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Prefill     Prefill `json:"prefill"`
	Theme       Theme   `json:"theme"`
}

type CheckoutResponse struct {
	Success bool            `json:"success"`
	Config  *CheckoutConfig `json:"checkout_config"`
}

type ImageResponse struct {
	Success bool   `json:"success"`
	DataURL string `json:"dataUrl,omitempty"`
	Error   string `json:"error,omitempty"`
}

type PutImageRequest struct {
	Path    string `json:"path"`
	DataURL string `json:"dataUrl"`
}

// CreateProductRequest takes the admin-facing price in major units as a
// decimal string ("19.99"); it is converted to minor units at the boundary.
type CreateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Currency    string `json:"currency"`
	CategoryID  int64  `json:"category_id"`
}

type AttachImageRequest struct {
	URL      string `json:"url"`
	Position int32  `json:"position"`
}

type RecordOrderItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int32 `json:"quantity"`
	UnitPrice int64 `json:"unit_price"` // minor units
}

// RecordOrderRequest persists an order after the gateway confirms payment.
type RecordOrderRequest struct {
	CustomerID     int64             `json:"customer_id"`
	GatewayOrderID string            `json:"gateway_order_id"`
	Receipt        string            `json:"receipt"`
	AmountMinor    int64             `json:"amount"`
	Currency       string            `json:"currency"`
	Status         string            `json:"status"`
	Items          []RecordOrderItem `json:"items"`
}

type RecordOrderResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"order_id"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
