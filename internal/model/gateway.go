package model

// PaymentOrder is the gateway-side order record. Created once per receipt;
// status transitions after creation are driven by the gateway, not by us.
type PaymentOrder struct {
	ID          string `json:"id"`
	Entity      string `json:"entity"`
	AmountMinor int64  `json:"amount"`
	Currency    string `json:"currency"`
	Receipt     string `json:"receipt"`
	Status      string `json:"status"` // created, attempted, paid, failed
}

const (
	PaymentOrderCreated   = "created"
	PaymentOrderAttempted = "attempted"
	PaymentOrderPaid      = "paid"
	PaymentOrderFailed    = "failed"
)
