package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"storefront-backend/internal/apperr"
	"storefront-backend/internal/config"
	"storefront-backend/internal/model"
)

type GatewayClient interface {
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*model.PaymentOrder, error)
	// KeyID is the public identifier the storefront widget needs.
	KeyID() string
}

type CreateOrderRequest struct {
	AmountMinor int64
	Currency    string
	Receipt     string
	Notes       map[string]string
}

type razorpayClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	keyID      string
	keySecret  string
}

type razorpayOrderPayload struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

func NewRazorpayClient(cfg *config.Razorpay) GatewayClient {
	return &razorpayClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL: cfg.BaseApiURL,
		keyID:      cfg.KeyID,
		keySecret:  cfg.KeySecret,
	}
}

func (c *razorpayClientImpl) KeyID() string {
	return c.keyID
}

// CreateOrder creates a gateway order for the given amount and receipt. The
// receipt is the idempotency key; duplicate-receipt enforcement is the
// gateway's behavior, not re-checked here.
func (c *razorpayClientImpl) CreateOrder(ctx context.Context, orderReq *CreateOrderRequest) (*model.PaymentOrder, error) {
	body, err := json.Marshal(&razorpayOrderPayload{
		Amount:   orderReq.AmountMinor,
		Currency: orderReq.Currency,
		Receipt:  orderReq.Receipt,
		Notes:    orderReq.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/v1/orders",
		bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}

	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.E(apperr.KindGatewayError, "payment gateway unavailable",
			fmt.Errorf("gateway create order: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		// raw gateway body stays in the wrapped cause, never in the public message
		return nil, apperr.E(apperr.KindGatewayError, "payment gateway rejected the order",
			fmt.Errorf("gateway error %d: %s", resp.StatusCode, string(b)))
	}

	var order model.PaymentOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, apperr.E(apperr.KindGatewayError, "payment gateway returned an invalid response",
			fmt.Errorf("decode gateway response: %w", err))
	}

	return &order, nil
}
