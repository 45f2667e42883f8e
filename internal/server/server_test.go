package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"storefront-backend/internal/apperr"
	"storefront-backend/internal/dto"
	"storefront-backend/internal/imagestore"
	"storefront-backend/internal/model"
	"storefront-backend/internal/service"
)

type stubCheckout struct{}

func (s *stubCheckout) CreateOrder(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutConfig, error) {
	if req.AmountMinor <= 0 || req.Currency == "" || req.Receipt == "" {
		return nil, apperr.E(apperr.KindInvalidRequest, "amount, currency and receipt are required", nil)
	}
	return &dto.CheckoutConfig{
		Key:         "rzp_test_key",
		OrderID:     "order_stub",
		AmountMinor: req.AmountMinor,
		Currency:    req.Currency,
		Name:        "Test Store",
		Prefill:     dto.Prefill{Email: req.Email, Contact: req.Phone},
		Theme:       dto.Theme{Color: "#528FF0"},
	}, nil
}

type stubCatalog struct{}

func (s *stubCatalog) ListProducts(ctx context.Context) ([]model.Product, error) { return nil, nil }
func (s *stubCatalog) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	return nil, apperr.E(apperr.KindNotFound, "product not found", nil)
}
func (s *stubCatalog) CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*model.Product, error) {
	return nil, apperr.E(apperr.KindInvalidRequest, "not under test", nil)
}
func (s *stubCatalog) AttachImage(ctx context.Context, productID int64, req *dto.AttachImageRequest) error {
	return nil
}
func (s *stubCatalog) ListCategories(ctx context.Context) ([]model.Category, error) {
	return []model.Category{{ID: 1, Name: "Mugs", Slug: "mugs"}}, nil
}
func (s *stubCatalog) RecordOrder(ctx context.Context, req *dto.RecordOrderRequest) (string, error) {
	if req.Receipt == "" || req.AmountMinor <= 0 {
		return "", apperr.E(apperr.KindInvalidRequest, "amount and receipt are required", nil)
	}
	return "11111111-2222-3333-4444-555555555555", nil
}
func (s *stubCatalog) RecentOrders(ctx context.Context, limit int) ([]model.RecentOrder, error) {
	return nil, nil
}
func (s *stubCatalog) TopProducts(ctx context.Context, limit int) ([]model.TopProduct, error) {
	return nil, nil
}

func newTestServer(t *testing.T) (*Server, imagestore.Store) {
	t.Helper()
	store := imagestore.NewMemory()
	srv := NewServer(&stubCheckout{}, service.NewImageService(store), &stubCatalog{}, zerolog.Nop())
	return srv, store
}

func doRequest(srv *Server, method, target string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	srv.echo.ServeHTTP(w, req)
	return w
}

func TestCheckoutEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("valid request returns checkout config", func(t *testing.T) {
		w := doRequest(srv, http.MethodPost, "/api/checkout/order",
			`{"amount": 49900, "currency": "INR", "receipt": "rcpt-1", "customer_email": "jo@example.com"}`)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
		}

		var resp dto.CheckoutResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !resp.Success {
			t.Error("success = false")
		}
		if resp.Config.AmountMinor != 49900 || resp.Config.Currency != "INR" {
			t.Errorf("config echoes %d %q, want input", resp.Config.AmountMinor, resp.Config.Currency)
		}
	})

	t.Run("invalid request returns 400 with error body", func(t *testing.T) {
		w := doRequest(srv, http.MethodPost, "/api/checkout/order", `{"currency": "INR"}`)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}

		var resp dto.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Success {
			t.Error("success = true, want false")
		}
		if resp.Error == "" {
			t.Error("error message is empty")
		}
	})

	t.Run("malformed JSON returns 400", func(t *testing.T) {
		w := doRequest(srv, http.MethodPost, "/api/checkout/order", `{not json`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}

func TestImageEndpoint(t *testing.T) {
	srv, store := newTestServer(t)
	if err := store.Put(context.Background(), "foo.png", "data:image/png;base64,AAAA"); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	t.Run("stored key resolves with and without images prefix", func(t *testing.T) {
		for _, path := range []string{"foo.png", "images/foo.png"} {
			w := doRequest(srv, http.MethodGet, "/api/images?path="+path, "")
			if w.Code != http.StatusOK {
				t.Fatalf("path %q: status = %d, want 200", path, w.Code)
			}
			var resp dto.ImageResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !resp.Success || resp.DataURL != "data:image/png;base64,AAAA" {
				t.Errorf("path %q: resp = %+v", path, resp)
			}
		}
	})

	t.Run("unknown path returns 404 with success false", func(t *testing.T) {
		w := doRequest(srv, http.MethodGet, "/api/images?path=never-stored.png", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
		var resp dto.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Success {
			t.Error("success = true, want false")
		}
	})

	t.Run("missing path parameter returns 400", func(t *testing.T) {
		w := doRequest(srv, http.MethodGet, "/api/images", "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("OPTIONS always returns 200 with CORS headers and empty body", func(t *testing.T) {
		w := doRequest(srv, http.MethodOptions, "/api/images", "")
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
		if w.Body.Len() != 0 {
			t.Errorf("body = %q, want empty", w.Body.String())
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
		}
		if got := w.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "GET") {
			t.Errorf("Access-Control-Allow-Methods = %q", got)
		}
	})

	t.Run("unsupported method returns 405", func(t *testing.T) {
		w := doRequest(srv, http.MethodDelete, "/api/images?path=foo.png", "")
		if w.Code != http.StatusMethodNotAllowed {
			t.Fatalf("status = %d, want 405", w.Code)
		}
		var resp dto.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Success {
			t.Error("success = true, want false")
		}
	})

	t.Run("upload then fetch round trip", func(t *testing.T) {
		w := doRequest(srv, http.MethodPut, "/api/images",
			`{"path": "bar.png", "dataUrl": "data:image/png;base64,BBBB"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("put status = %d, body %s", w.Code, w.Body.String())
		}

		w = doRequest(srv, http.MethodGet, "/api/images?path=images/bar.png", "")
		if w.Code != http.StatusOK {
			t.Fatalf("get status = %d", w.Code)
		}
	})
}

func TestCategoriesEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doRequest(srv, http.MethodGet, "/api/categories", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var categories []model.Category
	if err := json.NewDecoder(w.Body).Decode(&categories); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(categories) != 1 || categories[0].Slug != "mugs" {
		t.Errorf("categories = %+v", categories)
	}
}

func TestRecordOrderEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("valid order returns 201 with order id", func(t *testing.T) {
		w := doRequest(srv, http.MethodPost, "/api/admin/orders",
			`{"receipt": "rcpt-1", "amount": 49900, "currency": "INR", "status": "PAID"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
		}

		var resp dto.RecordOrderResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !resp.Success || resp.OrderID == "" {
			t.Errorf("resp = %+v", resp)
		}
	})

	t.Run("invalid order returns 400", func(t *testing.T) {
		w := doRequest(srv, http.MethodPost, "/api/admin/orders", `{"currency": "INR"}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}

func TestUnknownRouteBody(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doRequest(srv, http.MethodGet, "/api/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var resp dto.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Success || resp.Error == "" {
		t.Errorf("resp = %+v, want success false with message", resp)
	}
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doRequest(srv, http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
