package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-backend/internal/apperr"
	"storefront-backend/internal/config"
)

func newTestDataClient(t *testing.T, h http.HandlerFunc) DataClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewDataClient(&config.DataService{URL: srv.URL, Key: "service-key"})
}

func TestDataClient_Select(t *testing.T) {
	var gotPath, gotQuery, gotAPIKey, gotAuth string

	c := newTestDataClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAPIKey = r.Header.Get("apikey")
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]map[string]any{{"id": 1, "name": "Mug"}})
	})

	var rows []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	err := c.Select(context.Background(), "products", Filter{"id": "1"}, &rows)
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	if gotPath != "/rest/v1/products" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "id=eq.1" {
		t.Errorf("query = %q, want id=eq.1", gotQuery)
	}
	if gotAPIKey != "service-key" || gotAuth != "Bearer service-key" {
		t.Errorf("auth headers = %q / %q", gotAPIKey, gotAuth)
	}
	if len(rows) != 1 || rows[0].Name != "Mug" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestDataClient_InsertSetsPreferHeader(t *testing.T) {
	var gotPrefer string
	c := newTestDataClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPrefer = r.Header.Get("Prefer")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`[]`))
	})

	if err := c.Insert(context.Background(), "products", []map[string]string{{"name": "Mug"}}, nil); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if gotPrefer != "return=representation" {
		t.Errorf("Prefer = %q", gotPrefer)
	}
}

func TestDataClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind apperr.Kind
	}{
		{"conflict status", http.StatusConflict, `{"code":"23505","message":"duplicate key"}`, apperr.KindConstraintViolation},
		{"unique violation sqlstate", http.StatusBadRequest, `{"code":"23505","message":"duplicate key"}`, apperr.KindConstraintViolation},
		{"missing rpc", http.StatusNotFound, `{"message":"function not found"}`, apperr.KindNotFound},
		{"server error", http.StatusInternalServerError, `boom`, apperr.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestDataClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			err := c.RPC(context.Background(), "upsert_customer", map[string]string{}, nil)
			if !apperr.Is(err, tt.wantKind) {
				t.Errorf("err = %v, want kind %v", err, tt.wantKind)
			}
		})
	}
}

func TestDataClient_ExecSQL(t *testing.T) {
	var gotPath string
	var gotBody map[string]string

	c := newTestDataClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	})

	if err := c.ExecSQL(context.Background(), "CREATE TABLE t (id int)"); err != nil {
		t.Fatalf("exec: %v", err)
	}
	if gotPath != "/rest/v1/rpc/exec_sql" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody["query"] != "CREATE TABLE t (id int)" {
		t.Errorf("query = %q", gotBody["query"])
	}
}
