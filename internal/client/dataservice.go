package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront-backend/internal/apperr"
	"storefront-backend/internal/config"
)

// Filter is an exact-match column filter for row operations.
type Filter map[string]string

// DataClient is the only path to the hosted relational store. Rows are
// accessed per named collection; server-side routines via RPC; raw SQL via
// the exec_sql entry point (administrative use only).
type DataClient interface {
	Select(ctx context.Context, table string, filters Filter, dest any) error
	Insert(ctx context.Context, table string, row any, dest any) error
	Update(ctx context.Context, table string, filters Filter, patch any, dest any) error
	RPC(ctx context.Context, name string, params any, dest any) error
	ExecSQL(ctx context.Context, stmt string) error
}

type dataClientImpl struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewDataClient(cfg *config.DataService) DataClient {
	return &dataClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  cfg.Key,
	}
}

func (c *dataClientImpl) Select(ctx context.Context, table string, filters Filter, dest any) error {
	endpoint := c.tableURL(table, filters)
	return c.do(ctx, http.MethodGet, endpoint, nil, dest)
}

func (c *dataClientImpl) Insert(ctx context.Context, table string, row any, dest any) error {
	endpoint := c.tableURL(table, nil)
	return c.do(ctx, http.MethodPost, endpoint, row, dest)
}

func (c *dataClientImpl) Update(ctx context.Context, table string, filters Filter, patch any, dest any) error {
	endpoint := c.tableURL(table, filters)
	return c.do(ctx, http.MethodPatch, endpoint, patch, dest)
}

func (c *dataClientImpl) RPC(ctx context.Context, name string, params any, dest any) error {
	endpoint := fmt.Sprintf("%s/rest/v1/rpc/%s", c.baseURL, name)
	return c.do(ctx, http.MethodPost, endpoint, params, dest)
}

// ExecSQL submits one raw SQL statement through the exec_sql routine.
func (c *dataClientImpl) ExecSQL(ctx context.Context, stmt string) error {
	return c.RPC(ctx, "exec_sql", map[string]string{"query": stmt}, nil)
}

func (c *dataClientImpl) tableURL(table string, filters Filter) string {
	q := url.Values{}
	for col, val := range filters {
		q.Set(col, "eq."+val)
	}
	endpoint := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}
	return endpoint
}

func (c *dataClientImpl) do(ctx context.Context, method, endpoint string, payload any, dest any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request payload: %w", err)
		}
		body = bytes.NewBuffer(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if method == http.MethodPost || method == http.MethodPatch {
		// always get the affected rows back so callers can decode them
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("data service request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.asError(resp)
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode data service response: %w", err)
	}
	return nil
}

type dataServiceError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (c *dataClientImpl) asError(resp *http.Response) error {
	b, _ := io.ReadAll(resp.Body)

	var dsErr dataServiceError
	_ = json.Unmarshal(b, &dsErr)

	cause := fmt.Errorf("data service error %d: %s", resp.StatusCode, string(b))

	// 23505 is the unique-violation SQLSTATE the store reports on
	// conflicting writes
	if resp.StatusCode == http.StatusConflict || dsErr.Code == "23505" {
		return apperr.E(apperr.KindConstraintViolation, "conflicting write rejected by the data store", cause)
	}
	if resp.StatusCode == http.StatusNotFound {
		return apperr.E(apperr.KindNotFound, "resource not found", cause)
	}
	return apperr.E(apperr.KindInternal, "data service request failed", cause)
}
