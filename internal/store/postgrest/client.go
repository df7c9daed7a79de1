// Package postgrest implements the store contract over a PostgREST
// endpoint, the REST-table dialect hosted Supabase projects expose.
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/store"
)

// defaultTimeout bounds one HTTP request when no timeout is configured.
const defaultTimeout = 30 * time.Second

// Config holds connection settings for a PostgREST endpoint.
type Config struct {
	// BaseURL is the REST root, e.g. https://project.supabase.co/rest/v1.
	BaseURL string

	// ServiceKey is the service-role key sent as both apikey and bearer
	// token.
	ServiceKey string

	// Timeout bounds one request. Zero means defaultTimeout.
	Timeout time.Duration
}

// Client implements store.Store over HTTP.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a client for cfg.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		serviceKey: cfg.ServiceKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// From implements store.Store.
func (c *Client) From(table string) store.Query {
	return &restQuery{client: c, table: table, columns: "*"}
}

// Ping checks the endpoint root with the configured credentials.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to build ping request: %w", err)
	}
	c.authorize(req)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return &RequestError{Status: resp.StatusCode, Message: "endpoint unavailable"}
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Accept", "application/json")
}

// RequestError is a failed PostgREST request. Status carries the HTTP
// status code; Code carries the Postgres error code when the backend
// reported one.
type RequestError struct {
	Status  int
	Code    string
	Message string
	Details string
	Hint    string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("postgrest: %s (code %s, http %d)", e.Message, e.Code, e.Status)
	}
	return fmt.Sprintf("postgrest: %s (http %d)", e.Message, e.Status)
}

// restQuery accumulates one table-scoped request.
type restQuery struct {
	client  *Client
	table   string
	columns string
	filters []restFilter
	orders  []string
	limit   *int
}

// restFilter is one filter query parameter.
type restFilter struct {
	column string
	value  string
}

// Select implements store.Query.
func (q *restQuery) Select(columns string) store.Query {
	q.columns = columns
	return q
}

// Eq implements store.Query.
func (q *restQuery) Eq(column string, value interface{}) store.Query {
	q.filters = append(q.filters, restFilter{column: column, value: "eq." + fmt.Sprint(value)})
	return q
}

// Ilike implements store.Query. The pattern already carries the
// backend's "*" wildcards.
func (q *restQuery) Ilike(column, pattern string) store.Query {
	q.filters = append(q.filters, restFilter{column: column, value: "ilike." + pattern})
	return q
}

// Order implements store.Query.
func (q *restQuery) Order(column string, ascending bool) store.Query {
	direction := ".desc"
	if ascending {
		direction = ".asc"
	}
	q.orders = append(q.orders, column+direction)
	return q
}

// Limit implements store.Query.
func (q *restQuery) Limit(n int) store.Query {
	q.limit = &n
	return q
}

// Fetch implements store.Query.
func (q *restQuery) Fetch(ctx context.Context) ([]store.Record, error) {
	params := q.filterParams()
	params.Set("select", q.columns)
	if len(q.orders) > 0 {
		params.Set("order", strings.Join(q.orders, ","))
	}
	if q.limit != nil {
		params.Set("limit", strconv.Itoa(*q.limit))
	}
	var rows []store.Record
	if err := q.do(ctx, http.MethodGet, params, nil, "", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Insert implements store.Query.
func (q *restQuery) Insert(ctx context.Context, payload store.Record, returning bool) ([]store.Record, error) {
	return q.write(ctx, http.MethodPost, url.Values{}, payload, preferReturn(returning), returning)
}

// Upsert implements store.Query.
func (q *restQuery) Upsert(ctx context.Context, payload store.Record, conflictKey string, ignoreDuplicates bool) ([]store.Record, error) {
	params := url.Values{}
	params.Set("on_conflict", conflictKey)
	resolution := "merge-duplicates"
	if ignoreDuplicates {
		resolution = "ignore-duplicates"
	}
	prefer := "resolution=" + resolution + "," + preferReturn(true)
	return q.write(ctx, http.MethodPost, params, payload, prefer, true)
}

// Update implements store.Query. Accumulated filters scope the update.
func (q *restQuery) Update(ctx context.Context, payload store.Record, returning bool) ([]store.Record, error) {
	return q.write(ctx, http.MethodPatch, q.filterParams(), payload, preferReturn(returning), returning)
}

// Delete implements store.Query. Accumulated filters scope the delete.
func (q *restQuery) Delete(ctx context.Context) error {
	return q.do(ctx, http.MethodDelete, q.filterParams(), nil, "", nil)
}

func (q *restQuery) write(ctx context.Context, method string, params url.Values, payload store.Record, prefer string, returning bool) ([]store.Record, error) {
	var rows []store.Record
	out := &rows
	if !returning {
		out = nil
	}
	if err := q.do(ctx, method, params, payload, prefer, out); err != nil {
		return nil, err
	}
	return rows, nil
}

// filterParams renders accumulated filters as query parameters.
func (q *restQuery) filterParams() url.Values {
	params := url.Values{}
	for _, f := range q.filters {
		params.Add(f.column, f.value)
	}
	return params
}

// do issues one request and decodes the response rows into out when out
// is non-nil.
func (q *restQuery) do(ctx context.Context, method string, params url.Values, payload store.Record, prefer string, out *[]store.Record) error {
	endpoint := q.client.baseURL + "/" + q.table
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode payload: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	q.client.authorize(req)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	start := time.Now()
	resp, err := q.client.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	q.client.log.Debug().
		Str("method", method).
		Str("table", q.table).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("postgrest request")

	if resp.StatusCode >= 400 {
		return decodeError(resp.StatusCode, data)
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode rows: %w", err)
		}
	}
	return nil
}

// preferReturn renders the Prefer directive for row-return.
func preferReturn(returning bool) string {
	if returning {
		return "return=representation"
	}
	return "return=minimal"
}

// decodeError maps a PostgREST error body to a RequestError.
func decodeError(status int, data []byte) error {
	reqErr := &RequestError{Status: status}
	var body struct {
		Message string `json:"message"`
		Code    string `json:"code"`
		Details string `json:"details"`
		Hint    string `json:"hint"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		reqErr.Message = body.Message
		reqErr.Code = body.Code
		reqErr.Details = body.Details
		reqErr.Hint = body.Hint
		return reqErr
	}
	reqErr.Message = strings.TrimSpace(string(data))
	if reqErr.Message == "" {
		reqErr.Message = http.StatusText(status)
	}
	return reqErr
}

// Ensure Client implements the store contract.
var _ store.Store = (*Client)(nil)

// Ensure restQuery implements the query contract.
var _ store.Query = (*restQuery)(nil)
