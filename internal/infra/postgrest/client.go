// Package postgrest talks to a hosted Postgres through its PostgREST endpoint
// ({base}/rest/v1/{collection}).
package postgrest

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

	"github.com/cockroachdb/errors"
)

const (
	restPrefix = "/rest/v1/"
	// Upsert-friendly preference so retried writes overwrite instead of duplicating.
	preferMergeMinimal = "resolution=merge-duplicates,return=minimal"
	maxErrorBody       = 64 << 10
)

// APIError is returned for every non-2xx response.
type APIError struct {
	Method     string
	Collection string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("postgrest %s %s failed: %d %s", e.Method, e.Collection, e.StatusCode, e.Body)
}

// Filters maps a column to the value it must equal.
type Filters map[string]string

type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewClient builds a client whose every call is bounded by timeout.
func NewClient(baseURL, serviceKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Query reads rows of collection matching all filters and decodes the JSON array into out.
// No pagination: the result set is expected to fit in one response.
func (c *Client) Query(ctx context.Context, collection string, fields []string, filters Filters, out any) error {
	params := url.Values{}
	if len(fields) > 0 {
		params.Set("select", strings.Join(fields, ","))
	}
	for field, value := range filters {
		params.Set(field, "eq."+value)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(collection, params), nil)
	if err != nil {
		return errors.Wrapf(err, "building query for %s", collection)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "postgrest GET %s", collection)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp, http.MethodGet, collection); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decoding %s rows", collection)
	}
	return nil
}

// Append writes one record. Conflicts on the natural key (onConflict columns, or the
// primary key when none are given) are merged rather than duplicated.
func (c *Client) Append(ctx context.Context, collection string, record any, onConflict ...string) error {
	body, err := json.Marshal(record)
	if err != nil {
		return errors.Wrapf(err, "encoding %s record", collection)
	}

	params := url.Values{}
	if len(onConflict) > 0 {
		params.Set("on_conflict", strings.Join(onConflict, ","))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(collection, params), bytes.NewReader(body))
	if err != nil {
		return errors.Wrapf(err, "building write for %s", collection)
	}
	c.authorize(req)
	req.Header.Set("Prefer", preferMergeMinimal)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "postgrest POST %s", collection)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp, http.MethodPost, collection); err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) endpoint(collection string, params url.Values) string {
	u := c.baseURL + restPrefix + url.PathEscape(collection)
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// The service key goes both in apikey and as a bearer token.
func (c *Client) authorize(req *http.Request) {
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}

func checkResponse(resp *http.Response, method, collection string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &APIError{
		Method:     method,
		Collection: collection,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}
