// Package backend is the HTTP client for the external loadsheet backend, the
// service that authoritatively computes and serves generated loadsheets.
package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"loadmaster/internal/app"

	"github.com/rs/zerolog/log"
)

// Client talks to the loadsheet backend. Keep-alives are disabled so every
// attempt opens a fresh connection; a retry never reuses a possibly poisoned
// one.
type Client struct {
	baseURL      string
	client       *http.Client
	requestCount int64
	requestMutex sync.Mutex
}

// Response carries the status code and body of a backend reply. Status
// classification (2xx vs failure) is left to the caller.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the response status is in the 2xx range.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// NewClient validates the base URL and creates a backend client. A missing
// base URL is a configuration error detected before any network call.
func NewClient(baseURL string) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, &app.ConfigurationError{Msg: "backend base URL is empty"}
	}

	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Transport: &http.Transport{
				DisableKeepAlives: true,
			},
		},
	}, nil
}

// IncrementRequestCount safely increments the request counter
func (c *Client) IncrementRequestCount() {
	c.requestMutex.Lock()
	c.requestCount++
	c.requestMutex.Unlock()
}

// RequestCount returns the number of requests issued so far
func (c *Client) RequestCount() int64 {
	c.requestMutex.Lock()
	defer c.requestMutex.Unlock()
	return c.requestCount
}

// ResetRequestCount resets the request counter to zero
func (c *Client) ResetRequestCount() {
	c.requestMutex.Lock()
	c.requestCount = 0
	c.requestMutex.Unlock()
}

// do executes one HTTP request and drains the response body. Attempt
// deadlines come in through ctx.
func (c *Client) do(ctx context.Context, method, url string, body io.Reader) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.Debug().
			Err(err).
			Str("method", method).
			Str("url", url).
			Msg("Backend request failed")
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	c.IncrementRequestCount()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	log.Debug().
		Str("method", method).
		Str("url", url).
		Int("status", resp.StatusCode).
		Msg("Backend request completed")

	return &Response{StatusCode: resp.StatusCode, Body: respBody}, nil
}

// Generate requests backend generation of the given loadsheet edition.
func (c *Client) Generate(ctx context.Context, typ app.LoadsheetType) (*Response, error) {
	url := fmt.Sprintf("%s/loadsheet/generate?type=%s", c.baseURL, typ)
	return c.do(ctx, http.MethodPost, url, strings.NewReader("{}"))
}

// Resend asks the backend to re-deliver the already generated loadsheets.
func (c *Client) Resend(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodPost, c.baseURL+"/loadsheet/resend", strings.NewReader("{}"))
}

// Clear deletes all backend-held loadsheets.
func (c *Client) Clear(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodDelete, c.baseURL+"/loadsheet", nil)
}

// Health probes the backend health endpoint.
func (c *Client) Health(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, c.baseURL+"/health", nil)
}
