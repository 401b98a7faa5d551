// Package upstream provides the edge gateway's HTTP client for the backend
// API. It forwards requests verbatim and relays whatever comes back; it
// never retries, dedupes, or overrides timeouts.
package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client forwards dashboard requests to the backend API service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Config holds configuration for the upstream client.
type Config struct {
	BaseURL string
	// HTTPClient is optional; defaults to a client with a 30s timeout.
	HTTPClient *http.Client
}

// NewClient creates a Client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("upstream base URL is required")
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: client,
	}, nil
}

// ForwardParams groups parameters for Forward to keep param count ≤3.
type ForwardParams struct {
	Method string
	// Path is the path plus raw query, forwarded unchanged.
	Path string
	// Authorization is copied verbatim when non-empty.
	Authorization string
	ContentType   string
	Body          []byte
}

// Response is the relayed upstream reply.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// Forward sends the request to the backend and returns its reply unmodified.
// A transport failure returns an error; the caller decides the fallback.
func (c *Client) Forward(ctx context.Context, params ForwardParams) (*Response, error) {
	var body io.Reader
	if len(params.Body) > 0 {
		body = bytes.NewReader(params.Body)
	}
	req, err := http.NewRequestWithContext(ctx, params.Method, c.baseURL+params.Path, body)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	if params.ContentType != "" {
		req.Header.Set("Content-Type", params.ContentType)
	}
	if params.Authorization != "" {
		req.Header.Set("Authorization", params.Authorization)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reach upstream: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream response: %w", err)
	}
	return &Response{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}
