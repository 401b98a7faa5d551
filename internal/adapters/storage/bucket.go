// Package storage provides an HTTP client for the hosted object-storage
// bucket that serves the site's public images.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/evenbetter/dtwin-cms/internal/core"
	"github.com/evenbetter/dtwin-cms/internal/domain/model"
)

// BucketClient implements the ObjectStore interface against the bucket's
// REST API.
type BucketClient struct {
	baseURL    string
	apiKey     string
	bucket     string
	httpClient *http.Client
}

// Config holds configuration for the bucket client.
type Config struct {
	BaseURL string
	APIKey  string
	Bucket  string
	// HTTPClient is optional; defaults to a client with a 30s timeout.
	HTTPClient *http.Client
}

// NewBucketClient creates a BucketClient.
func NewBucketClient(cfg Config) (*BucketClient, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("storage base URL is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &BucketClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		bucket:     cfg.Bucket,
		httpClient: client,
	}, nil
}

var _ core.ObjectStore = (*BucketClient)(nil)

// Upload stores data under name and returns the public URL.
func (c *BucketClient) Upload(ctx context.Context, params core.UploadParams) (string, error) {
	if params.Name == "" {
		return "", errors.New("object name is required")
	}
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, url.PathEscape(params.Name))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(params.Data))
	if err != nil {
		return "", err
	}
	if params.ContentType != "" {
		req.Header.Set("Content-Type", params.ContentType)
	}
	c.authorize(req)

	if err := c.do(req); err != nil {
		return "", fmt.Errorf("upload %s: %w", params.Name, err)
	}
	return c.PublicURL(params.Name), nil
}

// List returns every object in the bucket with its public URL.
func (c *BucketClient) List(ctx context.Context) ([]model.Image, error) {
	body, err := json.Marshal(map[string]any{
		"prefix":    "",
		"limit":     1000,
		"sortBy":    map[string]string{"column": "created_at", "order": "desc"},
		"delimiter": "/",
	})
	if err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/storage/v1/object/list/%s", c.baseURL, c.bucket)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list objects: %s", readAPIError(resp))
	}

	var entries []struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode object list: %w", err)
	}

	images := make([]model.Image, 0, len(entries))
	for _, e := range entries {
		if e.Name == "" || strings.HasPrefix(e.Name, ".") {
			continue
		}
		images = append(images, model.Image{Name: e.Name, URL: c.PublicURL(e.Name)})
	}
	return images, nil
}

// Remove deletes an object from the bucket.
func (c *BucketClient) Remove(ctx context.Context, name string) error {
	if name == "" {
		return errors.New("object name is required")
	}
	body, err := json.Marshal(map[string][]string{"prefixes": {name}})
	if err != nil {
		return err
	}
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s", c.baseURL, c.bucket)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	if err := c.do(req); err != nil {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

// PublicURL returns the public URL for an object name without I/O.
func (c *BucketClient) PublicURL(name string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, url.PathEscape(name))
}

func (c *BucketClient) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("apikey", c.apiKey)
	}
}

func (c *BucketClient) do(req *http.Request) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return errors.New(readAPIError(resp))
	}
	return nil
}

func readAPIError(resp *http.Response) string {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	var apiErr struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
		return fmt.Sprintf("%s (status %d)", apiErr.Message, resp.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d", resp.StatusCode)
}
