// Package storage is a thin client for the S3-compatible object store holding
// SDS files and governed documents.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/trygghms/hms-api/internal/application/ports"
	"github.com/trygghms/hms-api/pkg/config"
)

var _ ports.ObjectStorage = (*Client)(nil)

// Client uploads and deletes blobs over the store's HTTP API. Keys are opaque
// paths like sds/{tenant}/{chemical}-{ts}.pdf.
type Client struct {
	endpoint   string
	bucket     string
	token      string
	httpClient *http.Client
}

// NewClient builds the adapter from configuration.
func NewClient(cfg config.StorageConfig) *Client {
	return &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		bucket:   cfg.Bucket,
		token:    cfg.Token,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (c *Client) objectURL(key string) string {
	// Key segments are escaped individually so the path separators survive.
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return fmt.Sprintf("%s/%s/%s", c.endpoint, url.PathEscape(c.bucket), strings.Join(parts, "/"))
}

// Upload stores the blob under key, overwriting any previous object.
func (c *Client) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if c.endpoint == "" {
		return fmt.Errorf("storage: STORAGE_ENDPOINT not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.objectURL(key), bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("storage: create upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = int64(len(data))
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("storage: upload %s: %w", key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("storage: upload %s: HTTP %d: %s", key, resp.StatusCode, string(body))
	}
	return nil
}

// Delete removes the blob. Deleting a missing key is not an error.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c.endpoint == "" {
		return fmt.Errorf("storage: STORAGE_ENDPOINT not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.objectURL(key), nil)
	if err != nil {
		return fmt.Errorf("storage: create delete request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("storage: delete %s: %w", key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("storage: delete %s: HTTP %d: %s", key, resp.StatusCode, string(body))
	}
	return nil
}
