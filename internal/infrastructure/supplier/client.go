// Package supplier implements the outbound SDS lookup integration against
// supplier REST APIs.
package supplier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/trygghms/hms-api/internal/application/ports"
	"github.com/trygghms/hms-api/pkg/config"
)

var _ ports.SupplierGateway = (*Client)(nil)

// maxSDSSize caps a downloaded SDS document at 20 MB.
const maxSDSSize = 20 << 20

// Client talks to the supplier SDS APIs through a shared aggregator endpoint.
// One API key per supplier; suppliers without a key are reported as
// unsupported and skipped by the workflow.
type Client struct {
	baseURL    string
	apiKeys    map[string]string // lowercase supplier name -> key
	httpClient *http.Client
}

// NewClient builds the gateway from configuration.
func NewClient(cfg config.SDSConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.SupplierBaseURL, "/"),
		apiKeys: cfg.SupplierKeys,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Supports reports whether an API key is configured for the supplier.
func (c *Client) Supports(supplier string) bool {
	_, ok := c.apiKeys[strings.ToLower(supplier)]
	return ok && c.baseURL != ""
}

type latestSDSResponse struct {
	Version     string    `json:"version"`
	PublishedAt time.Time `json:"published_at"`
	DownloadURL string    `json:"download_url"`
}

// LookupUpdate asks the supplier for the latest SDS of the CAS number.
// Returns nil when the supplier has nothing newer than since.
func (c *Client) LookupUpdate(ctx context.Context, supplier, casNumber string, since *time.Time) (*ports.SDSUpdateInfo, error) {
	key, ok := c.apiKeys[strings.ToLower(supplier)]
	if !ok {
		return nil, fmt.Errorf("supplier: no API key for %q", supplier)
	}

	lookupURL := fmt.Sprintf("%s/v1/%s/sds/%s/latest",
		c.baseURL, url.PathEscape(strings.ToLower(supplier)), url.PathEscape(casNumber))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, fmt.Errorf("supplier: create request: %w", err)
	}
	req.Header.Set("X-API-Key", key)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("supplier: lookup %s: %w", casNumber, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusNotFound:
		// The supplier does not carry this substance.
		return nil, nil
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("supplier: lookup %s: HTTP %d: %s", casNumber, resp.StatusCode, string(body))
	}

	var latest latestSDSResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64*1024)).Decode(&latest); err != nil {
		return nil, fmt.Errorf("supplier: decode lookup response: %w", err)
	}
	if latest.DownloadURL == "" {
		return nil, nil
	}
	// Not newer than what we already have.
	if since != nil && !latest.PublishedAt.After(*since) {
		return nil, nil
	}
	return &ports.SDSUpdateInfo{
		Version:     latest.Version,
		PublishedAt: latest.PublishedAt,
		DownloadURL: latest.DownloadURL,
	}, nil
}

// Download fetches the SDS document. Transient failures (network, 5xx) are
// retried with backoff; 4xx responses fail immediately.
func (c *Client) Download(ctx context.Context, supplier, downloadURL string) ([]byte, error) {
	key := c.apiKeys[strings.ToLower(supplier)]

	var pdf []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("supplier: create download request: %w", err))
			}
			if key != "" {
				req.Header.Set("X-API-Key", key)
			}
			resp, err := c.httpClient.Do(req)
			if err != nil {
				return fmt.Errorf("supplier: download: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode >= 500 {
				return fmt.Errorf("supplier: download: HTTP %d", resp.StatusCode)
			}
			if resp.StatusCode != http.StatusOK {
				return retry.Unrecoverable(fmt.Errorf("supplier: download: HTTP %d", resp.StatusCode))
			}
			pdf, err = io.ReadAll(io.LimitReader(resp.Body, maxSDSSize))
			if err != nil {
				return fmt.Errorf("supplier: read download: %w", err)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}
	if len(pdf) == 0 {
		return nil, fmt.Errorf("supplier: empty SDS document")
	}
	return pdf, nil
}
