// Package echa implements the regulatory substance lookup against an
// ECHA-style REST database.
package echa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/trygghms/hms-api/internal/application/ports"
	"github.com/trygghms/hms-api/pkg/config"
)

var _ ports.RegulatoryClient = (*Client)(nil)

// Client looks CAS numbers up in the regulatory substance database.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds the adapter from configuration.
func NewClient(cfg config.SDSConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.RegulatoryURL, "/"),
		apiKey:  cfg.RegulatoryKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type substanceResponse struct {
	EchaID string `json:"echa_id"`
	IsCMR  bool   `json:"is_cmr"`
	IsSVHC bool   `json:"is_svhc"`
}

// LookupCAS fetches the substance record. Returns nil when the substance is
// not listed.
func (c *Client) LookupCAS(ctx context.Context, casNumber string) (*ports.SubstanceInfo, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("echa: SDS_REGULATORY_URL not configured")
	}

	lookupURL := fmt.Sprintf("%s/v1/substances/%s", c.baseURL, url.PathEscape(casNumber))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, fmt.Errorf("echa: create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("echa: lookup %s: %w", casNumber, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("echa: lookup %s: HTTP %d: %s", casNumber, resp.StatusCode, string(body))
	}

	var sub substanceResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64*1024)).Decode(&sub); err != nil {
		return nil, fmt.Errorf("echa: decode response: %w", err)
	}
	return &ports.SubstanceInfo{
		EchaID: sub.EchaID,
		IsCMR:  sub.IsCMR,
		IsSVHC: sub.IsSVHC,
	}, nil
}
