// Package sdsparse calls the document parsing service that extracts hazard
// data from SDS PDFs.
package sdsparse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/trygghms/hms-api/internal/application/ports"
	"github.com/trygghms/hms-api/internal/domain/hazard"
	"github.com/trygghms/hms-api/pkg/config"
)

var _ ports.SDSParser = (*Client)(nil)

// Client posts an SDS PDF to the parsing service and maps the structured
// result onto the domain extraction type. The service reports a confidence
// score; deciding whether to trust it is domain policy, not the adapter's.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds the adapter from configuration.
func NewClient(cfg config.SDSConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.ParserURL, "/"),
		apiKey:  cfg.ParserKey,
		httpClient: &http.Client{
			// Parsing a long PDF can take a while.
			Timeout: 60 * time.Second,
		},
	}
}

type parseResponse struct {
	HazardStatements        string  `json:"hazard_statements"`
	PrecautionaryStatements string  `json:"precautionary_statements"`
	SignalWord              string  `json:"signal_word"`
	Confidence              float64 `json:"confidence"`
	Error                   string  `json:"error,omitempty"`
}

// Parse extracts hazard data from the PDF.
func (c *Client) Parse(ctx context.Context, pdf []byte) (hazard.Extraction, error) {
	if c.baseURL == "" {
		return hazard.Extraction{}, fmt.Errorf("sdsparse: SDS_PARSER_URL not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/parse", bytes.NewReader(pdf))
	if err != nil {
		return hazard.Extraction{}, fmt.Errorf("sdsparse: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/pdf")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return hazard.Extraction{}, fmt.Errorf("sdsparse: call parser: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return hazard.Extraction{}, fmt.Errorf("sdsparse: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var errResp parseResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != "" {
			return hazard.Extraction{}, fmt.Errorf("sdsparse: parser error: %s", errResp.Error)
		}
		return hazard.Extraction{}, fmt.Errorf("sdsparse: HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	var parsed parseResponse
	if err := json.Unmarshal(rawBody, &parsed); err != nil {
		return hazard.Extraction{}, fmt.Errorf("sdsparse: decode response: %w", err)
	}

	confidence := parsed.Confidence
	if confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}

	return hazard.Extraction{
		HazardStatements:        parsed.HazardStatements,
		PrecautionaryStatements: parsed.PrecautionaryStatements,
		SignalWord:              parsed.SignalWord,
		Confidence:              confidence,
	}, nil
}
