// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package remote is a client for a remote relevance service. The service
// accepts the same query shape the local engine does and returns a full
// search report, so callers can substitute one for the other transparently.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pdiddy/scholar-atlas/internal/httputil"
	"github.com/pdiddy/scholar-atlas/pkg/types"
)

// Client queries a remote relevance service.
type Client struct {
	HTTP *http.Client
	Cfg  types.RemoteConfig
}

// New returns a client for cfg, using cfg.Timeout for requests.
func New(cfg types.RemoteConfig) *Client {
	return &Client{
		HTTP: &http.Client{Timeout: cfg.Timeout},
		Cfg:  cfg,
	}
}

// searchRequest is the wire shape of a relevance query.
type searchRequest struct {
	Query string      `json:"query"`
	Depth types.Depth `json:"depth"`
}

// Search posts the query to {base}/search and decodes the report. The
// response shape matches the local engine's output exactly.
func (c *Client) Search(ctx context.Context, query string, depth types.Depth) (types.SearchReport, error) {
	body, err := json.Marshal(searchRequest{Query: query, Depth: depth})
	if err != nil {
		return types.SearchReport{}, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.Cfg.BaseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return types.SearchReport{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.Cfg.UserAgent)
	if c.Cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.Cfg.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, 0)
	if err != nil {
		return types.SearchReport{}, fmt.Errorf("relevance service request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.SearchReport{}, fmt.Errorf("relevance service returned HTTP %d", resp.StatusCode)
	}

	var report types.SearchReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return types.SearchReport{}, fmt.Errorf("parsing relevance response: %w", err)
	}
	return report, nil
}
