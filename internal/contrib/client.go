// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package contrib wraps the remote forge (source-control) API used for
// catalog contribution workflows: a proposed scholar record becomes a branch,
// a committed YAML file, and a pull request. The forge's own branching and
// review semantics are opaque to this package; it only shapes requests and
// decodes responses.
package contrib

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-atlas/internal/httputil"
	"github.com/pdiddy/scholar-atlas/pkg/types"
)

// Client calls the forge API.
type Client struct {
	HTTP *http.Client
	Cfg  types.ContribConfig
}

// New returns a client for cfg.
func New(cfg types.ContribConfig) *Client {
	if cfg.BaseBranch == "" {
		cfg.BaseBranch = "main"
	}
	return &Client{
		HTTP: &http.Client{Timeout: cfg.Timeout},
		Cfg:  cfg,
	}
}

// PullRequest is the subset of the forge's pull-request resource the CLI
// reports back to the user.
type PullRequest struct {
	Number int    `json:"number"`
	URL    string `json:"html_url"`
	Title  string `json:"title"`
}

// Propose submits a scholar record as a pull request: a uniquely named
// branch off the base branch, one YAML file under catalog/records/, and a
// pull request against the base.
func (c *Client) Propose(ctx context.Context, scholar types.Scholar) (PullRequest, error) {
	if scholar.Name == "" {
		return PullRequest{}, fmt.Errorf("scholar record has no name")
	}

	slug := types.Slug(scholar.Name)
	branch := fmt.Sprintf("catalog/%s-%s", slug, uuid.NewString()[:8])

	if err := c.CreateBranch(ctx, branch); err != nil {
		return PullRequest{}, err
	}

	content, err := yaml.Marshal(scholar)
	if err != nil {
		return PullRequest{}, fmt.Errorf("marshaling record: %w", err)
	}
	path := "catalog/records/" + slug + ".yaml"
	message := fmt.Sprintf("catalog: add %s", scholar.Name)
	if err := c.PutFile(ctx, branch, path, content, message); err != nil {
		return PullRequest{}, err
	}

	title := fmt.Sprintf("Add %s to the catalog", scholar.Name)
	body := fmt.Sprintf("Proposed catalog record for %s.", scholar.Name)
	return c.OpenPull(ctx, branch, title, body)
}

// CreateBranch creates a branch off the configured base branch.
func (c *Client) CreateBranch(ctx context.Context, name string) error {
	payload := map[string]string{
		"new_branch_name": name,
		"old_branch_name": c.Cfg.BaseBranch,
	}
	return c.post(ctx, fmt.Sprintf("/repos/%s/branches", c.Cfg.Repo), payload, nil)
}

// PutFile creates or updates a file on a branch. Content travels base64
// encoded with a commit message, per the forge's contents API.
func (c *Client) PutFile(ctx context.Context, branch, path string, content []byte, message string) error {
	payload := map[string]string{
		"branch":  branch,
		"content": base64.StdEncoding.EncodeToString(content),
		"message": message,
	}
	url := fmt.Sprintf("/repos/%s/contents/%s", c.Cfg.Repo, path)
	return c.post(ctx, url, payload, nil)
}

// OpenPull opens a pull request from head into the base branch.
func (c *Client) OpenPull(ctx context.Context, head, title, body string) (PullRequest, error) {
	payload := map[string]string{
		"head":  head,
		"base":  c.Cfg.BaseBranch,
		"title": title,
		"body":  body,
	}
	var pr PullRequest
	err := c.post(ctx, fmt.Sprintf("/repos/%s/pulls", c.Cfg.Repo), payload, &pr)
	return pr, err
}

// post sends a JSON payload and optionally decodes the response into out.
func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimSuffix(c.Cfg.BaseURL, "/")+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.Cfg.UserAgent)
	if c.Cfg.Token != "" {
		req.Header.Set("Authorization", "token "+c.Cfg.Token)
	}

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, 0)
	if err != nil {
		return fmt.Errorf("forge API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("forge API %s returned HTTP %d", path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("parsing forge response: %w", err)
		}
	}
	return nil
}
