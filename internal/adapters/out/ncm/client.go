// Package ncm provides the outbound adapter to the NCM courier partner's
// branch listing. This package implements ports.BranchDirectory for the
// destination branch dropdown on outside-valley orders.
package ncm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"backoffice/internal/core/domain/model/lookup"
	"backoffice/internal/pkg/errs"
)

const defaultTimeout = 15 * time.Second

// branchDTO is a branch as NCM serializes it. Older API versions key the
// machine token as "id", newer ones as "value"; both are accepted.
type branchDTO struct {
	ID    string `json:"id"`
	Value string `json:"value"`
	Label string `json:"label"`
}

// Client implements ports.BranchDirectory against the NCM courier API.
// NCM publishes its branch list daily; callers cache the result and
// refresh it after the local day boundary.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a branch directory backed by the NCM courier API.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("base url")
	}

	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Branches retrieves the courier partner's branch list. NCM returns the
// list as a bare JSON array rather than a data envelope.
func (c *Client) Branches(ctx context.Context) ([]lookup.Option, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/branches", nil)
	if err != nil {
		return nil, fmt.Errorf("ncm: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ncm: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ncm: branches: unexpected status %d", resp.StatusCode)
	}

	var branches []branchDTO
	if err := json.NewDecoder(resp.Body).Decode(&branches); err != nil {
		return nil, fmt.Errorf("ncm: decode response: %w", err)
	}

	options := make([]lookup.Option, len(branches))
	for i, branch := range branches {
		value := branch.Value
		if value == "" {
			value = branch.ID
		}
		options[i] = lookup.Option{Value: value, Label: branch.Label}
	}

	return options, nil
}
