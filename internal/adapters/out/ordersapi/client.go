package ordersapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"backoffice/internal/core/domain/model/lookup"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"
)

const (
	// defaultTimeout guards against stalled connections; context
	// cancellation is still honoured via NewRequestWithContext.
	defaultTimeout = 15 * time.Second

	// maxErrorBody caps how much of an error response is read when
	// extracting the upstream message.
	maxErrorBody = 64 * 1024

	// wireDateLayout is the date-only format used in list filters.
	wireDateLayout = "2006-01-02"
)

// Client implements ports.OrderGateway against the upstream order system.
//
// The upstream remains the source of truth for all order data. Client does
// no validation beyond building requests; rejections are surfaced as
// *ports.UpstreamError carrying the server's message so callers can show
// it, while transport failures come back as plain errors.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client, typically to adjust
// the timeout or inject a test transport.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a gateway to the upstream order system. The token is
// sent as a bearer credential on every request; pass the empty string when
// the upstream does not require one.
func NewClient(baseURL, token string, opts ...ClientOption) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("base url")
	}

	client := &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// List retrieves one page of orders matching the filter.
func (c *Client) List(ctx context.Context, filter ports.OrderListFilter) (ports.OrderPage, error) {
	query := url.Values{}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Sort != "" {
		query.Set("sort", filter.Sort)
	}
	if filter.Status != order.Unknown {
		query.Set("status", filter.Status.String())
	}
	if filter.FulfillmentType != order.FulfillmentUnknown {
		query.Set("fulfillment_type", filter.FulfillmentType.String())
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.DateFrom != nil {
		query.Set("date_from", filter.DateFrom.Format(wireDateLayout))
	}
	if filter.DateTo != nil {
		query.Set("date_to", filter.DateTo.Format(wireDateLayout))
	}

	endpoint := c.baseURL + "/orders"
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var envelope listEnvelope
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &envelope); err != nil {
		return ports.OrderPage{}, fmt.Errorf("orders api: list: %w", err)
	}

	orders := make([]*order.Order, 0, len(envelope.Data))
	for _, dto := range envelope.Data {
		ord, err := toDomain(dto)
		if err != nil {
			return ports.OrderPage{}, fmt.Errorf("orders api: list: order %q: %w", dto.ID, err)
		}
		orders = append(orders, ord)
	}

	return ports.OrderPage{Orders: orders, Pagination: envelope.Pagination.toDomain()}, nil
}

// Patch partially updates an order's editable fields and returns the patch
// as confirmed upstream.
func (c *Client) Patch(ctx context.Context, id order.ID, patch order.Patch) (order.Patch, error) {
	if err := id.Validate(); err != nil {
		return order.Patch{}, err
	}

	endpoint := c.baseURL + "/orders/" + url.PathEscape(id.String())

	var envelope patchEnvelope
	if err := c.do(ctx, http.MethodPatch, endpoint, fromPatch(patch), &envelope); err != nil {
		return order.Patch{}, fmt.Errorf("orders api: patch order %s: %w", id.String(), err)
	}

	// Some deployments return an empty body on success; the submitted
	// fields then stand as the confirmation.
	confirmed := envelope.Data.toPatch()
	if confirmed.IsEmpty() {
		return patch, nil
	}

	return confirmed, nil
}

// UpdateStatus submits a status transition for a single order.
func (c *Client) UpdateStatus(ctx context.Context, id order.ID, update ports.StatusUpdate) error {
	if err := id.Validate(); err != nil {
		return err
	}

	endpoint := c.baseURL + "/orders/" + url.PathEscape(id.String()) + "/status"
	if err := c.do(ctx, http.MethodPatch, endpoint, fromStatusUpdate(update), nil); err != nil {
		return fmt.Errorf("orders api: update status of order %s: %w", id.String(), err)
	}

	return nil
}

// BulkUpdateStatus applies one status to many orders in a single call.
func (c *Client) BulkUpdateStatus(ctx context.Context, update ports.BulkStatusUpdate) error {
	endpoint := c.baseURL + "/orders/bulk-status"
	if err := c.do(ctx, http.MethodPost, endpoint, fromBulkUpdate(update), nil); err != nil {
		return fmt.Errorf("orders api: bulk update status: %w", err)
	}

	return nil
}

// ActiveSources retrieves the currently active order sources.
func (c *Client) ActiveSources(ctx context.Context) ([]lookup.Option, error) {
	endpoint := c.baseURL + "/order-sources?active=true"

	var envelope optionsEnvelope
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &envelope); err != nil {
		return nil, fmt.Errorf("orders api: active sources: %w", err)
	}

	options := make([]lookup.Option, len(envelope.Data))
	for i, dto := range envelope.Data {
		options[i] = dto.toOption()
	}

	return options, nil
}

// do executes one request against the upstream API and decodes the JSON
// response into out when out is non-nil. Non-2xx responses become
// *ports.UpstreamError carrying the upstream's message when it sent one.
func (c *Client) do(ctx context.Context, method, endpoint string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeUpstreamError(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// decodeUpstreamError turns an error response into *ports.UpstreamError.
// A body that is not JSON, or carries no recognized message field, yields
// an error with the status code only.
func decodeUpstreamError(resp *http.Response) error {
	upstreamErr := &ports.UpstreamError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return upstreamErr
	}

	var envelope errorEnvelope
	if json.Unmarshal(body, &envelope) == nil {
		upstreamErr.Message = envelope.text()
	}

	return upstreamErr
}
