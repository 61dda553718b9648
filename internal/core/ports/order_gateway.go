// Package ports defines the outbound contracts of the back-office core.
// These interfaces establish contracts between the application layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"fmt"
	"time"

	"backoffice/internal/core/domain/model/lookup"
	"backoffice/internal/core/domain/model/order"
)

// OrderListFilter narrows an order listing. Zero values mean "no filter";
// Page and Limit fall back to the gateway's defaults when zero.
type OrderListFilter struct {
	Page            int
	Limit           int
	Sort            string
	Status          order.Status
	FulfillmentType order.FulfillmentType
	Search          string
	DateFrom        *time.Time
	DateTo          *time.Time
}

// Pagination describes the position of a page within the full upstream
// result set.
type Pagination struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// OrderPage is one page of orders together with its pagination descriptor.
type OrderPage struct {
	Orders     []*order.Order
	Pagination Pagination
}

// StatusUpdate carries a status transition and its auxiliary fields to the
// upstream order system. Only the fields relevant to the target status are
// populated; the rest stay at their zero values and are omitted from the
// wire payload.
type StatusUpdate struct {
	Status             order.Status
	FollowupDate       *time.Time
	FollowupReason     string
	AssignedRiderID    string
	CourierPartner     string
	CourierTrackingID  string
	CancellationReason string
	ReturnReason       string
}

// BulkStatusUpdate applies one target status to a set of orders in a
// single upstream call.
type BulkStatusUpdate struct {
	OrderIDs []order.ID
	Status   order.Status
	Reason   string
}

// UpstreamError is returned when the upstream order system rejects a
// request with an explicit message, such as a validation failure the local
// transition table could not predict. Transport failures are returned as
// plain errors instead.
type UpstreamError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream rejected the request with status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream rejected the request with status %d: %s", e.StatusCode, e.Message)
}

// OrderGateway is the contract to the upstream order system, which remains
// the source of truth for all order data. Local state is only ever a
// cache plus optimistic overlays on top of what this gateway returns.
type OrderGateway interface {
	// List retrieves one page of orders matching the filter.
	// The returned pagination descriptor reflects the upstream total.
	List(ctx context.Context, filter OrderListFilter) (OrderPage, error)

	// Patch partially updates an order's editable fields. Only non-nil
	// patch fields are sent. Returns the patch as confirmed upstream,
	// which callers apply locally after success.
	Patch(ctx context.Context, id order.ID, patch order.Patch) (order.Patch, error)

	// UpdateStatus submits a status transition for a single order.
	// A rejection with an upstream message is returned as *UpstreamError;
	// transport failures are returned as plain errors.
	UpdateStatus(ctx context.Context, id order.ID, update StatusUpdate) error

	// BulkUpdateStatus applies one status to many orders in a single
	// upstream call. The call either fully succeeds or fails as a whole.
	BulkUpdateStatus(ctx context.Context, update BulkStatusUpdate) error

	// ActiveSources retrieves the currently active order sources for
	// edit form dropdowns.
	ActiveSources(ctx context.Context) ([]lookup.Option, error)
}
