// Package commands contains business operations that modify order state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// policy checks, optimistic local state, then the upstream call.
package commands

import (
	"context"

	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/ports"
)

// Gateway slices give each command handler exactly the upstream surface
// it needs. The full ports.OrderGateway satisfies all of them.
type (
	// StatusSubmitter submits a confirmed status change for one order.
	StatusSubmitter interface {
		UpdateStatus(ctx context.Context, id order.ID, update ports.StatusUpdate) error
	}

	// BulkSubmitter applies one status to many orders in a single
	// upstream call.
	BulkSubmitter interface {
		BulkUpdateStatus(ctx context.Context, update ports.BulkStatusUpdate) error
	}

	// OrderPatcher submits edits of an order's non-status fields.
	OrderPatcher interface {
		Patch(ctx context.Context, id order.ID, patch order.Patch) (order.Patch, error)
	}

	// OrderLister retrieves one page of orders from upstream.
	OrderLister interface {
		List(ctx context.Context, filter ports.OrderListFilter) (ports.OrderPage, error)
	}
)
