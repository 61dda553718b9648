package commands

import (
	"context"
	"errors"
	"time"

	"backoffice/internal/core/application/orderview"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"
)

var (
	// ErrCancellationNotAcknowledged is returned when a bulk cancellation
	// arrives without the explicit acknowledgement. Nothing is sent
	// upstream in that case, regardless of how many orders were selected.
	ErrCancellationNotAcknowledged = errors.New("bulk cancellation requires explicit acknowledgement")
)

// BulkStatusChangeResult reports how many orders the batch covered and how
// many tracked views picked up the new status.
type BulkStatusChangeResult struct {
	Requested int
	Applied   int
}

// BulkStatusChangeCommandHandler submits one status for a whole selection
// of orders as a single upstream call. There is no per-order optimistic
// overlay: the batch either succeeds or fails as a whole, and local views
// are only updated after the upstream confirmed.
//
// Example:
//
//	handler := NewBulkStatusChangeCommandHandler(gateway, registry, notifier, bus)
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrCancellationNotAcknowledged) {
//	    // Reopen the "Cancel Orders" dialog; no call was made
//	}
type BulkStatusChangeCommandHandler struct {
	gateway  BulkSubmitter
	registry *orderview.Registry
	notifier ports.Notifier
	bus      ports.EventBus
}

// NewBulkStatusChangeCommandHandler creates a handler for bulk status
// updates.
func NewBulkStatusChangeCommandHandler(gateway BulkSubmitter, registry *orderview.Registry, notifier ports.Notifier, bus ports.EventBus) BulkStatusChangeCommandHandler {
	return BulkStatusChangeCommandHandler{
		gateway:  gateway,
		registry: registry,
		notifier: notifier,
		bus:      bus,
	}
}

// Handle processes the bulk update.
//
// A bulk cancellation without the explicit acknowledgement, or without a
// reason, is refused before the upstream call. A failed batch raises one
// error notification for the whole batch; there is no per-item
// accounting. After success every tracked view in the selection syncs to
// the confirmed status, skipping views busy with their own transition.
func (h BulkStatusChangeCommandHandler) Handle(ctx context.Context, command BulkStatusChangeCommand) (BulkStatusChangeResult, error) {
	if err := command.Validate(); err != nil {
		return BulkStatusChangeResult{}, err
	}

	target := command.Target()
	if target == order.Cancelled {
		if !command.CancellationAcknowledged() {
			return BulkStatusChangeResult{}, ErrCancellationNotAcknowledged
		}
		if command.Reason() == "" {
			return BulkStatusChangeResult{}, errs.NewValueIsRequiredError("cancellation reason")
		}
	}

	ids := command.OrderIDs()
	update := ports.BulkStatusUpdate{
		OrderIDs: ids,
		Status:   target,
		Reason:   command.Reason(),
	}

	if err := h.gateway.BulkUpdateStatus(ctx, update); err != nil {
		message := failureMessage(err)
		h.notifier.Error(ctx, "Bulk status update failed", message)
		return BulkStatusChangeResult{}, err
	}

	result := BulkStatusChangeResult{Requested: len(ids)}
	for _, id := range ids {
		view, err := h.registry.Get(id)
		if err != nil {
			// Not every selected order is necessarily tracked locally.
			continue
		}

		prior := view.Order().Status()
		if !view.ApplyServerStatus(target) {
			continue
		}

		result.Applied++
		if prior != target {
			h.bus.PublishOrderStatusChanged(ctx, ports.OrderStatusChanged{
				OrderID: id,
				From:    prior,
				To:      target,
				At:      time.Now(),
			})
		}
	}

	return result, nil
}
