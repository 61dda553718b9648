package commands

import (
	"context"

	"backoffice/internal/core/application/orderview"
	"backoffice/internal/core/domain/model/order"
)

// UpdateOrderResult carries the field values as the upstream system
// confirmed them.
type UpdateOrderResult struct {
	Confirmed order.Patch
}

// UpdateOrderCommandHandler submits field edits upstream and merges the
// confirmed values into the local view. Unlike status transitions, field
// edits are not applied optimistically: the local view changes only after
// the upstream accepted the patch, so there is nothing to roll back.
type UpdateOrderCommandHandler struct {
	gateway  OrderPatcher
	registry *orderview.Registry
}

// NewUpdateOrderCommandHandler creates a handler for order field edits.
func NewUpdateOrderCommandHandler(gateway OrderPatcher, registry *orderview.Registry) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		gateway:  gateway,
		registry: registry,
	}
}

// Handle processes the field edit. The patch the upstream returns is the
// authoritative one; it is what gets applied locally and reported back.
func (h UpdateOrderCommandHandler) Handle(ctx context.Context, command UpdateOrderCommand) (UpdateOrderResult, error) {
	if err := command.Validate(); err != nil {
		return UpdateOrderResult{}, err
	}

	view, err := h.registry.Get(command.OrderID())
	if err != nil {
		return UpdateOrderResult{}, err
	}

	confirmed, err := h.gateway.Patch(ctx, command.OrderID(), command.Patch())
	if err != nil {
		return UpdateOrderResult{}, err
	}

	if err := view.ApplyPatch(confirmed); err != nil {
		return UpdateOrderResult{}, err
	}

	return UpdateOrderResult{Confirmed: confirmed}, nil
}
