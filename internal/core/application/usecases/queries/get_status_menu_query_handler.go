package queries

import (
	"context"

	"backoffice/internal/core/application/orderview"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/services"
)

// StatusMenuItem is one selectable transition: where it goes, what modal
// it opens, and the warning shown before confirming.
type StatusMenuItem struct {
	Target        order.Status
	Modal         services.Modal
	Warning       string
	RequiresInput bool
}

// GetStatusMenuQueryResponse is everything the order detail screen needs
// to render the status control: the current status, lock and busy state,
// and the selectable transitions.
//
// A locked order offers no transitions at all; LockMessage carries the
// notice to render instead.
type GetStatusMenuQueryResponse struct {
	OrderID       string
	CurrentStatus order.Status
	StagedTarget  order.Status
	Busy          bool
	LastError     string
	Locked        bool
	LockMessage   string
	Items         []StatusMenuItem
}

// GetStatusMenuQueryHandler computes the transition menu for an order from
// the view's current snapshot and the status policy.
type GetStatusMenuQueryHandler struct {
	registry *orderview.Registry
	policy   services.StatusPolicy
}

// NewGetStatusMenuQueryHandler creates a handler for transition menu
// queries.
func NewGetStatusMenuQueryHandler(registry *orderview.Registry, policy services.StatusPolicy) GetStatusMenuQueryHandler {
	return GetStatusMenuQueryHandler{
		registry: registry,
		policy:   policy,
	}
}

// Handle computes the menu. The menu reflects the view's status including
// any optimistic overlay, so while a submit is in flight the items follow
// the optimistic status and Busy tells the screen to disable them.
func (h GetStatusMenuQueryHandler) Handle(ctx context.Context, query GetStatusMenuQuery) (GetStatusMenuQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetStatusMenuQueryResponse{}, err
	}

	view, err := h.registry.Get(query.OrderID())
	if err != nil {
		return GetStatusMenuQueryResponse{}, err
	}

	snapshot := view.Order()
	actor := query.Actor()

	response := GetStatusMenuQueryResponse{
		OrderID:       snapshot.ID().String(),
		CurrentStatus: snapshot.Status(),
		StagedTarget:  view.StagedTarget(),
		Busy:          view.Busy(),
		LastError:     view.LastError(),
		Items:         []StatusMenuItem{},
	}

	lock := h.policy.CheckLock(snapshot.Status(), actor.Role(), snapshot.AssignedRiderID(), actor.UserID())
	if lock.IsLocked {
		response.Locked = true
		response.LockMessage = lock.Message
		return response, nil
	}

	for _, target := range snapshot.AllowedTransitions() {
		modal := h.policy.RequiredModal(target)
		response.Items = append(response.Items, StatusMenuItem{
			Target:        target,
			Modal:         modal,
			Warning:       h.policy.Warning(target),
			RequiresInput: modal != services.ModalNone,
		})
	}

	return response, nil
}
