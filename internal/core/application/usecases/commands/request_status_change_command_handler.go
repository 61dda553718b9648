package commands

import (
	"context"
	"fmt"

	"backoffice/internal/core/application/orderview"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/services"
	"backoffice/internal/pkg/errs"
)

// RequestOutcome tells the caller what the request achieved and what the
// screen must do next.
type RequestOutcome string

const (
	// OutcomeNoOp means the target equals the current status; nothing
	// happened and nothing needs to.
	OutcomeNoOp RequestOutcome = "no_op"
	// OutcomeLocked means the rider assignment lock blocked the request.
	OutcomeLocked RequestOutcome = "locked"
	// OutcomeBusy means another update on the same order is staged or in
	// flight.
	OutcomeBusy RequestOutcome = "busy"
	// OutcomeModalRequired means the transition needs extra input before
	// it can be confirmed. Nothing is staged yet.
	OutcomeModalRequired RequestOutcome = "modal_required"
	// OutcomeStaged means the transition is staged and waiting for the
	// staff member to confirm.
	OutcomeStaged RequestOutcome = "staged"
)

// RequestStatusChangeResult describes the next step for the screen that
// requested the transition.
type RequestStatusChangeResult struct {
	Outcome     RequestOutcome
	Target      order.Status
	LockMessage string
	Modal       services.Modal
	Warning     string
}

// RequestStatusChangeCommandHandler decides what a picked transition
// needs before it can be submitted. It never calls upstream: a request
// either stages local state or tells the screen what input to collect.
type RequestStatusChangeCommandHandler struct {
	registry *orderview.Registry
	policy   services.StatusPolicy
}

// NewRequestStatusChangeCommandHandler creates a handler over the shared
// view registry and the status policy.
func NewRequestStatusChangeCommandHandler(registry *orderview.Registry, policy services.StatusPolicy) RequestStatusChangeCommandHandler {
	return RequestStatusChangeCommandHandler{
		registry: registry,
		policy:   policy,
	}
}

// Handle processes the transition request.
//
// The decision ladder, in order:
//   - target equals the current status: OutcomeNoOp, nothing staged
//   - rider assignment lock applies: OutcomeLocked with the lock message
//   - target not reachable in the lifecycle table: an error
//   - transition needs extra input: OutcomeModalRequired, nothing staged
//   - otherwise the target is staged: OutcomeStaged with any warning
//
// A concurrent update on the same order yields OutcomeBusy.
func (h RequestStatusChangeCommandHandler) Handle(ctx context.Context, command RequestStatusChangeCommand) (RequestStatusChangeResult, error) {
	if err := command.Validate(); err != nil {
		return RequestStatusChangeResult{}, err
	}

	view, err := h.registry.Get(command.OrderID())
	if err != nil {
		return RequestStatusChangeResult{}, err
	}

	snapshot := view.Order()
	target := command.Target()

	if snapshot.Status() == target {
		return RequestStatusChangeResult{Outcome: OutcomeNoOp, Target: target}, nil
	}

	lock := h.policy.CheckLock(snapshot.Status(), command.Actor().Role(), snapshot.AssignedRiderID(), command.Actor().UserID())
	if lock.IsLocked {
		return RequestStatusChangeResult{Outcome: OutcomeLocked, Target: target, LockMessage: lock.Message}, nil
	}

	if !h.policy.CanTransition(snapshot.Status(), target, snapshot.FulfillmentType()) {
		return RequestStatusChangeResult{}, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("transition from %s to %s is not allowed for %s orders",
				snapshot.Status().String(), target.String(), snapshot.FulfillmentType().String()),
		)
	}

	if modal := h.policy.RequiredModal(target); modal != services.ModalNone {
		return RequestStatusChangeResult{
			Outcome: OutcomeModalRequired,
			Target:  target,
			Modal:   modal,
			Warning: h.policy.Warning(target),
		}, nil
	}

	if err := view.Stage(target); err != nil {
		return RequestStatusChangeResult{Outcome: OutcomeBusy, Target: target}, nil
	}

	return RequestStatusChangeResult{
		Outcome: OutcomeStaged,
		Target:  target,
		Warning: h.policy.Warning(target),
	}, nil
}
