package commands

import (
	"context"
	"errors"
	"time"

	"backoffice/internal/core/application/orderview"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/services"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"
)

// ErrStatusIsLocked is returned when a dispatch-managed order belongs to
// another rider and the actor is not an admin. The check runs before any
// upstream call.
var ErrStatusIsLocked = errors.New("only the assigned rider or admin can update this status")

// GenericFailureMessage is shown when the upstream call failed without a
// usable server message. Callers display the wording verbatim.
const GenericFailureMessage = "Failed to update status — please try again"

// ConfirmStatusChangeResult reports the status the order holds after the
// confirmation. NoOp is set when the order already had the target status
// and nothing was submitted.
type ConfirmStatusChangeResult struct {
	Status order.Status
	NoOp   bool
}

// ConfirmStatusChangeCommandHandler submits a confirmed status transition
// upstream. The new status is applied to the local view first, so the
// staff member sees the change immediately; a failed submit rolls the view
// back and raises exactly one error notification.
//
// Example:
//
//	handler := NewConfirmStatusChangeCommandHandler(registry, policy, gateway, notifier, bus)
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrStatusIsLocked):
//	    // Show the lock notice; nothing was sent upstream
//	case errors.Is(err, orderview.ErrTransitionInFlight):
//	    // Another update on this order is still running
//	case err != nil:
//	    // The view already rolled back; err carries the cause
//	}
type ConfirmStatusChangeCommandHandler struct {
	registry *orderview.Registry
	policy   services.StatusPolicy
	gateway  StatusSubmitter
	notifier ports.Notifier
	bus      ports.EventBus
}

// NewConfirmStatusChangeCommandHandler creates a handler for status
// transition submissions.
func NewConfirmStatusChangeCommandHandler(
	registry *orderview.Registry,
	policy services.StatusPolicy,
	gateway StatusSubmitter,
	notifier ports.Notifier,
	bus ports.EventBus,
) ConfirmStatusChangeCommandHandler {
	return ConfirmStatusChangeCommandHandler{
		registry: registry,
		policy:   policy,
		gateway:  gateway,
		notifier: notifier,
		bus:      bus,
	}
}

// Handle processes the confirmation.
//
// The lock check and the modal input check run before anything is staged,
// so a refused confirmation leaves the view untouched. The optimistic
// apply happens in BeginSubmit; from there every outcome settles the view
// back to Idle, either keeping the new status (upstream accepted) or
// rolling back to the prior one (upstream refused or unreachable).
func (h ConfirmStatusChangeCommandHandler) Handle(ctx context.Context, command ConfirmStatusChangeCommand) (ConfirmStatusChangeResult, error) {
	if err := command.Validate(); err != nil {
		return ConfirmStatusChangeResult{}, err
	}

	view, err := h.registry.Get(command.OrderID())
	if err != nil {
		return ConfirmStatusChangeResult{}, err
	}

	snapshot := view.Order()
	target := command.Target()

	if snapshot.Status() == target {
		return ConfirmStatusChangeResult{Status: target, NoOp: true}, nil
	}

	lock := h.policy.CheckLock(snapshot.Status(), command.Actor().Role(), snapshot.AssignedRiderID(), command.Actor().UserID())
	if lock.IsLocked {
		return ConfirmStatusChangeResult{}, ErrStatusIsLocked
	}

	if err := h.validateDetails(target, command.Details()); err != nil {
		return ConfirmStatusChangeResult{}, err
	}

	if err := view.EnsureStaged(target); err != nil {
		return ConfirmStatusChangeResult{}, err
	}

	prior, err := view.BeginSubmit()
	if err != nil {
		// An illegal staged target must not stay stuck in Confirming.
		_ = view.CancelStaged()
		return ConfirmStatusChangeResult{}, err
	}

	if err := h.gateway.UpdateStatus(ctx, command.OrderID(), buildStatusUpdate(target, command.Details())); err != nil {
		message := failureMessage(err)
		_ = view.FailSubmit(message)
		h.notifier.Error(ctx, "Status update failed", message)
		return ConfirmStatusChangeResult{}, err
	}

	if err := view.CompleteSubmit(); err != nil {
		return ConfirmStatusChangeResult{}, err
	}

	h.bus.PublishOrderStatusChanged(ctx, ports.OrderStatusChanged{
		OrderID: command.OrderID(),
		From:    prior,
		To:      target,
		At:      time.Now(),
	})

	return ConfirmStatusChangeResult{Status: target}, nil
}

// validateDetails enforces the input each modal class collects. The field
// names mirror what the upstream status endpoint expects.
func (h ConfirmStatusChangeCommandHandler) validateDetails(target order.Status, details ConfirmDetails) error {
	switch h.policy.RequiredModal(target) {
	case services.ModalSelectRider:
		if details.AssignedRiderID == "" {
			return errs.NewValueIsRequiredError("assigned rider id")
		}
	case services.ModalSelectCourier:
		if details.CourierPartner == "" {
			return errs.NewValueIsRequiredError("courier partner")
		}
		if details.CourierTrackingID == "" {
			return errs.NewValueIsRequiredError("courier tracking id")
		}
	case services.ModalRequireReason:
		if details.Reason == "" {
			if target == order.ReturnInitiated {
				return errs.NewValueIsRequiredError("return reason")
			}
			return errs.NewValueIsRequiredError("cancellation reason")
		}
	}

	return nil
}

// buildStatusUpdate maps the confirmed target and its modal input onto the
// upstream status payload. Only the fields the target consumes are set.
func buildStatusUpdate(target order.Status, details ConfirmDetails) ports.StatusUpdate {
	update := ports.StatusUpdate{
		Status:         target,
		FollowupReason: details.FollowupReason,
	}
	if details.FollowupDate != nil {
		date := *details.FollowupDate
		update.FollowupDate = &date
	}

	switch target {
	case order.Assigned:
		update.AssignedRiderID = details.AssignedRiderID
	case order.HandoverToCourier:
		update.CourierPartner = details.CourierPartner
		update.CourierTrackingID = details.CourierTrackingID
	case order.Cancelled, order.Rejected:
		update.CancellationReason = details.Reason
	case order.ReturnInitiated:
		update.ReturnReason = details.Reason
	}

	return update
}

// failureMessage picks what the staff member sees after a failed submit:
// the upstream rejection message when the server sent one, the generic
// wording otherwise.
func failureMessage(err error) string {
	var upstream *ports.UpstreamError
	if errors.As(err, &upstream) && upstream.Message != "" {
		return upstream.Message
	}

	return GenericFailureMessage
}
