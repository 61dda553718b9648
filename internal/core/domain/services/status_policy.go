package services

import (
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/staff"
)

// Modal identifies the extra input a status transition requires before it
// can be confirmed. The front-of-house client maps each value to a dialog.
type Modal string

const (
	// ModalNone means the transition needs no extra input.
	ModalNone Modal = ""
	// ModalSelectRider prompts for the rider taking the order.
	ModalSelectRider Modal = "SELECT_RIDER"
	// ModalSelectCourier prompts for the courier partner and tracking ID.
	ModalSelectCourier Modal = "SELECT_COURIER"
	// ModalRequireReason prompts for a mandatory reason.
	ModalRequireReason Modal = "REQUIRE_REASON"
	// ModalOptionalNote prompts for an optional note and follow-up date.
	ModalOptionalNote Modal = "OPTIONAL_NOTE"
)

// Lock describes whether an order's status is locked for the acting user,
// and if so, the message to show instead of the transition menu.
type Lock struct {
	IsLocked bool
	Message  string
}

// LockMessage is shown whenever a dispatch-managed order is locked to the
// acting user.
const LockMessage = "Only the assigned rider or admin can update this status."

// StatusPolicy is a domain service answering every "may this happen?"
// question about order status changes. It is pure: decisions depend only
// on its inputs, never on stored state or the clock, so the same question
// always gets the same answer.
//
// Key responsibilities:
//   - Resolving allowed transitions from the lifecycle table
//   - Enforcing the rider assignment lock on dispatch-managed statuses
//   - Declaring which transitions need confirmation input and which
//     deserve a warning before submit
//
// Business rules:
//   - Admins bypass the rider assignment lock entirely
//   - A dispatch-managed order without an assigned rider is not locked
//   - Unknown statuses yield no transitions and thus nothing to lock
//
// Example usage:
//
//	policy := services.NewStatusPolicy()
//	lock := policy.CheckLock(ord.Status(), actor.Role(), ord.AssignedRiderID(), actor.UserID())
//	if lock.IsLocked {
//	    // Render lock.Message instead of the transition menu
//	    return
//	}
//	targets := policy.AllowedTransitions(ord.Status(), ord.FulfillmentType())
type StatusPolicy struct{}

// NewStatusPolicy creates a new StatusPolicy instance.
func NewStatusPolicy() StatusPolicy {
	return StatusPolicy{}
}

// AllowedTransitions resolves the transition targets for the given status
// and fulfillment type from the lifecycle table.
//
// The result is a fresh slice in presentation order. Terminal statuses,
// store sales and unrecognized tokens yield an empty slice.
func (p StatusPolicy) AllowedTransitions(status order.Status, fulfillmentType order.FulfillmentType) []order.Status {
	return status.AllowedTransitions(fulfillmentType)
}

// CanTransition reports whether a direct transition is allowed under the
// given fulfillment type.
func (p StatusPolicy) CanTransition(from, to order.Status, fulfillmentType order.FulfillmentType) bool {
	return from.CanTransitionTo(to, fulfillmentType)
}

// CheckLock decides whether the acting user may change the order's status.
//
// A status is locked when all of the following hold:
//   - the status is dispatch-managed
//   - the acting user is not an admin
//   - the order has an assigned rider
//   - the acting user is not that rider
//
// Sales-phase statuses are never locked. A dispatch-managed order with no
// rider yet is open to everyone, since there is nobody to defer to.
//
// Parameters:
//   - status: The order's current status
//   - role: The acting user's role
//   - assignedRiderID: The rider on the order, empty if none
//   - actingUserID: The acting user's identifier
//
// Returns:
//   - Lock: IsLocked plus the message to display when locked
func (p StatusPolicy) CheckLock(status order.Status, role staff.Role, assignedRiderID, actingUserID string) Lock {
	if !status.IsDispatchManaged() {
		return Lock{}
	}
	if role.IsAdmin() {
		return Lock{}
	}
	if assignedRiderID == "" {
		return Lock{}
	}
	if assignedRiderID == actingUserID {
		return Lock{}
	}

	return Lock{IsLocked: true, Message: LockMessage}
}

// getModals returns the mapping from transition targets to the extra
// input they require.
func getModals() map[order.Status]Modal {
	return map[order.Status]Modal{
		order.Assigned:          ModalSelectRider,
		order.HandoverToCourier: ModalSelectCourier,
		order.Cancelled:         ModalRequireReason,
		order.Rejected:          ModalRequireReason,
		order.ReturnInitiated:   ModalRequireReason,
		order.FollowUp:          ModalOptionalNote,
	}
}

// getWarnings returns the mapping from transition targets to the warning
// shown before submitting. Targets without an entry need no warning.
func getWarnings() map[order.Status]string {
	return map[order.Status]string{
		order.Converted:         "This will confirm the sale and queue the order for packing.",
		order.Packed:            "This will reserve stock for the order.",
		order.Assigned:          "The selected rider will be notified immediately.",
		order.OutForDelivery:    "The customer will be notified that the order is on its way.",
		order.HandoverToCourier: "The order will leave custody of the store.",
		order.Delivered:         "This will close the order and settle any collected amount.",
		order.Cancelled:         "This cancels the order and cannot be undone.",
		order.Rejected:          "This marks the order as refused by the customer and cannot be undone.",
		order.ReturnInitiated:   "This starts the return flow for the shipment.",
		order.Returned:          "This confirms returned goods were received back.",
	}
}

// RequiredModal returns the extra input needed to confirm a transition to
// the target status, or ModalNone when the transition can be submitted
// directly.
func (p StatusPolicy) RequiredModal(target order.Status) Modal {
	return getModals()[order.ParseStatus(string(target))]
}

// Warning returns the warning text to show before submitting a transition
// to the target status, or the empty string when no warning applies.
func (p StatusPolicy) Warning(target order.Status) string {
	return getWarnings()[order.ParseStatus(string(target))]
}
