package order

import (
	"fmt"
	"strings"

	"backoffice/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct back-office workflow.
//
// The lifecycle has two phases. The sales phase is identical for every
// fulfillment type; the dispatch phase branches on it:
//
//	intake ──> follow_up / converted / hold / cancelled / rejected
//	                          │
//	                          ▼ (dispatch, inside_valley)
//	packed ──> assigned ──> out_for_delivery ──> delivered
//	                          │                    rejected
//	                          └──> return_initiated ──> returned
//
//	                          ▼ (dispatch, outside_valley)
//	packed ──> handover_to_courier ──> in_transit ──> delivered
//	                                     rejected
//	                                     return_initiated ──> returned
//
// Store orders carry the store_sale status and never enter dispatch.
//
// Status is a value object that validates state transitions
// and provides string representations for transport and display.
type Status string

const (
	// Unknown represents a status token that could not be recognized.
	// This value (the empty string) helps catch uninitialized or
	// malformed statuses; unknown orders expose no transitions.
	Unknown Status = ""

	// Intake is the initial status of every remote order.
	// Orders in this status are waiting for a sales decision.
	Intake Status = "intake"

	// FollowUp marks an order waiting on a scheduled customer callback.
	FollowUp Status = "follow_up"

	// Converted marks a confirmed sale handed off to dispatch planning.
	// Sales staff have no further transitions from this status.
	Converted Status = "converted"

	// Hold parks an order that cannot progress yet.
	Hold Status = "hold"

	// Packed indicates stock has been reserved and boxed for the order.
	Packed Status = "packed"

	// Assigned indicates an inside-valley order has been given to a rider.
	Assigned Status = "assigned"

	// OutForDelivery indicates a rider is en route to the customer.
	OutForDelivery Status = "out_for_delivery"

	// HandoverToCourier indicates an outside-valley order has been passed
	// to a courier partner.
	HandoverToCourier Status = "handover_to_courier"

	// InTransit indicates a courier shipment is on its way.
	InTransit Status = "in_transit"

	// Delivered is the successful final status. No further transitions
	// are allowed.
	Delivered Status = "delivered"

	// Cancelled is the final status for orders called off before delivery.
	Cancelled Status = "cancelled"

	// Rejected is the final status for orders refused by the customer.
	Rejected Status = "rejected"

	// ReturnInitiated marks a refused shipment on its way back to the
	// warehouse.
	ReturnInitiated Status = "return_initiated"

	// Returned is the final status once returned goods are received.
	Returned Status = "returned"

	// StoreSale marks an over-the-counter sale. It has no onward
	// transitions.
	StoreSale Status = "store_sale"
)

// getStatusTokens returns a map of upstream tokens to Status values.
// Both "follow_up" and "followup" are included because the upstream API
// uses the underscore form for statuses and the compact form in some
// legacy payload fields.
func getStatusTokens() map[string]Status {
	return map[string]Status{
		"intake":              Intake,
		"follow_up":           FollowUp,
		"followup":            FollowUp,
		"converted":           Converted,
		"hold":                Hold,
		"packed":              Packed,
		"assigned":            Assigned,
		"out_for_delivery":    OutForDelivery,
		"handover_to_courier": HandoverToCourier,
		"in_transit":          InTransit,
		"delivered":           Delivered,
		"cancelled":           Cancelled,
		"rejected":            Rejected,
		"return_initiated":    ReturnInitiated,
		"returned":            Returned,
		"store_sale":          StoreSale,
	}
}

// getTerminalStatuses returns the set of statuses that end the lifecycle.
func getTerminalStatuses() map[Status]bool {
	return map[Status]bool{
		Delivered: true,
		Cancelled: true,
		Rejected:  true,
		Returned:  true,
	}
}

// getDispatchManagedStatuses returns the set of statuses owned by the
// dispatch phase. These statuses are subject to the rider assignment lock.
func getDispatchManagedStatuses() map[Status]bool {
	return map[Status]bool{
		Packed:            true,
		Assigned:          true,
		OutForDelivery:    true,
		HandoverToCourier: true,
		InTransit:         true,
		Rejected:          true,
		ReturnInitiated:   true,
		Returned:          true,
	}
}

// getSalesTransitions returns the transition table for the sales phase.
// Sales transitions do not depend on the fulfillment type.
func getSalesTransitions() map[Status][]Status {
	return map[Status][]Status{
		Intake:    {FollowUp, Converted, Hold, Cancelled, Rejected},
		FollowUp:  {Converted, Hold, Cancelled, Rejected},
		Hold:      {FollowUp, Converted, Cancelled, Rejected},
		Converted: {},
	}
}

// getDispatchTransitions returns the per-fulfillment-type transition
// tables for the dispatch phase. Store orders have no dispatch table.
func getDispatchTransitions() map[FulfillmentType]map[Status][]Status {
	return map[FulfillmentType]map[Status][]Status{
		InsideValley: {
			Packed:          {Assigned, OutForDelivery, Cancelled},
			Assigned:        {OutForDelivery, Cancelled},
			OutForDelivery:  {Delivered, Rejected, ReturnInitiated},
			ReturnInitiated: {Returned},
		},
		OutsideValley: {
			Packed:            {HandoverToCourier, Cancelled},
			HandoverToCourier: {InTransit},
			InTransit:         {Delivered, Rejected, ReturnInitiated},
			ReturnInitiated:   {Returned},
		},
	}
}

// ParseStatus maps an upstream status token to a Status.
//
// Matching is case-insensitive and ignores surrounding whitespace, so
// "Packed", "PACKED" and " packed " all parse to Packed.
//
// Unrecognized tokens map to Unknown rather than an error, so a new or
// malformed upstream status degrades to a read-only order instead of a
// crash or an accidental transition.
func ParseStatus(value string) Status {
	if status, ok := getStatusTokens()[strings.ToLower(strings.TrimSpace(value))]; ok {
		return status
	}
	return Unknown
}

// String returns the canonical wire representation of the status.
//
// Returns:
//   - the upstream token (e.g. "out_for_delivery") for recognized statuses,
//     folding arbitrary casing to the canonical form
//   - "unknown" for Unknown and unrecognized values
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if normalized := normalizeStatus(s); normalized != Unknown {
		return string(normalized)
	}
	return "unknown"
}

// Validate checks if the Status value is a recognized lifecycle status.
//
// Returns:
//   - nil if the status is valid
//   - error with details if the status is invalid
//
// This method is used to ensure Status values from external sources
// (e.g., API payloads, user input) are valid before use.
func (s Status) Validate() error {
	if _, ok := getStatusTokens()[strings.ToLower(strings.TrimSpace(string(s)))]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a recognized status", string(s)))
	}
	return nil
}

// IsTerminal reports whether the status ends the order lifecycle.
//
// Terminal statuses are delivered, cancelled, rejected and returned.
// Terminal orders accept no further transitions.
func (s Status) IsTerminal() bool {
	return getTerminalStatuses()[normalizeStatus(s)]
}

// IsDispatchManaged reports whether the status belongs to the dispatch
// phase of the lifecycle.
//
// Dispatch-managed statuses are packed, assigned, out_for_delivery,
// handover_to_courier, in_transit, rejected, return_initiated and
// returned. Orders in these statuses may only be updated by their
// assigned rider or an admin.
func (s Status) IsDispatchManaged() bool {
	return getDispatchManagedStatuses()[normalizeStatus(s)]
}

// AllowedTransitions returns the statuses this status may move to under
// the given fulfillment type, in presentation order.
//
// The sales phase returns the same targets for every fulfillment type,
// including an unrecognized one. The dispatch phase consults the
// per-fulfillment-type table, so a dispatch status under an unrecognized
// or store fulfillment type yields no targets.
//
// Terminal statuses, store_sale and Unknown always yield no targets.
//
// The result is a fresh non-nil slice; callers may modify it freely.
//
// Example:
//
//	order.Packed.AllowedTransitions(order.InsideValley)
//	// [assigned out_for_delivery cancelled]
func (s Status) AllowedTransitions(fulfillmentType FulfillmentType) []Status {
	current := normalizeStatus(s)
	if current == Unknown || current.IsTerminal() {
		return []Status{}
	}

	if targets, ok := getSalesTransitions()[current]; ok {
		return cloneStatuses(targets)
	}

	if perStatus, ok := getDispatchTransitions()[ParseFulfillmentType(string(fulfillmentType))]; ok {
		if targets, ok := perStatus[current]; ok {
			return cloneStatuses(targets)
		}
	}

	return []Status{}
}

// CanTransitionTo reports whether a direct transition to target is allowed
// under the given fulfillment type.
//
// An Unknown target is never allowed.
func (s Status) CanTransitionTo(target Status, fulfillmentType FulfillmentType) bool {
	want := normalizeStatus(target)
	if want == Unknown {
		return false
	}

	for _, allowed := range s.AllowedTransitions(fulfillmentType) {
		if allowed == want {
			return true
		}
	}
	return false
}

// normalizeStatus folds arbitrary casing and whitespace into the
// canonical Status value.
func normalizeStatus(s Status) Status {
	return ParseStatus(string(s))
}

// cloneStatuses returns a fresh non-nil copy of a transition target list.
func cloneStatuses(statuses []Status) []Status {
	cloned := make([]Status, len(statuses))
	copy(cloned, statuses)
	return cloned
}
