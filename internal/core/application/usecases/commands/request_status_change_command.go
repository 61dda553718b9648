package commands

import (
	"errors"

	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/staff"
	"backoffice/internal/pkg/guard"
)

var ErrRequestStatusChangeCommandIsNotConstructed = errors.New(
	"RequestStatusChangeCommand must be created via NewRequestStatusChangeCommand constructor",
)

// RequestStatusChangeCommand represents a staff member picking a target
// status from an order's transition menu. It answers what must happen
// next: nothing, a lock notice, a confirmation dialog, or an input modal.
//
// Example:
//
//	cmd, err := NewRequestStatusChangeCommand(orderID, order.Assigned, actor)
//	if err != nil {
//	    return fmt.Errorf("invalid request: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	switch result.Outcome {
//	case OutcomeModalRequired:
//	    // Open the modal named by result.Modal, then confirm
//	case OutcomeStaged:
//	    // Show result.Warning and a confirm button
//	}
type RequestStatusChangeCommand struct { //nolint:recvcheck //using for validation
	orderID order.ID
	target  order.Status
	actor   staff.Actor

	guard guard.ConstructorGuard
}

// NewRequestStatusChangeCommand creates a command to request a status
// transition. Validates that the order ID is constructed and the target
// is a recognized status token; the token is normalized for comparison.
func NewRequestStatusChangeCommand(orderID order.ID, target order.Status, actor staff.Actor) (RequestStatusChangeCommand, error) {
	command := RequestStatusChangeCommand{
		guard: guard.NewConstructorGuard(),
		actor: actor,
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setTarget(target),
	); err != nil {
		return RequestStatusChangeCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestStatusChangeCommand) Validate() error {
	return c.guard.Validate(ErrRequestStatusChangeCommandIsNotConstructed)
}

// OrderID returns the order the request targets.
func (c RequestStatusChangeCommand) OrderID() order.ID {
	return c.orderID
}

// Target returns the normalized target status.
func (c RequestStatusChangeCommand) Target() order.Status {
	return c.target
}

// Actor returns the staff member making the request.
func (c RequestStatusChangeCommand) Actor() staff.Actor {
	return c.actor
}

func (c *RequestStatusChangeCommand) setOrderID(orderID order.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RequestStatusChangeCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = order.ParseStatus(string(target))
	return nil
}
