package commands

import (
	"errors"
	"strings"
	"time"

	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/staff"
	"backoffice/internal/pkg/guard"
)

var ErrConfirmStatusChangeCommandIsNotConstructed = errors.New(
	"ConfirmStatusChangeCommand must be created via NewConfirmStatusChangeCommand constructor",
)

// ConfirmDetails carries the extra input a transition's modal collected.
// Fields the chosen target does not need are ignored. String fields are
// trimmed on construction.
type ConfirmDetails struct {
	FollowupDate      *time.Time
	FollowupReason    string
	AssignedRiderID   string
	CourierPartner    string
	CourierTrackingID string
	Reason            string
}

// ConfirmStatusChangeCommand confirms a requested status transition and
// submits it upstream, together with whatever extra input the transition's
// modal collected.
//
// Example:
//
//	cmd, err := NewConfirmStatusChangeCommand(orderID, order.Assigned, actor, ConfirmDetails{
//	    AssignedRiderID: "rider-7",
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid confirmation: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
type ConfirmStatusChangeCommand struct { //nolint:recvcheck //using for validation
	orderID order.ID
	target  order.Status
	actor   staff.Actor
	details ConfirmDetails

	guard guard.ConstructorGuard
}

// NewConfirmStatusChangeCommand creates a command to confirm and submit a
// status transition. Validates that the order ID is constructed and the
// target is a recognized status token; the token is normalized for
// comparison. Which detail fields are mandatory depends on the target and
// is checked by the handler.
func NewConfirmStatusChangeCommand(orderID order.ID, target order.Status, actor staff.Actor, details ConfirmDetails) (ConfirmStatusChangeCommand, error) {
	command := ConfirmStatusChangeCommand{
		guard: guard.NewConstructorGuard(),
		actor: actor,
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setTarget(target),
	); err != nil {
		return ConfirmStatusChangeCommand{}, err
	}

	command.setDetails(details)
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmStatusChangeCommand) Validate() error {
	return c.guard.Validate(ErrConfirmStatusChangeCommandIsNotConstructed)
}

// OrderID returns the order the confirmation targets.
func (c ConfirmStatusChangeCommand) OrderID() order.ID {
	return c.orderID
}

// Target returns the normalized target status.
func (c ConfirmStatusChangeCommand) Target() order.Status {
	return c.target
}

// Actor returns the staff member confirming the transition.
func (c ConfirmStatusChangeCommand) Actor() staff.Actor {
	return c.actor
}

// Details returns the modal input attached to the confirmation. The
// followup date, when set, is a private copy.
func (c ConfirmStatusChangeCommand) Details() ConfirmDetails {
	details := c.details
	if c.details.FollowupDate != nil {
		date := *c.details.FollowupDate
		details.FollowupDate = &date
	}

	return details
}

func (c *ConfirmStatusChangeCommand) setOrderID(orderID order.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ConfirmStatusChangeCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = order.ParseStatus(string(target))
	return nil
}

func (c *ConfirmStatusChangeCommand) setDetails(details ConfirmDetails) {
	c.details = ConfirmDetails{
		FollowupReason:    strings.TrimSpace(details.FollowupReason),
		AssignedRiderID:   strings.TrimSpace(details.AssignedRiderID),
		CourierPartner:    strings.TrimSpace(details.CourierPartner),
		CourierTrackingID: strings.TrimSpace(details.CourierTrackingID),
		Reason:            strings.TrimSpace(details.Reason),
	}
	if details.FollowupDate != nil {
		date := *details.FollowupDate
		c.details.FollowupDate = &date
	}
}
