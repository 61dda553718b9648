package commands

import (
	"errors"
	"strings"

	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/staff"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var ErrBulkStatusChangeCommandIsNotConstructed = errors.New(
	"BulkStatusChangeCommand must be created via NewBulkStatusChangeCommand constructor",
)

// BulkStatusChangeCommand applies one target status to a selection of
// orders in a single upstream call.
//
// Cancelling in bulk is destructive, so the command carries an explicit
// acknowledgement flag; the handler refuses a bulk cancellation without it
// before any upstream call is made.
type BulkStatusChangeCommand struct { //nolint:recvcheck //using for validation
	orderIDs                 []order.ID
	target                   order.Status
	reason                   string
	cancellationAcknowledged bool
	actor                    staff.Actor

	guard guard.ConstructorGuard
}

// NewBulkStatusChangeCommand creates a command to update the status of
// several orders at once. The selection must be non-empty and every ID
// constructed; the target must be a recognized status token.
func NewBulkStatusChangeCommand(orderIDs []order.ID, target order.Status, actor staff.Actor, reason string, cancellationAcknowledged bool) (BulkStatusChangeCommand, error) {
	command := BulkStatusChangeCommand{
		guard:                    guard.NewConstructorGuard(),
		actor:                    actor,
		reason:                   strings.TrimSpace(reason),
		cancellationAcknowledged: cancellationAcknowledged,
	}

	if err := errors.Join(
		command.setOrderIDs(orderIDs),
		command.setTarget(target),
	); err != nil {
		return BulkStatusChangeCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c BulkStatusChangeCommand) Validate() error {
	return c.guard.Validate(ErrBulkStatusChangeCommandIsNotConstructed)
}

// OrderIDs returns a copy of the selected order identifiers.
func (c BulkStatusChangeCommand) OrderIDs() []order.ID {
	ids := make([]order.ID, len(c.orderIDs))
	copy(ids, c.orderIDs)
	return ids
}

// Target returns the normalized status every selected order moves to.
func (c BulkStatusChangeCommand) Target() order.Status {
	return c.target
}

// Reason returns the reason attached to the bulk update, if any.
func (c BulkStatusChangeCommand) Reason() string {
	return c.reason
}

// CancellationAcknowledged reports whether the staff member explicitly
// confirmed a bulk cancellation.
func (c BulkStatusChangeCommand) CancellationAcknowledged() bool {
	return c.cancellationAcknowledged
}

// Actor returns the staff member running the bulk update.
func (c BulkStatusChangeCommand) Actor() staff.Actor {
	return c.actor
}

func (c *BulkStatusChangeCommand) setOrderIDs(orderIDs []order.ID) error {
	if len(orderIDs) == 0 {
		return errs.NewValueIsRequiredError("order ids")
	}

	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.orderIDs = make([]order.ID, len(orderIDs))
	copy(c.orderIDs, orderIDs)
	return nil
}

func (c *BulkStatusChangeCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = order.ParseStatus(string(target))
	return nil
}
