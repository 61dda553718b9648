package commands

import (
	"errors"

	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/pkg/guard"
)

var ErrCancelStatusChangeCommandIsNotConstructed = errors.New(
	"CancelStatusChangeCommand must be created via NewCancelStatusChangeCommand constructor",
)

// CancelStatusChangeCommand abandons a staged status transition before it
// is submitted. Cancelling never talks to the upstream system.
type CancelStatusChangeCommand struct { //nolint:recvcheck //using for validation
	orderID order.ID

	guard guard.ConstructorGuard
}

// NewCancelStatusChangeCommand creates a command to abandon a staged
// transition on the given order.
func NewCancelStatusChangeCommand(orderID order.ID) (CancelStatusChangeCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CancelStatusChangeCommand{}, err
	}

	return CancelStatusChangeCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelStatusChangeCommand) Validate() error {
	return c.guard.Validate(ErrCancelStatusChangeCommandIsNotConstructed)
}

// OrderID returns the order whose staged transition is abandoned.
func (c CancelStatusChangeCommand) OrderID() order.ID {
	return c.orderID
}
