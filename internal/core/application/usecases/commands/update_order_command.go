package commands

import (
	"errors"

	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand edits an order's plain fields, such as the shipping
// address or staff remarks. Status is never part of a field edit; status
// changes go through the transition commands.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID order.ID
	patch   order.Patch

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a command to edit order fields. The patch
// must carry at least one field.
func NewUpdateOrderCommand(orderID order.ID, patch order.Patch) (UpdateOrderCommand, error) {
	command := UpdateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setPatch(patch),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderID returns the order being edited.
func (c UpdateOrderCommand) OrderID() order.ID {
	return c.orderID
}

// Patch returns a copy of the field edits.
func (c UpdateOrderCommand) Patch() order.Patch {
	return copyPatch(c.patch)
}

func (c *UpdateOrderCommand) setOrderID(orderID order.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setPatch(patch order.Patch) error {
	if patch.IsEmpty() {
		return errs.NewValueIsRequiredError("patch fields")
	}

	c.patch = copyPatch(patch)
	return nil
}

func copyPatch(patch order.Patch) order.Patch {
	copied := order.Patch{}
	if patch.DestinationBranch != nil {
		value := *patch.DestinationBranch
		copied.DestinationBranch = &value
	}
	if patch.ShippingAddress != nil {
		value := *patch.ShippingAddress
		copied.ShippingAddress = &value
	}
	if patch.StaffRemarks != nil {
		value := *patch.StaffRemarks
		copied.StaffRemarks = &value
	}
	if patch.SourceID != nil {
		value := *patch.SourceID
		copied.SourceID = &value
	}
	return copied
}
