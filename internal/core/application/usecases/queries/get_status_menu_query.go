package queries

import (
	"errors"

	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/staff"
	"backoffice/internal/pkg/guard"
)

var (
	ErrGetStatusMenuQueryIsNotConstructed = errors.New(
		"GetStatusMenuQuery must be created via NewGetStatusMenuQuery constructor",
	)
)

// GetStatusMenuQuery asks what status transitions the acting staff member
// may pick for one order, and what each pick would require.
//
// Example:
//
//	query, err := NewGetStatusMenuQuery(orderID, actor)
//	if err != nil {
//	    return err
//	}
//
//	menu, err := handler.Handle(ctx, query)
//	if menu.Locked {
//	    // Render the lock notice instead of the menu
//	}
type GetStatusMenuQuery struct {
	orderID order.ID
	actor   staff.Actor

	guard guard.ConstructorGuard
}

// NewGetStatusMenuQuery creates a query for an order's transition menu as
// seen by the given staff member.
func NewGetStatusMenuQuery(orderID order.ID, actor staff.Actor) (GetStatusMenuQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetStatusMenuQuery{}, err
	}

	return GetStatusMenuQuery{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStatusMenuQuery) Validate() error {
	return q.guard.Validate(ErrGetStatusMenuQueryIsNotConstructed)
}

// OrderID returns the order whose menu is requested.
func (q GetStatusMenuQuery) OrderID() order.ID {
	return q.orderID
}

// Actor returns the staff member the menu is computed for.
func (q GetStatusMenuQuery) Actor() staff.Actor {
	return q.actor
}
