// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
//
// Reads never mutate order state: listing goes to the upstream system and
// lands in the view registry, menus and notifications come from local
// state that commands maintain.
package queries

import (
	"context"

	"backoffice/internal/core/ports"
)

// OrderLister is the slice of the order gateway the read side needs.
type OrderLister interface {
	List(ctx context.Context, filter ports.OrderListFilter) (ports.OrderPage, error)
}
