package queries

import (
	"errors"

	"backoffice/internal/pkg/guard"
)

var (
	ErrGetOrderSourcesQueryIsNotConstructed = errors.New(
		"GetOrderSourcesQuery must be created via NewGetOrderSourcesQuery constructor",
	)
)

// GetOrderSourcesQuery retrieves the active order sources for the edit
// form dropdown. This is a parameterless query; the result is cached
// process-wide and refreshed on explicit invalidation.
type GetOrderSourcesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOrderSourcesQuery creates a query for the active order sources.
func NewGetOrderSourcesQuery() GetOrderSourcesQuery {
	return GetOrderSourcesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOrderSourcesQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderSourcesQueryIsNotConstructed)
}
