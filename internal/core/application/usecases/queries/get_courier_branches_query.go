package queries

import (
	"errors"

	"backoffice/internal/pkg/guard"
)

var (
	ErrGetCourierBranchesQueryIsNotConstructed = errors.New(
		"GetCourierBranchesQuery must be created via NewGetCourierBranchesQuery constructor",
	)
)

// GetCourierBranchesQuery retrieves the courier branch list for the
// destination branch dropdown. The underlying cache expires at local
// midnight, so the first query of each day refetches.
type GetCourierBranchesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetCourierBranchesQuery creates a query for the courier branches.
func NewGetCourierBranchesQuery() GetCourierBranchesQuery {
	return GetCourierBranchesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetCourierBranchesQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierBranchesQueryIsNotConstructed)
}
