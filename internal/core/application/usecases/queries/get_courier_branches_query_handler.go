package queries

import (
	"context"

	"backoffice/internal/core/application/lookups"
	"backoffice/internal/core/domain/model/lookup"
)

// GetCourierBranchesQueryHandler serves the courier branch dropdown from
// the shared lookup cache.
type GetCourierBranchesQueryHandler struct {
	lookups *lookups.Service
}

// NewGetCourierBranchesQueryHandler creates a handler for courier branch
// queries.
func NewGetCourierBranchesQueryHandler(lookupService *lookups.Service) GetCourierBranchesQueryHandler {
	return GetCourierBranchesQueryHandler{lookups: lookupService}
}

// Handle returns the courier branches, fetched at most once per local
// calendar day unless invalidated earlier.
func (h GetCourierBranchesQueryHandler) Handle(ctx context.Context, query GetCourierBranchesQuery) ([]lookup.Option, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.lookups.Branches(ctx)
}
