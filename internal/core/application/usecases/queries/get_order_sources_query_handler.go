package queries

import (
	"context"

	"backoffice/internal/core/application/lookups"
	"backoffice/internal/core/domain/model/lookup"
)

// GetOrderSourcesQueryHandler serves the order source dropdown from the
// shared lookup cache.
type GetOrderSourcesQueryHandler struct {
	lookups *lookups.Service
}

// NewGetOrderSourcesQueryHandler creates a handler for order source
// queries.
func NewGetOrderSourcesQueryHandler(lookupService *lookups.Service) GetOrderSourcesQueryHandler {
	return GetOrderSourcesQueryHandler{lookups: lookupService}
}

// Handle returns the active order sources, fetching them at most once
// until the cache is invalidated.
func (h GetOrderSourcesQueryHandler) Handle(ctx context.Context, query GetOrderSourcesQuery) ([]lookup.Option, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.lookups.Sources(ctx)
}
