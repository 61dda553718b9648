package ports

import (
	"context"

	"backoffice/internal/core/domain/model/lookup"
)

// BranchDirectory is the contract to the courier partner's branch listing,
// used to populate the destination branch dropdown for outside-valley
// orders. The listing changes rarely, so callers cache it aggressively.
type BranchDirectory interface {
	// Branches retrieves the courier partner's branch list.
	Branches(ctx context.Context) ([]lookup.Option, error)
}
