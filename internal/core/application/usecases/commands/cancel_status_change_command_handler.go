package commands

import (
	"context"

	"backoffice/internal/core/application/orderview"
)

// CancelStatusChangeCommandHandler drops a staged transition and returns
// the view to Idle. Nothing was applied or submitted at that point, so
// there is nothing to roll back and no upstream call to make.
type CancelStatusChangeCommandHandler struct {
	registry *orderview.Registry
}

// NewCancelStatusChangeCommandHandler creates a handler for abandoning
// staged transitions.
func NewCancelStatusChangeCommandHandler(registry *orderview.Registry) CancelStatusChangeCommandHandler {
	return CancelStatusChangeCommandHandler{
		registry: registry,
	}
}

// Handle processes the cancellation. Returns
// orderview.ErrNoStagedTransition when the view is idle and
// orderview.ErrTransitionInFlight when the submit already started; an
// in-flight upstream call cannot be recalled.
func (h CancelStatusChangeCommandHandler) Handle(ctx context.Context, command CancelStatusChangeCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	view, err := h.registry.Get(command.OrderID())
	if err != nil {
		return err
	}

	return view.CancelStaged()
}
