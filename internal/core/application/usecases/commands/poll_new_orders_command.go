package commands

import (
	"errors"

	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var ErrPollNewOrdersCommandIsNotConstructed = errors.New(
	"PollNewOrdersCommand must be created via NewPollNewOrdersCommand constructor",
)

const (
	minPollLimit = 1
	maxPollLimit = 200
)

// PollNewOrdersCommand fetches the newest orders from the upstream system
// and tracks them locally. Notify controls whether newly seen orders
// raise an info notification; the first poll after startup runs silently
// so a full backlog does not read as "new".
type PollNewOrdersCommand struct { //nolint:recvcheck //using for validation
	limit  int
	notify bool

	guard guard.ConstructorGuard
}

// NewPollNewOrdersCommand creates a command to poll for new orders. Limit
// is how many of the newest orders to fetch, between 1 and 200.
func NewPollNewOrdersCommand(limit int, notify bool) (PollNewOrdersCommand, error) {
	if limit < minPollLimit || limit > maxPollLimit {
		return PollNewOrdersCommand{}, errs.NewValueIsOutOfRangeError("limit", limit, minPollLimit, maxPollLimit)
	}

	return PollNewOrdersCommand{
		limit:  limit,
		notify: notify,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PollNewOrdersCommand) Validate() error {
	return c.guard.Validate(ErrPollNewOrdersCommandIsNotConstructed)
}

// Limit returns how many of the newest orders to fetch.
func (c PollNewOrdersCommand) Limit() int {
	return c.limit
}

// Notify reports whether newly seen orders raise a notification.
func (c PollNewOrdersCommand) Notify() bool {
	return c.notify
}
