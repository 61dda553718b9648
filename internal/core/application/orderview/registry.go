package orderview

import (
	"sync"

	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/pkg/errs"
)

// Registry indexes views by order ID so that every part of the process
// works against the same per-order state. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	views map[string]*View
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		views: make(map[string]*View),
	}
}

// Track registers an order, returning its view and whether it was newly
// created. An already tracked order is refreshed with the given snapshot
// instead; busy views keep their optimistic state and skip the refresh.
func (r *Registry) Track(ord *order.Order) (*View, bool, error) {
	if err := ord.Validate(); err != nil {
		return nil, false, err
	}

	key := ord.ID().String()

	r.mu.RLock()
	view, ok := r.views[key]
	r.mu.RUnlock()

	if ok {
		view.RefreshFromServer(ord)
		return view, false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under the write lock; another goroutine may have won.
	if view, ok = r.views[key]; ok {
		view.RefreshFromServer(ord)
		return view, false, nil
	}

	view, err := NewView(ord)
	if err != nil {
		return nil, false, err
	}

	r.views[key] = view
	return view, true, nil
}

// Get returns the view for the given order ID.
// Returns an ObjectNotFoundError for orders that were never tracked.
func (r *Registry) Get(id order.ID) (*View, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	view, ok := r.views[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return view, nil
}

// Len returns the number of tracked orders.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.views)
}
