// Package lookups caches the reference lists behind order edit forms.
// Lookups change rarely but are requested on every form open, so each
// list is fetched once and shared; concurrent first requests coalesce
// into a single upstream call.
package lookups

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"backoffice/internal/core/domain/model/lookup"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"
)

// SourceProvider supplies the active order sources. ports.OrderGateway
// satisfies it.
type SourceProvider interface {
	ActiveSources(ctx context.Context) ([]lookup.Option, error)
}

// Service caches the order source and courier branch lists.
//
// Sources are cached until Invalidate is called, typically from the
// settings-changed hook. Branches additionally expire when the local
// calendar day changes, because the courier partner publishes its branch
// list daily.
//
// A fetch error is returned to the caller and nothing is cached, so the
// next request retries.
type Service struct {
	sources  SourceProvider
	branches ports.BranchDirectory

	group singleflight.Group

	mu             sync.RWMutex
	cachedSources  []lookup.Option
	sourcesLoaded  bool
	cachedBranches []lookup.Option
	branchesLoaded bool
	branchesAt     time.Time

	// generation fences fetches against a concurrent Invalidate: a fetch
	// started before the invalidation must not repopulate the cache.
	generation uint64

	now      func() time.Time
	location *time.Location
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithClock replaces the wall clock, letting tests drive the branch
// cache's daily expiry.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a lookup cache over the given providers. The
// location anchors the branch cache's daily expiry; nil means the
// process-local timezone.
func NewService(sources SourceProvider, branches ports.BranchDirectory, location *time.Location, opts ...ServiceOption) (*Service, error) {
	if sources == nil {
		return nil, errs.NewValueIsRequiredError("sources")
	}
	if branches == nil {
		return nil, errs.NewValueIsRequiredError("branches")
	}
	if location == nil {
		location = time.Local
	}

	service := &Service{
		sources:  sources,
		branches: branches,
		now:      time.Now,
		location: location,
	}

	for _, opt := range opts {
		opt(service)
	}

	return service, nil
}

// Sources returns the active order sources, fetching them at most once
// until the cache is invalidated. Concurrent first callers share a single
// upstream call and its result.
func (s *Service) Sources(ctx context.Context) ([]lookup.Option, error) {
	s.mu.RLock()
	if s.sourcesLoaded {
		cached := cloneOptions(s.cachedSources)
		s.mu.RUnlock()
		return cached, nil
	}
	generation := s.generation
	s.mu.RUnlock()

	result, err, _ := s.group.Do("sources", func() (any, error) {
		s.mu.RLock()
		if s.sourcesLoaded {
			cached := cloneOptions(s.cachedSources)
			s.mu.RUnlock()
			return cached, nil
		}
		s.mu.RUnlock()

		options, err := s.sources.ActiveSources(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		if s.generation == generation {
			s.cachedSources = cloneOptions(options)
			s.sourcesLoaded = true
		}
		s.mu.Unlock()

		return options, nil
	})
	if err != nil {
		return nil, err
	}

	return cloneOptions(result.([]lookup.Option)), nil
}

// Branches returns the courier branch list, fetching it at most once per
// local calendar day. Concurrent first callers share a single upstream
// call and its result.
func (s *Service) Branches(ctx context.Context) ([]lookup.Option, error) {
	s.mu.RLock()
	if s.branchesLoaded && s.sameLocalDay(s.branchesAt, s.now()) {
		cached := cloneOptions(s.cachedBranches)
		s.mu.RUnlock()
		return cached, nil
	}
	generation := s.generation
	s.mu.RUnlock()

	result, err, _ := s.group.Do("branches", func() (any, error) {
		s.mu.RLock()
		if s.branchesLoaded && s.sameLocalDay(s.branchesAt, s.now()) {
			cached := cloneOptions(s.cachedBranches)
			s.mu.RUnlock()
			return cached, nil
		}
		s.mu.RUnlock()

		options, err := s.branches.Branches(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		if s.generation == generation {
			s.cachedBranches = cloneOptions(options)
			s.branchesLoaded = true
			s.branchesAt = s.now()
		}
		s.mu.Unlock()

		return options, nil
	})
	if err != nil {
		return nil, err
	}

	return cloneOptions(result.([]lookup.Option)), nil
}

// RefreshBranches drops the branch cache and warms it with a fresh fetch.
// The nightly refresh job calls this just after the local day boundary.
func (s *Service) RefreshBranches(ctx context.Context) error {
	s.mu.Lock()
	s.branchesLoaded = false
	s.cachedBranches = nil
	s.generation++
	s.mu.Unlock()

	_, err := s.Branches(ctx)
	return err
}

// Invalidate drops both caches. The next request for each list fetches
// it again. Called when a settings change may have altered the lists.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sourcesLoaded = false
	s.cachedSources = nil
	s.branchesLoaded = false
	s.cachedBranches = nil
	s.generation++
}

// sameLocalDay reports whether both instants fall on the same calendar
// day in the service's location.
func (s *Service) sameLocalDay(a, b time.Time) bool {
	aYear, aMonth, aDay := a.In(s.location).Date()
	bYear, bMonth, bDay := b.In(s.location).Date()
	return aYear == bYear && aMonth == bMonth && aDay == bDay
}

func cloneOptions(options []lookup.Option) []lookup.Option {
	cloned := make([]lookup.Option, len(options))
	copy(cloned, options)
	return cloned
}
