package lookups_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"backoffice/internal/core/application/lookups"
	"backoffice/internal/core/domain/model/lookup"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSourceProvider struct {
	mock.Mock
}

func (m *MockSourceProvider) ActiveSources(ctx context.Context) ([]lookup.Option, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]lookup.Option), args.Error(1)
}

type MockBranchDirectory struct {
	mock.Mock
}

func (m *MockBranchDirectory) Branches(ctx context.Context) ([]lookup.Option, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]lookup.Option), args.Error(1)
}

func kathmandu() *time.Location {
	return time.FixedZone("NPT", 5*3600+45*60)
}

func sampleSources() []lookup.Option {
	return []lookup.Option{
		{Value: "src-web", Label: "Website"},
		{Value: "src-phone", Label: "Phone"},
	}
}

func sampleBranches() []lookup.Option {
	return []lookup.Option{
		{Value: "KTM-01", Label: "Kathmandu Main"},
		{Value: "PKR-02", Label: "Pokhara Lakeside"},
	}
}

func TestNewService(t *testing.T) {
	t.Run("should require both providers", func(t *testing.T) {
		_, err := lookups.NewService(nil, &MockBranchDirectory{}, kathmandu())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sources")

		_, err = lookups.NewService(&MockSourceProvider{}, nil, kathmandu())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "branches")
	})

	t.Run("should accept a nil location", func(t *testing.T) {
		service, err := lookups.NewService(&MockSourceProvider{}, &MockBranchDirectory{}, nil)
		require.NoError(t, err)
		assert.NotNil(t, service)
	})
}

func TestService_Sources(t *testing.T) {
	t.Run("should fetch once and serve from cache", func(t *testing.T) {
		sources := &MockSourceProvider{}
		sources.On("ActiveSources", mock.Anything).Return(sampleSources(), nil).Once()
		service, err := lookups.NewService(sources, &MockBranchDirectory{}, kathmandu())
		require.NoError(t, err)

		first, err := service.Sources(context.Background())
		require.NoError(t, err)
		second, err := service.Sources(context.Background())
		require.NoError(t, err)

		assert.Equal(t, sampleSources(), first)
		assert.Equal(t, sampleSources(), second)
		sources.AssertNumberOfCalls(t, "ActiveSources", 1)
	})

	t.Run("should coalesce concurrent first requests into one fetch", func(t *testing.T) {
		sources := &MockSourceProvider{}
		sources.On("ActiveSources", mock.Anything).
			Run(func(mock.Arguments) { time.Sleep(20 * time.Millisecond) }).
			Return(sampleSources(), nil)
		service, err := lookups.NewService(sources, &MockBranchDirectory{}, kathmandu())
		require.NoError(t, err)

		const goroutines = 10
		var wg sync.WaitGroup
		results := make([][]lookup.Option, goroutines)
		errs := make([]error, goroutines)

		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], errs[i] = service.Sources(context.Background())
			}(i)
		}
		wg.Wait()

		for i := 0; i < goroutines; i++ {
			require.NoError(t, errs[i])
			assert.Equal(t, sampleSources(), results[i])
		}
		sources.AssertNumberOfCalls(t, "ActiveSources", 1)
	})

	t.Run("should not cache a failed fetch", func(t *testing.T) {
		sources := &MockSourceProvider{}
		sources.On("ActiveSources", mock.Anything).Return(nil, errors.New("upstream down")).Once()
		sources.On("ActiveSources", mock.Anything).Return(sampleSources(), nil).Once()
		service, err := lookups.NewService(sources, &MockBranchDirectory{}, kathmandu())
		require.NoError(t, err)

		_, err = service.Sources(context.Background())
		require.Error(t, err)

		recovered, err := service.Sources(context.Background())
		require.NoError(t, err)
		assert.Equal(t, sampleSources(), recovered)
		sources.AssertNumberOfCalls(t, "ActiveSources", 2)
	})

	t.Run("should hand out independent copies", func(t *testing.T) {
		sources := &MockSourceProvider{}
		sources.On("ActiveSources", mock.Anything).Return(sampleSources(), nil).Once()
		service, err := lookups.NewService(sources, &MockBranchDirectory{}, kathmandu())
		require.NoError(t, err)

		first, err := service.Sources(context.Background())
		require.NoError(t, err)
		first[0].Label = "tampered"

		second, err := service.Sources(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Website", second[0].Label)
	})
}

func TestService_Branches(t *testing.T) {
	t.Run("should serve from cache within the same local day", func(t *testing.T) {
		branches := &MockBranchDirectory{}
		branches.On("Branches", mock.Anything).Return(sampleBranches(), nil).Once()
		now := time.Date(2024, 11, 3, 9, 0, 0, 0, kathmandu())
		service, err := lookups.NewService(&MockSourceProvider{}, branches, kathmandu(),
			lookups.WithClock(func() time.Time { return now }))
		require.NoError(t, err)

		_, err = service.Branches(context.Background())
		require.NoError(t, err)

		now = time.Date(2024, 11, 3, 23, 59, 0, 0, kathmandu())
		cached, err := service.Branches(context.Background())
		require.NoError(t, err)

		assert.Equal(t, sampleBranches(), cached)
		branches.AssertNumberOfCalls(t, "Branches", 1)
	})

	t.Run("should refetch after the local day boundary", func(t *testing.T) {
		branches := &MockBranchDirectory{}
		branches.On("Branches", mock.Anything).Return(sampleBranches(), nil).Twice()
		now := time.Date(2024, 11, 3, 23, 50, 0, 0, kathmandu())
		service, err := lookups.NewService(&MockSourceProvider{}, branches, kathmandu(),
			lookups.WithClock(func() time.Time { return now }))
		require.NoError(t, err)

		_, err = service.Branches(context.Background())
		require.NoError(t, err)

		// 20 minutes later it is already November 4th in Kathmandu.
		now = now.Add(20 * time.Minute)
		_, err = service.Branches(context.Background())
		require.NoError(t, err)

		branches.AssertNumberOfCalls(t, "Branches", 2)
	})

	t.Run("should anchor the day boundary to the configured location", func(t *testing.T) {
		branches := &MockBranchDirectory{}
		branches.On("Branches", mock.Anything).Return(sampleBranches(), nil).Once()
		// 23:50 UTC on Nov 3 is already 05:35 on Nov 4 in Kathmandu; an
		// hour later it is still Nov 4 there, so the cache must hold.
		now := time.Date(2024, 11, 3, 23, 50, 0, 0, time.UTC)
		service, err := lookups.NewService(&MockSourceProvider{}, branches, kathmandu(),
			lookups.WithClock(func() time.Time { return now }))
		require.NoError(t, err)

		_, err = service.Branches(context.Background())
		require.NoError(t, err)

		now = now.Add(time.Hour)
		_, err = service.Branches(context.Background())
		require.NoError(t, err)

		branches.AssertNumberOfCalls(t, "Branches", 1)
	})

	t.Run("should not cache a failed fetch", func(t *testing.T) {
		branches := &MockBranchDirectory{}
		branches.On("Branches", mock.Anything).Return(nil, errors.New("timeout")).Once()
		branches.On("Branches", mock.Anything).Return(sampleBranches(), nil).Once()
		service, err := lookups.NewService(&MockSourceProvider{}, branches, kathmandu())
		require.NoError(t, err)

		_, err = service.Branches(context.Background())
		require.Error(t, err)

		recovered, err := service.Branches(context.Background())
		require.NoError(t, err)
		assert.Equal(t, sampleBranches(), recovered)
	})
}

func TestService_Invalidate(t *testing.T) {
	t.Run("should force both lists to refetch", func(t *testing.T) {
		sources := &MockSourceProvider{}
		sources.On("ActiveSources", mock.Anything).Return(sampleSources(), nil).Twice()
		branches := &MockBranchDirectory{}
		branches.On("Branches", mock.Anything).Return(sampleBranches(), nil).Twice()
		service, err := lookups.NewService(sources, branches, kathmandu())
		require.NoError(t, err)

		_, err = service.Sources(context.Background())
		require.NoError(t, err)
		_, err = service.Branches(context.Background())
		require.NoError(t, err)

		service.Invalidate()

		_, err = service.Sources(context.Background())
		require.NoError(t, err)
		_, err = service.Branches(context.Background())
		require.NoError(t, err)

		sources.AssertNumberOfCalls(t, "ActiveSources", 2)
		branches.AssertNumberOfCalls(t, "Branches", 2)
	})
}

func TestService_RefreshBranches(t *testing.T) {
	t.Run("should drop and rewarm the branch cache", func(t *testing.T) {
		sources := &MockSourceProvider{}
		sources.On("ActiveSources", mock.Anything).Return(sampleSources(), nil).Once()
		branches := &MockBranchDirectory{}
		branches.On("Branches", mock.Anything).Return(sampleBranches(), nil).Twice()
		service, err := lookups.NewService(sources, branches, kathmandu())
		require.NoError(t, err)

		_, err = service.Branches(context.Background())
		require.NoError(t, err)
		_, err = service.Sources(context.Background())
		require.NoError(t, err)

		require.NoError(t, service.RefreshBranches(context.Background()))

		// Branches were refetched by the refresh itself; sources were not
		// touched.
		_, err = service.Branches(context.Background())
		require.NoError(t, err)
		branches.AssertNumberOfCalls(t, "Branches", 2)
		sources.AssertNumberOfCalls(t, "ActiveSources", 1)
	})

	t.Run("should surface a failed rewarm", func(t *testing.T) {
		branches := &MockBranchDirectory{}
		branches.On("Branches", mock.Anything).Return(nil, errors.New("timeout")).Once()
		service, err := lookups.NewService(&MockSourceProvider{}, branches, kathmandu())
		require.NoError(t, err)

		require.Error(t, service.RefreshBranches(context.Background()))
	})
}
