package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"backoffice/internal/core/application/lookups"
	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/model/lookup"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSourcesQueryProvider struct{ mock.Mock }

func (m *MockSourcesQueryProvider) ActiveSources(ctx context.Context) ([]lookup.Option, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]lookup.Option), args.Error(1)
}

type MockSourcesQueryBranchDirectory struct{ mock.Mock }

func (m *MockSourcesQueryBranchDirectory) Branches(ctx context.Context) ([]lookup.Option, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]lookup.Option), args.Error(1)
}

func TestGetOrderSourcesQueryHandler_Handle_ReturnsCachedSources(t *testing.T) {
	provider := &MockSourcesQueryProvider{}
	provider.On("ActiveSources", mock.Anything).Return([]lookup.Option{
		{Value: "src-1", Label: "Facebook"},
		{Value: "src-2", Label: "Phone"},
	}, nil).Once()

	service, err := lookups.NewService(provider, &MockSourcesQueryBranchDirectory{}, time.UTC)
	require.NoError(t, err)
	handler := queries.NewGetOrderSourcesQueryHandler(service)

	first, err := handler.Handle(context.Background(), queries.NewGetOrderSourcesQuery())
	require.NoError(t, err)
	assert.Equal(t, []lookup.Option{
		{Value: "src-1", Label: "Facebook"},
		{Value: "src-2", Label: "Phone"},
	}, first)

	second, err := handler.Handle(context.Background(), queries.NewGetOrderSourcesQuery())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	provider.AssertNumberOfCalls(t, "ActiveSources", 1)
}

func TestGetOrderSourcesQueryHandler_Handle_ProviderFailure(t *testing.T) {
	provider := &MockSourcesQueryProvider{}
	provider.On("ActiveSources", mock.Anything).Return(nil, errors.New("timeout")).Once()

	service, err := lookups.NewService(provider, &MockSourcesQueryBranchDirectory{}, time.UTC)
	require.NoError(t, err)
	handler := queries.NewGetOrderSourcesQueryHandler(service)

	_, err = handler.Handle(context.Background(), queries.NewGetOrderSourcesQuery())
	require.Error(t, err)
}

func TestGetOrderSourcesQueryHandler_Handle_InvalidQuery(t *testing.T) {
	service, err := lookups.NewService(&MockSourcesQueryProvider{}, &MockSourcesQueryBranchDirectory{}, time.UTC)
	require.NoError(t, err)
	handler := queries.NewGetOrderSourcesQueryHandler(service)

	_, err = handler.Handle(context.Background(), queries.GetOrderSourcesQuery{})
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOrderSourcesQueryIsNotConstructed)
}
