package queries_test

import (
	"testing"
	"time"

	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrdersQuery_Defaults(t *testing.T) {
	query, err := queries.NewGetOrdersQuery(0, 0, queries.GetOrdersFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, query.Page())
	assert.Equal(t, 20, query.Limit())
	assert.Equal(t, order.Unknown, query.Status())
	assert.Equal(t, order.FulfillmentUnknown, query.FulfillmentType())
	assert.Nil(t, query.DateFrom())
	assert.Nil(t, query.DateTo())
}

func TestNewGetOrdersQuery_FullFilter(t *testing.T) {
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	query, err := queries.NewGetOrdersQuery(2, 50, queries.GetOrdersFilter{
		Sort:            "-created_at",
		Status:          "PACKED",
		FulfillmentType: "inside_valley",
		Search:          "ram",
		DateFrom:        &from,
		DateTo:          &to,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, query.Page())
	assert.Equal(t, 50, query.Limit())
	assert.Equal(t, "-created_at", query.Sort())
	assert.Equal(t, order.Packed, query.Status())
	assert.Equal(t, order.InsideValley, query.FulfillmentType())
	assert.Equal(t, "ram", query.Search())
	require.NotNil(t, query.DateFrom())
	assert.Equal(t, from, *query.DateFrom())
}

func TestNewGetOrdersQuery_CopiesDates(t *testing.T) {
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	query, err := queries.NewGetOrdersQuery(1, 20, queries.GetOrdersFilter{DateFrom: &from})
	require.NoError(t, err)

	from = from.AddDate(0, 1, 0)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *query.DateFrom())
}

func TestNewGetOrdersQuery_UnknownStatusFilter(t *testing.T) {
	_, err := queries.NewGetOrdersQuery(1, 20, queries.GetOrdersFilter{Status: "shipped"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewGetOrdersQuery_UnknownFulfillmentFilter(t *testing.T) {
	_, err := queries.NewGetOrdersQuery(1, 20, queries.GetOrdersFilter{FulfillmentType: "air_freight"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewGetOrdersQuery_NegativePage(t *testing.T) {
	_, err := queries.NewGetOrdersQuery(-1, 20, queries.GetOrdersFilter{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewGetOrdersQuery_LimitOutOfRange(t *testing.T) {
	_, err := queries.NewGetOrdersQuery(1, 101, queries.GetOrdersFilter{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = queries.NewGetOrdersQuery(1, -5, queries.GetOrdersFilter{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestGetOrdersQuery_ValidateZeroValue(t *testing.T) {
	var query queries.GetOrdersQuery
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOrdersQueryIsNotConstructed)
}
