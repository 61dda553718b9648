package queries

import (
	"errors"
	"fmt"
	"time"

	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var (
	ErrGetOrdersQueryIsNotConstructed = errors.New(
		"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
	)
)

const (
	defaultOrdersPage  = 1
	defaultOrdersLimit = 20
	maxOrdersLimit     = 100
)

// GetOrdersFilter narrows the order listing. Zero values mean
// "no filter". Status and FulfillmentType take raw tokens and are
// validated and normalized by the query constructor.
type GetOrdersFilter struct {
	Sort            string
	Status          string
	FulfillmentType string
	Search          string
	DateFrom        *time.Time
	DateTo          *time.Time
}

// GetOrdersQuery retrieves one page of orders for the back-office list
// screen.
//
// Example:
//
//	query, err := NewGetOrdersQuery(1, 20, GetOrdersFilter{Status: "packed"})
//	if err != nil {
//	    return err
//	}
//
//	page, err := handler.Handle(ctx, query)
type GetOrdersQuery struct {
	page            int
	limit           int
	sort            string
	status          order.Status
	fulfillmentType order.FulfillmentType
	search          string
	dateFrom        *time.Time
	dateTo          *time.Time

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query for one page of orders. Zero page and
// limit fall back to the defaults; a limit beyond 100 is out of range.
func NewGetOrdersQuery(page, limit int, filter GetOrdersFilter) (GetOrdersQuery, error) {
	if page == 0 {
		page = defaultOrdersPage
	}
	if limit == 0 {
		limit = defaultOrdersLimit
	}
	if page < 1 {
		return GetOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("page",
			fmt.Errorf("page must be positive, got %d", page))
	}
	if limit < 1 || limit > maxOrdersLimit {
		return GetOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxOrdersLimit)
	}

	query := GetOrdersQuery{
		page:   page,
		limit:  limit,
		sort:   filter.Sort,
		search: filter.Search,
		guard:  guard.NewConstructorGuard(),
	}

	if filter.Status != "" {
		status := order.Status(filter.Status)
		if err := status.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
		query.status = order.ParseStatus(filter.Status)
	}
	if filter.FulfillmentType != "" {
		fulfillmentType := order.FulfillmentType(filter.FulfillmentType)
		if err := fulfillmentType.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
		query.fulfillmentType = order.ParseFulfillmentType(filter.FulfillmentType)
	}
	if filter.DateFrom != nil {
		from := *filter.DateFrom
		query.dateFrom = &from
	}
	if filter.DateTo != nil {
		to := *filter.DateTo
		query.dateTo = &to
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Page returns the requested page number, starting at 1.
func (q GetOrdersQuery) Page() int { return q.page }

// Limit returns the requested page size.
func (q GetOrdersQuery) Limit() int { return q.limit }

// Sort returns the requested sort expression, or the empty string for the
// upstream default.
func (q GetOrdersQuery) Sort() string { return q.sort }

// Status returns the status filter, or Unknown for no filter.
func (q GetOrdersQuery) Status() order.Status { return q.status }

// FulfillmentType returns the fulfillment filter, or FulfillmentUnknown
// for no filter.
func (q GetOrdersQuery) FulfillmentType() order.FulfillmentType { return q.fulfillmentType }

// Search returns the free-text search term, or the empty string.
func (q GetOrdersQuery) Search() string { return q.search }

// DateFrom returns the inclusive lower bound on the order date, or nil.
func (q GetOrdersQuery) DateFrom() *time.Time { return copyQueryTime(q.dateFrom) }

// DateTo returns the inclusive upper bound on the order date, or nil.
func (q GetOrdersQuery) DateTo() *time.Time { return copyQueryTime(q.dateTo) }

func copyQueryTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
