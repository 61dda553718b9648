package queries

import (
	"context"
	"time"

	"backoffice/internal/core/application/orderview"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/ports"
)

// OrderSummary is one row of the order list screen. Status, Busy and
// LastError come from the local view, so an optimistic update in flight
// is visible in the list immediately.
type OrderSummary struct {
	ID                string
	OrderNumber       string
	Status            order.Status
	FulfillmentType   order.FulfillmentType
	CustomerName      string
	CustomerPhone     string
	ShippingAddress   string
	DestinationBranch string
	TotalAmount       float64
	AssignedRiderID   string
	CourierPartner    string
	CourierTrackingID string
	Busy              bool
	LastError         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// GetOrdersQueryResponse is one page of order rows plus the upstream
// pagination descriptor, passed through as received.
type GetOrdersQueryResponse struct {
	Orders     []OrderSummary
	Pagination ports.Pagination
}

// GetOrdersQueryHandler lists orders from the upstream system and tracks
// every fetched order in the view registry, so later status commands find
// them by ID. Rows are rendered from the views, not the raw fetch: a view
// busy with its own transition keeps its optimistic status in the list.
type GetOrdersQueryHandler struct {
	gateway  OrderLister
	registry *orderview.Registry
}

// NewGetOrdersQueryHandler creates a handler for order list queries.
func NewGetOrdersQueryHandler(gateway OrderLister, registry *orderview.Registry) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{
		gateway:  gateway,
		registry: registry,
	}
}

// Handle executes the listing. Orders that fail to track are dropped from
// the page rather than failing it; one malformed upstream record must not
// blank the whole screen.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) (GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrdersQueryResponse{}, err
	}

	page, err := h.gateway.List(ctx, ports.OrderListFilter{
		Page:            query.Page(),
		Limit:           query.Limit(),
		Sort:            query.Sort(),
		Status:          query.Status(),
		FulfillmentType: query.FulfillmentType(),
		Search:          query.Search(),
		DateFrom:        query.DateFrom(),
		DateTo:          query.DateTo(),
	})
	if err != nil {
		return GetOrdersQueryResponse{}, err
	}

	rows := make([]OrderSummary, 0, len(page.Orders))
	for _, ord := range page.Orders {
		view, _, trackErr := h.registry.Track(ord)
		if trackErr != nil {
			continue
		}
		rows = append(rows, summarizeView(view))
	}

	return GetOrdersQueryResponse{
		Orders:     rows,
		Pagination: page.Pagination,
	}, nil
}

func summarizeView(view *orderview.View) OrderSummary {
	ord := view.Order()

	return OrderSummary{
		ID:                ord.ID().String(),
		OrderNumber:       ord.OrderNumber(),
		Status:            ord.Status(),
		FulfillmentType:   ord.FulfillmentType(),
		CustomerName:      ord.CustomerName(),
		CustomerPhone:     ord.CustomerPhone(),
		ShippingAddress:   ord.ShippingAddress(),
		DestinationBranch: ord.DestinationBranch(),
		TotalAmount:       ord.Amounts().TotalAmount,
		AssignedRiderID:   ord.AssignedRiderID(),
		CourierPartner:    ord.CourierPartner(),
		CourierTrackingID: ord.CourierTrackingID(),
		Busy:              view.Busy(),
		LastError:         view.LastError(),
		CreatedAt:         ord.CreatedAt(),
		UpdatedAt:         ord.UpdatedAt(),
	}
}
