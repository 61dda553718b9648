package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"backoffice/internal/core/application/lookups"
	"backoffice/internal/core/application/orderview"
	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/staff"
	"backoffice/internal/core/domain/services"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// filterDateLayout is the date-only format of the list filter parameters.
const filterDateLayout = "2006-01-02"

// Server handles the HTTP requests of the back office. It coordinates
// between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	requestStatusChangeHandler commands.RequestStatusChangeCommandHandler
	confirmStatusChangeHandler commands.ConfirmStatusChangeCommandHandler
	cancelStatusChangeHandler  commands.CancelStatusChangeCommandHandler
	bulkStatusChangeHandler    commands.BulkStatusChangeCommandHandler
	updateOrderHandler         commands.UpdateOrderCommandHandler

	// Query handlers
	getOrdersHandler          queries.GetOrdersQueryHandler
	getStatusMenuHandler      queries.GetStatusMenuQueryHandler
	getOrderSourcesHandler    queries.GetOrderSourcesQueryHandler
	getCourierBranchesHandler queries.GetCourierBranchesQueryHandler
	getNotificationsHandler   queries.GetNotificationsQueryHandler

	// lookups is invalidated directly by the settings-changed hook.
	lookups *lookups.Service
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	requestStatusChangeHandler commands.RequestStatusChangeCommandHandler,
	confirmStatusChangeHandler commands.ConfirmStatusChangeCommandHandler,
	cancelStatusChangeHandler commands.CancelStatusChangeCommandHandler,
	bulkStatusChangeHandler commands.BulkStatusChangeCommandHandler,
	updateOrderHandler commands.UpdateOrderCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getStatusMenuHandler queries.GetStatusMenuQueryHandler,
	getOrderSourcesHandler queries.GetOrderSourcesQueryHandler,
	getCourierBranchesHandler queries.GetCourierBranchesQueryHandler,
	getNotificationsHandler queries.GetNotificationsQueryHandler,
	lookupService *lookups.Service,
) *Server {
	return &Server{
		requestStatusChangeHandler: requestStatusChangeHandler,
		confirmStatusChangeHandler: confirmStatusChangeHandler,
		cancelStatusChangeHandler:  cancelStatusChangeHandler,
		bulkStatusChangeHandler:    bulkStatusChangeHandler,
		updateOrderHandler:         updateOrderHandler,
		getOrdersHandler:           getOrdersHandler,
		getStatusMenuHandler:       getStatusMenuHandler,
		getOrderSourcesHandler:     getOrderSourcesHandler,
		getCourierBranchesHandler:  getCourierBranchesHandler,
		getNotificationsHandler:    getNotificationsHandler,
		lookups:                    lookupService,
	}
}

// RegisterRoutes mounts the API under /api/v1. Middlewares run for every
// API route before the handlers.
func (s *Server) RegisterRoutes(e *echo.Echo, middlewares ...echo.MiddlewareFunc) {
	api := e.Group("/api/v1", middlewares...)

	api.GET("/orders", s.GetOrders)
	api.PATCH("/orders/:id", s.UpdateOrder)
	api.GET("/orders/:id/status-menu", s.GetStatusMenu)
	api.POST("/orders/:id/status-requests", s.RequestStatusChange)
	api.POST("/orders/:id/status-requests/confirm", s.ConfirmStatusChange)
	api.DELETE("/orders/:id/status-requests", s.CancelStatusChange)
	api.POST("/orders/bulk-status", s.BulkStatusChange)
	api.GET("/lookups/sources", s.GetOrderSources)
	api.GET("/lookups/branches", s.GetCourierBranches)
	api.POST("/lookups/invalidate", s.InvalidateLookups)
	api.GET("/notifications", s.GetNotifications)
}

// GetOrders handles GET /api/v1/orders - lists orders with the local view
// overlay applied.
func (s *Server) GetOrders(ctx echo.Context) error {
	page, err := queryInt(ctx, "page")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid page parameter",
		})
	}

	limit, err := queryInt(ctx, "limit")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid limit parameter",
		})
	}

	dateFrom, err := queryDate(ctx, "date_from")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid date_from parameter",
		})
	}

	dateTo, err := queryDate(ctx, "date_to")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid date_to parameter",
		})
	}

	query, err := queries.NewGetOrdersQuery(page, limit, queries.GetOrdersFilter{
		Sort:            ctx.QueryParam("sort"),
		Status:          ctx.QueryParam("status"),
		FulfillmentType: ctx.QueryParam("fulfillment_type"),
		Search:          ctx.QueryParam("search"),
		DateFrom:        dateFrom,
		DateTo:          dateTo,
	})
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid filter: " + err.Error(),
		})
	}

	response, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrdersPage(response))
}

// GetStatusMenu handles GET /api/v1/orders/:id/status-menu - returns the
// transitions the acting user may select on the order.
func (s *Server) GetStatusMenu(ctx echo.Context) error {
	id, err := order.NewID(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	query, err := queries.NewGetStatusMenuQuery(id, actingUser(ctx))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid query: " + err.Error(),
		})
	}

	menu, err := s.getStatusMenuHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toStatusMenu(menu))
}

// RequestStatusChange handles POST /api/v1/orders/:id/status-requests -
// stages a transition or reports what input it still needs.
func (s *Server) RequestStatusChange(ctx echo.Context) error {
	id, err := order.NewID(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var request StatusChangeRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewRequestStatusChangeCommand(id, order.Status(request.Target), actingUser(ctx))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid status request: " + err.Error(),
		})
	}

	result, err := s.requestStatusChangeHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toRequestResult(result))
}

// ConfirmStatusChange handles POST /api/v1/orders/:id/status-requests/confirm -
// submits the transition upstream with its collected input.
func (s *Server) ConfirmStatusChange(ctx echo.Context) error {
	id, err := order.NewID(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var confirmation StatusChangeConfirmation
	if err := ctx.Bind(&confirmation); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewConfirmStatusChangeCommand(
		id,
		order.Status(confirmation.Target),
		actingUser(ctx),
		toConfirmDetails(confirmation),
	)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid confirmation: " + err.Error(),
		})
	}

	result, err := s.confirmStatusChangeHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, StatusChangeResult{
		Status: result.Status.String(),
		NoOp:   result.NoOp,
	})
}

// CancelStatusChange handles DELETE /api/v1/orders/:id/status-requests -
// drops a staged transition without submitting it.
func (s *Server) CancelStatusChange(ctx echo.Context) error {
	id, err := order.NewID(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	cmd, err := commands.NewCancelStatusChangeCommand(id)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid cancellation: " + err.Error(),
		})
	}

	if err := s.cancelStatusChangeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOrder handles PATCH /api/v1/orders/:id - edits non-status fields
// and returns the fields as confirmed upstream.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	id, err := order.NewID(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var patch OrderPatch
	if err := ctx.Bind(&patch); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewUpdateOrderCommand(id, order.Patch{
		DestinationBranch: patch.DestinationBranch,
		ShippingAddress:   patch.ShippingAddress,
		StaffRemarks:      patch.StaffRemarks,
		SourceID:          patch.SourceID,
	})
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid patch: " + err.Error(),
		})
	}

	result, err := s.updateOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderPatch{
		DestinationBranch: result.Confirmed.DestinationBranch,
		ShippingAddress:   result.Confirmed.ShippingAddress,
		StaffRemarks:      result.Confirmed.StaffRemarks,
		SourceID:          result.Confirmed.SourceID,
	})
}

// BulkStatusChange handles POST /api/v1/orders/bulk-status - applies one
// target status to a batch of orders.
func (s *Server) BulkStatusChange(ctx echo.Context) error {
	var request BulkStatusChange
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	ids := make([]order.ID, 0, len(request.OrderIDs))
	for _, raw := range request.OrderIDs {
		id, err := order.NewID(raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid order id: " + raw,
			})
		}
		ids = append(ids, id)
	}

	cmd, err := commands.NewBulkStatusChangeCommand(
		ids,
		order.Status(request.Target),
		actingUser(ctx),
		request.Reason,
		request.CancellationAcknowledged,
	)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid bulk request: " + err.Error(),
		})
	}

	result, err := s.bulkStatusChangeHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, BulkStatusChangeResult{
		Requested: result.Requested,
		Applied:   result.Applied,
	})
}

// GetOrderSources handles GET /api/v1/lookups/sources - returns the active
// order sources from the cache.
func (s *Server) GetOrderSources(ctx echo.Context) error {
	options, err := s.getOrderSourcesHandler.Handle(ctx.Request().Context(), queries.NewGetOrderSourcesQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOptions(options))
}

// GetCourierBranches handles GET /api/v1/lookups/branches - returns the
// courier branch list from the cache.
func (s *Server) GetCourierBranches(ctx echo.Context) error {
	options, err := s.getCourierBranchesHandler.Handle(ctx.Request().Context(), queries.NewGetCourierBranchesQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOptions(options))
}

// InvalidateLookups handles POST /api/v1/lookups/invalidate - drops the
// lookup caches after a settings change.
func (s *Server) InvalidateLookups(ctx echo.Context) error {
	s.lookups.Invalidate()
	return ctx.NoContent(http.StatusNoContent)
}

// GetNotifications handles GET /api/v1/notifications - returns the recent
// notification feed, newest first.
func (s *Server) GetNotifications(ctx echo.Context) error {
	notifications, err := s.getNotificationsHandler.Handle(ctx.Request().Context(), queries.NewGetNotificationsQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toNotifications(notifications))
}

// actingUser builds the actor from the identity headers set by the
// authenticating gateway. Authentication itself happens upstream of this
// service.
func actingUser(ctx echo.Context) staff.Actor {
	return staff.NewActor(
		ctx.Request().Header.Get("X-Acting-User"),
		staff.ParseRole(ctx.Request().Header.Get("X-Acting-Role")),
	)
}

// queryInt parses an optional integer query parameter. Absent parameters
// return zero, which the query constructors replace with their defaults.
func queryInt(ctx echo.Context, name string) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// queryDate parses an optional date-only query parameter.
func queryDate(ctx echo.Context, name string) (*time.Time, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	parsed, err := time.Parse(filterDateLayout, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// respondError maps application errors to HTTP responses. Everything this
// service cannot resolve locally comes from the upstream systems, so
// unrecognized errors answer 502 rather than 500.
func respondError(ctx echo.Context, err error) error {
	var upstreamErr *ports.UpstreamError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, commands.ErrStatusIsLocked):
		return ctx.JSON(http.StatusForbidden, Error{
			Code:    http.StatusForbidden,
			Message: services.LockMessage,
		})
	case errors.Is(err, commands.ErrCancellationNotAcknowledged),
		errors.Is(err, orderview.ErrTransitionInFlight),
		errors.Is(err, orderview.ErrAnotherTransitionStaged),
		errors.Is(err, orderview.ErrNoStagedTransition):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	case errors.As(err, &upstreamErr):
		message := upstreamErr.Message
		if message == "" {
			message = commands.GenericFailureMessage
		}
		return ctx.JSON(http.StatusBadGateway, Error{
			Code:    http.StatusBadGateway,
			Message: message,
		})
	default:
		return ctx.JSON(http.StatusBadGateway, Error{
			Code:    http.StatusBadGateway,
			Message: "Upstream request failed",
		})
	}
}
