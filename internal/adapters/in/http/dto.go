// Package http provides the inbound REST surface of the back office. It
// coordinates between HTTP handlers and application use cases; requests
// are validated against the committed OpenAPI contract before handlers
// run.
package http

import (
	"time"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/model/lookup"
	"backoffice/internal/core/ports"

	"github.com/oapi-codegen/runtime/types"
)

// Error is the uniform error body of the API.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Pagination mirrors the upstream pagination descriptor, camelCase keys
// included, so the frontend reads both APIs the same way.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// OrderSummary is one row of the order list. Status carries the local
// optimistic overlay while a transition is staged or submitting.
type OrderSummary struct {
	ID                string    `json:"id"`
	OrderNumber       string    `json:"order_number"`
	Status            string    `json:"status"`
	FulfillmentType   string    `json:"fulfillment_type"`
	CustomerName      string    `json:"customer_name"`
	CustomerPhone     string    `json:"customer_phone"`
	ShippingAddress   string    `json:"shipping_address"`
	DestinationBranch string    `json:"destination_branch"`
	TotalAmount       float64   `json:"total_amount"`
	AssignedRiderID   string    `json:"assigned_rider_id"`
	CourierPartner    string    `json:"courier_partner"`
	CourierTrackingID string    `json:"courier_tracking_id"`
	Busy              bool      `json:"busy"`
	LastError         string    `json:"last_error,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// OrdersPage is one page of order rows.
type OrdersPage struct {
	Data       []OrderSummary `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// StatusMenuItem is one selectable transition.
type StatusMenuItem struct {
	Target        string `json:"target"`
	Modal         string `json:"modal,omitempty"`
	Warning       string `json:"warning,omitempty"`
	RequiresInput bool   `json:"requires_input"`
}

// StatusMenu is the status control of the order detail screen.
type StatusMenu struct {
	OrderID       string           `json:"order_id"`
	CurrentStatus string           `json:"current_status"`
	StagedTarget  string           `json:"staged_target,omitempty"`
	Busy          bool             `json:"busy"`
	LastError     string           `json:"last_error,omitempty"`
	Locked        bool             `json:"locked"`
	LockMessage   string           `json:"lock_message,omitempty"`
	Items         []StatusMenuItem `json:"items"`
}

// StatusChangeRequest asks to stage a transition to the target status.
type StatusChangeRequest struct {
	Target string `json:"target"`
}

// StatusChangeRequestResult tells the screen what to do next: confirm the
// staged transition, open a modal, or show why nothing happened.
type StatusChangeRequestResult struct {
	Outcome     string `json:"outcome"`
	Target      string `json:"target"`
	LockMessage string `json:"lock_message,omitempty"`
	Modal       string `json:"modal,omitempty"`
	Warning     string `json:"warning,omitempty"`
}

// StatusChangeConfirmation submits a transition together with the extra
// input its modal collected.
type StatusChangeConfirmation struct {
	Target            string      `json:"target"`
	FollowupDate      *types.Date `json:"followup_date,omitempty"`
	FollowupReason    string      `json:"followup_reason,omitempty"`
	AssignedRiderID   string      `json:"assigned_rider_id,omitempty"`
	CourierPartner    string      `json:"courier_partner,omitempty"`
	CourierTrackingID string      `json:"courier_tracking_id,omitempty"`
	Reason            string      `json:"reason,omitempty"`
}

// StatusChangeResult reports the status the order holds after the call.
type StatusChangeResult struct {
	Status string `json:"status"`
	NoOp   bool   `json:"no_op"`
}

// OrderPatch is a partial edit of an order's non-status fields. Absent
// fields are left unchanged.
type OrderPatch struct {
	DestinationBranch *string `json:"destination_branch,omitempty"`
	ShippingAddress   *string `json:"shipping_address,omitempty"`
	StaffRemarks      *string `json:"staff_remarks,omitempty"`
	SourceID          *string `json:"source_id,omitempty"`
}

// BulkStatusChange applies one target status to several orders. Moving to
// cancelled additionally requires the explicit acknowledgement flag.
type BulkStatusChange struct {
	OrderIDs                 []string `json:"order_ids"`
	Target                   string   `json:"target"`
	Reason                   string   `json:"reason,omitempty"`
	CancellationAcknowledged bool     `json:"cancellation_acknowledged,omitempty"`
}

// BulkStatusChangeResult reports how much of the batch took effect
// locally. Requested counts the submitted ids, Applied the local views
// that now carry the new status.
type BulkStatusChangeResult struct {
	Requested int `json:"requested"`
	Applied   int `json:"applied"`
}

// Option is a lookup list entry.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Notification is one entry of the header feed.
type Notification struct {
	ID      string    `json:"id"`
	Level   string    `json:"level"`
	Subject string    `json:"subject"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

func toOrdersPage(response queries.GetOrdersQueryResponse) OrdersPage {
	rows := make([]OrderSummary, len(response.Orders))
	for i, row := range response.Orders {
		rows[i] = OrderSummary{
			ID:                row.ID,
			OrderNumber:       row.OrderNumber,
			Status:            row.Status.String(),
			FulfillmentType:   row.FulfillmentType.String(),
			CustomerName:      row.CustomerName,
			CustomerPhone:     row.CustomerPhone,
			ShippingAddress:   row.ShippingAddress,
			DestinationBranch: row.DestinationBranch,
			TotalAmount:       row.TotalAmount,
			AssignedRiderID:   row.AssignedRiderID,
			CourierPartner:    row.CourierPartner,
			CourierTrackingID: row.CourierTrackingID,
			Busy:              row.Busy,
			LastError:         row.LastError,
			CreatedAt:         row.CreatedAt,
			UpdatedAt:         row.UpdatedAt,
		}
	}

	return OrdersPage{Data: rows, Pagination: toPagination(response.Pagination)}
}

func toPagination(pagination ports.Pagination) Pagination {
	return Pagination{
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		Total:      pagination.Total,
		TotalPages: pagination.TotalPages,
		HasNext:    pagination.HasNext,
		HasPrev:    pagination.HasPrev,
	}
}

func toStatusMenu(response queries.GetStatusMenuQueryResponse) StatusMenu {
	items := make([]StatusMenuItem, len(response.Items))
	for i, item := range response.Items {
		items[i] = StatusMenuItem{
			Target:        item.Target.String(),
			Modal:         string(item.Modal),
			Warning:       item.Warning,
			RequiresInput: item.RequiresInput,
		}
	}

	menu := StatusMenu{
		OrderID:       response.OrderID,
		CurrentStatus: response.CurrentStatus.String(),
		Busy:          response.Busy,
		LastError:     response.LastError,
		Locked:        response.Locked,
		LockMessage:   response.LockMessage,
		Items:         items,
	}
	if response.StagedTarget != "" {
		menu.StagedTarget = response.StagedTarget.String()
	}

	return menu
}

func toRequestResult(result commands.RequestStatusChangeResult) StatusChangeRequestResult {
	return StatusChangeRequestResult{
		Outcome:     string(result.Outcome),
		Target:      result.Target.String(),
		LockMessage: result.LockMessage,
		Modal:       string(result.Modal),
		Warning:     result.Warning,
	}
}

func toConfirmDetails(confirmation StatusChangeConfirmation) commands.ConfirmDetails {
	var followupDate *time.Time
	if confirmation.FollowupDate != nil {
		date := confirmation.FollowupDate.Time
		followupDate = &date
	}

	return commands.ConfirmDetails{
		FollowupDate:      followupDate,
		FollowupReason:    confirmation.FollowupReason,
		AssignedRiderID:   confirmation.AssignedRiderID,
		CourierPartner:    confirmation.CourierPartner,
		CourierTrackingID: confirmation.CourierTrackingID,
		Reason:            confirmation.Reason,
	}
}

func toOptions(options []lookup.Option) []Option {
	converted := make([]Option, len(options))
	for i, option := range options {
		converted[i] = Option{Value: option.Value, Label: option.Label}
	}
	return converted
}

func toNotifications(notifications []ports.Notification) []Notification {
	converted := make([]Notification, len(notifications))
	for i, notification := range notifications {
		converted[i] = Notification{
			ID:      notification.ID.String(),
			Level:   string(notification.Level),
			Subject: notification.Subject,
			Message: notification.Message,
			At:      notification.At,
		}
	}
	return converted
}
