// Package ordersapi provides the outbound gateway to the upstream order
// system over its REST API. This package implements ports.OrderGateway,
// handling the conversion between domain entities and the upstream wire
// representation.
package ordersapi

import (
	"time"

	"backoffice/internal/core/domain/model/lookup"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/ports"

	"github.com/oapi-codegen/runtime/types"
)

// orderDTO is an order as the upstream API serializes it. Status and
// fulfillment type arrive as raw tokens and are normalized during
// restoration; the legacy "followup" spelling of the follow-up status is
// accepted there as well.
type orderDTO struct {
	ID                string      `json:"id"`
	OrderNumber       string      `json:"order_number"`
	Status            string      `json:"status"`
	FulfillmentType   string      `json:"fulfillment_type"`
	CustomerName      string      `json:"customer_name"`
	CustomerPhone     string      `json:"customer_phone"`
	ShippingAddress   string      `json:"shipping_address"`
	DestinationBranch string      `json:"destination_branch"`
	SourceID          string      `json:"source_id"`
	StaffRemarks      string      `json:"staff_remarks"`
	Items             []itemDTO   `json:"items"`
	Subtotal          float64     `json:"subtotal"`
	DeliveryCharge    float64     `json:"delivery_charge"`
	DiscountAmount    float64     `json:"discount_amount"`
	PrepaidAmount     float64     `json:"prepaid_amount"`
	TotalAmount       float64     `json:"total_amount"`
	AssignedRiderID   string      `json:"assigned_rider_id"`
	CourierPartner    string      `json:"courier_partner"`
	CourierTrackingID string      `json:"courier_tracking_id"`
	FollowupDate      *types.Date `json:"followup_date"`
	FollowupReason    string      `json:"followup_reason"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// itemDTO is a single order line on the wire.
type itemDTO struct {
	ProductName string  `json:"product_name"`
	Variant     string  `json:"variant"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// paginationDTO is the upstream pagination descriptor. Unlike the rest of
// the payload it uses camelCase keys.
type paginationDTO struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// patchDTO is a partial order edit on the wire. Nil fields are omitted and
// left unchanged upstream.
type patchDTO struct {
	DestinationBranch *string `json:"destination_branch,omitempty"`
	ShippingAddress   *string `json:"shipping_address,omitempty"`
	StaffRemarks      *string `json:"staff_remarks,omitempty"`
	SourceID          *string `json:"source_id,omitempty"`
}

// statusUpdateDTO is a status transition on the wire. Only the auxiliary
// fields relevant to the target status are populated; the rest are omitted.
type statusUpdateDTO struct {
	Status             string      `json:"status"`
	FollowupDate       *types.Date `json:"followup_date,omitempty"`
	FollowupReason     string      `json:"followup_reason,omitempty"`
	AssignedRiderID    string      `json:"assigned_rider_id,omitempty"`
	CourierPartner     string      `json:"courier_partner,omitempty"`
	CourierTrackingID  string      `json:"courier_tracking_id,omitempty"`
	CancellationReason string      `json:"cancellation_reason,omitempty"`
	ReturnReason       string      `json:"return_reason,omitempty"`
}

// bulkStatusUpdateDTO applies one status to several orders in a single call.
type bulkStatusUpdateDTO struct {
	OrderIDs []string `json:"order_ids"`
	Status   string   `json:"status"`
	Reason   string   `json:"reason,omitempty"`
}

// optionDTO is a lookup list entry. Older upstream deployments key the
// machine token as "id", newer ones as "value"; both are accepted.
type optionDTO struct {
	ID    string `json:"id"`
	Value string `json:"value"`
	Label string `json:"label"`
}

// listEnvelope wraps a page of orders.
type listEnvelope struct {
	Data       []orderDTO    `json:"data"`
	Pagination paginationDTO `json:"pagination"`
}

// patchEnvelope wraps the confirmed fields of an order edit.
type patchEnvelope struct {
	Data patchDTO `json:"data"`
}

// optionsEnvelope wraps a lookup list.
type optionsEnvelope struct {
	Data []optionDTO `json:"data"`
}

// errorEnvelope extracts the human message from an upstream error body.
// Upstream error bodies are not uniform; message, error and detail have all
// been observed.
type errorEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Detail  string `json:"detail"`
}

// text returns the first populated message field.
func (e errorEnvelope) text() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Error != "" {
		return e.Error
	}
	return e.Detail
}

// toDomain restores an order aggregate from its upstream representation.
func toDomain(dto orderDTO) (*order.Order, error) {
	id, err := order.NewID(dto.ID)
	if err != nil {
		return nil, err
	}

	ord, err := order.RestoreOrder(id, dto.OrderNumber, order.Status(dto.Status), order.FulfillmentType(dto.FulfillmentType))
	if err != nil {
		return nil, err
	}

	ord.SetCustomer(dto.CustomerName, dto.CustomerPhone, dto.ShippingAddress, dto.DestinationBranch)
	ord.SetSource(dto.SourceID)
	ord.SetStaffRemarks(dto.StaffRemarks)

	items := make([]order.Item, len(dto.Items))
	for i, item := range dto.Items {
		items[i] = order.Item{
			ProductName: item.ProductName,
			Variant:     item.Variant,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}
	ord.SetItems(items)

	ord.SetAmounts(order.Amounts{
		Subtotal:       dto.Subtotal,
		DeliveryCharge: dto.DeliveryCharge,
		DiscountAmount: dto.DiscountAmount,
		PrepaidAmount:  dto.PrepaidAmount,
		TotalAmount:    dto.TotalAmount,
	})

	ord.SetDispatchDetails(dto.AssignedRiderID, dto.CourierPartner, dto.CourierTrackingID)
	ord.SetFollowUp(fromWireDate(dto.FollowupDate), dto.FollowupReason)
	ord.SetTimestamps(dto.CreatedAt, dto.UpdatedAt)

	return ord, nil
}

// toDomain converts the pagination descriptor.
func (d paginationDTO) toDomain() ports.Pagination {
	return ports.Pagination{
		Page:       d.Page,
		Limit:      d.Limit,
		Total:      d.Total,
		TotalPages: d.TotalPages,
		HasNext:    d.HasNext,
		HasPrev:    d.HasPrev,
	}
}

// fromPatch converts a domain patch to its wire representation.
func fromPatch(patch order.Patch) patchDTO {
	return patchDTO{
		DestinationBranch: patch.DestinationBranch,
		ShippingAddress:   patch.ShippingAddress,
		StaffRemarks:      patch.StaffRemarks,
		SourceID:          patch.SourceID,
	}
}

// toPatch converts confirmed wire fields back to a domain patch.
func (d patchDTO) toPatch() order.Patch {
	return order.Patch{
		DestinationBranch: d.DestinationBranch,
		ShippingAddress:   d.ShippingAddress,
		StaffRemarks:      d.StaffRemarks,
		SourceID:          d.SourceID,
	}
}

// fromStatusUpdate converts a status transition to its wire representation.
func fromStatusUpdate(update ports.StatusUpdate) statusUpdateDTO {
	return statusUpdateDTO{
		Status:             update.Status.String(),
		FollowupDate:       toWireDate(update.FollowupDate),
		FollowupReason:     update.FollowupReason,
		AssignedRiderID:    update.AssignedRiderID,
		CourierPartner:     update.CourierPartner,
		CourierTrackingID:  update.CourierTrackingID,
		CancellationReason: update.CancellationReason,
		ReturnReason:       update.ReturnReason,
	}
}

// fromBulkUpdate converts a bulk transition to its wire representation.
func fromBulkUpdate(update ports.BulkStatusUpdate) bulkStatusUpdateDTO {
	ids := make([]string, len(update.OrderIDs))
	for i, id := range update.OrderIDs {
		ids[i] = id.String()
	}

	return bulkStatusUpdateDTO{
		OrderIDs: ids,
		Status:   update.Status.String(),
		Reason:   update.Reason,
	}
}

// toOption converts a lookup entry, preferring the newer "value" key over
// the legacy "id" key.
func (d optionDTO) toOption() lookup.Option {
	value := d.Value
	if value == "" {
		value = d.ID
	}
	return lookup.Option{Value: value, Label: d.Label}
}

// toWireDate converts a timestamp to the upstream's date-only format.
func toWireDate(t *time.Time) *types.Date {
	if t == nil {
		return nil
	}
	return &types.Date{Time: *t}
}

// fromWireDate converts an upstream date back to a timestamp.
func fromWireDate(d *types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
