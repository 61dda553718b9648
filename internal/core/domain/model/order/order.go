package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"backoffice/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the RestoreOrder factory method. This ensures all orders carry
	// validated identity before use.
	ErrOrderIsNotConstructed = errors.New("Order must be created via RestoreOrder constructor")
)

// Order represents a customer order as seen by back-office staff. It is the
// aggregate root that tracks the lifecycle status locally while the upstream
// order system remains the source of truth.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and order number
//   - Status transitions follow the lifecycle table for its fulfillment type
//   - Can only be created through the RestoreOrder constructor
//
// An order is always restored from an upstream payload, never created here;
// order intake happens in the storefront. Status and fulfillment type are
// normalized on restore, and unrecognized tokens degrade to Unknown so the
// order stays visible read-only instead of failing to load.
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier issued by the upstream order system
	id ID

	// orderNumber is the human-facing reference printed on labels
	orderNumber string

	// status is the current state in the order lifecycle
	status Status

	// fulfillmentType selects the dispatch branch of the lifecycle
	fulfillmentType FulfillmentType

	customerName      string
	customerPhone     string
	shippingAddress   string
	destinationBranch string
	sourceID          string
	staffRemarks      string

	items   []Item
	amounts Amounts

	// assignedRiderID is the rider carrying the order (empty if none)
	assignedRiderID   string
	courierPartner    string
	courierTrackingID string

	followupDate   *time.Time
	followupReason string

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via RestoreOrder
	isConstructed bool
}

// Item is a single order line. Items are carried for display only and have
// no behavior of their own.
type Item struct {
	ProductName string
	Variant     string
	Quantity    int
	UnitPrice   float64
}

// Amounts groups the monetary summary of an order. All values are in the
// upstream currency and carried for display only.
type Amounts struct {
	Subtotal       float64
	DeliveryCharge float64
	DiscountAmount float64
	PrepaidAmount  float64
	TotalAmount    float64
}

// Patch describes a partial edit of an order's non-status fields. A nil
// field means "leave unchanged"; only non-nil fields are sent upstream and
// applied locally.
type Patch struct {
	DestinationBranch *string
	ShippingAddress   *string
	StaffRemarks      *string
	SourceID          *string
}

// IsEmpty reports whether the patch carries no changes.
func (p Patch) IsEmpty() bool {
	return p.DestinationBranch == nil && p.ShippingAddress == nil && p.StaffRemarks == nil && p.SourceID == nil
}

// RestoreOrder reconstructs an Order from upstream data. This is the only
// way to create an Order, ensuring identity is always validated.
//
// Parameters:
//   - id: Unique identifier issued by the upstream order system
//   - orderNumber: Human-facing order reference (must be non-empty)
//   - status: Raw lifecycle status token from the upstream payload
//   - fulfillmentType: Raw fulfillment type token from the upstream payload
//
// Returns:
//   - *Order: The restored order if identity validation passes
//   - error: Validation error if the id or order number is invalid
//
// Status and fulfillment type are normalized through their parsers, so
// arbitrary casing is accepted and unrecognized tokens degrade to Unknown
// rather than failing the restore. An Unknown status yields an order with
// no allowed transitions.
//
// Example:
//
//	ord, err := order.RestoreOrder(id, "ORD-2024-10422", order.Packed, order.InsideValley)
//	if err != nil {
//	    // Handle validation error
//	}
func RestoreOrder(id ID, orderNumber string, status Status, fulfillmentType FulfillmentType) (*Order, error) {
	ord := &Order{
		status:          normalizeStatus(status),
		fulfillmentType: ParseFulfillmentType(string(fulfillmentType)),
		isConstructed:   true,
	}

	if err := errors.Join(
		ord.setID(id),
		ord.setOrderNumber(orderNumber),
	); err != nil {
		return nil, err
	}

	return ord, nil
}

// Validate ensures the Order instance was properly constructed through
// RestoreOrder. This prevents bypassing validation by directly
// instantiating the struct.
//
// Returns:
//   - nil if the order is valid
//   - ErrOrderIsNotConstructed if the order was not created via RestoreOrder
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
// Orders are considered equal if they have the same ID.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() ID {
	return o.id
}

// OrderNumber returns the human-facing order reference.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// FulfillmentType returns the order's fulfillment type.
func (o *Order) FulfillmentType() FulfillmentType {
	return o.fulfillmentType
}

// CustomerName returns the customer's display name.
func (o *Order) CustomerName() string {
	return o.customerName
}

// CustomerPhone returns the customer's contact number.
func (o *Order) CustomerPhone() string {
	return o.customerPhone
}

// ShippingAddress returns the delivery address.
func (o *Order) ShippingAddress() string {
	return o.shippingAddress
}

// DestinationBranch returns the branch the order ships to.
func (o *Order) DestinationBranch() string {
	return o.destinationBranch
}

// SourceID returns the identifier of the sales channel the order came from.
func (o *Order) SourceID() string {
	return o.sourceID
}

// StaffRemarks returns free-form notes left by back-office staff.
func (o *Order) StaffRemarks() string {
	return o.staffRemarks
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Amounts returns the monetary summary of the order.
func (o *Order) Amounts() Amounts {
	return o.amounts
}

// AssignedRiderID returns the rider carrying the order, or the empty
// string when no rider is assigned.
func (o *Order) AssignedRiderID() string {
	return o.assignedRiderID
}

// CourierPartner returns the courier company for outside-valley orders.
func (o *Order) CourierPartner() string {
	return o.courierPartner
}

// CourierTrackingID returns the courier's tracking reference.
func (o *Order) CourierTrackingID() string {
	return o.courierTrackingID
}

// FollowupDate returns the scheduled callback date, or nil if none.
func (o *Order) FollowupDate() *time.Time {
	if o.followupDate == nil {
		return nil
	}
	date := *o.followupDate
	return &date
}

// FollowupReason returns the reason recorded for the callback.
func (o *Order) FollowupReason() string {
	return o.followupReason
}

// CreatedAt returns the upstream creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the upstream last-modified timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// AllowedTransitions returns the statuses this order may move to, given
// its current status and fulfillment type.
func (o *Order) AllowedTransitions() []Status {
	return o.status.AllowedTransitions(o.fulfillmentType)
}

// ChangeStatus transitions the order to the target status.
//
// This method enforces the lifecycle table: the target must be directly
// reachable from the current status under the order's fulfillment type.
// It is the optimistic local half of a status update; the caller is
// responsible for confirming the change upstream and rolling back with
// SyncStatus if the upstream rejects it.
//
// Returns:
//   - nil on a valid transition
//   - error if the transition is not allowed from the current status
//
// Example:
//
//	err := ord.ChangeStatus(order.Assigned)
//	if err != nil {
//	    // Transition not allowed from the current status
//	}
func (o *Order) ChangeStatus(target Status) error {
	want := normalizeStatus(target)
	if !o.status.CanTransitionTo(want, o.fulfillmentType) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("transition from %s to %s is not allowed for %s orders",
				o.status.String(), target.String(), o.fulfillmentType.String()),
		)
	}

	o.status = want
	return nil
}

// SyncStatus overwrites the local status with upstream truth, bypassing
// the transition table. It is used when rolling back a rejected optimistic
// update and when refreshing from an upstream read, where the server's
// answer wins regardless of what the local table allows.
func (o *Order) SyncStatus(status Status) {
	o.status = normalizeStatus(status)
}

// ApplyPatch applies the non-nil fields of a patch to the order.
// Unlike status changes, patches are applied only after upstream
// confirmation, so no validation beyond construction is needed here.
func (o *Order) ApplyPatch(patch Patch) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if patch.DestinationBranch != nil {
		o.destinationBranch = *patch.DestinationBranch
	}
	if patch.ShippingAddress != nil {
		o.shippingAddress = *patch.ShippingAddress
	}
	if patch.StaffRemarks != nil {
		o.staffRemarks = *patch.StaffRemarks
	}
	if patch.SourceID != nil {
		o.sourceID = *patch.SourceID
	}
	return nil
}

// Clone returns a deep copy of the order. Clones are handed out as
// snapshots so concurrent readers never observe a half-applied update.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}

	cloned := *o
	cloned.items = make([]Item, len(o.items))
	copy(cloned.items, o.items)
	if o.followupDate != nil {
		date := *o.followupDate
		cloned.followupDate = &date
	}
	return &cloned
}

// SetCustomer sets the customer and destination details during hydration.
func (o *Order) SetCustomer(name, phone, shippingAddress, destinationBranch string) {
	o.customerName = name
	o.customerPhone = phone
	o.shippingAddress = shippingAddress
	o.destinationBranch = destinationBranch
}

// SetSource sets the sales channel identifier during hydration.
func (o *Order) SetSource(sourceID string) {
	o.sourceID = sourceID
}

// SetStaffRemarks sets the staff notes during hydration.
func (o *Order) SetStaffRemarks(remarks string) {
	o.staffRemarks = remarks
}

// SetItems sets the order lines during hydration. The slice is copied.
func (o *Order) SetItems(items []Item) {
	o.items = make([]Item, len(items))
	copy(o.items, items)
}

// SetAmounts sets the monetary summary during hydration.
func (o *Order) SetAmounts(amounts Amounts) {
	o.amounts = amounts
}

// SetDispatchDetails sets the rider and courier fields during hydration.
func (o *Order) SetDispatchDetails(assignedRiderID, courierPartner, courierTrackingID string) {
	o.assignedRiderID = assignedRiderID
	o.courierPartner = courierPartner
	o.courierTrackingID = courierTrackingID
}

// SetFollowUp sets the callback schedule during hydration.
func (o *Order) SetFollowUp(date *time.Time, reason string) {
	if date == nil {
		o.followupDate = nil
	} else {
		d := *date
		o.followupDate = &d
	}
	o.followupReason = reason
}

// SetTimestamps sets the upstream audit timestamps during hydration.
func (o *Order) SetTimestamps(createdAt, updatedAt time.Time) {
	o.createdAt = createdAt
	o.updatedAt = updatedAt
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setOrderNumber validates and sets the human-facing order reference.
// This is a private method used only during construction.
func (o *Order) setOrderNumber(orderNumber string) error {
	if strings.TrimSpace(orderNumber) == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.orderNumber = orderNumber
	return nil
}
