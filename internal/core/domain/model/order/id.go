package order

import (
	"strings"

	"backoffice/internal/pkg/errs"
)

// ErrIDIsNotConstructed indicates that an order ID was not properly initialized
// through NewID. This error is returned when validating a zero-value ID.
var ErrIDIsNotConstructed = errs.NewValueIsRequiredError("order ID must be created via NewID")

// ID is a value object that identifies an order. Order identifiers are issued
// by the upstream order system and treated as opaque tokens here; the only
// local invariant is that an ID is never empty.
//
// The zero value of ID is invalid and must be constructed via NewID.
// ID is immutable and safe for concurrent use.
//
// Example usage:
//
//	id, err := order.NewID("ord-10422")
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(id.String()) // "ord-10422"
type ID struct {
	value string
}

// NewID creates an order ID from its upstream representation.
// Leading and trailing whitespace is trimmed; an empty identifier is rejected.
func NewID(value string) (ID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return ID{}, errs.NewValueIsRequiredError("order id")
	}
	return ID{value: value}, nil
}

// String returns the upstream representation of the identifier.
// For a zero value ID, this returns the empty string.
func (i ID) String() string {
	return i.value
}

// IsEqual compares two order IDs for equality.
func (i ID) IsEqual(other ID) bool {
	return i.value == other.value
}

// IsZero reports whether the ID is the zero value.
func (i ID) IsZero() bool {
	return i.value == ""
}

// Validate checks if the ID is properly constructed.
// Returns ErrIDIsNotConstructed if the ID is a zero value.
func (i ID) Validate() error {
	if i.value == "" {
		return ErrIDIsNotConstructed
	}
	return nil
}
