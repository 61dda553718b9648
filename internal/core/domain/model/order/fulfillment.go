package order

import (
	"fmt"
	"strings"

	"backoffice/internal/pkg/errs"
)

// FulfillmentType describes how an order reaches the customer. The sales
// stage of the lifecycle is identical for every type; the dispatch stage
// branches on it.
type FulfillmentType string

const (
	// FulfillmentUnknown marks a type that could not be recognized.
	// Orders with an unknown type expose no dispatch transitions.
	FulfillmentUnknown FulfillmentType = ""
	// InsideValley orders are delivered by company riders.
	InsideValley FulfillmentType = "inside_valley"
	// OutsideValley orders are handed over to a courier partner.
	OutsideValley FulfillmentType = "outside_valley"
	// Store orders are sold over the counter and never dispatched.
	Store FulfillmentType = "store"
)

func getFulfillmentTypeTokens() map[string]FulfillmentType {
	return map[string]FulfillmentType{
		"inside_valley":  InsideValley,
		"outside_valley": OutsideValley,
		"store":          Store,
	}
}

// ParseFulfillmentType maps an upstream token to a FulfillmentType.
// Matching is case-insensitive and ignores surrounding whitespace.
// Unrecognized tokens map to FulfillmentUnknown rather than an error so that
// orders with a malformed type can still be displayed read-only.
func ParseFulfillmentType(value string) FulfillmentType {
	if ft, ok := getFulfillmentTypeTokens()[strings.ToLower(strings.TrimSpace(value))]; ok {
		return ft
	}
	return FulfillmentUnknown
}

// String returns the canonical wire representation of the fulfillment type.
// FulfillmentUnknown and unrecognized values are rendered as "unknown".
func (f FulfillmentType) String() string {
	if normalized := ParseFulfillmentType(string(f)); normalized != FulfillmentUnknown {
		return string(normalized)
	}
	return "unknown"
}

// Validate checks that the fulfillment type is one of the recognized values.
func (f FulfillmentType) Validate() error {
	if _, ok := getFulfillmentTypeTokens()[strings.ToLower(strings.TrimSpace(string(f)))]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("fulfillment type is invalid",
			fmt.Errorf("%q is not a recognized fulfillment type", string(f)))
	}
	return nil
}
