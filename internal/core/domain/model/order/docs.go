// Package order provides domain entities and business logic for order status
// management in the back-office system. It implements the Order aggregate root
// with lifecycle management and fulfillment-aware state transitions.
//
// The package includes:
//   - Order: The aggregate root that tracks identity, details, and lifecycle status
//   - Status: A state machine that enforces valid lifecycle transitions
//   - FulfillmentType: Selects the dispatch branch of the lifecycle
//   - ID: A validated value object for upstream order identifiers
//
// Key business rules:
//   - The sales phase (intake, follow_up, converted, hold) is shared by all
//     fulfillment types; the dispatch phase branches on it
//   - Status tokens compare case-insensitively and unrecognized tokens parse
//     to Unknown, which exposes no transitions
//   - delivered, cancelled, rejected and returned are terminal
//   - Orders are restored from upstream payloads, never created locally
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
