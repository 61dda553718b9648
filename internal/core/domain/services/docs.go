// Package services provides domain services that answer policy questions
// spanning multiple domain concepts in the back-office system.
//
// The package includes:
//   - StatusPolicy: A pure domain service resolving allowed status
//     transitions, the rider assignment lock, confirmation inputs and
//     pre-submit warnings
//
// Domain services hold no state of their own and implement business logic
// that doesn't naturally belong to a single aggregate root, following
// Domain-Driven Design principles.
package services
