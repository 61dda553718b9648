// Package staff describes the back-office users acting on orders. Roles
// gate the dispatch-phase lock: admins may always update dispatch-managed
// orders, everyone else only when they are the assigned rider.
package staff

import "strings"

// Role is the permission level of a back-office user.
type Role string

const (
	// RoleAdmin may update any order regardless of rider assignment.
	RoleAdmin Role = "admin"
	// RoleOperator handles the sales phase and unassigned dispatch work.
	RoleOperator Role = "operator"
	// RoleRider delivers inside-valley orders assigned to them.
	RoleRider Role = "rider"
)

// ParseRole maps a role token to a Role. Matching is case-insensitive.
// Unrecognized tokens map to RoleOperator, the least privileged role that
// can still browse orders, so a malformed header never grants admin rights.
func ParseRole(value string) Role {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "admin":
		return RoleAdmin
	case "rider":
		return RoleRider
	default:
		return RoleOperator
	}
}

// String returns the wire representation of the role.
func (r Role) String() string {
	return string(ParseRole(string(r)))
}

// IsAdmin reports whether the role bypasses the rider assignment lock.
func (r Role) IsAdmin() bool {
	return ParseRole(string(r)) == RoleAdmin
}

// Actor identifies the staff member performing an operation. The zero
// value is an anonymous operator, which holds no special privileges.
type Actor struct {
	userID string
	role   Role
}

// NewActor creates an actor from the authenticated request identity.
// An empty user ID is allowed and yields an anonymous actor.
func NewActor(userID string, role Role) Actor {
	return Actor{
		userID: strings.TrimSpace(userID),
		role:   ParseRole(string(role)),
	}
}

// UserID returns the staff member's identifier, or the empty string for
// an anonymous actor.
func (a Actor) UserID() string {
	return a.userID
}

// Role returns the actor's permission level.
func (a Actor) Role() Role {
	return ParseRole(string(a.role))
}
