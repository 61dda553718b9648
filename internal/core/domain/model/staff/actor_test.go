package staff_test

import (
	"fmt"
	"testing"

	"backoffice/internal/core/domain/model/staff"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	t.Run("should parse canonical tokens", func(t *testing.T) {
		assert.Equal(t, staff.RoleAdmin, staff.ParseRole("admin"))
		assert.Equal(t, staff.RoleOperator, staff.ParseRole("operator"))
		assert.Equal(t, staff.RoleRider, staff.ParseRole("rider"))
	})

	t.Run("should parse case-insensitively", func(t *testing.T) {
		assert.Equal(t, staff.RoleAdmin, staff.ParseRole("ADMIN"))
		assert.Equal(t, staff.RoleRider, staff.ParseRole(" Rider "))
	})

	t.Run("should default unrecognized tokens to operator", func(t *testing.T) {
		// A malformed role header must never grant elevated rights.
		unrecognized := []string{"", "root", "superadmin", "administrator"}

		for _, token := range unrecognized {
			t.Run(fmt.Sprintf("token %q", token), func(t *testing.T) {
				assert.Equal(t, staff.RoleOperator, staff.ParseRole(token))
			})
		}
	})
}

func TestRole_IsAdmin(t *testing.T) {
	t.Run("should be true only for admin", func(t *testing.T) {
		assert.True(t, staff.RoleAdmin.IsAdmin())
		assert.True(t, staff.Role("Admin").IsAdmin())
		assert.False(t, staff.RoleOperator.IsAdmin())
		assert.False(t, staff.RoleRider.IsAdmin())
		assert.False(t, staff.Role("superadmin").IsAdmin())
	})
}

func TestNewActor(t *testing.T) {
	t.Run("should carry identity and normalized role", func(t *testing.T) {
		actor := staff.NewActor(" user-12 ", staff.Role("ADMIN"))

		assert.Equal(t, "user-12", actor.UserID())
		assert.Equal(t, staff.RoleAdmin, actor.Role())
	})

	t.Run("should allow an anonymous actor", func(t *testing.T) {
		actor := staff.NewActor("", "")

		assert.Empty(t, actor.UserID())
		assert.Equal(t, staff.RoleOperator, actor.Role())
	})

	t.Run("should treat the zero value as an anonymous operator", func(t *testing.T) {
		var actor staff.Actor

		assert.Empty(t, actor.UserID())
		assert.Equal(t, staff.RoleOperator, actor.Role())
		assert.False(t, actor.Role().IsAdmin())
	})
}
