package services_test

import (
	"fmt"
	"testing"

	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/staff"
	"backoffice/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestStatusPolicy_AllowedTransitions(t *testing.T) {
	policy := services.NewStatusPolicy()

	t.Run("should delegate to the lifecycle table", func(t *testing.T) {
		assert.Equal(t,
			[]order.Status{order.Assigned, order.OutForDelivery, order.Cancelled},
			policy.AllowedTransitions(order.Packed, order.InsideValley))

		assert.Equal(t,
			[]order.Status{order.HandoverToCourier, order.Cancelled},
			policy.AllowedTransitions(order.Packed, order.OutsideValley))
	})

	t.Run("should yield nothing for terminal and unknown statuses", func(t *testing.T) {
		assert.Empty(t, policy.AllowedTransitions(order.Delivered, order.InsideValley))
		assert.Empty(t, policy.AllowedTransitions(order.Unknown, order.InsideValley))
		assert.Empty(t, policy.AllowedTransitions(order.Status("shipped"), order.InsideValley))
	})
}

func TestStatusPolicy_CanTransition(t *testing.T) {
	policy := services.NewStatusPolicy()

	t.Run("should agree with the lifecycle table", func(t *testing.T) {
		assert.True(t, policy.CanTransition(order.Packed, order.Assigned, order.InsideValley))
		assert.False(t, policy.CanTransition(order.Packed, order.Assigned, order.OutsideValley))
		assert.False(t, policy.CanTransition(order.Delivered, order.Returned, order.InsideValley))
		assert.False(t, policy.CanTransition(order.Intake, order.Unknown, order.InsideValley))
	})
}

func TestStatusPolicy_CheckLock(t *testing.T) {
	policy := services.NewStatusPolicy()

	t.Run("should lock a dispatch order with a foreign rider for non-admins", func(t *testing.T) {
		lock := policy.CheckLock(order.OutForDelivery, staff.RoleOperator, "rider-7", "user-12")

		assert.True(t, lock.IsLocked)
		assert.Equal(t, "Only the assigned rider or admin can update this status.", lock.Message)
	})

	t.Run("should never lock sales phase statuses", func(t *testing.T) {
		salesStatuses := []order.Status{order.Intake, order.FollowUp, order.Converted, order.Hold, order.StoreSale}

		for _, status := range salesStatuses {
			t.Run(fmt.Sprintf("status %s", status.String()), func(t *testing.T) {
				lock := policy.CheckLock(status, staff.RoleOperator, "rider-7", "user-12")
				assert.False(t, lock.IsLocked)
				assert.Empty(t, lock.Message)
			})
		}
	})

	t.Run("should never lock admins", func(t *testing.T) {
		dispatchStatuses := []order.Status{
			order.Packed,
			order.Assigned,
			order.OutForDelivery,
			order.HandoverToCourier,
			order.InTransit,
			order.Rejected,
			order.ReturnInitiated,
			order.Returned,
		}

		for _, status := range dispatchStatuses {
			t.Run(fmt.Sprintf("status %s", status.String()), func(t *testing.T) {
				lock := policy.CheckLock(status, staff.RoleAdmin, "rider-7", "user-12")
				assert.False(t, lock.IsLocked)
			})
		}
	})

	t.Run("should not lock the assigned rider", func(t *testing.T) {
		lock := policy.CheckLock(order.OutForDelivery, staff.RoleRider, "rider-7", "rider-7")

		assert.False(t, lock.IsLocked)
	})

	t.Run("should not lock when no rider is assigned", func(t *testing.T) {
		lock := policy.CheckLock(order.Packed, staff.RoleOperator, "", "user-12")

		assert.False(t, lock.IsLocked)
	})

	t.Run("should lock riders other than the assigned one", func(t *testing.T) {
		lock := policy.CheckLock(order.OutForDelivery, staff.RoleRider, "rider-7", "rider-9")

		assert.True(t, lock.IsLocked)
	})

	t.Run("should cover the full decision table", func(t *testing.T) {
		testCases := []struct {
			name            string
			status          order.Status
			role            staff.Role
			assignedRiderID string
			actingUserID    string
			wantLocked      bool
		}{
			{"sales status, operator, foreign rider", order.Intake, staff.RoleOperator, "rider-7", "user-12", false},
			{"dispatch status, admin, foreign rider", order.InTransit, staff.RoleAdmin, "rider-7", "user-12", false},
			{"dispatch status, operator, no rider", order.Packed, staff.RoleOperator, "", "user-12", false},
			{"dispatch status, operator, foreign rider", order.Packed, staff.RoleOperator, "rider-7", "user-12", true},
			{"dispatch status, rider, own order", order.Assigned, staff.RoleRider, "rider-7", "rider-7", false},
			{"dispatch status, rider, foreign order", order.Assigned, staff.RoleRider, "rider-7", "rider-9", true},
			{"dispatch status, anonymous operator, foreign rider", order.Returned, staff.RoleOperator, "rider-7", "", true},
			{"unknown status, operator, foreign rider", order.Unknown, staff.RoleOperator, "rider-7", "user-12", false},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				lock := policy.CheckLock(tc.status, tc.role, tc.assignedRiderID, tc.actingUserID)
				assert.Equal(t, tc.wantLocked, lock.IsLocked)
				if tc.wantLocked {
					assert.NotEmpty(t, lock.Message)
				} else {
					assert.Empty(t, lock.Message)
				}
			})
		}
	})

	t.Run("should recognize mixed-case status tokens", func(t *testing.T) {
		lock := policy.CheckLock(order.Status("OUT_FOR_DELIVERY"), staff.RoleOperator, "rider-7", "user-12")
		assert.True(t, lock.IsLocked)
	})
}

func TestStatusPolicy_RequiredModal(t *testing.T) {
	policy := services.NewStatusPolicy()

	t.Run("should map each target to its confirmation input", func(t *testing.T) {
		expected := map[order.Status]services.Modal{
			order.Assigned:          services.ModalSelectRider,
			order.HandoverToCourier: services.ModalSelectCourier,
			order.Cancelled:         services.ModalRequireReason,
			order.Rejected:          services.ModalRequireReason,
			order.ReturnInitiated:   services.ModalRequireReason,
			order.FollowUp:          services.ModalOptionalNote,
		}

		for target, modal := range expected {
			t.Run(fmt.Sprintf("target %s", target.String()), func(t *testing.T) {
				assert.Equal(t, modal, policy.RequiredModal(target))
			})
		}
	})

	t.Run("should need no input for direct transitions", func(t *testing.T) {
		direct := []order.Status{
			order.Intake,
			order.Converted,
			order.Hold,
			order.Packed,
			order.OutForDelivery,
			order.InTransit,
			order.Delivered,
			order.Returned,
			order.StoreSale,
		}

		for _, target := range direct {
			t.Run(fmt.Sprintf("target %s", target.String()), func(t *testing.T) {
				assert.Equal(t, services.ModalNone, policy.RequiredModal(target))
			})
		}
	})

	t.Run("should recognize mixed-case targets", func(t *testing.T) {
		assert.Equal(t, services.ModalSelectRider, policy.RequiredModal(order.Status("ASSIGNED")))
	})

	t.Run("should need no input for unknown targets", func(t *testing.T) {
		assert.Equal(t, services.ModalNone, policy.RequiredModal(order.Unknown))
	})
}

func TestStatusPolicy_Warning(t *testing.T) {
	policy := services.NewStatusPolicy()

	t.Run("should warn before reserving stock", func(t *testing.T) {
		assert.Equal(t, "This will reserve stock for the order.", policy.Warning(order.Packed))
	})

	t.Run("should warn before irreversible targets", func(t *testing.T) {
		for _, target := range []order.Status{order.Delivered, order.Cancelled, order.Rejected} {
			t.Run(fmt.Sprintf("target %s", target.String()), func(t *testing.T) {
				assert.NotEmpty(t, policy.Warning(target))
			})
		}
	})

	t.Run("should stay silent for routine targets", func(t *testing.T) {
		for _, target := range []order.Status{order.Intake, order.FollowUp, order.Hold, order.StoreSale} {
			t.Run(fmt.Sprintf("target %s", target.String()), func(t *testing.T) {
				assert.Empty(t, policy.Warning(target))
			})
		}
	})

	t.Run("should recognize mixed-case targets", func(t *testing.T) {
		assert.Equal(t, "This will reserve stock for the order.", policy.Warning(order.Status("Packed")))
	})

	t.Run("should stay silent for unknown targets", func(t *testing.T) {
		assert.Empty(t, policy.Warning(order.Unknown))
		assert.Empty(t, policy.Warning(order.Status("shipped")))
	})
}
