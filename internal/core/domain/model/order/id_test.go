package order_test

import (
	"testing"

	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	t.Run("should create ID from an upstream identifier", func(t *testing.T) {
		id, err := order.NewID("ord-10422")

		require.NoError(t, err)
		assert.Equal(t, "ord-10422", id.String())
		require.NoError(t, id.Validate())
		assert.False(t, id.IsZero())
	})

	t.Run("should trim surrounding whitespace", func(t *testing.T) {
		id, err := order.NewID("  ord-10422 ")

		require.NoError(t, err)
		assert.Equal(t, "ord-10422", id.String())
	})

	t.Run("should reject an empty identifier", func(t *testing.T) {
		id, err := order.NewID("")

		require.Error(t, err)
		assert.True(t, id.IsZero())
		assert.IsType(t, &errs.ValueIsRequiredError{}, err)
		assert.Contains(t, err.Error(), "order id")
	})

	t.Run("should reject a whitespace-only identifier", func(t *testing.T) {
		_, err := order.NewID("   ")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "order id")
	})
}

func TestID_IsEqual(t *testing.T) {
	t.Run("should compare by value", func(t *testing.T) {
		a, _ := order.NewID("ord-1")
		b, _ := order.NewID("ord-1")
		c, _ := order.NewID("ord-2")

		assert.True(t, a.IsEqual(b))
		assert.False(t, a.IsEqual(c))
	})

	t.Run("should treat zero values as equal", func(t *testing.T) {
		var a, b order.ID
		assert.True(t, a.IsEqual(b))
	})
}

func TestID_Validate(t *testing.T) {
	t.Run("should pass for a constructed ID", func(t *testing.T) {
		id, _ := order.NewID("ord-1")
		require.NoError(t, id.Validate())
	})

	t.Run("should fail for the zero value", func(t *testing.T) {
		var id order.ID

		err := id.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrIDIsNotConstructed, err)
		assert.True(t, id.IsZero())
		assert.Empty(t, id.String())
	})
}
