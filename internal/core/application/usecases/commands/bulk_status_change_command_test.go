package commands_test

import (
	"testing"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/staff"
	"backoffice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bulkOrderIDs(t *testing.T, values ...string) []order.ID {
	t.Helper()

	ids := make([]order.ID, 0, len(values))
	for _, value := range values {
		id, err := order.NewID(value)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func TestNewBulkStatusChangeCommand_ValidInput(t *testing.T) {
	ids := bulkOrderIDs(t, "ord-1", "ord-2", "ord-3")
	actor := staff.NewActor("u-1", staff.RoleOperator)

	cmd, err := commands.NewBulkStatusChangeCommand(ids, "packed", actor, "", false)
	require.NoError(t, err)
	assert.Equal(t, ids, cmd.OrderIDs())
	assert.Equal(t, order.Packed, cmd.Target())
	assert.Equal(t, actor, cmd.Actor())
	assert.Empty(t, cmd.Reason())
	assert.False(t, cmd.CancellationAcknowledged())
}

func TestNewBulkStatusChangeCommand_CopiesSelection(t *testing.T) {
	ids := bulkOrderIDs(t, "ord-1", "ord-2")

	cmd, err := commands.NewBulkStatusChangeCommand(ids, "packed", staff.NewActor("u-1", staff.RoleOperator), "", false)
	require.NoError(t, err)

	other, err := order.NewID("ord-9")
	require.NoError(t, err)
	ids[0] = other
	assert.Equal(t, "ord-1", cmd.OrderIDs()[0].String())

	cmd.OrderIDs()[1] = other
	assert.Equal(t, "ord-2", cmd.OrderIDs()[1].String())
}

func TestNewBulkStatusChangeCommand_TrimsReason(t *testing.T) {
	cmd, err := commands.NewBulkStatusChangeCommand(bulkOrderIDs(t, "ord-1"), "cancelled", staff.NewActor("u-1", staff.RoleOperator), "  out of stock ", true)
	require.NoError(t, err)
	assert.Equal(t, "out of stock", cmd.Reason())
	assert.True(t, cmd.CancellationAcknowledged())
}

func TestNewBulkStatusChangeCommand_EmptySelection(t *testing.T) {
	_, err := commands.NewBulkStatusChangeCommand(nil, "packed", staff.NewActor("u-1", staff.RoleOperator), "", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewBulkStatusChangeCommand_UnconstructedID(t *testing.T) {
	ids := append(bulkOrderIDs(t, "ord-1"), order.ID{})

	_, err := commands.NewBulkStatusChangeCommand(ids, "packed", staff.NewActor("u-1", staff.RoleOperator), "", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrIDIsNotConstructed)
}

func TestNewBulkStatusChangeCommand_UnknownTarget(t *testing.T) {
	_, err := commands.NewBulkStatusChangeCommand(bulkOrderIDs(t, "ord-1"), "shipped", staff.NewActor("u-1", staff.RoleOperator), "", false)
	require.Error(t, err)
}

func TestBulkStatusChangeCommand_ValidateZeroValue(t *testing.T) {
	var cmd commands.BulkStatusChangeCommand
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrBulkStatusChangeCommandIsNotConstructed)
}
