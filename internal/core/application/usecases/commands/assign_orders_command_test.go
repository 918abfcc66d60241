package commands_test

import (
	"testing"

	"courierdispatch/internal/core/application/usecases/commands"
	"courierdispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignOrdersCommand(t *testing.T) {
	cmd, err := commands.NewAssignOrdersCommand(3)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, int64(3), cmd.CourierID())

	_, err = commands.NewAssignOrdersCommand(0)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	var zero commands.AssignOrdersCommand
	assert.ErrorIs(t, zero.Validate(), commands.ErrAssignOrdersCommandIsNotConstructed)
}
