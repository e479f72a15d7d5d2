package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUICmd_Exists(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "tui" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestTUICmd_RequiresServices(t *testing.T) {
	SetServices(Services{})

	_, err := execute("tui")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create TUI")
}

func TestTUICmd_InitializeErrorStopsBeforeStart(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.contacts.InitializeFunc = func(context.Context) error { return context.Canceled }

	_, err := execute("tui")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, ts.chosen, "chooser is only replaced once the UI starts")
}
