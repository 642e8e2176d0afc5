// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/luxfi/migrate/pkg/application"
	"github.com/luxfi/migrate/pkg/constants"
	"github.com/luxfi/migrate/pkg/sequencer"
	"github.com/stretchr/testify/require"
)

func TestRootCommandTree(t *testing.T) {
	require := require.New(t)
	app = application.New()
	root := NewRootCmd()

	for _, path := range [][]string{
		{"migrate", "run"},
		{"migrate", "list"},
		{"contract", "deploy"},
		{"contract", "list"},
	} {
		c, _, err := root.Find(path)
		require.NoError(err, path)
		require.Equal(path[len(path)-1], c.Name())
	}
	for _, flag := range []string{"config", "log-level", "non-interactive"} {
		require.NotNil(root.PersistentFlags().Lookup(flag), flag)
	}
	run, _, err := root.Find([]string{"migrate", "run"})
	require.NoError(err)
	for _, flag := range []string{"rpc", "private-key", "artifacts", "timeout", "continue-on-error", "from", "to"} {
		require.NotNil(run.Flags().Lookup(flag), flag)
	}
}

func TestExitMessage(t *testing.T) {
	require := require.New(t)
	require.Equal("\nERROR: bad flag\n", exitMessage(errors.New("bad flag")))

	// the sequencer already printed this one
	step := &sequencer.StepError{Task: sequencer.Auction, Err: errors.New("InsufficientFunds")}
	wrapped := fmt.Errorf("%w: migration %d: %w", constants.ErrMigrationFailed, 2, step)
	require.Empty(exitMessage(wrapped))
	require.Empty(exitMessage(step))
}
