// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contractcmd

import (
	"github.com/luxfi/migrate/pkg/application"
	"github.com/luxfi/migrate/pkg/cobrautils"
	"github.com/spf13/cobra"
)

var app *application.App

// lux-migrate contract
func NewCmd(injectedApp *application.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Deploy and inspect contract artifacts",
		Long: `The contract command suite deploys single contract artifacts and lists
the artifacts available to migrations.`,
		RunE: cobrautils.CommandSuiteUsage,
	}
	app = injectedApp
	// contract deploy
	cmd.AddCommand(newDeployCmd())
	// contract list
	cmd.AddCommand(newListCmd())
	return cmd
}
