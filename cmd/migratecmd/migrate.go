// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package migratecmd

import (
	"github.com/luxfi/migrate/pkg/application"
	"github.com/luxfi/migrate/pkg/cobrautils"
	"github.com/spf13/cobra"
)

// lux-migrate migrate
func NewCmd(app *application.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run contract deployment migrations",
		Long: `The migrate command suite runs the numbered deployment migrations of
this project against an EVM network, in order.

Migration 2 (deploy_contracts) deploys Test721 and, once it is mined,
Auction.`,
		RunE: cobrautils.CommandSuiteUsage,
	}

	cmd.AddCommand(newRunCmd(app))
	cmd.AddCommand(newListCmd(app))

	return cmd
}
