// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package migratecmd

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/luxfi/migrate/cmd/flags"
	"github.com/luxfi/migrate/internal/migrations"
	"github.com/luxfi/migrate/pkg/application"
	"github.com/luxfi/migrate/pkg/cobrautils"
	"github.com/luxfi/migrate/pkg/constants"
	"github.com/luxfi/migrate/pkg/contract"
	"github.com/luxfi/migrate/pkg/sequencer"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const continueOnErrorFlag = "continue-on-error"

// runDeployer is what migrate run needs from a deployer.
type runDeployer interface {
	contract.Deployer
	ChainID() *big.Int
	Close()
}

// newDeployer is a variable so tests can run without a node
var newDeployer = func(cmd *cobra.Command, app *application.App) (runDeployer, error) {
	d, err := app.NewDeployer(
		cmd.Context(),
		app.Conf.RPCURL(),
		flags.PrivateKey(cmd),
		app.Conf.ArtifactsDir(),
		app.Conf.DeployTimeout(),
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

type runFlags struct {
	from int
	to   int
}

// lux-migrate migrate run
func newRunCmd(app *application.App) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the deployment migrations",
		Long: `Run the registered migrations in ascending order.

By default the run stops and exits with an error when a deployment fails.
With --continue-on-error the failure is only logged and the command
succeeds, matching a plain truffle migration script.`,
		Args: cobrautils.ExactArgs(0),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return flags.BindFlags(viper.GetViper(), cmd.Flags(), map[string]string{
				continueOnErrorFlag: constants.ConfigContinueOnError,
			})
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrations(cmd, app, f)
		},
	}
	flags.AddDeployFlagsToCmd(cmd)
	cmd.Flags().Bool(continueOnErrorFlag, false, "log deployment failures without failing the run")
	cmd.Flags().IntVar(&f.from, "from", 0, "run migrations starting at this number")
	cmd.Flags().IntVar(&f.to, "to", 0, "run migrations up to and including this number")
	return cmd
}

func runMigrations(cmd *cobra.Command, app *application.App, f *runFlags) error {
	if f.to > 0 && f.from > f.to {
		return fmt.Errorf("--from (%d) is after --to (%d)", f.from, f.to)
	}
	opts := migrations.RunOptions{From: f.from, To: f.to}
	if len(migrations.Select(opts)) == 0 {
		app.Out.PrintToUser("No migrations to run")
		return nil
	}
	deployer, err := newDeployer(cmd, app)
	if err != nil {
		return err
	}
	defer deployer.Close()
	app.Out.PrintToUser("Network: %s (chain ID %s)", app.Conf.RPCURL(), deployer.ChainID())

	env := &migrations.Env{
		App:             app,
		Deployer:        deployer,
		ContinueOnError: app.Conf.ContinueOnError(),
	}
	runErr := migrations.RunMigrations(cmd.Context(), env, opts)
	if err := printReports(app, env.Reports); err != nil {
		app.Log.Warn("failed to print deployment summary", "error", err)
	}
	return runErr
}

func printReports(app *application.App, reports map[int]*sequencer.Report) error {
	numbers := make([]int, 0, len(reports))
	for n := range reports {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	if len(numbers) > 0 {
		app.Out.PrintToUser("")
		app.Out.PrintLineSeparator()
	}
	for _, n := range numbers {
		app.Out.PrintToUser("Migration %d: %s", n, reports[n].State)
		if err := app.Out.PrintTable([]string{"Contract", "Status", "Address", "Tx"}, reports[n].Rows()); err != nil {
			return err
		}
	}
	return nil
}
