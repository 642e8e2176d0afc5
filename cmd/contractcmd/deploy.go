// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contractcmd

import (
	"github.com/luxfi/migrate/cmd/flags"
	"github.com/luxfi/migrate/pkg/cobrautils"
	"github.com/luxfi/migrate/pkg/contract"
	"github.com/luxfi/migrate/pkg/sequencer"
	"github.com/spf13/cobra"
)

// lux-migrate contract deploy
func newDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy [contractName]",
		Short: "Deploy a single contract artifact",
		Long: `Deploy one compiled contract, by artifact name, to the configured network.
Only contracts whose constructor takes no arguments can be deployed this way.`,
		RunE: deployContract,
		Args: cobrautils.ExactArgs(1),
	}
	flags.AddDeployFlagsToCmd(cmd)
	return cmd
}

func deployContract(cmd *cobra.Command, args []string) error {
	deployer, err := app.NewDeployer(
		cmd.Context(),
		app.Conf.RPCURL(),
		flags.PrivateKey(cmd),
		app.Conf.ArtifactsDir(),
		app.Conf.DeployTimeout(),
	)
	if err != nil {
		return err
	}
	defer deployer.Close()
	return deploySingle(cmd, deployer, args[0])
}

func deploySingle(cmd *cobra.Command, deployer contract.Deployer, name string) error {
	report := sequencer.New(
		deployer,
		[]sequencer.Task{{Name: name}},
		sequencer.WithOutput(app.Out),
	).Run(cmd.Context())
	if report.Failed() {
		return report.Err
	}
	app.Out.PrintToUser("")
	app.Out.PrintToUser("Contract: %s", name)
	for _, inst := range report.Instances() {
		if inst == nil {
			continue
		}
		app.Out.PrintToUser("Address:  %s", inst.Address.Hex())
		app.Out.PrintToUser("Tx:       %s", inst.TxHash.Hex())
	}
	app.Out.PrintToUser("")
	app.Out.GreenCheckmarkToUser("%s Successfully Deployed!", name)
	return nil
}
