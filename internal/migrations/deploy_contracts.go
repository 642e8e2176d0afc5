// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package migrations

import (
	"context"

	"github.com/luxfi/migrate/pkg/sequencer"
	"github.com/luxfi/migrate/pkg/ux"
)

// deployContracts deploys Test721 and then Auction.
func deployContracts(ctx context.Context, env *Env, runner *migrationRunner) error {
	runner.printMigrationMessage(env)
	out := env.out()
	tracker := ux.NewStepTracker(out)

	s := sequencer.New(
		env.Deployer,
		sequencer.DeployContracts(),
		sequencer.WithOutput(out),
		sequencer.OnStepStart(func(task sequencer.Task) {
			tracker.Start("Deploying " + task.Name)
		}),
		sequencer.OnStepDone(func(r sequencer.StepResult) {
			// failures are reported by the sequencer itself
			if r.Status != sequencer.StatusSucceeded {
				return
			}
			if r.Instance != nil {
				tracker.Complete(r.Instance.Address.Hex())
			} else {
				tracker.Complete("")
			}
		}),
	)
	report := s.Run(ctx)
	env.record(runner.current, report)
	if report.Failed() && !env.ContinueOnError {
		return report.Err
	}
	return nil
}
