// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package migrations

import (
	"context"
	"fmt"
	"sort"

	"github.com/luxfi/migrate/pkg/application"
	"github.com/luxfi/migrate/pkg/constants"
	"github.com/luxfi/migrate/pkg/contract"
	"github.com/luxfi/migrate/pkg/sequencer"
	"github.com/luxfi/migrate/pkg/ux"
)

const (
	runMessage       = "Running migrations..."
	endMessage       = "Migrations complete"
	failedEndMessage = "Migrations stopped: a migration failed. Fix the error above and run again."
)

// Env is what a migration gets to work with. The deployer is always passed
// in explicitly.
type Env struct {
	App      *application.App
	Deployer contract.Deployer
	// ContinueOnError keeps the runner going when a deployment sequence
	// fails. The failure is still logged.
	ContinueOnError bool

	Reports map[int]*sequencer.Report
}

func (e *Env) out() *ux.UserLog {
	if e.App != nil && e.App.Out != nil {
		return e.App.Out
	}
	return ux.Logger
}

func (e *Env) record(number int, report *sequencer.Report) {
	if e.Reports == nil {
		e.Reports = map[int]*sequencer.Report{}
	}
	e.Reports[number] = report
}

type migrationFunc func(context.Context, *Env, *migrationRunner) error

// Migration describes a registered migration.
type Migration struct {
	Number int
	Name   string
	Tasks  []sequencer.Task
	run    migrationFunc
}

var registry = []Migration{
	{
		Number: 2,
		Name:   "deploy_contracts",
		Tasks:  sequencer.DeployContracts(),
		run:    deployContracts,
	},
}

// List returns the registered migrations ordered by number.
func List() []Migration {
	out := append([]Migration{}, registry...)
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

type migrationRunner struct {
	showMsg    bool
	running    bool
	current    int
	migrations map[int]migrationFunc
}

// RunOptions bounds which migrations run. Zero values mean no bound.
type RunOptions struct {
	From int
	To   int
}

func (o RunOptions) includes(n int) bool {
	if o.From > 0 && n < o.From {
		return false
	}
	if o.To > 0 && n > o.To {
		return false
	}
	return true
}

// Select returns the registered migrations within opts, ordered by number.
func Select(opts RunOptions) []Migration {
	var selected []Migration
	for _, m := range List() {
		if opts.includes(m.Number) {
			selected = append(selected, m)
		}
	}
	return selected
}

// RunMigrations runs every registered migration within opts, in order.
func RunMigrations(ctx context.Context, env *Env, opts RunOptions) error {
	runner := &migrationRunner{
		showMsg:    true,
		migrations: map[int]migrationFunc{},
	}
	for _, m := range Select(opts) {
		runner.migrations[m.Number] = m.run
	}
	return runner.run(ctx, env)
}

func (m *migrationRunner) run(ctx context.Context, env *Env) error {
	numbers := make([]int, 0, len(m.migrations))
	for n := range m.migrations {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	for _, n := range numbers {
		m.current = n
		if err := m.migrations[n](ctx, env, m); err != nil {
			if m.running {
				env.out().PrintToUser(failedEndMessage)
			}
			return fmt.Errorf("%w: migration %d: %w", constants.ErrMigrationFailed, n, err)
		}
	}
	if m.running {
		env.out().PrintToUser(endMessage)
	}
	return nil
}

// printMigrationMessage announces the run once, the first time a
// migration actually does something.
func (m *migrationRunner) printMigrationMessage(env *Env) {
	if m.showMsg && !m.running {
		env.out().PrintToUser(runMessage)
	}
	m.running = true
}
