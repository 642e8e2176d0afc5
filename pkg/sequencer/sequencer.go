// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package sequencer deploys an ordered list of contracts, one at a time.
//
// A task is only issued after the previous one returned successfully. The
// first failure stops the sequence: it is reported once on the diagnostic
// output, the remaining tasks are skipped and nothing is retried or rolled
// back. Run never returns the failure as an error; callers inspect the
// returned Report to decide what a failed sequence means for them.
package sequencer

import (
	"context"
	"fmt"
	"io"
	"time"

	luxlog "github.com/luxfi/log"
	"github.com/luxfi/migrate/pkg/constants"
	"github.com/luxfi/migrate/pkg/contract"
	"github.com/luxfi/migrate/pkg/ux"
)

const (
	Test721 = "Test721"
	Auction = "Auction"
)

// Task is a single deployment request.
type Task struct {
	Name string
	Args []interface{}
}

// DeployContracts is the Test721 then Auction sequence.
func DeployContracts() []Task {
	return []Task{
		{Name: Test721},
		{Name: Auction},
	}
}

type Option func(*Sequencer)

// WithOutput sets where the failure diagnostic is written.
func WithOutput(out *ux.UserLog) Option {
	return func(s *Sequencer) {
		if out != nil {
			s.out = out
		}
	}
}

// OnStepStart is called right before a task is sent to the deployer.
func OnStepStart(fn func(Task)) Option {
	return func(s *Sequencer) {
		s.onStart = fn
	}
}

// OnStepDone is called with the outcome of every task that was attempted.
func OnStepDone(fn func(StepResult)) Option {
	return func(s *Sequencer) {
		s.onDone = fn
	}
}

type Sequencer struct {
	deployer contract.Deployer
	tasks    []Task
	out      *ux.UserLog
	onStart  func(Task)
	onDone   func(StepResult)
	state    State
}

func New(deployer contract.Deployer, tasks []Task, opts ...Option) *Sequencer {
	s := &Sequencer{
		deployer: deployer,
		tasks:    tasks,
		state:    StatePending,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.out == nil {
		s.out = defaultOutput()
	}
	return s
}

func defaultOutput() *ux.UserLog {
	if ux.Logger != nil {
		return ux.Logger
	}
	return ux.NewUserLogWriter(luxlog.NewNoOpLogger(), io.Discard)
}

func (s *Sequencer) State() State {
	return s.state
}

// Run executes the tasks in order and returns the per step outcome.
func (s *Sequencer) Run(ctx context.Context) *Report {
	report := newReport(s.tasks)
	if err := s.deployAll(ctx, report); err != nil {
		s.state = StateFailed
		report.State = StateFailed
		report.Err = err
		s.out.RedXToUser("%v", err)
		return report
	}
	s.state = StateDone
	report.State = StateDone
	return report
}

func (s *Sequencer) deployAll(ctx context.Context, report *Report) error {
	for i, task := range s.tasks {
		s.state = StateDeploying
		report.Current = i
		if s.onStart != nil {
			s.onStart(task)
		}
		start := time.Now()
		inst, err := s.deployStep(ctx, task)
		step := &report.Steps[i]
		step.Duration = time.Since(start)
		if err != nil {
			step.Status = StatusFailed
			step.Err = &StepError{Task: task.Name, Err: err}
			for j := i + 1; j < len(report.Steps); j++ {
				report.Steps[j].Status = StatusSkipped
			}
			if s.onDone != nil {
				s.onDone(*step)
			}
			return step.Err
		}
		step.Status = StatusSucceeded
		step.Instance = inst
		if s.onDone != nil {
			s.onDone(*step)
		}
	}
	return nil
}

func (s *Sequencer) deployStep(ctx context.Context, task Task) (inst *contract.Instance, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			inst = nil
			err = fmt.Errorf("deployer panicked: %v", r)
		}
	}()
	return s.deployer.Deploy(ctx, task.Name, task.Args...)
}

// StepError is the single failure kind of a sequence. It matches
// constants.ErrDeploymentFailed and unwraps to the deployer's error.
type StepError struct {
	Task string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s: %v", constants.ErrDeploymentFailed, e.Task, e.Err)
}

func (e *StepError) Unwrap() []error {
	return []error{constants.ErrDeploymentFailed, e.Err}
}
