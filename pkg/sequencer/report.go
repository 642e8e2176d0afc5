// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sequencer

import (
	"time"

	"github.com/luxfi/migrate/pkg/contract"
)

type State int

const (
	StatePending State = iota
	StateDeploying
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "Pending"
	case StateDeploying:
		return "Deploying"
	case StateDone:
		return "Done"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

type Status int

const (
	StatusPending Status = iota
	StatusSucceeded
	StatusFailed
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "deployed"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// StepResult is the outcome of one task: an instance on success, an error
// on failure, neither when skipped.
type StepResult struct {
	Task     Task
	Status   Status
	Instance *contract.Instance
	Err      error
	Duration time.Duration
}

type Report struct {
	Steps []StepResult
	State State
	// index of the last task that was started
	Current int
	// first failure, a *StepError
	Err error
}

func newReport(tasks []Task) *Report {
	steps := make([]StepResult, len(tasks))
	for i, t := range tasks {
		steps[i] = StepResult{Task: t, Status: StatusPending}
	}
	return &Report{Steps: steps, State: StatePending}
}

func (r *Report) Failed() bool {
	return r.State == StateFailed
}

// Instances returns the handles of the successful steps, in order.
func (r *Report) Instances() []*contract.Instance {
	var out []*contract.Instance
	for _, s := range r.Steps {
		if s.Status == StatusSucceeded {
			out = append(out, s.Instance)
		}
	}
	return out
}

// Rows renders the report for a table: contract, status, address, tx.
func (r *Report) Rows() [][]string {
	rows := make([][]string, 0, len(r.Steps))
	for _, s := range r.Steps {
		address, tx := "-", "-"
		if s.Instance != nil {
			address = s.Instance.Address.Hex()
			tx = s.Instance.TxHash.Hex()
		}
		rows = append(rows, []string{s.Task.Name, s.Status.String(), address, tx})
	}
	return rows
}
