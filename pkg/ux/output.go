// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	luxlog "github.com/luxfi/log"
	"github.com/olekukonko/tablewriter"
)

var Logger *UserLog

type UserLog struct {
	log    luxlog.Logger
	writer io.Writer
}

// NewUserLog installs the process wide user logger. Only the first call wins.
func NewUserLog(log luxlog.Logger, userwriter io.Writer) {
	if Logger == nil {
		Logger = NewUserLogWriter(log, userwriter)
	}
}

// NewUserLogWriter returns a user logger that is not installed globally,
// for components that receive their output explicitly.
func NewUserLogWriter(log luxlog.Logger, userwriter io.Writer) *UserLog {
	if log == nil {
		log = luxlog.NewNoOpLogger()
	}
	return &UserLog{
		log:    log,
		writer: userwriter,
	}
}

// Writer returns the destination of user output
func (ul *UserLog) Writer() io.Writer {
	return ul.writer
}

// PrintToUser prints msg directly to the user writer.
// Does NOT log to avoid duplication.
func (ul *UserLog) PrintToUser(msg string, args ...interface{}) {
	formattedMsg := fmt.Sprintf(msg, args...)
	_, _ = fmt.Fprintln(ul.writer, formattedMsg)
}

// PrintLineSeparator prints a line separator
func (ul *UserLog) PrintLineSeparator(msg ...string) {
	separator := "=========================================="
	if len(msg) > 0 && msg[0] != "" {
		separator = msg[0]
	}
	_, _ = fmt.Fprintln(ul.writer, separator)
}

// RedXToUser prints a red X error message to the user
func (ul *UserLog) RedXToUser(msg string, args ...interface{}) {
	formattedMsg := fmt.Sprintf(msg, args...)
	_, _ = fmt.Fprintln(ul.writer, color.RedString("✗")+" "+formattedMsg)
	ul.log.Error(formattedMsg)
}

// GreenCheckmarkToUser prints a green checkmark success message to the user
func (ul *UserLog) GreenCheckmarkToUser(msg string, args ...interface{}) {
	formattedMsg := fmt.Sprintf(msg, args...)
	_, _ = fmt.Fprintln(ul.writer, color.GreenString("✓")+" "+formattedMsg)
	ul.log.Info(formattedMsg)
}

// PrintTable renders rows under headers on the user writer
func (ul *UserLog) PrintTable(headers []string, rows [][]string) error {
	table := tablewriter.NewWriter(ul.writer)
	hdr := make([]any, len(headers))
	for i, h := range headers {
		hdr[i] = h
	}
	table.Header(hdr...)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

// StepTracker tracks progress of multi-step operations with elapsed time
type StepTracker struct {
	stepStart time.Time
	stepName  string
	ul        *UserLog
}

func NewStepTracker(ul *UserLog) *StepTracker {
	return &StepTracker{ul: ul}
}

// Start begins tracking a new step
func (st *StepTracker) Start(stepName string) {
	st.stepStart = time.Now()
	st.stepName = stepName
	st.ul.PrintToUser("%s...", stepName)
}

// Elapsed returns the elapsed time for the current step
func (st *StepTracker) Elapsed() time.Duration {
	return time.Since(st.stepStart)
}

// Complete marks the step as done with success
func (st *StepTracker) Complete(suffix string) {
	elapsed := st.Elapsed()
	if suffix != "" {
		st.ul.GreenCheckmarkToUser("%s (%.1fs) - %s", st.stepName, elapsed.Seconds(), suffix)
	} else {
		st.ul.GreenCheckmarkToUser("%s (%.1fs)", st.stepName, elapsed.Seconds())
	}
}
