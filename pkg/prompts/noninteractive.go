// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompts

import (
	"errors"
	"fmt"
)

// ErrNonInteractive is returned when a prompt is attempted in non-interactive mode.
var ErrNonInteractive = errors.New("cannot prompt in non-interactive mode")

// NonInteractivePrompter implements Prompter but fails fast on any prompt attempt.
type NonInteractivePrompter struct {
	// FailMessage provides context about what flag/env var to set.
	FailMessage string
}

func NewNonInteractivePrompter() *NonInteractivePrompter {
	return &NonInteractivePrompter{}
}

func (p *NonInteractivePrompter) fail(operation string) error {
	msg := p.FailMessage
	if msg == "" {
		msg = "use flags to provide required values, or unset LUX_NON_INTERACTIVE"
	}
	return fmt.Errorf("%w: %s - %s", ErrNonInteractive, operation, msg)
}

func (p *NonInteractivePrompter) CapturePrivateKey(promptStr string) (string, error) {
	return "", p.fail(promptStr)
}
