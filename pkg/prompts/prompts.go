// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"errors"
	"strings"

	"github.com/manifoldco/promptui"
)

var errEmptyInput = errors.New("input cannot be empty")

// Prompter is the set of questions the CLI may ask.
type Prompter interface {
	CapturePrivateKey(promptStr string) (string, error)
}

type realPrompter struct{}

func NewPrompter() Prompter {
	return &realPrompter{}
}

// promptUIRunner is a variable for testing purposes to allow mocking prompt.Run()
var promptUIRunner = func(prompt promptui.Prompt) (string, error) {
	return prompt.Run()
}

func validatePrivateKey(input string) error {
	key := strings.TrimPrefix(strings.TrimSpace(input), "0x")
	if key == "" {
		return errEmptyInput
	}
	if len(key) != 64 {
		return errors.New("private key must be 32 bytes hex encoded")
	}
	for _, c := range key {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return errors.New("private key must be hex encoded")
		}
	}
	return nil
}

func (*realPrompter) CapturePrivateKey(promptStr string) (string, error) {
	prompt := promptui.Prompt{
		Label:    promptStr,
		Mask:     '*',
		Validate: validatePrivateKey,
	}
	key, err := promptUIRunner(prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(key), nil
}
