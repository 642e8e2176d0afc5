// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"errors"
	"testing"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/require"
)

const testKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func TestValidatePrivateKey(t *testing.T) {
	require := require.New(t)
	require.NoError(validatePrivateKey(testKey))
	require.NoError(validatePrivateKey("0x" + testKey))
	require.ErrorIs(validatePrivateKey(""), errEmptyInput)
	require.Error(validatePrivateKey("abc"))
	require.Error(validatePrivateKey(testKey[:62] + "zz"))
}

func TestCapturePrivateKey(t *testing.T) {
	require := require.New(t)
	orig := promptUIRunner
	defer func() { promptUIRunner = orig }()

	var got promptui.Prompt
	promptUIRunner = func(p promptui.Prompt) (string, error) {
		got = p
		return " 0x" + testKey + " ", nil
	}
	key, err := NewPrompter().CapturePrivateKey("Deployer private key")
	require.NoError(err)
	require.Equal("0x"+testKey, key)
	require.Equal('*', got.Mask)
	require.Equal("Deployer private key", got.Label)

	promptUIRunner = func(promptui.Prompt) (string, error) {
		return "", promptui.ErrInterrupt
	}
	_, err = NewPrompter().CapturePrivateKey("key")
	require.ErrorIs(err, promptui.ErrInterrupt)
}

func TestNonInteractivePrompter(t *testing.T) {
	p := NewNonInteractivePrompter()
	_, err := p.CapturePrivateKey("Deployer private key")
	require.True(t, errors.Is(err, ErrNonInteractive))
	require.Contains(t, err.Error(), "Deployer private key")
}
