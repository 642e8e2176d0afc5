// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package key

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/luxfi/crypto"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/go-bip39"
	"github.com/luxfi/migrate/pkg/constants"
)

var ErrInvalidMnemonic = errors.New("invalid mnemonic")

// Prompter asks the user for a key when nothing else provides one.
type Prompter interface {
	CapturePrivateKey(promptStr string) (string, error)
}

// ParsePrivateKey parses a hex encoded secp256k1 key, with or without 0x.
func ParsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	pk, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return pk, nil
}

// FromMnemonic derives the first account (m/44'/60'/0'/0/0) of mnemonic.
func FromMnemonic(mnemonic string) (*ecdsa.PrivateKey, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	seed := bip39.NewSeed(mnemonic, "")

	masterKey, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}
	path := []uint32{
		hdkeychain.HardenedKeyStart + 44,
		hdkeychain.HardenedKeyStart + 60,
		hdkeychain.HardenedKeyStart + 0,
		0,
		0,
	}
	derived := masterKey
	for _, idx := range path {
		derived, err = derived.Derive(idx)
		if err != nil {
			return nil, fmt.Errorf("failed to derive %s: %w", constants.EthereumDerivationPath, err)
		}
	}
	ecPrivKey, err := derived.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get EC private key: %w", err)
	}
	return ecPrivKey.ToECDSA(), nil
}

// Address returns the EVM address controlled by pk.
func Address(pk *ecdsa.PrivateKey) common.Address {
	return common.Address(crypto.PubkeyToAddress(pk.PublicKey))
}

// ResolveDeployerKey picks the deployer key.
// Priority: explicit key (flag) > LUX_PRIVATE_KEY > LUX_MNEMONIC >
// configured key (config file) > prompt.
// A nil prompter means prompting is not allowed.
func ResolveDeployerKey(explicit, configured string, prompter Prompter) (*ecdsa.PrivateKey, error) {
	if explicit != "" {
		return ParsePrivateKey(explicit)
	}
	if envKey := os.Getenv(constants.EnvPrivateKey); envKey != "" {
		pk, err := ParsePrivateKey(envKey)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", constants.EnvPrivateKey, err)
		}
		return pk, nil
	}
	if mnemonic := os.Getenv(constants.EnvMnemonic); mnemonic != "" {
		pk, err := FromMnemonic(mnemonic)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", constants.EnvMnemonic, err)
		}
		return pk, nil
	}
	if configured != "" {
		pk, err := ParsePrivateKey(configured)
		if err != nil {
			return nil, fmt.Errorf("%s in config file: %w", constants.ConfigPrivateKey, err)
		}
		return pk, nil
	}
	if prompter == nil {
		return nil, constants.ErrNoDeployerKey
	}
	hexKey, err := prompter.CapturePrivateKey("Deployer private key")
	if err != nil {
		return nil, err
	}
	if hexKey == "" {
		return nil, constants.ErrNoDeployerKey
	}
	return ParsePrivateKey(hexKey)
}
