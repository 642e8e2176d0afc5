// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package artifacts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/luxfi/geth/accounts/abi"
	"github.com/luxfi/geth/common/hexutil"
	"github.com/luxfi/migrate/pkg/constants"
)

// Artifact is the deployable form of a compiled contract.
type Artifact struct {
	ContractName string
	ABI          abi.ABI
	Bytecode     []byte
	SourcePath   string
}

// buildFile covers both the truffle/hardhat layout, where bytecode is a hex
// string, and the foundry layout, where it is an object with the hex under
// "object".
type buildFile struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     json.RawMessage `json:"bytecode"`
}

type foundryBytecode struct {
	Object string `json:"object"`
}

// ParseBuildJSON parses a truffle, hardhat or foundry build file.
// fallbackName is used when the file does not carry a contractName.
func ParseBuildJSON(data []byte, fallbackName string) (*Artifact, error) {
	var bf buildFile
	if err := json.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("invalid build file: %w", err)
	}
	name := bf.ContractName
	if name == "" {
		name = fallbackName
	}
	code, err := bytecodeString(bf.Bytecode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return newArtifact(name, bf.ABI, code)
}

// ParseBin builds an artifact from a raw hex .bin file and an optional ABI.
func ParseBin(name string, bin []byte, rawABI []byte) (*Artifact, error) {
	return newArtifact(name, rawABI, strings.TrimSpace(string(bin)))
}

func newArtifact(name string, rawABI []byte, code string) (*Artifact, error) {
	bytecode, err := decodeBytecode(code)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid bytecode: %w", name, err)
	}
	if len(bytecode) == 0 {
		return nil, fmt.Errorf("%s: %w", name, constants.ErrEmptyBytecode)
	}
	art := &Artifact{
		ContractName: name,
		Bytecode:     bytecode,
	}
	if len(bytes.TrimSpace(rawABI)) > 0 && !bytes.Equal(bytes.TrimSpace(rawABI), []byte("null")) {
		parsed, err := abi.JSON(bytes.NewReader(rawABI))
		if err != nil {
			return nil, fmt.Errorf("%s: failed to parse ABI: %w", name, err)
		}
		art.ABI = parsed
	}
	return art, nil
}

func bytecodeString(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var obj foundryBytecode
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", fmt.Errorf("unsupported bytecode field: %w", err)
	}
	return obj.Object, nil
}

func decodeBytecode(code string) ([]byte, error) {
	code = strings.TrimPrefix(strings.TrimSpace(code), "0x")
	if code == "" {
		return nil, nil
	}
	return hexutil.Decode("0x" + code)
}

// PackConstructor returns the creation input: bytecode followed by the ABI
// encoded constructor arguments.
func (a *Artifact) PackConstructor(args ...interface{}) ([]byte, error) {
	packed, err := a.ABI.Pack("", args...)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to pack constructor arguments: %w", a.ContractName, err)
	}
	return append(append([]byte{}, a.Bytecode...), packed...), nil
}
