// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package artifacts

import (
	"math/big"
	"path/filepath"
	"testing"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/migrate/pkg/constants"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const (
	test721ABI = `[{"inputs":[],"stateMutability":"nonpayable","type":"constructor"},` +
		`{"inputs":[{"internalType":"uint256","name":"tokenId","type":"uint256"}],"name":"ownerOf",` +
		`"outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"}]`
	auctionABI = `[{"inputs":[{"internalType":"address","name":"nft","type":"address"},` +
		`{"internalType":"uint256","name":"reserve","type":"uint256"}],"stateMutability":"nonpayable","type":"constructor"}]`
	testBytecode = "0x6080604052348015600f57600080fd5b50603f80601d6000396000f3fe"
)

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func truffleJSON(name, abiJSON string) string {
	return `{"contractName":"` + name + `","abi":` + abiJSON + `,"bytecode":"` + testBytecode + `"}`
}

func TestResolveTruffleArtifact(t *testing.T) {
	require := require.New(t)
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "build/contracts/Test721.json", truffleJSON("Test721", test721ABI))

	r := NewRegistry(fs, "build/contracts")
	art, err := r.Resolve("Test721")
	require.NoError(err)
	require.Equal("Test721", art.ContractName)
	require.Equal(filepath.Join("build/contracts", "Test721.json"), art.SourcePath)
	require.Equal(common.FromHex(testBytecode), art.Bytecode)
	require.Contains(art.ABI.Methods, "ownerOf")
}

func TestResolveFoundryArtifact(t *testing.T) {
	require := require.New(t)
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "out/Auction.sol/Auction.json",
		`{"abi":`+auctionABI+`,"bytecode":{"object":"`+testBytecode+`"}}`)

	art, err := NewRegistry(fs, "build/contracts", "out").Resolve("Auction")
	require.NoError(err)
	require.Equal("Auction", art.ContractName)
	require.Len(art.ABI.Constructor.Inputs, 2)
}

func TestResolveBinArtifact(t *testing.T) {
	require := require.New(t)
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "bin/Test721.bin", testBytecode[2:]+"\n")

	art, err := NewRegistry(fs, "bin").Resolve("Test721")
	require.NoError(err)
	require.Equal(common.FromHex(testBytecode), art.Bytecode)
	require.Empty(art.ABI.Methods)
}

func TestResolveErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "build/Empty.json", `{"contractName":"Empty","abi":[],"bytecode":"0x"}`)
	writeFile(t, fs, "build/Linked.json", `{"contractName":"Linked","abi":[],"bytecode":"0x60__$abc$__"}`)
	writeFile(t, fs, "build/BadABI.json", `{"contractName":"BadABI","abi":{"x":1},"bytecode":"`+testBytecode+`"}`)

	r := NewRegistry(fs, "build")
	tests := []struct {
		name string
		is   error
	}{
		{name: "Missing", is: constants.ErrArtifactNotFound},
		{name: "", is: constants.ErrArtifactNotFound},
		{name: "Empty", is: constants.ErrEmptyBytecode},
		{name: "Linked"},
		{name: "BadABI"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(tt.name)
			require.Error(t, err)
			if tt.is != nil {
				require.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestResolveIsCached(t *testing.T) {
	require := require.New(t)
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "build/Test721.json", truffleJSON("Test721", test721ABI))
	r := NewRegistry(fs, "build")

	first, err := r.Resolve("Test721")
	require.NoError(err)
	require.NoError(fs.Remove("build/Test721.json"))
	second, err := r.Resolve("Test721")
	require.NoError(err)
	require.Same(first, second)
}

func TestList(t *testing.T) {
	require := require.New(t)
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "build/contracts/Test721.json", truffleJSON("Test721", test721ABI))
	writeFile(t, fs, "build/contracts/Auction.json", truffleJSON("Auction", auctionABI))
	writeFile(t, fs, "out/Auction.sol/Auction.json", truffleJSON("Auction", auctionABI))
	writeFile(t, fs, "out/Lib.sol/Helper.json", truffleJSON("Helper", "[]"))
	writeFile(t, fs, "out/Token.bin", testBytecode)
	writeFile(t, fs, "out/README.md", "ignored")

	names, err := NewRegistry(fs, "build/contracts", "out", "missing").List()
	require.NoError(err)
	require.Equal([]string{"Auction", "Test721", "Token"}, names)
}

func TestPackConstructor(t *testing.T) {
	require := require.New(t)
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "build/Auction.json", truffleJSON("Auction", auctionABI))
	art, err := NewRegistry(fs, "build").Resolve("Auction")
	require.NoError(err)

	input, err := art.PackConstructor(common.HexToAddress("0x01"), big.NewInt(5))
	require.NoError(err)
	require.Len(input, len(art.Bytecode)+64)
	require.Equal(art.Bytecode, input[:len(art.Bytecode)])

	_, err = art.PackConstructor()
	require.Error(err)
}
