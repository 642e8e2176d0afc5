// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import (
	"time"
)

const (
	BaseDirName = ".lux-migrate"
	LogDir      = "logs"
	LoggerName  = "lux-migrate"

	MaxLogFileSize   = 4
	MaxNumOfLogFiles = 5
	RetainOldFiles   = 0 // retain all old log files

	// DeployTimeout bounds a single contract creation, from submission until
	// the contract code is visible on chain.
	DeployTimeout  = 2 * time.Minute
	RequestTimeout = 30 * time.Second

	DefaultConfigFileName = "config"
	DefaultConfigFileType = "json"

	// truffle places build output here; foundry uses out/
	DefaultArtifactsDir = "build/contracts"
	FoundryArtifactsDir = "out"

	ArtifactJSONSuffix = ".json"
	ArtifactBinSuffix  = ".bin"
	ArtifactABISuffix  = ".abi"
	FoundrySolSuffix   = ".sol"

	DefaultRPCURL = "http://127.0.0.1:9650/ext/bc/C/rpc"

	// config keys
	ConfigRPCURL          = "rpc-url"
	ConfigPrivateKey      = "private-key"
	ConfigArtifactsDir    = "artifacts-dir"
	ConfigDeployTimeout   = "deploy-timeout"
	ConfigContinueOnError = "continue-on-error"

	// environment variables
	EnvRPCURL       = "LUX_RPC_URL"
	EnvPrivateKey   = "LUX_PRIVATE_KEY"
	EnvMnemonic     = "LUX_MNEMONIC"
	EnvArtifactsDir = "LUX_ARTIFACTS_DIR"

	// EthereumDerivationPath is the BIP44 path used for the mnemonic account.
	EthereumDerivationPath = "m/44'/60'/0'/0/0"
)
