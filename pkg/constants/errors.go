// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import "errors"

var (
	ErrDeploymentFailed = errors.New("deployment step failed")
	ErrArtifactNotFound = errors.New("artifact not found")
	ErrEmptyBytecode    = errors.New("artifact has no bytecode")
	ErrNoDeployerKey    = errors.New("no deployer key: use --private-key, LUX_PRIVATE_KEY, or LUX_MNEMONIC")
	ErrMigrationFailed  = errors.New("migration failed")
)
