// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"time"

	"github.com/luxfi/migrate/pkg/constants"
	"github.com/spf13/viper"
)

type Config struct {
	v *viper.Viper
}

// New returns a Config backed by the global viper instance, which is where
// the root command binds flags, env vars and the config file.
func New() *Config {
	return &Config{v: viper.GetViper()}
}

// NewWithViper is used by tests to isolate config state.
func NewWithViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

func (c *Config) RPCURL() string {
	if url := c.v.GetString(constants.ConfigRPCURL); url != "" {
		return url
	}
	return constants.DefaultRPCURL
}

// PrivateKey is the deployer key from the config file. The --private-key
// flag and the key env vars are not bound here; they rank above it.
func (c *Config) PrivateKey() string {
	return c.v.GetString(constants.ConfigPrivateKey)
}

// ArtifactsDir is the artifacts directory set by flag, env or config file.
// It is empty when none was set and the default locations apply.
func (c *Config) ArtifactsDir() string {
	if !c.ConfigValueIsSet(constants.ConfigArtifactsDir) {
		return ""
	}
	return c.v.GetString(constants.ConfigArtifactsDir)
}

func (c *Config) DeployTimeout() time.Duration {
	if d := c.v.GetDuration(constants.ConfigDeployTimeout); d > 0 {
		return d
	}
	return constants.DeployTimeout
}

func (c *Config) ContinueOnError() bool {
	return c.v.GetBool(constants.ConfigContinueOnError)
}

func (c *Config) ConfigValueIsSet(key string) bool {
	return c.v.IsSet(key)
}
