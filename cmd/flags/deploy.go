// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package flags

import (
	"fmt"
	"net/url"

	"github.com/luxfi/migrate/pkg/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	rpcURLFlag       = "rpc"
	privateKeyFlag   = "private-key"
	artifactsDirFlag = "artifacts"
	timeoutFlag      = "timeout"
)

// --private-key is left out: it outranks the key env vars, which viper
// would not know about.
var deployFlagKeys = map[string]string{
	rpcURLFlag:       constants.ConfigRPCURL,
	artifactsDirFlag: constants.ConfigArtifactsDir,
	timeoutFlag:      constants.ConfigDeployTimeout,
}

// AddDeployFlagsToCmd adds the flags every deploying command shares. Values
// are bound to viper right before the command runs, so flags take priority
// over env vars and the config file.
func AddDeployFlagsToCmd(cmd *cobra.Command) {
	cmd.Flags().String(rpcURLFlag, "", "EVM RPC endpoint to deploy to (env "+constants.EnvRPCURL+")")
	cmd.Flags().String(privateKeyFlag, "", "hex private key paying for deployments (env "+constants.EnvPrivateKey+")")
	cmd.Flags().String(artifactsDirFlag, "", "directory holding compiled contract artifacts (env "+constants.EnvArtifactsDir+")")
	cmd.Flags().Duration(timeoutFlag, constants.DeployTimeout, "how long to wait for each deployment to be mined")

	existingPreRunE := cmd.PreRunE
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if existingPreRunE != nil {
			if err := existingPreRunE(cmd, args); err != nil {
				return err
			}
		}
		if err := BindFlags(viper.GetViper(), cmd.Flags(), deployFlagKeys); err != nil {
			return err
		}
		return ValidateRPC(viper.GetString(constants.ConfigRPCURL))
	}
}

// PrivateKey returns the --private-key value of cmd, empty when unset.
func PrivateKey(cmd *cobra.Command) string {
	key, _ := cmd.Flags().GetString(privateKeyFlag)
	return key
}

// BindFlags binds each flag name to its config key.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	for flagName, configKey := range keys {
		f := fs.Lookup(flagName)
		if f == nil {
			return fmt.Errorf("flag --%s is not defined", flagName)
		}
		if err := v.BindPFlag(configKey, f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRPC accepts an empty endpoint (the default is used) or an
// http(s)/ws(s) URL.
func ValidateRPC(rpc string) error {
	if rpc == "" {
		return nil
	}
	u, err := url.Parse(rpc)
	if err != nil {
		return fmt.Errorf("invalid rpc endpoint %q: %w", rpc, err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return fmt.Errorf("invalid rpc endpoint %q: unsupported scheme %q", rpc, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid rpc endpoint %q: missing host", rpc)
	}
	return nil
}
