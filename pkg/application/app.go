// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package application

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"time"

	luxlog "github.com/luxfi/log"
	"github.com/luxfi/migrate/pkg/artifacts"
	"github.com/luxfi/migrate/pkg/config"
	"github.com/luxfi/migrate/pkg/constants"
	"github.com/luxfi/migrate/pkg/contract"
	"github.com/luxfi/migrate/pkg/key"
	"github.com/luxfi/migrate/pkg/prompts"
	"github.com/luxfi/migrate/pkg/ux"
	"github.com/spf13/afero"
)

// App is the context handed to every command.
type App struct {
	Log    luxlog.Logger
	Conf   *config.Config
	Prompt prompts.Prompter
	Fs     afero.Fs
	Out    *ux.UserLog
}

func New() *App {
	return &App{}
}

func (app *App) Setup(
	log luxlog.Logger,
	conf *config.Config,
	prompt prompts.Prompter,
	fs afero.Fs,
	out *ux.UserLog,
) {
	app.Log = log
	app.Conf = conf
	app.Prompt = prompt
	app.Fs = fs
	app.Out = out
}

// ArtifactDirs returns the directories searched for contract artifacts.
// A set dir is searched alone; otherwise the truffle and foundry default
// locations are tried in that order.
func (*App) ArtifactDirs(dir string) []string {
	if dir != "" {
		return []string{dir}
	}
	return []string{constants.DefaultArtifactsDir, constants.FoundryArtifactsDir}
}

func (app *App) NewArtifactRegistry(dir string) *artifacts.Registry {
	return artifacts.NewRegistry(app.Fs, app.ArtifactDirs(dir)...)
}

// DeployerKey resolves the deployer key. flagKey is the --private-key value;
// the config file key only applies when neither the flag nor the key env
// vars provide one.
func (app *App) DeployerKey(flagKey string) (*ecdsa.PrivateKey, error) {
	var configured string
	if app.Conf != nil {
		configured = app.Conf.PrivateKey()
	}
	return key.ResolveDeployerKey(flagKey, configured, app.Prompt)
}

// NewDeployer resolves the deployer key, connects to rpcURL and returns a
// deployer reading artifacts from dir.
func (app *App) NewDeployer(
	ctx context.Context,
	rpcURL string,
	flagKey string,
	dir string,
	timeout time.Duration,
) (*contract.EVMDeployer, error) {
	pk, err := app.DeployerKey(flagKey)
	if err != nil {
		return nil, err
	}
	app.Log.Info("deployer account", "address", key.Address(pk).Hex())
	d, err := contract.DialEVMDeployer(
		ctx,
		rpcURL,
		pk,
		app.NewArtifactRegistry(dir),
		contract.WithTimeout(timeout),
		contract.WithLogger(app.Log),
		contract.WithWaitOutput(app.Out.Writer()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create deployer: %w", err)
	}
	return d, nil
}
