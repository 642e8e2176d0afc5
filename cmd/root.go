// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/luxfi/migrate/cmd/contractcmd"
	"github.com/luxfi/migrate/cmd/migratecmd"
	"github.com/luxfi/migrate/pkg/application"
	"github.com/luxfi/migrate/pkg/config"
	"github.com/luxfi/migrate/pkg/constants"
	"github.com/luxfi/migrate/pkg/prompts"
	"github.com/luxfi/migrate/pkg/ux"
	luxlog "github.com/luxfi/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	app        *application.App
	logFactory luxlog.Factory

	logLevel       string
	Version        = "0.1.0"
	cfgFile        string
	nonInteractive bool
)

func NewRootCmd() *cobra.Command {
	// rootCmd represents the base command when called without any subcommands
	rootCmd := &cobra.Command{
		Use: "lux-migrate",
		Long: `lux-migrate deploys the project's contracts to an EVM network.

Migrations are numbered and run in order. Each migration deploys a fixed
sequence of compiled contract artifacts (truffle build/contracts or foundry
out/ layouts), waiting for every deployment to be mined before issuing the
next one.

QUICK START:

  # Show what would be deployed
  lux-migrate migrate list

  # Deploy to a local node
  LUX_PRIVATE_KEY=... lux-migrate migrate run --rpc http://127.0.0.1:9650/ext/bc/C/rpc`,
		PersistentPreRunE: createApp,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Disable printing the completion command
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.lux-migrate/config.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "ERROR", "log level for the application")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false,
		"Disable prompts; fail if required values are missing (also enabled when stdin is not a TTY or CI=1)")

	rootCmd.AddCommand(migratecmd.NewCmd(app))
	rootCmd.AddCommand(contractcmd.NewCmd(app))

	return rootCmd
}

func createApp(*cobra.Command, []string) error {
	baseDir, err := setupEnv()
	if err != nil {
		return err
	}
	log, err := setupLogging(baseDir)
	if err != nil {
		return err
	}
	if logLevel != "" {
		if level, err := luxlog.ToLevel(logLevel); err == nil {
			logFactory.SetDisplayLevel(constants.LoggerName, level)
		}
	}

	if nonInteractive {
		_ = os.Setenv(prompts.EnvNonInteractive, "1")
	}
	prompter := prompts.NewPrompterForMode(nonInteractive)

	initConfig(baseDir, log)
	app.Setup(log, config.New(), prompter, afero.NewOsFs(), ux.Logger)
	return nil
}

func setupEnv() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		// no logger here yet
		fmt.Printf("unable to get user home dir %s\n", err)
		return "", err
	}
	baseDir := filepath.Join(home, constants.BaseDirName)
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		fmt.Printf("failed creating the basedir %s: %s\n", baseDir, err)
		return "", err
	}
	return baseDir, nil
}

func setupLogging(baseDir string) (luxlog.Logger, error) {
	config := luxlog.Config{}
	config.LogLevel = luxlog.Level(-6) // file logs keep everything from info up
	config.DisplayLevel, _ = luxlog.ToLevel("WARN")

	config.Directory = filepath.Join(baseDir, constants.LogDir)
	if err := os.MkdirAll(config.Directory, 0o750); err != nil {
		return nil, fmt.Errorf("failed creating log directory: %w", err)
	}

	config.LogFormat = luxlog.Colors
	config.MaxSize = constants.MaxLogFileSize
	config.MaxFiles = constants.MaxNumOfLogFiles
	config.MaxAge = constants.RetainOldFiles

	// caller tracking should show the real source, not the ux wrapper
	luxlog.RegisterInternalPackages("github.com/luxfi/migrate/pkg/ux")

	factory := luxlog.NewFactoryWithConfig(config)
	log, err := factory.Make(constants.LoggerName)
	if err != nil {
		factory.Close()
		return nil, fmt.Errorf("failed setting up logging, exiting: %w", err)
	}
	logFactory = factory
	// user output goes to stdout, logs go to stderr and the log dir
	ux.NewUserLog(log, os.Stdout)
	return log, nil
}

// initConfig reads in config file and ENV variables if set.
// Priority: flags > env vars > config file > defaults
func initConfig(baseDir string, log luxlog.Logger) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(baseDir)
		viper.SetConfigType(constants.DefaultConfigFileType)
		viper.SetConfigName(constants.DefaultConfigFileName)
	}

	_ = viper.BindEnv(constants.ConfigRPCURL, constants.EnvRPCURL)
	_ = viper.BindEnv(constants.ConfigArtifactsDir, constants.EnvArtifactsDir)

	if err := viper.ReadInConfig(); err == nil {
		log.Debug("using config file", "config-file", viper.ConfigFileUsed())
	}
	// No config file is normal, most users don't have one
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	app = application.New()
	rootCmd := NewRootCmd()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if logFactory != nil {
		logFactory.Close()
	}
	if err != nil {
		fmt.Fprint(os.Stderr, exitMessage(err))
		os.Exit(1)
	}
}

// exitMessage is what Execute prints before exiting on err. Deployment
// failures were already reported by the sequencer.
func exitMessage(err error) string {
	if errors.Is(err, constants.ErrDeploymentFailed) {
		return ""
	}
	return fmt.Sprintf("\nERROR: %s\n", err)
}
