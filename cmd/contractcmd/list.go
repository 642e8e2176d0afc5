// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contractcmd

import (
	"strings"

	"github.com/luxfi/migrate/pkg/cobrautils"
	"github.com/spf13/cobra"
)

// lux-migrate contract list
func newListCmd() *cobra.Command {
	var artifactsDir string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the contract artifacts visible to migrations",
		Args:  cobrautils.ExactArgs(0),
		RunE: func(*cobra.Command, []string) error {
			if artifactsDir == "" {
				artifactsDir = app.Conf.ArtifactsDir()
			}
			return listArtifacts(artifactsDir)
		},
	}
	cmd.Flags().StringVar(&artifactsDir, "artifacts", "", "directory holding compiled contract artifacts")
	return cmd
}

func listArtifacts(dir string) error {
	registry := app.NewArtifactRegistry(dir)
	names, err := registry.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		app.Out.PrintToUser("No artifacts found in %s", strings.Join(registry.Dirs(), ", "))
		return nil
	}
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		art, err := registry.Resolve(name)
		if err != nil {
			app.Log.Warn("unusable artifact", "contract", name, "error", err)
			rows = append(rows, []string{name, "-", "invalid"})
			continue
		}
		rows = append(rows, []string{name, art.SourcePath, "ok"})
	}
	return app.Out.PrintTable([]string{"Contract", "Artifact", "Status"}, rows)
}
