// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package migratecmd

import (
	"strconv"
	"strings"

	"github.com/luxfi/migrate/internal/migrations"
	"github.com/luxfi/migrate/pkg/application"
	"github.com/luxfi/migrate/pkg/cobrautils"
	"github.com/spf13/cobra"
)

// lux-migrate migrate list
func newListCmd(app *application.App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered migrations",
		Args:  cobrautils.ExactArgs(0),
		RunE: func(*cobra.Command, []string) error {
			return app.Out.PrintTable([]string{"#", "Migration", "Deploys"}, migrationRows())
		},
	}
}

func migrationRows() [][]string {
	var rows [][]string
	for _, m := range migrations.List() {
		names := make([]string, 0, len(m.Tasks))
		for _, t := range m.Tasks {
			names = append(names, t.Name)
		}
		rows = append(rows, []string{strconv.Itoa(m.Number), m.Name, strings.Join(names, " -> ")})
	}
	return rows
}
