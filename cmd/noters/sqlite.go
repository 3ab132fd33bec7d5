package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fslaktern/noters/pkg/noters"
)

var sqlitePath string

var sqliteCmd = &cobra.Command{
	Use:   "sqlite",
	Short: "Run against the SQLite backend (all notes in one database file)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		svc, err := noters.New(ctx, serviceConfig(noters.BackendSQLite, sqlitePath))
		if err != nil {
			return fmt.Errorf("failed to initialize noters: %w", err)
		}

		return newMenu(svc).run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(sqliteCmd)
	sqliteCmd.Flags().StringVarP(&sqlitePath, "path", "p", "./notes.db", "Database file")
}
