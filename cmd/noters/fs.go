package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fslaktern/noters/pkg/noters"
)

var fsPath string

var fsCmd = &cobra.Command{
	Use:   "fs",
	Short: "Run against the filesystem backend (one markdown file per note)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		svc, err := noters.New(ctx, serviceConfig(noters.BackendFS, fsPath))
		if err != nil {
			return fmt.Errorf("failed to initialize noters: %w", err)
		}

		return newMenu(svc).run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(fsCmd)
	fsCmd.PersistentFlags().StringVarP(&fsPath, "path", "p", "./notes", "Notes directory")
}
