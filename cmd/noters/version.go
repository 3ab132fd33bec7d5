package main

import (
	"fmt"
	"strings"

	"github.com/fslaktern/noters"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of noters",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("noters version %s\n", strings.TrimSpace(noters.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
