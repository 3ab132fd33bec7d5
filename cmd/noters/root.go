package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fslaktern/noters/pkg/noters"
)

var (
	user           string
	maxNameSize    int
	maxContentSize int
	maxNoteCount   int
	verbose        bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "noters",
	Short: "A bounded, multi-tenant note store with inline references",
	Long: `Noters stores short notes owned by the user who created them.
Notes may embed [[id]] references to other notes, which are expanded
inline on read, and a note cannot be deleted while others reference it.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&user, "user", "u", "", "Identity to act as (required)")
	rootCmd.PersistentFlags().IntVar(&maxNameSize, "max-name-size", noters.DefaultMaxNameSize, "Maximum note name length in bytes")
	rootCmd.PersistentFlags().IntVar(&maxContentSize, "max-content-size", noters.DefaultMaxContentSize, "Maximum note content length in bytes")
	rootCmd.PersistentFlags().IntVar(&maxNoteCount, "max-note-count", noters.DefaultMaxNotes, "Maximum number of notes in the store")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	_ = rootCmd.MarkPersistentFlagRequired("user")
}

// serviceConfig assembles the shared flags into a service configuration for
// the chosen backend.
func serviceConfig(backend noters.Backend, path string) noters.Config {
	return noters.Config{
		Backend:        backend,
		Path:           path,
		User:           user,
		MaxNameSize:    maxNameSize,
		MaxContentSize: maxContentSize,
		MaxNotes:       maxNoteCount,
		Logger:         slog.Default(),
	}
}
