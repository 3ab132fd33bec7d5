package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	lifecycleadapter "github.com/fslaktern/noters/pkg/adapters/lifecycle"
	"github.com/fslaktern/noters/pkg/noters"
)

var watchPattern string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream note change events from the filesystem backend",
	Long: `Watch observes the notes directory and prints an event line for
every note created, modified or deleted, including changes made by other
processes. Only the filesystem backend supports watching.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		svc, err := noters.New(ctx, serviceConfig(noters.BackendFS, fsPath))
		if err != nil {
			return fmt.Errorf("failed to initialize noters: %w", err)
		}

		events, err := svc.Watch(ctx, watchPattern)
		if err != nil {
			return fmt.Errorf("failed to start watching: %w", err)
		}

		// Run the stream through the lifecycle bridge so the consuming
		// goroutine is supervised alongside the watcher worker.
		source := lifecycleadapter.NewSource(events)
		if err := source.Start(ctx); err != nil {
			return fmt.Errorf("failed to start event source: %w", err)
		}

		fmt.Printf("Watching %s (Ctrl+C to stop)\n", fsPath)
		for event := range source.Events() {
			fmt.Println(event)
		}
		return nil
	},
}

func init() {
	fsCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchPattern, "pattern", "", "Glob pattern of note files to watch (defaults to all notes)")
}
