// Command bench measures the two operations that scale with store size:
// listing and the backlink scan that guards deletion. It generates a
// synthetic store of linked notes and times both against the fs backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fslaktern/noters"
	"github.com/fslaktern/noters/pkg/core"
)

func main() {
	count := flag.Int("count", 1000, "Number of notes to generate")
	keep := flag.Bool("keep", false, "Keep the benchmark store after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "noters_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	fmt.Printf("Generating %d notes in %s...\n", *count, benchDir)
	startGen := time.Now()

	// Direct file writes simulate a pre-existing store. Every note after
	// the first references its predecessor so the delete scan below has
	// real backlinks to find.
	for i := 0; i < *count; i++ {
		content := fmt.Sprintf("---\nowner: bench\nname: note %d\n---\nbody of note %d, see [[%d]]", i, i, i-1)
		if i == 0 {
			content = "---\nowner: bench\nname: note 0\n---\nthe root note"
		}
		filename := filepath.Join(benchDir, fmt.Sprintf("%d.md", i))
		if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
			panic(err)
		}
	}
	fmt.Printf("Generation took: %v\n", time.Since(startGen))

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	service, err := noters.New(context.Background(), noters.Config{
		Backend:  noters.BackendFS,
		Path:     benchDir,
		User:     "bench",
		MaxNotes: *count + 1,
		Logger:   logger,
	})
	if err != nil {
		panic(err)
	}

	ctx := context.Background()

	fmt.Println("Running List...")
	startList := time.Now()
	list, err := service.ListNotes(ctx)
	if err != nil {
		panic(err)
	}
	listDuration := time.Since(startList)
	fmt.Printf("List result: %v (Items: %d)\n", listDuration, len(list))

	// Deleting the last note scans every other note for backlinks; nothing
	// references it, so the delete goes through.
	lastID := core.NoteID(*count - 1)
	fmt.Printf("Running Delete #%d (backlink scan over %d notes)...\n", lastID, len(list))
	startDelete := time.Now()
	if err := service.DeleteNote(ctx, lastID); err != nil {
		panic(err)
	}
	deleteDuration := time.Since(startDelete)
	fmt.Printf("Delete result: %v\n", deleteDuration)

	// Deleting a referenced note must fail after the same full scan.
	startBlocked := time.Now()
	err = service.DeleteNote(ctx, 0)
	blockedDuration := time.Since(startBlocked)
	if err == nil {
		panic("expected delete of referenced note to be blocked")
	}
	fmt.Printf("Blocked delete result: %v (%v)\n", blockedDuration, err)

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d notes):\n", *count)
	fmt.Printf("  List:           %v\n", listDuration)
	fmt.Printf("  Delete (free):  %v\n", deleteDuration)
	fmt.Printf("  Delete (block): %v\n", blockedDuration)
	fmt.Printf("--------------------------------------------------\n")
}
