package reactivity

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fslaktern/noters"
	"github.com/fslaktern/noters/pkg/core"
)

// writeNoteFile drops a note file into the directory the way an external
// process would, bypassing the service entirely.
func writeNoteFile(t *testing.T, dir string, id core.NoteID, content string) string {
	t.Helper()
	path := filepath.Join(dir, fmt.Sprintf("%d.md", id))
	data := "---\nowner: alice\nname: external\n---\n" + content
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

// waitFor drains events until one matches the wanted type and id, or the
// context deadline hits.
func waitFor(t *testing.T, ctx context.Context, events <-chan core.Event, wantType core.EventType, wantID core.NoteID) {
	t.Helper()
	for {
		select {
		case event := <-events:
			if event.Type == wantType && event.ID == wantID {
				return
			}
		case <-ctx.Done():
			t.Fatalf("timed out waiting for %s #%d", wantType, wantID)
		}
	}
}

func TestWatchSeesExternalChanges(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	svc, err := noters.New(ctx, noters.Config{
		Backend: noters.BackendFS,
		Path:    dir,
		User:    "alice",
	})
	require.NoError(t, err)

	events, err := svc.Watch(ctx, "")
	require.NoError(t, err)

	// Give the watcher a moment to become ready.
	time.Sleep(100 * time.Millisecond)

	path := writeNoteFile(t, dir, 7, "dropped in from outside")
	waitFor(t, ctx, events, core.EventCreate, 7)

	require.NoError(t, os.WriteFile(path, []byte("---\nowner: alice\nname: external\n---\nedited"), 0644))
	waitFor(t, ctx, events, core.EventModify, 7)

	require.NoError(t, os.Remove(path))
	waitFor(t, ctx, events, core.EventDelete, 7)
}

func TestWatchIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	svc, err := noters.New(ctx, noters.Config{
		Backend: noters.BackendFS,
		Path:    dir,
		User:    "alice",
	})
	require.NoError(t, err)

	events, err := svc.Watch(ctx, "")
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)

	// Neither a non-note file nor a non-numeric markdown file should
	// produce an event; the real note afterwards should.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("docs"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scratch.txt"), []byte("junk"), 0644))
	writeNoteFile(t, dir, 0, "the real one")

	for {
		select {
		case event := <-events:
			require.Equal(t, core.NoteID(0), event.ID, "event for unexpected file: %s", event)
			require.Equal(t, core.EventCreate, event.Type)
			return
		case <-ctx.Done():
			t.Fatal("timed out waiting for the note event")
		}
	}
}

func TestWatchChannelClosesOnCancel(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())

	svc, err := noters.New(ctx, noters.Config{
		Backend: noters.BackendFS,
		Path:    dir,
		User:    "alice",
	})
	require.NoError(t, err)

	events, err := svc.Watch(ctx, "")
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)
	cancel()

	deadline := time.After(3 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return // closed as expected
			}
		case <-deadline:
			t.Fatal("events channel did not close after cancel")
		}
	}
}
