package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/fslaktern/noters/pkg/core"
)

func newTestRepo(t *testing.T, maxNotes int) *Repository {
	t.Helper()
	repo := NewRepository(Config{
		Path:     filepath.Join(t.TempDir(), "notes.db"),
		MaxNotes: maxNotes,
	})
	if err := repo.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("Close() failed: %v", err)
		}
	})
	return repo
}

func TestInitializeIsIdempotent(t *testing.T) {
	repo := newTestRepo(t, 10)
	if err := repo.Initialize(context.Background()); err != nil {
		t.Fatalf("second Initialize() failed: %v", err)
	}
}

func TestCreateAssignsSmallestFreeID(t *testing.T) {
	repo := newTestRepo(t, 10)
	ctx := context.Background()

	for want := core.NoteID(0); want < 3; want++ {
		id, err := repo.Create(ctx, "alice", "note", "content")
		if err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
		if id != want {
			t.Errorf("Create() assigned id %d, want %d", id, want)
		}
	}

	if err := repo.Delete(ctx, 0); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	id, err := repo.Create(ctx, "bob", "refill", "content")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if id != 0 {
		t.Errorf("Create() after delete assigned id %d, want the freed slot 0", id)
	}
}

func TestCreateCapacity(t *testing.T) {
	repo := newTestRepo(t, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := repo.Create(ctx, "alice", "note", "content"); err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
	}

	_, err := repo.Create(ctx, "alice", "overflow", "content")
	var capErr *core.NoteCountExceededError
	if !errors.As(err, &capErr) {
		t.Fatalf("Create() beyond capacity returned %v, want NoteCountExceededError", err)
	}

	notes, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(notes) != 2 {
		t.Errorf("store holds %d notes after failed create, want 2", len(notes))
	}
}

func TestGetRoundTrip(t *testing.T) {
	repo := newTestRepo(t, 10)
	ctx := context.Background()

	content := "multi\nline\ncontent with [[7]]"
	id, err := repo.Create(ctx, "alice", "round trip", content)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	note, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	want := core.Note{ID: id, Owner: "alice", Name: "round trip", Content: content}
	if note != want {
		t.Errorf("Get() = %+v, want %+v", note, want)
	}

	partial, err := repo.GetPartial(ctx, id)
	if err != nil {
		t.Fatalf("GetPartial() failed: %v", err)
	}
	if partial.Owner != "alice" || partial.Name != "round trip" {
		t.Errorf("GetPartial() = %+v", partial)
	}
}

func TestGetNotFound(t *testing.T) {
	repo := newTestRepo(t, 10)
	ctx := context.Background()

	if _, err := repo.Get(ctx, 42); !core.IsNotFound(err) {
		t.Errorf("Get() on missing id returned %v, want NotFoundError", err)
	}
	if _, err := repo.GetPartial(ctx, 42); !core.IsNotFound(err) {
		t.Errorf("GetPartial() on missing id returned %v, want NotFoundError", err)
	}
}

func TestUpdatePreservesOwner(t *testing.T) {
	repo := newTestRepo(t, 10)
	ctx := context.Background()

	id, err := repo.Create(ctx, "alice", "old", "old content")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if err := repo.Update(ctx, id, "new", "new content"); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	note, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if note.Owner != "alice" {
		t.Errorf("Update() changed owner to %q", note.Owner)
	}
	if note.Name != "new" || note.Content != "new content" {
		t.Errorf("Update() result = %q/%q", note.Name, note.Content)
	}

	if err := repo.Update(ctx, 99, "x", "y"); !core.IsNotFound(err) {
		t.Errorf("Update() on missing id returned %v, want NotFoundError", err)
	}
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t, 10)
	ctx := context.Background()

	id, err := repo.Create(ctx, "alice", "doomed", "content")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if err := repo.Delete(ctx, id); !core.IsNotFound(err) {
		t.Errorf("double Delete() returned %v, want NotFoundError", err)
	}
}

func TestListOrderedByID(t *testing.T) {
	repo := newTestRepo(t, 10)
	ctx := context.Background()

	for _, owner := range []string{"alice", "bob", "alice"} {
		if _, err := repo.Create(ctx, owner, "note", "content"); err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
	}

	notes, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("List() returned %d notes, want 3", len(notes))
	}
	for i, note := range notes {
		if note.ID != core.NoteID(i) {
			t.Errorf("List()[%d].ID = %d, want %d", i, note.ID, i)
		}
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.db")
	ctx := context.Background()

	repo := NewRepository(Config{Path: path, MaxNotes: 10})
	if err := repo.Initialize(ctx); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	id, err := repo.Create(ctx, "alice", "durable", "survives reopen")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	reopened := NewRepository(Config{Path: path, MaxNotes: 10})
	if err := reopened.Initialize(ctx); err != nil {
		t.Fatalf("reopen Initialize() failed: %v", err)
	}
	defer reopened.Close()

	note, err := reopened.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() after reopen failed: %v", err)
	}
	if note.Content != "survives reopen" {
		t.Errorf("Get() after reopen content = %q", note.Content)
	}
}

func TestLockReleases(t *testing.T) {
	repo := newTestRepo(t, 10)

	unlock, err := repo.Lock(context.Background())
	if err != nil {
		t.Fatalf("Lock() failed: %v", err)
	}
	unlock()

	unlock2, err := repo.Lock(context.Background())
	if err != nil {
		t.Fatalf("Lock() after unlock failed: %v", err)
	}
	unlock2()
}
