// Package fs implements the note storage contract on top of a plain
// directory: one file per note, named after its id, with YAML frontmatter
// carrying the owner and name and the markdown body carrying the content.
package fs

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/fslaktern/noters/pkg/core"
)

// notePattern matches the files this adapter considers notes. Anything else
// in the directory is ignored.
const notePattern = "*.md"

// Repository implements core.Repository using one file per note.
type Repository struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path     string
	MaxNotes int
	Logger   *slog.Logger
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Repository{
		Path:   config.Path,
		config: config,
	}
}

// Initialize performs the necessary setup for the repository (mkdir).
func (r *Repository) Initialize(ctx context.Context) error {
	if err := os.MkdirAll(r.Path, 0755); err != nil {
		return fmt.Errorf("failed to create notes directory: %w", err)
	}
	return nil
}

// Create persists a new note under the smallest free id.
// Callers serialize creates via Lock; Create itself does not lock.
func (r *Repository) Create(ctx context.Context, owner, name, content string) (core.NoteID, error) {
	used, err := r.scanIDs()
	if err != nil {
		return 0, err
	}
	if len(used) >= r.config.MaxNotes {
		return 0, &core.NoteCountExceededError{Max: r.config.MaxNotes}
	}

	// Smallest non-negative id not currently in use. The candidate range
	// is capped so a limit misconfigured past the 16-bit id space cannot
	// wrap the scan.
	var (
		id    core.NoteID
		found bool
	)
	for i := 0; i < r.config.MaxNotes && i <= math.MaxUint16; i++ {
		if _, taken := used[core.NoteID(i)]; !taken {
			id = core.NoteID(i)
			found = true
			break
		}
	}
	if !found {
		return 0, &core.NoteCountExceededError{Max: r.config.MaxNotes}
	}

	note := core.Note{ID: id, Owner: owner, Name: name, Content: content}
	data, err := serializeNote(note)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize note: %w", err)
	}

	if err := writeFileAtomic(r.notePath(id), data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write note: %w", err)
	}

	r.config.Logger.Debug("note written", "id", id, "path", r.notePath(id))
	return id, nil
}

// Get retrieves a full note from its file.
func (r *Repository) Get(ctx context.Context, id core.NoteID) (core.Note, error) {
	f, err := os.Open(r.notePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return core.Note{}, &core.NotFoundError{ID: id}
		}
		return core.Note{}, fmt.Errorf("failed to open note #%d: %w", id, err)
	}
	defer f.Close()

	note, err := parseNote(f)
	if err != nil {
		return core.Note{}, fmt.Errorf("failed to parse note #%d: %w", id, err)
	}
	note.ID = id

	return note, nil
}

// GetPartial retrieves the id/owner/name projection of a note.
func (r *Repository) GetPartial(ctx context.Context, id core.NoteID) (core.PartialNote, error) {
	note, err := r.Get(ctx, id)
	if err != nil {
		return core.PartialNote{}, err
	}
	return core.PartialNote{ID: note.ID, Owner: note.Owner, Name: note.Name}, nil
}

// Update replaces the name and content of an existing note. The owner is
// carried over from the file on disk and never changes.
func (r *Repository) Update(ctx context.Context, id core.NoteID, name, content string) error {
	current, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	current.Name = name
	current.Content = content

	data, err := serializeNote(current)
	if err != nil {
		return fmt.Errorf("failed to serialize note: %w", err)
	}
	if err := writeFileAtomic(r.notePath(id), data, 0644); err != nil {
		return fmt.Errorf("failed to write note: %w", err)
	}

	return nil
}

// Delete removes a note file, freeing its id.
func (r *Repository) Delete(ctx context.Context, id core.NoteID) error {
	if err := os.Remove(r.notePath(id)); err != nil {
		if os.IsNotExist(err) {
			return &core.NotFoundError{ID: id}
		}
		return fmt.Errorf("failed to delete note #%d: %w", id, err)
	}
	return nil
}

// List returns the projection of every note file in the directory, in
// directory scan order.
func (r *Repository) List(ctx context.Context) ([]core.PartialNote, error) {
	entries, err := os.ReadDir(r.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read notes directory: %w", err)
	}

	notes := make([]core.PartialNote, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		id, ok := r.noteID(entry.Name())
		if !ok {
			continue
		}
		partial, err := r.GetPartial(ctx, id)
		if err != nil {
			// A file removed between ReadDir and the read here is no
			// longer a live note, not a broken listing.
			if core.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		notes = append(notes, partial)
	}

	return notes, nil
}

func (r *Repository) notePath(id core.NoteID) string {
	return filepath.Join(r.Path, fmt.Sprintf("%d.md", id))
}

// noteID maps a filename back to a note id. Files that don't look like
// notes (temp files, the lock file, foreign files) report false.
func (r *Repository) noteID(filename string) (core.NoteID, bool) {
	if strings.HasPrefix(filename, TempFilePrefix) || filename == lockFileName {
		return 0, false
	}
	if ok, err := doublestar.Match(notePattern, filename); err != nil || !ok {
		return 0, false
	}
	raw := strings.TrimSuffix(filename, filepath.Ext(filename))
	n, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		r.config.Logger.Debug("ignoring foreign file in notes directory", "name", filename)
		return 0, false
	}
	return core.NoteID(n), true
}

func (r *Repository) scanIDs() (map[core.NoteID]struct{}, error) {
	entries, err := os.ReadDir(r.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read notes directory: %w", err)
	}

	used := make(map[core.NoteID]struct{}, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if id, ok := r.noteID(entry.Name()); ok {
			used[id] = struct{}{}
		}
	}
	return used, nil
}
