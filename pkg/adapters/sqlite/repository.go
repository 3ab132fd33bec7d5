// Package sqlite implements the note storage contract on a single SQLite
// database file. One row per note, slot ids reused after deletion.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fslaktern/noters/pkg/core"
)

//go:embed schema.sql
var schemaSQL string

// Repository implements core.Repository on a SQLite database.
type Repository struct {
	config Config

	mu sync.Mutex // guards db open/close state
	db *sql.DB

	lockMu sync.Mutex // backs Lock; serializes scan-then-act sequences
}

// Config holds the configuration for the SQLite repository.
type Config struct {
	Path     string
	MaxNotes int
	Logger   *slog.Logger
}

// NewRepository creates a new SQLite-backed repository. The database is not
// opened until Initialize is called.
func NewRepository(config Config) *Repository {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Repository{config: config}
}

// Initialize opens (creating if necessary) the database file, applies the
// required pragmas and the schema. Idempotent.
func (r *Repository) Initialize(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite3", r.config.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	r.db = db
	r.config.Logger.Debug("database opened", "path", r.config.Path)
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// Create inserts a new note under the smallest free id, enforcing the
// note count ceiling. Insert and slot scan run in one transaction.
// Callers serialize creates via Lock; Create itself does not lock.
func (r *Repository) Create(ctx context.Context, owner, name, content string) (core.NoteID, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("create note: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	rows, err := tx.QueryContext(ctx, `SELECT id FROM notes ORDER BY id`)
	if err != nil {
		return 0, fmt.Errorf("create note: scan ids: %w", err)
	}

	// Walk the sorted ids to find the first gap.
	var (
		id    core.NoteID
		count int
	)
	for rows.Next() {
		var used core.NoteID
		if err := rows.Scan(&used); err != nil {
			rows.Close()
			return 0, fmt.Errorf("create note: scan ids: %w", err)
		}
		count++
		if used == id {
			id++
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("create note: scan ids: %w", err)
	}
	rows.Close()

	if count >= r.config.MaxNotes {
		return 0, &core.NoteCountExceededError{Max: r.config.MaxNotes}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO notes (id, owner, name, content)
		VALUES (?, ?, ?, ?)
	`, id, owner, name, content)
	if err != nil {
		return 0, fmt.Errorf("create note: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("create note: commit: %w", err)
	}

	r.config.Logger.Debug("note inserted", "id", id)
	return id, nil
}

// Get retrieves a full note by id.
func (r *Repository) Get(ctx context.Context, id core.NoteID) (core.Note, error) {
	var note core.Note
	err := r.db.QueryRowContext(ctx, `
		SELECT id, owner, name, content FROM notes WHERE id = ?
	`, id).Scan(&note.ID, &note.Owner, &note.Name, &note.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Note{}, &core.NotFoundError{ID: id}
	}
	if err != nil {
		return core.Note{}, fmt.Errorf("get note #%d: %w", id, err)
	}
	return note, nil
}

// GetPartial retrieves the id/owner/name projection of a note.
func (r *Repository) GetPartial(ctx context.Context, id core.NoteID) (core.PartialNote, error) {
	var partial core.PartialNote
	err := r.db.QueryRowContext(ctx, `
		SELECT id, owner, name FROM notes WHERE id = ?
	`, id).Scan(&partial.ID, &partial.Owner, &partial.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return core.PartialNote{}, &core.NotFoundError{ID: id}
	}
	if err != nil {
		return core.PartialNote{}, fmt.Errorf("get note #%d: %w", id, err)
	}
	return partial, nil
}

// Update replaces the name and content of an existing note. The owner
// column is never touched.
func (r *Repository) Update(ctx context.Context, id core.NoteID, name, content string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE notes SET name = ?, content = ? WHERE id = ?
	`, name, content, id)
	if err != nil {
		return fmt.Errorf("update note #%d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update note #%d: %w", id, err)
	}
	if affected == 0 {
		return &core.NotFoundError{ID: id}
	}
	return nil
}

// Delete removes a note row, freeing its id.
func (r *Repository) Delete(ctx context.Context, id core.NoteID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete note #%d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete note #%d: %w", id, err)
	}
	if affected == 0 {
		return &core.NotFoundError{ID: id}
	}
	return nil
}

// List returns the projection of every note, ordered by id.
func (r *Repository) List(ctx context.Context) ([]core.PartialNote, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner, name FROM notes ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]core.PartialNote, 0)
	for rows.Next() {
		var partial core.PartialNote
		if err := rows.Scan(&partial.ID, &partial.Owner, &partial.Name); err != nil {
			return nil, fmt.Errorf("list notes: %w", err)
		}
		notes = append(notes, partial)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	return notes, nil
}

// Lock serializes scan-then-act sequences within this process. Cross-process
// writers are already serialized by SQLite's own locking plus the busy
// timeout, so an in-process mutex is enough here.
func (r *Repository) Lock(ctx context.Context) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.lockMu.Lock()
	return r.lockMu.Unlock, nil
}
