// Package noters is the public entry point for embedding the note store
// as a library. It re-exports the composition root so callers only need
// one import:
//
//	svc, err := noters.New(ctx, noters.Config{
//		Backend: noters.BackendFS,
//		Path:    "./notes",
//		User:    "alice",
//	})
package noters

import (
	"context"
	_ "embed"

	"github.com/fslaktern/noters/pkg/core"
	app "github.com/fslaktern/noters/pkg/noters"
)

// Version exposes the version of the library.
//
//go:embed VERSION
var Version string

// --- Types ---

// Config configures the noters application.
type Config = app.Config

// Backend selects the storage adapter behind the service.
type Backend = app.Backend

// Option defines a functional option for configuring noters.
type Option = app.Option

const (
	// BackendFS stores one markdown file per note in a directory.
	BackendFS = app.BackendFS
	// BackendSQLite stores all notes in a single SQLite database file.
	BackendSQLite = app.BackendSQLite
)

// Default limits applied when Config leaves them zero.
const (
	DefaultMaxNameSize    = app.DefaultMaxNameSize
	DefaultMaxContentSize = app.DefaultMaxContentSize
	DefaultMaxNotes       = app.DefaultMaxNotes
)

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return app.WithRepository(repo)
}

// --- Factory ---

// New creates a new noters Service.
func New(ctx context.Context, cfg Config, opts ...Option) (*core.Service, error) {
	return app.New(ctx, cfg, opts...)
}
