package noters

import (
	"log/slog"
	"math"
)

// Backend selects the storage adapter behind the service.
type Backend string

const (
	// BackendFS stores one markdown file per note in a directory.
	BackendFS Backend = "fs"
	// BackendSQLite stores all notes in a single SQLite database file.
	BackendSQLite Backend = "sqlite"
)

// Default limits applied when Config leaves them zero.
const (
	DefaultMaxNameSize    = 32
	DefaultMaxContentSize = 1024
	DefaultMaxNotes       = 100
)

// Config configures the noters application.
type Config struct {
	// Backend picks the storage adapter. Required unless a repository is
	// injected via WithRepository.
	Backend Backend

	// Path is the notes directory (fs) or database file (sqlite).
	Path string

	// User is the identity all service operations act as.
	User string

	// Limits. Zero means the default.
	MaxNameSize    int
	MaxContentSize int
	MaxNotes       int

	Logger *slog.Logger
}

func (c *Config) applyDefaults() {
	if c.MaxNameSize == 0 {
		c.MaxNameSize = DefaultMaxNameSize
	}
	if c.MaxContentSize == 0 {
		c.MaxContentSize = DefaultMaxContentSize
	}
	if c.MaxNotes == 0 {
		c.MaxNotes = DefaultMaxNotes
	}
	// Note ids are 16-bit, so the store can never hold more slots than
	// there are ids.
	if c.MaxNotes > math.MaxUint16+1 {
		c.MaxNotes = math.MaxUint16 + 1
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}
