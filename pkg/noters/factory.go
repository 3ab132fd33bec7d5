package noters

import (
	"context"
	"fmt"

	"github.com/fslaktern/noters/pkg/adapters/fs"
	"github.com/fslaktern/noters/pkg/adapters/sqlite"
	"github.com/fslaktern/noters/pkg/core"
)

// New wires a storage adapter to the domain service and initializes it.
//
//	svc, err := noters.New(ctx, noters.Config{Backend: noters.BackendFS, Path: dir, User: "alice"})
func New(ctx context.Context, cfg Config, opts ...Option) (*core.Service, error) {
	cfg.applyDefaults()

	if cfg.User == "" {
		return nil, fmt.Errorf("user must not be empty")
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	// Wiring: injected repository wins, otherwise pick by backend.
	var repo core.Repository
	if o.repository != nil {
		repo = o.repository
	} else {
		switch cfg.Backend {
		case BackendFS:
			repo = fs.NewRepository(fs.Config{
				Path:     cfg.Path,
				MaxNotes: cfg.MaxNotes,
				Logger:   cfg.Logger,
			})
		case BackendSQLite:
			repo = sqlite.NewRepository(sqlite.Config{
				Path:     cfg.Path,
				MaxNotes: cfg.MaxNotes,
				Logger:   cfg.Logger,
			})
		default:
			return nil, fmt.Errorf("unknown backend: %q", cfg.Backend)
		}
	}

	if err := repo.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return core.NewService(repo, cfg.User, cfg.MaxNameSize, cfg.MaxContentSize), nil
}
