package noters

import (
	"github.com/fslaktern/noters/pkg/core"
)

// options holds the internal configuration for the noters service.
type options struct {
	repository core.Repository
}

// Option defines a functional option for configuring noters.
type Option func(*options)

// WithRepository allows injecting a custom storage adapter (e.g. mock, s3).
// If provided, Config.Backend is ignored.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}
