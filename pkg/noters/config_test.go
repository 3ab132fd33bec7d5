package noters

import (
	"math"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.applyDefaults()

	if cfg.MaxNameSize != DefaultMaxNameSize {
		t.Errorf("MaxNameSize = %d, want %d", cfg.MaxNameSize, DefaultMaxNameSize)
	}
	if cfg.MaxContentSize != DefaultMaxContentSize {
		t.Errorf("MaxContentSize = %d, want %d", cfg.MaxContentSize, DefaultMaxContentSize)
	}
	if cfg.MaxNotes != DefaultMaxNotes {
		t.Errorf("MaxNotes = %d, want %d", cfg.MaxNotes, DefaultMaxNotes)
	}
	if cfg.Logger == nil {
		t.Error("Logger not defaulted")
	}
}

func TestApplyDefaultsClampsMaxNotes(t *testing.T) {
	// A limit past the 16-bit id space would otherwise let the smallest
	// free-id scan run out of ids on a full store.
	cfg := Config{MaxNotes: 1 << 20}
	cfg.applyDefaults()

	if cfg.MaxNotes != math.MaxUint16+1 {
		t.Errorf("MaxNotes = %d, want clamp at %d", cfg.MaxNotes, math.MaxUint16+1)
	}

	cfg = Config{MaxNotes: 50}
	cfg.applyDefaults()
	if cfg.MaxNotes != 50 {
		t.Errorf("MaxNotes = %d, want the configured 50 untouched", cfg.MaxNotes)
	}
}
