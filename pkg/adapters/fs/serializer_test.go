package fs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fslaktern/noters/pkg/core"
)

func TestSerializeParseRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		note core.Note
	}{
		{
			name: "simple",
			note: core.Note{Owner: "alice", Name: "groceries", Content: "milk\neggs"},
		},
		{
			name: "content with frontmatter fence",
			note: core.Note{Owner: "bob", Name: "tricky", Content: "before\n---\nafter"},
		},
		{
			name: "name with yaml special characters",
			note: core.Note{Owner: "alice", Name: "plan: phase 1 #draft", Content: "x"},
		},
		{
			name: "content with reference tokens",
			note: core.Note{Owner: "alice", Name: "daily", Content: "see [[12]] and [[0]]"},
		},
		{
			name: "trailing newlines preserved",
			note: core.Note{Owner: "alice", Name: "raw", Content: "line\n\n\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := serializeNote(tt.note)
			if err != nil {
				t.Fatalf("serializeNote() failed: %v", err)
			}

			got, err := parseNote(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("parseNote() failed: %v", err)
			}
			if got.Owner != tt.note.Owner {
				t.Errorf("owner = %q, want %q", got.Owner, tt.note.Owner)
			}
			if got.Name != tt.note.Name {
				t.Errorf("name = %q, want %q", got.Name, tt.note.Name)
			}
			if got.Content != tt.note.Content {
				t.Errorf("content = %q, want %q", got.Content, tt.note.Content)
			}
		})
	}
}

func TestParseNoteRejectsMissingFrontmatter(t *testing.T) {
	for _, data := range []string{
		"just a body",
		"---\nowner: alice\nno closing fence",
		"",
	} {
		if _, err := parseNote(strings.NewReader(data)); err == nil {
			t.Errorf("parseNote(%q) succeeded, want error", data)
		}
	}
}

func TestSerializeNoteLayout(t *testing.T) {
	data, err := serializeNote(core.Note{Owner: "alice", Name: "layout", Content: "body"})
	if err != nil {
		t.Fatalf("serializeNote() failed: %v", err)
	}

	s := string(data)
	if !strings.HasPrefix(s, "---\n") {
		t.Errorf("serialized note does not open with a frontmatter fence: %q", s)
	}
	if !strings.HasSuffix(s, "\n---\nbody") {
		t.Errorf("serialized note does not close the fence before the body: %q", s)
	}
}
