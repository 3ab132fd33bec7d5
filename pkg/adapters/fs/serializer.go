package fs

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/fslaktern/noters/pkg/core"
)

// frontmatter is the YAML header of a note file. The body below the closing
// fence is the note content, stored verbatim.
type frontmatter struct {
	Owner string `yaml:"owner"`
	Name  string `yaml:"name"`
}

var (
	fenceOpen  = []byte("---\n")
	fenceClose = []byte("\n---\n")
)

// parseNote decodes a note file: YAML frontmatter between --- fences,
// followed by the content. The note id is not stored in the file (the
// filename is authoritative), so the returned note carries the zero id.
func parseNote(r io.Reader) (core.Note, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return core.Note{}, err
	}

	if !bytes.HasPrefix(data, fenceOpen) {
		return core.Note{}, errors.New("note file has no frontmatter")
	}
	rest := data[len(fenceOpen):]

	idx := bytes.Index(rest, fenceClose)
	if idx < 0 {
		return core.Note{}, errors.New("frontmatter started but no closing delimiter found")
	}

	var fm frontmatter
	if err := yaml.Unmarshal(rest[:idx+1], &fm); err != nil {
		return core.Note{}, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	return core.Note{
		Owner:   fm.Owner,
		Name:    fm.Name,
		Content: string(rest[idx+len(fenceClose):]),
	}, nil
}

// serializeNote encodes a note into the frontmatter file format. The content
// is written verbatim after the closing fence, so parseNote round-trips it
// byte for byte.
func serializeNote(n core.Note) ([]byte, error) {
	var buf bytes.Buffer

	buf.Write(fenceOpen)
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(frontmatter{Owner: n.Owner, Name: n.Name}); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	buf.WriteString("---\n")
	buf.WriteString(n.Content)

	return buf.Bytes(), nil
}
