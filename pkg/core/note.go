package core

import "fmt"

// NoteID identifies a live note. Ids are drawn from the smallest free slot,
// so deleting a note frees its id for reuse by the next create.
type NoteID uint16

// Note is the central entity of the domain.
// It represents an owned, bounded piece of text identified by a NoteID.
// It is agnostic to storage format (frontmatter files, SQL rows).
type Note struct {
	ID      NoteID
	Owner   string
	Name    string
	Content string
}

// PartialNote is the id/owner/name projection of a Note.
// Used for listings and backlink enumeration where loading every note's
// content up front would be wasteful.
type PartialNote struct {
	ID    NoteID
	Owner string
	Name  string
}

// EventType represents the type of change observed in the note store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents an externally observed change to a note.
type Event struct {
	Type      EventType
	ID        NoteID
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer (and thereby lifecycle.Event).
func (e Event) String() string {
	return fmt.Sprintf("%s #%d", e.Type, e.ID)
}
