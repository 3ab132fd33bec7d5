package core

import "context"

// Repository defines the contract for storing and retrieving notes.
// Adhering to this interface keeps the service independent of the underlying
// storage mechanism (filesystem, SQLite, in-memory fakes).
//
// A Repository is a dumb store: it never checks ownership or referential
// integrity. Those rules live in Service.
type Repository interface {
	// Create persists a new note owned by owner, assigning the smallest id
	// not currently in use. Fails with NoteCountExceededError when the
	// configured capacity is reached, leaving the store unchanged.
	Create(ctx context.Context, owner, name, content string) (NoteID, error)

	// Get retrieves a full note by id. Fails with NotFoundError.
	Get(ctx context.Context, id NoteID) (Note, error)

	// GetPartial retrieves the id/owner/name projection of a note without
	// loading its content. Fails with NotFoundError.
	GetPartial(ctx context.Context, id NoteID) (PartialNote, error)

	// Update replaces the name and content of an existing note. The id and
	// owner never change. Fails with NotFoundError.
	Update(ctx context.Context, id NoteID, name, content string) error

	// Delete removes a note by id, freeing its slot for reuse.
	// Fails with NotFoundError. Performs no referential-integrity checks.
	Delete(ctx context.Context, id NoteID) error

	// List returns all live notes. No ordering is guaranteed beyond
	// enumerating every id exactly once per call.
	List(ctx context.Context) ([]PartialNote, error)

	// Lock acquires an exclusive critical section over the whole note set
	// and returns the matching unlock function. The service wraps every
	// operation touching the store in it, so a delete's scan-then-act
	// sequence never interleaves with another session's reads or writes.
	Lock(ctx context.Context) (func(), error)

	// Initialize ensures the underlying storage is ready (e.g., create
	// directories, schema migration).
	Initialize(ctx context.Context) error
}

// Watchable defines an interface for repositories that can observe changes
// made to the store from outside the process.
type Watchable interface {
	// Watch emits an Event for every observed change to a note matching
	// pattern. The channel closes when ctx is cancelled.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
