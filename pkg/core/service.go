package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// Service handles the business logic for notes: validation, ownership
// enforcement, reference resolution and referential integrity. Persistence
// is delegated to a Repository.
//
// A Service carries the acting user's identity as explicit state. Sessions
// for different users each get their own Service over a shared Repository
// and share no mutable state with one another.
type Service struct {
	repo Repository
	user string

	maxNameSize    int
	maxContentSize int
}

// NewService creates a new Service acting as user against repo.
func NewService(repo Repository, user string, maxNameSize, maxContentSize int) *Service {
	return &Service{
		repo:           repo,
		user:           user,
		maxNameSize:    maxNameSize,
		maxContentSize: maxContentSize,
	}
}

// User returns the acting identity this service was created for.
func (s *Service) User() string {
	return s.user
}

// CreateNote validates name and content and persists a new note owned by the
// session user. The backend assigns the smallest free id and enforces the
// note count limit.
//
// References inside content are not resolved or validated here: a note may
// point at ids that do not exist yet, or never will. References only matter
// when the note is read.
func (s *Service) CreateNote(ctx context.Context, name, content string) (NoteID, error) {
	if err := ValidateName(name, s.maxNameSize); err != nil {
		return 0, err
	}
	if err := ValidateContent(content, s.maxContentSize); err != nil {
		return 0, err
	}

	unlock, err := s.repo.Lock(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to acquire store lock: %w", err)
	}
	defer unlock()

	return s.repo.Create(ctx, s.user, name, content)
}

// ReadNote loads a note and expands its references, e.g. [[1]] becomes a
// quoted rendering of note #1.
//
// Only the owner may read a note, and ownership never extends through
// references: every referenced note must itself be owned by the caller, or
// the read fails with PermissionDeniedError for that id. References to
// missing notes fail with ReferenceNotFoundError.
//
// The note and its references are loaded under the store lock so the
// expansion never observes a delete's half-finished critical section.
func (s *Service) ReadNote(ctx context.Context, id NoteID) (Note, error) {
	unlock, err := s.repo.Lock(ctx)
	if err != nil {
		return Note{}, fmt.Errorf("failed to acquire store lock: %w", err)
	}
	defer unlock()

	note, err := s.repo.Get(ctx, id)
	if err != nil {
		return Note{}, err
	}
	if note.Owner != s.user {
		return Note{}, &PermissionDeniedError{ID: id}
	}

	expanded, err := ExpandReferences(note.Content, func(rid NoteID) (Note, error) {
		ref, err := s.repo.Get(ctx, rid)
		if err != nil {
			if IsNotFound(err) {
				return Note{}, &ReferenceNotFoundError{ID: rid}
			}
			return Note{}, err
		}
		if ref.Owner != s.user {
			return Note{}, &PermissionDeniedError{ID: rid}
		}
		return ref, nil
	})
	if err != nil {
		return Note{}, err
	}

	note.Content = expanded
	return note, nil
}

// UpdateNote replaces the name and content of an existing note owned by the
// session user. The id and owner never change.
//
// Editing a note is not restricted by what other notes reference it, and the
// new content's own references are only checked at read time. The write runs
// under the store lock: an edit cannot add a backlink inside a concurrent
// delete's scan-then-act window, it lands strictly before or after it.
func (s *Service) UpdateNote(ctx context.Context, id NoteID, name, content string) error {
	if err := ValidateName(name, s.maxNameSize); err != nil {
		return err
	}
	if err := ValidateContent(content, s.maxContentSize); err != nil {
		return err
	}

	unlock, err := s.repo.Lock(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire store lock: %w", err)
	}
	defer unlock()

	current, err := s.repo.GetPartial(ctx, id)
	if err != nil {
		return err
	}
	if current.Owner != s.user {
		return &PermissionDeniedError{ID: id}
	}

	return s.repo.Update(ctx, id, name, content)
}

// DeleteNote removes a note owned by the session user, but only when no
// other note references it.
//
// The backlink scan reads every other live note and then conditionally
// deletes, so the whole sequence runs inside the store lock: a concurrent
// create or edit cannot slip a new backlink in between the scan and the
// delete.
func (s *Service) DeleteNote(ctx context.Context, id NoteID) error {
	unlock, err := s.repo.Lock(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire store lock: %w", err)
	}
	defer unlock()

	target, err := s.repo.GetPartial(ctx, id)
	if err != nil {
		return err
	}
	if target.Owner != s.user {
		return &PermissionDeniedError{ID: id}
	}

	notes, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	// Collect every note whose own content references id. It is the
	// candidate's content that gets loaded and scanned here, never the
	// target's: conflating the two would collapse the whole check into a
	// self-comparison.
	var backlinks []NoteID
	for _, candidate := range notes {
		// A note referencing itself never blocks its own deletion.
		if candidate.ID == id {
			continue
		}

		full, err := s.repo.Get(ctx, candidate.ID)
		if err != nil {
			return err
		}
		for _, rid := range ExtractReferences(full.Content) {
			if rid == id {
				backlinks = append(backlinks, candidate.ID)
				break
			}
		}
	}

	if len(backlinks) > 0 {
		sort.Slice(backlinks, func(i, j int) bool { return backlinks[i] < backlinks[j] })
		return &NoteIsReferencedError{IDs: backlinks}
	}

	slog.Debug("no backlinks found, deleting note", "id", id)
	return s.repo.Delete(ctx, id)
}

// ListNotes returns the id/owner/name projection of every live note,
// regardless of owner. Content stays withheld at this level; reading it
// still requires ownership. The listing runs under the store lock so it
// never overlaps a delete's critical section.
func (s *Service) ListNotes(ctx context.Context) ([]PartialNote, error) {
	unlock, err := s.repo.Lock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire store lock: %w", err)
	}
	defer unlock()

	return s.repo.List(ctx)
}

// SeedNote creates a note with an explicit owner, bypassing the usual
// owner-is-the-caller rule. It exists only for seeding demo and test data;
// nothing in the normal CRUD surface reaches it. Capacity is still enforced
// by the backend.
func (s *Service) SeedNote(ctx context.Context, owner, name, content string) (NoteID, error) {
	unlock, err := s.repo.Lock(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to acquire store lock: %w", err)
	}
	defer unlock()

	return s.repo.Create(ctx, owner, name, content)
}

// Watch observes changes in the repository if supported.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	return w.Watch(ctx, pattern)
}

// ValidateName checks a note name for emptiness and the configured size
// limit. Exposed so the presentation layer can reject bad input at the
// prompt before hitting the service.
func ValidateName(name string, max int) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameEmpty
	}
	if len(name) > max {
		return &NameTooLongError{Max: max, Got: len(name)}
	}
	return nil
}

// ValidateContent checks note content for emptiness and the configured size
// limit.
func ValidateContent(content string, max int) error {
	if strings.TrimSpace(content) == "" {
		return ErrContentEmpty
	}
	if len(content) > max {
		return &ContentTooLongError{Max: max, Got: len(content)}
	}
	return nil
}
