package core

import (
	"errors"
	"fmt"
)

// Sentinel validation errors.
var (
	ErrNameEmpty    = errors.New("note name is empty")
	ErrContentEmpty = errors.New("note content is empty")
)

// NameTooLongError reports a note name exceeding the configured limit.
type NameTooLongError struct {
	Max int
	Got int
}

func (e *NameTooLongError) Error() string {
	return fmt.Sprintf("name is too large: max %d, got %d", e.Max, e.Got)
}

// ContentTooLongError reports note content exceeding the configured limit.
type ContentTooLongError struct {
	Max int
	Got int
}

func (e *ContentTooLongError) Error() string {
	return fmt.Sprintf("content is too large: max %d, got %d", e.Max, e.Got)
}

// NoteCountExceededError reports that the store already holds the configured
// maximum number of notes. The store is left unchanged.
type NoteCountExceededError struct {
	Max int
}

func (e *NoteCountExceededError) Error() string {
	return fmt.Sprintf("note count limit exceeded: max %d", e.Max)
}

// PermissionDeniedError reports an operation on a note the caller does not
// own. ID is the offending note, which for reads may be a referenced note
// rather than the note being read.
type PermissionDeniedError struct {
	ID NoteID
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("you are not the owner of note #%d", e.ID)
}

// ReferenceNotFoundError reports a reference token pointing at an id with no
// live note behind it.
type ReferenceNotFoundError struct {
	ID NoteID
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("referenced note #%d not found", e.ID)
}

// NoteIsReferencedError blocks deletion of a note that other notes still
// reference. IDs lists every referencing note, sorted ascending.
type NoteIsReferencedError struct {
	IDs []NoteID
}

func (e *NoteIsReferencedError) Error() string {
	return fmt.Sprintf("note is referenced by %v", e.IDs)
}

// NotFoundError reports that no note exists with the given id.
type NotFoundError struct {
	ID NoteID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no note with id #%d", e.ID)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsPermissionDenied reports whether err is (or wraps) a PermissionDeniedError.
func IsPermissionDenied(err error) bool {
	var pd *PermissionDeniedError
	return errors.As(err, &pd)
}
