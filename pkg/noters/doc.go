// Package noters is the composition root for the noters application.
//
// It connects the core business logic (domain layer) with the storage
// adapters (persistence layer) using the hexagonal architecture pattern.
//
// Noters is a bounded, multi-tenant note store: notes are owned by the
// user who created them, may embed [[id]] references to other notes, and
// cannot be deleted while other notes still reference them.
//
// Usage:
//
//	// Initialize service with functional options
//	svc, err := noters.New(ctx, noters.Config{
//		Backend: noters.BackendFS,
//		Path:    "./notes",
//		User:    "alice",
//		Logger:  logger,
//	})
//
//	// Create a note
//	id, err := svc.CreateNote(ctx, "groceries", "milk\neggs")
package noters
