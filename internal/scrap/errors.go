package scrap

import "errors"

var (
	// ErrDuplicateScrap is returned when an active scrap already exists for
	// the same (user, page URL) pair. Surfaced to the caller as a conflict.
	ErrDuplicateScrap = errors.New("scrap already exists")

	// ErrNotFound is returned when a delete or lookup references a scrap
	// that does not exist, is already deleted, or belongs to another user.
	ErrNotFound = errors.New("scrap not found")

	// ErrPersistence wraps storage-layer failures during ingestion. The
	// transaction guarantees no partial record was left behind.
	ErrPersistence = errors.New("scrap persistence failed")
)
