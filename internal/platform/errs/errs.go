package errs

import "errors"

var (
	// ErrNotFound is the sentinel for a missing recipe or preference row.
	ErrNotFound = errors.New("not found")
	// ErrProviderUnavailable marks a failed fetch from an external recipe manager.
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrInvalidPantrySnapshot marks a malformed pantry item; callers skip the item.
	ErrInvalidPantrySnapshot = errors.New("invalid pantry snapshot")
	// ErrDuplicateCatalogEntry marks a unique-key collision on (provider, external_id).
	// It is resolved internally and never surfaced to API callers.
	ErrDuplicateCatalogEntry = errors.New("duplicate catalog entry")
	// ErrPersistence marks a store-level failure that aborts the current batch item.
	ErrPersistence = errors.New("persistence failure")
)
