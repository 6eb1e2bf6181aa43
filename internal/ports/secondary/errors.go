package secondary

import "errors"

// Sentinel errors returned by repository adapters. Services and the tool
// boundary use errors.Is to classify failures into structured results.
var (
	// ErrNotFound indicates an unknown task or project identifier.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates a uniqueness violation (project prefix or
	// external task ID). Task ID collisions are retried internally by the
	// adapter before this surfaces.
	ErrDuplicate = errors.New("already exists")

	// ErrStorageUnavailable indicates the store could not be reached or
	// opened. This is the only failure mode considered transient and
	// operator-fixable.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
