package repository

import "errors"

// Sentinel errors let the service layer pick the right fault classification
// instead of guessing from an empty result.
var (
	// ErrNotFound means the referenced row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a uniqueness rule (username or email) was violated.
	ErrConflict = errors.New("already exists")
	// ErrAlreadyTracked means tracking registration was attempted on a package
	// that has already transitioned to tracked.
	ErrAlreadyTracked = errors.New("package already tracked")
	// ErrNotTracked means a checkpoint append was attempted on an untracked package.
	ErrNotTracked = errors.New("package not tracked")
)
