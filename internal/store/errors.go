package store

import "errors"

// Sentinel errors returned by the stores. Handlers map these to HTTP
// statuses; anything else is an internal failure.
var (
	// ErrNotFound means no record exists with the given id.
	ErrNotFound = errors.New("not found")
	// ErrNotOwner means the record exists but belongs to someone else.
	// It is distinct from ErrNotFound: callers may learn a note exists,
	// but never read or mutate one they do not own.
	ErrNotOwner = errors.New("not allowed")
	// ErrDuplicateEmail means a user with the email already exists.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrValidation means the input violates a content policy.
	ErrValidation = errors.New("invalid input")
)
