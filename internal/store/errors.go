package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrAccountNotFound is returned when no account record exists for the
	// requested username.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountAlreadyExists is returned when registration targets a
	// username that already has an account record.
	ErrAccountAlreadyExists = errors.New("account already exists")

	// ErrInvalidFormat is returned when persisted data cannot be parsed as
	// its expected shape — a corrupt account file or an import file that is
	// not a valid plaintext vault snapshot.
	ErrInvalidFormat = errors.New("invalid format")
)
