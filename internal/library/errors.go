package library

import "errors"

var (
	// ErrUnauthenticated means the caller handed in an empty user id.
	// Checking the session first is the caller's responsibility.
	ErrUnauthenticated = errors.New("not signed in")

	ErrInvalidRating = errors.New("rating must be between 1 and 10")

	// ErrPartialWrite means only one of the two mirrored review documents
	// was written or deleted. It can only happen on stores without
	// transactions.
	ErrPartialWrite = errors.New("review mirror left inconsistent")
)
