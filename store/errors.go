package store

import "github.com/pkg/errors"

var (
	// ErrDuplicateId is returned when adding an entry whose id is already in
	// the hub.
	ErrDuplicateId = errors.New("game is already in the hub")

	// ErrNotFound is returned when the target entry id is not in the hub.
	ErrNotFound = errors.New("game not found in the hub")

	// ErrInvalidGenre is returned when an entry carries a genre outside the
	// enumerated set.
	ErrInvalidGenre = errors.New("unknown genre")
)
