package hub

import "github.com/pkg/errors"

// Validation failures are terminal at the action boundary: the adapter
// renders them and nothing is mutated.
var (
	ErrInvalidGameRef = errors.New("not a valid game link or id")
	ErrUnknownGenre   = errors.New("unknown genre")
	ErrGameNotFound   = errors.New("the game does not exist")
	ErrUnknownTier    = errors.New("unknown tier, use manager, admin or fulladmin")
	ErrUnknownOp      = errors.New("unknown operation, use add, remove or list")
)
