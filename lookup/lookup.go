// Package lookup resolves game metadata from the external game service. The
// outcome is an explicit three-way status so callers can apply different
// policies to a game that is definitively gone versus one that merely failed
// to resolve right now.
package lookup

import "context"

type Status int

const (
	// StatusFound: the game exists, metadata is populated.
	StatusFound Status = iota
	// StatusNotFound: the service explicitly said the game does not exist.
	StatusNotFound
	// StatusAmbiguous: timeout, rate limit, or unexpected response. Callers
	// must not treat this as the game being gone.
	StatusAmbiguous
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not_found"
	case StatusAmbiguous:
		return "ambiguous"
	}
	return "unknown"
}

type Result struct {
	Status  Status
	Name    string
	Creator string
	Playing int64
}

// GameLookup is the query-by-id capability of the external game service.
type GameLookup interface {
	Lookup(ctx context.Context, gameId string) Result
}
