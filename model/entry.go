package model

// Genre is the fixed category a hub entry is filed under. Required at
// creation, immutable afterwards.
type Genre string

const (
	GenreOfficial   Genre = "Official"
	GenreSwordFight Genre = "SwordFight"
	GenreCrim       Genre = "Crim"
	GenreSlap       Genre = "Slap"
	GenreGoat       Genre = "Goat"
)

// AllGenres lists every valid genre, in display order.
var AllGenres = []Genre{GenreOfficial, GenreSwordFight, GenreCrim, GenreSlap, GenreGoat}

// ParseGenre matches the input against the known genres, case sensitive.
func ParseGenre(s string) (Genre, bool) {
	for _, g := range AllGenres {
		if string(g) == s {
			return g, true
		}
	}
	return "", false
}

func (g Genre) Valid() bool {
	_, ok := ParseGenre(string(g))
	return ok
}

// HubEntry is one game listing in the hub.
//
// CanonicalName and CreatorName are the last metadata fetched from the
// external game service. They are refreshed opportunistically during
// verification passes and are never guaranteed fresh.
type HubEntry struct {
	Id            string `json:"id"`
	CanonicalName string `json:"name"`
	CreatorName   string `json:"creator"`
	Genre         Genre  `json:"genre"`

	// Submitter-authored overrides. Only the original submitter may ever set
	// these, including admins.
	CustomName        *string `json:"custom_name,omitempty"`
	CustomDescription *string `json:"custom_description,omitempty"`

	AddedById   string `json:"added_by_id"`
	AddedByName string `json:"added_by"`
	AddedAtMs   int64  `json:"added_at"`
}

// DisplayName prefers the submitter's custom name over the canonical one.
func (e *HubEntry) DisplayName() string {
	if e.CustomName != nil && *e.CustomName != "" {
		return *e.CustomName
	}
	return e.CanonicalName
}
