package storage

import (
	"github.com/retreathub/gamehub/model"
)

// DocumentStore persists the two hub documents: the ordered entry collection
// and the AccessConfig singleton. Implementations must tolerate a missing
// backing file/table on first run by returning an empty collection and a nil
// config.
type DocumentStore interface {
	LoadEntries() ([]model.HubEntry, error)
	SaveEntries(entries []model.HubEntry) error

	// LoadConfig returns (nil, nil) when no config has ever been saved.
	LoadConfig() (*model.AccessConfig, error)
	SaveConfig(cfg model.AccessConfig) error
}
