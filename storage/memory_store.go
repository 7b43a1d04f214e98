package storage

import (
	"sync"

	"github.com/retreathub/gamehub/model"
)

// MemoryDocumentStore is an in-memory DocumentStore for tests and ephemeral
// runs. It also counts saves so tests can assert persistence behavior.
type MemoryDocumentStore struct {
	m sync.Mutex

	entries   []model.HubEntry
	cfg       *model.AccessConfig
	SaveCount int

	// When set, every save fails with this error.
	FailSaves error
}

func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{}
}

func (s *MemoryDocumentStore) LoadEntries() ([]model.HubEntry, error) {
	s.m.Lock()
	defer s.m.Unlock()
	if s.entries == nil {
		return []model.HubEntry{}, nil
	}
	out := make([]model.HubEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *MemoryDocumentStore) SaveEntries(entries []model.HubEntry) error {
	s.m.Lock()
	defer s.m.Unlock()
	s.SaveCount++
	if s.FailSaves != nil {
		return s.FailSaves
	}
	s.entries = make([]model.HubEntry, len(entries))
	copy(s.entries, entries)
	return nil
}

func (s *MemoryDocumentStore) LoadConfig() (*model.AccessConfig, error) {
	s.m.Lock()
	defer s.m.Unlock()
	if s.cfg == nil {
		return nil, nil
	}
	cfg := *s.cfg
	return &cfg, nil
}

func (s *MemoryDocumentStore) SaveConfig(cfg model.AccessConfig) error {
	s.m.Lock()
	defer s.m.Unlock()
	s.SaveCount++
	if s.FailSaves != nil {
		return s.FailSaves
	}
	s.cfg = &cfg
	return nil
}
