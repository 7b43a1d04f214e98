package store

import (
	"sync"

	"github.com/jinzhu/copier"
	"github.com/retreathub/gamehub/model"
	"github.com/retreathub/gamehub/storage"
	Logger "github.com/retreathub/gamehub/utils/log"
)

// EntryStore is the authoritative in-memory collection of hub entries, in
// insertion order. Every mutation writes a best-effort durable snapshot
// through the injected DocumentStore; a failed save is logged and the store
// keeps serving from memory.
//
// All compound operations are serialized by a mutex. The lock is never held
// across a durable save.
type EntryStore struct {
	m       sync.Mutex
	entries []model.HubEntry
	docs    storage.DocumentStore
}

// NewEntryStore loads the persisted collection, tolerating a first run with
// nothing on disk.
func NewEntryStore(docs storage.DocumentStore) (*EntryStore, error) {
	entries, err := docs.LoadEntries()
	if err != nil {
		return nil, err
	}
	return &EntryStore{entries: entries, docs: docs}, nil
}

// Add inserts a new entry at the end of the collection. Fails with
// ErrDuplicateId when the id is already present and ErrInvalidGenre when the
// genre is outside the enumerated set; the store is left unchanged on
// failure.
func (s *EntryStore) Add(entry model.HubEntry) error {
	if !entry.Genre.Valid() {
		return ErrInvalidGenre
	}

	s.m.Lock()
	if s.indexLocked(entry.Id) >= 0 {
		s.m.Unlock()
		return ErrDuplicateId
	}
	s.entries = append(s.entries, entry)
	snapshot := s.snapshotLocked()
	s.m.Unlock()

	s.persist(snapshot)
	return nil
}

// Remove deletes the entry with the given id and returns it, for callers
// that build notification payloads from it. Fails with ErrNotFound.
func (s *EntryStore) Remove(id string) (model.HubEntry, error) {
	s.m.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.m.Unlock()
		return model.HubEntry{}, ErrNotFound
	}
	removed := s.entries[idx]
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	snapshot := s.snapshotLocked()
	s.m.Unlock()

	s.persist(snapshot)
	return removed, nil
}

// RemoveBatch deletes every present id in one pass with a single durable
// save, returning the removed entries. Absent ids are skipped, they are
// expected when a verification pass races a manual removal.
func (s *EntryStore) RemoveBatch(ids []string) []model.HubEntry {
	s.m.Lock()
	removed := []model.HubEntry{}
	for _, id := range ids {
		idx := s.indexLocked(id)
		if idx < 0 {
			continue
		}
		removed = append(removed, s.entries[idx])
		s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	}
	if len(removed) == 0 {
		s.m.Unlock()
		return removed
	}
	snapshot := s.snapshotLocked()
	s.m.Unlock()

	s.persist(snapshot)
	return removed
}

// Get returns a copy of the entry with the given id.
func (s *EntryStore) Get(id string) (model.HubEntry, bool) {
	s.m.Lock()
	defer s.m.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return model.HubEntry{}, false
	}
	entry := model.HubEntry{}
	copier.CopyWithOption(&entry, &s.entries[idx], copier.Option{DeepCopy: true})
	return entry, true
}

// List returns a deep-copied snapshot of the collection in insertion order.
// Long-running consumers (the verification pass) iterate the snapshot safely
// while the underlying collection keeps mutating.
func (s *EntryStore) List() []model.HubEntry {
	s.m.Lock()
	defer s.m.Unlock()

	snapshot := []model.HubEntry{}
	copier.CopyWithOption(&snapshot, &s.entries, copier.Option{DeepCopy: true})
	return snapshot
}

// Update applies the mutator to the entry with the given id. Only the
// submitter-authored fields (custom name/description) are taken from the
// mutated copy, everything else is immutable through this path.
func (s *EntryStore) Update(id string, mutate func(*model.HubEntry)) (model.HubEntry, error) {
	s.m.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.m.Unlock()
		return model.HubEntry{}, ErrNotFound
	}

	scratch := s.entries[idx]
	mutate(&scratch)
	s.entries[idx].CustomName = scratch.CustomName
	s.entries[idx].CustomDescription = scratch.CustomDescription

	updated := s.entries[idx]
	snapshot := s.snapshotLocked()
	s.m.Unlock()

	s.persist(snapshot)
	return updated, nil
}

// RefreshMetadata opportunistically updates the last-fetched canonical
// metadata. Returns false without persisting when nothing changed.
func (s *EntryStore) RefreshMetadata(id string, canonicalName string, creatorName string) bool {
	s.m.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.m.Unlock()
		return false
	}
	if s.entries[idx].CanonicalName == canonicalName && s.entries[idx].CreatorName == creatorName {
		s.m.Unlock()
		return false
	}
	s.entries[idx].CanonicalName = canonicalName
	s.entries[idx].CreatorName = creatorName
	snapshot := s.snapshotLocked()
	s.m.Unlock()

	s.persist(snapshot)
	return true
}

// Clear removes all entries, returning the prior count.
func (s *EntryStore) Clear() int {
	s.m.Lock()
	count := len(s.entries)
	s.entries = []model.HubEntry{}
	snapshot := s.snapshotLocked()
	s.m.Unlock()

	s.persist(snapshot)
	return count
}

func (s *EntryStore) Count() int {
	s.m.Lock()
	defer s.m.Unlock()
	return len(s.entries)
}

func (s *EntryStore) indexLocked(id string) int {
	for i := range s.entries {
		if s.entries[i].Id == id {
			return i
		}
	}
	return -1
}

func (s *EntryStore) snapshotLocked() []model.HubEntry {
	snapshot := make([]model.HubEntry, len(s.entries))
	copy(snapshot, s.entries)
	return snapshot
}

// persist is called outside the lock. Durability is best effort, the
// in-memory state stays authoritative for the session.
func (s *EntryStore) persist(snapshot []model.HubEntry) {
	if err := s.docs.SaveEntries(snapshot); err != nil {
		Logger.Log.Errorf("failed to persist hub entries: %v", err)
	}
}
