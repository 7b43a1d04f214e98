package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/retreathub/gamehub/model"
)

const (
	entriesFileName = "games.json"
	configFileName  = "config.json"
)

// FileDocumentStore keeps each document as a pretty-printed JSON file in a
// directory, the same shape the hub has always used on disk.
type FileDocumentStore struct {
	dir string
}

func NewFileDocumentStore(dir string) (*FileDocumentStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create data dir")
	}
	return &FileDocumentStore{dir: dir}, nil
}

func (s *FileDocumentStore) LoadEntries() ([]model.HubEntry, error) {
	entries := []model.HubEntry{}
	if err := s.readJson(entriesFileName, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *FileDocumentStore) SaveEntries(entries []model.HubEntry) error {
	return s.writeJson(entriesFileName, entries)
}

func (s *FileDocumentStore) LoadConfig() (*model.AccessConfig, error) {
	path := filepath.Join(s.dir, configFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	cfg := model.AccessConfig{}
	if err := s.readJson(configFileName, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *FileDocumentStore) SaveConfig(cfg model.AccessConfig) error {
	return s.writeJson(configFileName, cfg)
}

func (s *FileDocumentStore) readJson(name string, out interface{}) error {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "failed to read %s", name)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "failed to parse %s", name)
	}
	return nil
}

func (s *FileDocumentStore) writeJson(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", name)
	}
	// Write to a temp file then rename so a crash mid-write never truncates
	// the previous snapshot.
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", name)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrapf(err, "failed to replace %s", name)
	}
	return nil
}
