package storage

import (
	"encoding/json"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/retreathub/gamehub/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// entryRow is the sqlite shape of a hub entry. Position preserves insertion
// order across save/load, independent of ids.
type entryRow struct {
	Position          int    `gorm:"primaryKey;autoIncrement:false"`
	GameId            string `gorm:"uniqueIndex"`
	CanonicalName     string
	CreatorName       string
	Genre             string
	CustomName        *string
	CustomDescription *string
	AddedById         string
	AddedByName       string
	AddedAtMs         int64
}

func (entryRow) TableName() string { return "hub_entries" }

// configRow holds the singleton AccessConfig as a JSON blob, there is always
// at most one row.
type configRow struct {
	Id   int `gorm:"primaryKey"`
	Data datatypes.JSON
}

func (configRow) TableName() string { return "hub_config" }

// GormDocumentStore persists the hub documents in a sqlite database. Used
// instead of the JSON files when HUB_DB_PATH is configured.
type GormDocumentStore struct {
	db *gorm.DB
}

func NewGormDocumentStore(path string) (*GormDocumentStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}
	if err := db.AutoMigrate(&entryRow{}, &configRow{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate hub schema")
	}
	return &GormDocumentStore{db: db}, nil
}

func (s *GormDocumentStore) LoadEntries() ([]model.HubEntry, error) {
	rows := []entryRow{}
	if err := s.db.Order("position asc").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load hub entries")
	}
	entries := []model.HubEntry{}
	for _, row := range rows {
		entries = append(entries, model.HubEntry{
			Id:                row.GameId,
			CanonicalName:     row.CanonicalName,
			CreatorName:       row.CreatorName,
			Genre:             model.Genre(row.Genre),
			CustomName:        row.CustomName,
			CustomDescription: row.CustomDescription,
			AddedById:         row.AddedById,
			AddedByName:       row.AddedByName,
			AddedAtMs:         row.AddedAtMs,
		})
	}
	return entries, nil
}

func (s *GormDocumentStore) SaveEntries(entries []model.HubEntry) error {
	rows := make([]entryRow, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, entryRow{
			Position:          i,
			GameId:            e.Id,
			CanonicalName:     e.CanonicalName,
			CreatorName:       e.CreatorName,
			Genre:             string(e.Genre),
			CustomName:        e.CustomName,
			CustomDescription: e.CustomDescription,
			AddedById:         e.AddedById,
			AddedByName:       e.AddedByName,
			AddedAtMs:         e.AddedAtMs,
		})
	}

	// Full snapshot replace in one transaction, mirroring the file store's
	// whole-document write.
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entryRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	return errors.Wrap(err, "failed to save hub entries")
}

func (s *GormDocumentStore) LoadConfig() (*model.AccessConfig, error) {
	row := configRow{}
	err := s.db.First(&row, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load hub config")
	}
	cfg := model.AccessConfig{}
	if err := json.Unmarshal(row.Data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse hub config")
	}
	return &cfg, nil
}

func (s *GormDocumentStore) SaveConfig(cfg model.AccessConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to encode hub config")
	}
	row := configRow{Id: 1, Data: datatypes.JSON(data)}
	return errors.Wrap(s.db.Save(&row).Error, "failed to save hub config")
}
