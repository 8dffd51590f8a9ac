package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StorageItem is one entry of the key-value table backing the
// persistence gateway. The appointment collection lives under a single
// key, so the table normally holds one row.
type StorageItem struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"not null"`
}

type DefaultStorageRepository struct {
	db *gorm.DB
}

func NewStorageRepository(db *gorm.DB) *DefaultStorageRepository {
	return &DefaultStorageRepository{db: db}
}

// Get returns the value stored under key. The second result reports
// whether the key was present.
func (s *DefaultStorageRepository) Get(key string) (string, bool, error) {
	var item StorageItem
	err := s.db.First(&item, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return item.Value, true, nil
}

// Set writes value under key, replacing any previous value.
func (s *DefaultStorageRepository) Set(key, value string) error {
	item := StorageItem{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&item).Error
}

// Remove deletes the entry under key. Removing an absent key is not an
// error.
func (s *DefaultStorageRepository) Remove(key string) error {
	return s.db.Delete(&StorageItem{}, "key = ?", key).Error
}
