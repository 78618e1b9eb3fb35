package db

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StorageItem struct {
	Key       string `gorm:"primaryKey;column:key"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

// KVStore is the generic key-value collaborator: JSON-serialized values under
// string keys, backed by the storage_items table in the shared database.
type KVStore struct {
	database *gorm.DB
}

func NewKVStore(database *gorm.DB) *KVStore {
	return &KVStore{database: database}
}

func (store *KVStore) Get(key string) (string, bool, error) {
	item := StorageItem{}
	result := store.database.Where("key = ?", key).Limit(1).Find(&item)
	if result.Error != nil {
		return "", false, result.Error
	}
	if result.RowsAffected == 0 {
		return "", false, nil
	}
	return item.Value, true, nil
}

func (store *KVStore) Set(key string, value string) error {
	item := StorageItem{Key: key, Value: value}
	return store.database.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&item).Error
}

func (store *KVStore) Remove(key string) error {
	return store.database.Where("key = ?", key).Delete(&StorageItem{}).Error
}

func (store *KVStore) Clear() error {
	return store.database.Exec(`DELETE FROM storage_items`).Error
}

// GetObject reads the value under key and decodes it into target.
func (store *KVStore) GetObject(key string, target any) (bool, error) {
	value, found, err := store.Get(key)
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal([]byte(value), target); err != nil {
		return false, err
	}
	return true, nil
}

// SetObject stores value under key as a JSON string.
func (store *KVStore) SetObject(key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return store.Set(key, string(payload))
}
