package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/lunara-app/lunara/internal/models"
)

// ErrUnsupportedStorage signals a CRUD call that the key-value backing store
// cannot serve.
var ErrUnsupportedStorage = errors.New("not implemented for key-value backed storage")

const (
	settingsKeyPrefix     = "app_settings_"
	settingsExportVersion = "1.0"
)

// SettingsPatch carries a partial settings update; nil fields keep their
// current value.
type SettingsPatch struct {
	Theme                *string
	NotificationsEnabled *bool
	ReminderTime         *string
	Units                *string
	Language             *string
	PrivacyMode          *bool
	DataSyncEnabled      *bool
}

// SettingsExport is the version-tagged snapshot produced by ExportSettings
// and accepted by ImportSettings.
type SettingsExport struct {
	Version   string             `json:"version"`
	Timestamp time.Time          `json:"timestamp"`
	Settings  models.AppSettings `json:"settings"`
}

// SettingsRepository keeps one settings blob per user in the key-value store
// under "app_settings_<userId>". Identifier-based CRUD is unsupported for
// this backing kind and fails loudly.
type SettingsRepository struct {
	store *KVStore
	locks *userLocks
}

var _ Repository[models.AppSettings, uint] = (*SettingsRepository)(nil)

func NewSettingsRepository(store *KVStore) *SettingsRepository {
	return &SettingsRepository{store: store, locks: newUserLocks()}
}

func (repo *SettingsRepository) FindByID(id uint) (models.AppSettings, bool, error) {
	return models.AppSettings{}, false, ErrUnsupportedStorage
}

func (repo *SettingsRepository) FindAll() ([]models.AppSettings, error) {
	return nil, ErrUnsupportedStorage
}

func (repo *SettingsRepository) Save(settings *models.AppSettings) error {
	return repo.store.SetObject(settingsKey(settings.UserID), settings)
}

// Update ignores the identifier and merges by the userId carried on the
// entity, mirroring the keying of the backing store.
func (repo *SettingsRepository) Update(id uint, settings *models.AppSettings) error {
	updated, err := repo.UpdateSettings(settings.UserID, patchFromSettings(*settings))
	if err != nil {
		return err
	}
	*settings = updated
	return nil
}

func (repo *SettingsRepository) Delete(id uint) (bool, error) {
	return false, ErrUnsupportedStorage
}

func (repo *SettingsRepository) Exists(id uint) (bool, error) {
	return false, ErrUnsupportedStorage
}

func (repo *SettingsRepository) FindByUserID(userID string) (models.AppSettings, bool, error) {
	value, found, err := repo.store.Get(settingsKey(userID))
	if err != nil {
		return models.AppSettings{}, false, err
	}
	if !found {
		return models.AppSettings{}, false, nil
	}

	settings := models.AppSettings{}
	if err := json.Unmarshal([]byte(value), &settings); err != nil {
		log.Printf("skip undecodable settings blob for user %s: %v", userID, err)
		return models.AppSettings{}, false, nil
	}
	return settings, true, nil
}

// UpdateSettings merges the patch into the stored settings, creating them
// with system defaults first when absent.
func (repo *SettingsRepository) UpdateSettings(userID string, patch SettingsPatch) (models.AppSettings, error) {
	unlock := repo.locks.lock(userID)
	defer unlock()

	settings, found, err := repo.FindByUserID(userID)
	if err != nil {
		return models.AppSettings{}, err
	}

	now := time.Now()
	if !found {
		settings = models.DefaultAppSettings(userID, now)
	}
	applyPatch(&settings, patch)
	settings.UpdatedAt = now

	if err := repo.store.SetObject(settingsKey(userID), settings); err != nil {
		return models.AppSettings{}, err
	}
	return settings, nil
}

func (repo *SettingsRepository) ResetToDefaults(userID string) (models.AppSettings, error) {
	unlock := repo.locks.lock(userID)
	defer unlock()

	settings := models.DefaultAppSettings(userID, time.Now())
	if err := repo.store.SetObject(settingsKey(userID), settings); err != nil {
		return models.AppSettings{}, err
	}
	return settings, nil
}

func (repo *SettingsRepository) ExportSettings(userID string) (SettingsExport, error) {
	settings, found, err := repo.FindByUserID(userID)
	if err != nil {
		return SettingsExport{}, err
	}
	if !found {
		return SettingsExport{}, fmt.Errorf("no settings found for user %s", userID)
	}

	return SettingsExport{
		Version:   settingsExportVersion,
		Timestamp: time.Now(),
		Settings:  settings,
	}, nil
}

func (repo *SettingsRepository) ImportSettings(userID string, snapshot SettingsExport) (models.AppSettings, error) {
	if snapshot.Settings == (models.AppSettings{}) {
		return models.AppSettings{}, errors.New("invalid settings snapshot")
	}
	return repo.UpdateSettings(userID, patchFromSettings(snapshot.Settings))
}

func settingsKey(userID string) string {
	return settingsKeyPrefix + userID
}

func applyPatch(settings *models.AppSettings, patch SettingsPatch) {
	if patch.Theme != nil {
		settings.Theme = *patch.Theme
	}
	if patch.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *patch.NotificationsEnabled
	}
	if patch.ReminderTime != nil {
		settings.ReminderTime = *patch.ReminderTime
	}
	if patch.Units != nil {
		settings.Units = *patch.Units
	}
	if patch.Language != nil {
		settings.Language = *patch.Language
	}
	if patch.PrivacyMode != nil {
		settings.PrivacyMode = *patch.PrivacyMode
	}
	if patch.DataSyncEnabled != nil {
		settings.DataSyncEnabled = *patch.DataSyncEnabled
	}
}

func patchFromSettings(settings models.AppSettings) SettingsPatch {
	return SettingsPatch{
		Theme:                &settings.Theme,
		NotificationsEnabled: &settings.NotificationsEnabled,
		ReminderTime:         &settings.ReminderTime,
		Units:                &settings.Units,
		Language:             &settings.Language,
		PrivacyMode:          &settings.PrivacyMode,
		DataSyncEnabled:      &settings.DataSyncEnabled,
	}
}
