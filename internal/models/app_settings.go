package models

import "time"

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
	ThemeAuto  = "auto"

	UnitsMetric   = "metric"
	UnitsImperial = "imperial"

	DefaultReminderTime = "08:00"
	DefaultLanguage     = "en"
)

// AppSettings lives as a JSON blob in the key-value store, not in a table.
type AppSettings struct {
	ID                   uint      `json:"id,omitempty"`
	UserID               string    `json:"userId"`
	Theme                string    `json:"theme"`
	NotificationsEnabled bool      `json:"notificationsEnabled"`
	ReminderTime         string    `json:"reminderTime"`
	Units                string    `json:"units"`
	Language             string    `json:"language"`
	PrivacyMode          bool      `json:"privacyMode"`
	DataSyncEnabled      bool      `json:"dataSyncEnabled"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

func DefaultAppSettings(userID string, now time.Time) AppSettings {
	return AppSettings{
		UserID:               userID,
		Theme:                ThemeAuto,
		NotificationsEnabled: true,
		ReminderTime:         DefaultReminderTime,
		Units:                UnitsMetric,
		Language:             DefaultLanguage,
		PrivacyMode:          false,
		DataSyncEnabled:      false,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}
