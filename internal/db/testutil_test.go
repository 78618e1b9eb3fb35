package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/lunara-app/lunara/internal/services"
	"gorm.io/gorm"
)

func openTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(filepath.Join(t.TempDir(), "lunara-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("access sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return database
}

func mustDay(t *testing.T, value string) time.Time {
	t.Helper()

	day, err := services.ParseDay(value)
	if err != nil {
		t.Fatalf("parse day %s: %v", value, err)
	}
	return day
}
