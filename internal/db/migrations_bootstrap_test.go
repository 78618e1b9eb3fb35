package db

import (
	"path/filepath"
	"reflect"
	"testing"

	"gorm.io/gorm"
)

func TestOpenSQLiteCreatesSchemaOnCleanDatabase(t *testing.T) {
	database := openTestDatabase(t)

	expectedTables := []string{
		"cycle_records",
		"cycle_history",
		"statistics_data",
		"app_settings",
		"storage_items",
	}
	for _, table := range expectedTables {
		if !database.Migrator().HasTable(table) {
			t.Fatalf("expected table %s to exist after migrations", table)
		}
	}
}

func TestOpenSQLiteMigrationBootstrapIsIdempotent(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "lunara-idempotent.db")

	firstOpen, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("first open sqlite: %v", err)
	}
	firstVersions := loadAppliedVersionsForTest(t, firstOpen)

	firstSQLDB, err := firstOpen.DB()
	if err != nil {
		t.Fatalf("first open sql db: %v", err)
	}
	if err := firstSQLDB.Close(); err != nil {
		t.Fatalf("close first sql db: %v", err)
	}

	secondOpen, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("second open sqlite: %v", err)
	}
	secondSQLDB, err := secondOpen.DB()
	if err != nil {
		t.Fatalf("second open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = secondSQLDB.Close()
	})

	secondVersions := loadAppliedVersionsForTest(t, secondOpen)
	if !reflect.DeepEqual(firstVersions, secondVersions) {
		t.Fatalf("expected migration versions to remain unchanged between boots, before=%v after=%v", firstVersions, secondVersions)
	}
	if len(secondVersions) == 0 {
		t.Fatal("expected at least one applied migration")
	}
}

func loadAppliedVersionsForTest(t *testing.T, database *gorm.DB) []string {
	t.Helper()

	var rows []struct {
		Version string `gorm:"column:version"`
	}
	if err := database.Raw(`SELECT version FROM schema_migrations ORDER BY version ASC`).Scan(&rows).Error; err != nil {
		t.Fatalf("load applied migration versions: %v", err)
	}

	versions := make([]string, 0, len(rows))
	for _, row := range rows {
		versions = append(versions, row.Version)
	}
	return versions
}
