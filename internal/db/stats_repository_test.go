package db

import (
	"testing"

	"github.com/lunara-app/lunara/internal/models"
)

func seedCycleRecord(t *testing.T, repo *CycleRecordRepository, userID string, date string, cycleDay int, symptoms []string) {
	t.Helper()

	record := models.CycleRecord{UserID: userID, Date: date, CycleDay: cycleDay, Symptoms: symptoms}
	if err := repo.Save(&record); err != nil {
		t.Fatalf("save record %s: %v", date, err)
	}
}

func TestCalculateCycleStatsEmptyUserReturnsDefaults(t *testing.T) {
	repo := NewStatsRepository(openTestDatabase(t))

	stats, err := repo.CalculateCycleStats("user-1")
	if err != nil {
		t.Fatalf("calculate cycle stats: %v", err)
	}

	if stats.CycleCount != 0 || stats.AverageCycleLength != 28 ||
		stats.ShortestCycle != 21 || stats.LongestCycle != 35 || stats.AveragePeriodDays != 5 {
		t.Fatalf("expected system defaults, got %+v", stats)
	}
}

func TestCalculateCycleStatsFromStoredRecords(t *testing.T) {
	database := openTestDatabase(t)
	records := NewCycleRecordRepository(database)
	stats := NewStatsRepository(database)

	seedCycleRecord(t, records, "user-1", "2025-01-01", 1, nil)
	seedCycleRecord(t, records, "user-1", "2025-01-29", 29, nil)

	calculated, err := stats.CalculateCycleStats("user-1")
	if err != nil {
		t.Fatalf("calculate cycle stats: %v", err)
	}

	if calculated.CycleCount != 2 {
		t.Fatalf("expected cycle count 2, got %d", calculated.CycleCount)
	}
	if calculated.AverageCycleLength != 28 {
		t.Fatalf("expected average cycle length 28, got %v", calculated.AverageCycleLength)
	}
	if calculated.ShortestCycle != 28 || calculated.LongestCycle != 28 {
		t.Fatalf("expected shortest=longest=28, got %d/%d", calculated.ShortestCycle, calculated.LongestCycle)
	}
}

func TestGetSymptomFrequencySkipsCorruptRows(t *testing.T) {
	database := openTestDatabase(t)
	records := NewCycleRecordRepository(database)
	stats := NewStatsRepository(database)

	seedCycleRecord(t, records, "user-1", "2025-01-01", 1, []string{"cramps", "fatigue"})
	seedCycleRecord(t, records, "user-1", "2025-01-02", 2, []string{"cramps"})

	if err := database.Exec(
		`INSERT INTO cycle_records (user_id, date, cycle_day, symptoms, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, '', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		"user-1", "2025-01-03", 3, `{not-json`,
	).Error; err != nil {
		t.Fatalf("insert corrupt row: %v", err)
	}

	frequency, err := stats.GetSymptomFrequency("user-1")
	if err != nil {
		t.Fatalf("get symptom frequency: %v", err)
	}

	if frequency["cramps"] != 2 {
		t.Fatalf("expected cramps count 2, got %d", frequency["cramps"])
	}
	if frequency["fatigue"] != 1 {
		t.Fatalf("expected fatigue count 1, got %d", frequency["fatigue"])
	}
	if len(frequency) != 2 {
		t.Fatalf("expected corrupt row to be skipped, got %v", frequency)
	}
}

func TestUpdateStatisticsCreatesRowWithZeroAccuracy(t *testing.T) {
	database := openTestDatabase(t)
	records := NewCycleRecordRepository(database)
	stats := NewStatsRepository(database)

	seedCycleRecord(t, records, "user-1", "2025-01-01", 1, []string{"cramps"})
	seedCycleRecord(t, records, "user-1", "2025-01-29", 29, nil)

	snapshot, err := stats.UpdateStatistics("user-1")
	if err != nil {
		t.Fatalf("update statistics: %v", err)
	}

	if snapshot.ID == 0 {
		t.Fatal("expected generated statistics identifier")
	}
	if snapshot.PredictionAccuracy != 0 {
		t.Fatalf("expected zero prediction accuracy on insert, got %v", snapshot.PredictionAccuracy)
	}
	if snapshot.CycleCount != 2 || snapshot.AverageCycleLength != 28 {
		t.Fatalf("unexpected recomputed metrics: %+v", snapshot)
	}
	if snapshot.SymptomFrequency["cramps"] != 1 {
		t.Fatalf("expected cramps frequency 1, got %v", snapshot.SymptomFrequency)
	}
}

func TestUpdateStatisticsPreservesPredictionAccuracy(t *testing.T) {
	database := openTestDatabase(t)
	records := NewCycleRecordRepository(database)
	stats := NewStatsRepository(database)

	seedCycleRecord(t, records, "user-1", "2025-01-01", 1, nil)

	first, err := stats.UpdateStatistics("user-1")
	if err != nil {
		t.Fatalf("first update statistics: %v", err)
	}

	first.PredictionAccuracy = 0.75
	if err := stats.Update(first.ID, &first); err != nil {
		t.Fatalf("store accuracy: %v", err)
	}

	seedCycleRecord(t, records, "user-1", "2025-01-29", 29, nil)

	second, err := stats.UpdateStatistics("user-1")
	if err != nil {
		t.Fatalf("second update statistics: %v", err)
	}

	if second.PredictionAccuracy != 0.75 {
		t.Fatalf("expected prediction accuracy preserved at 0.75, got %v", second.PredictionAccuracy)
	}
	if second.CycleCount != 2 {
		t.Fatalf("expected recomputed cycle count 2, got %d", second.CycleCount)
	}
	if second.ID != first.ID {
		t.Fatalf("expected the same statistics row, got %d then %d", first.ID, second.ID)
	}

	var rowCount int64
	if err := database.Model(&models.StatisticsData{}).
		Where("user_id = ?", "user-1").
		Count(&rowCount).Error; err != nil {
		t.Fatalf("count statistics rows: %v", err)
	}
	if rowCount != 1 {
		t.Fatalf("expected exactly 1 statistics row, got %d", rowCount)
	}
}

func TestStatsFindByUserIDAbsent(t *testing.T) {
	repo := NewStatsRepository(openTestDatabase(t))

	_, found, err := repo.FindByUserID("user-1")
	if err != nil {
		t.Fatalf("find by user: %v", err)
	}
	if found {
		t.Fatal("expected no statistics row")
	}
}
