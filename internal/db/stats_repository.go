package db

import (
	"fmt"
	"time"

	"github.com/lunara-app/lunara/internal/models"
	"github.com/lunara-app/lunara/internal/services"
	"gorm.io/gorm"
)

// StatsRepository recomputes derived metrics from the raw cycle_records table
// and upserts them into the per-user statistics row. Reading the facts table
// directly, rather than through CycleRecordRepository, is deliberate.
type StatsRepository struct {
	database *gorm.DB
	locks    *userLocks
}

var _ Repository[models.StatisticsData, uint] = (*StatsRepository)(nil)

func NewStatsRepository(database *gorm.DB) *StatsRepository {
	return &StatsRepository{database: database, locks: newUserLocks()}
}

func (repo *StatsRepository) FindByID(id uint) (models.StatisticsData, bool, error) {
	stats := models.StatisticsData{}
	result := repo.database.Where("id = ?", id).Limit(1).Find(&stats)
	if result.Error != nil {
		return models.StatisticsData{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.StatisticsData{}, false, nil
	}
	return stats, true, nil
}

func (repo *StatsRepository) FindAll() ([]models.StatisticsData, error) {
	snapshots := make([]models.StatisticsData, 0)
	if err := repo.database.Find(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}

func (repo *StatsRepository) Save(stats *models.StatisticsData) error {
	return repo.database.Create(stats).Error
}

func (repo *StatsRepository) Update(id uint, stats *models.StatisticsData) error {
	stats.ID = id
	return repo.database.Model(stats).
		Select(
			"user_id", "cycle_count", "average_cycle_length", "shortest_cycle",
			"longest_cycle", "average_period_days", "prediction_accuracy",
			"symptom_frequency", "fertility_window_start", "fertility_window_end",
			"last_updated", "updated_at",
		).
		Updates(stats).Error
}

func (repo *StatsRepository) Delete(id uint) (bool, error) {
	result := repo.database.Delete(&models.StatisticsData{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *StatsRepository) Exists(id uint) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.StatisticsData{}).
		Where("id = ?", id).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *StatsRepository) FindByUserID(userID string) (models.StatisticsData, bool, error) {
	stats := models.StatisticsData{}
	result := repo.database.Where("user_id = ?", userID).Limit(1).Find(&stats)
	if result.Error != nil {
		return models.StatisticsData{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.StatisticsData{}, false, nil
	}
	return stats, true, nil
}

// CalculateCycleStats derives cycle metrics from the user's facts without
// writing anything.
func (repo *StatsRepository) CalculateCycleStats(userID string) (services.CycleStats, error) {
	facts, err := loadCycleFacts(repo.database, userID)
	if err != nil {
		return services.CycleStats{}, err
	}
	return services.BuildCycleStats(facts), nil
}

type symptomPayloadRow struct {
	Symptoms *string `gorm:"column:symptoms"`
}

// GetSymptomFrequency counts symptom tags across all of the user's records.
func (repo *StatsRepository) GetSymptomFrequency(userID string) (map[string]int, error) {
	rows := make([]symptomPayloadRow, 0)
	if err := repo.database.
		Raw(`SELECT symptoms FROM cycle_records WHERE user_id = ?`, userID).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	payloads := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Symptoms == nil {
			continue
		}
		payloads = append(payloads, *row.Symptoms)
	}
	return services.CountSymptomFrequency(payloads), nil
}

// UpdateStatistics recomputes all derived metrics and upserts them into the
// user's statistics row. An existing row keeps its predictionAccuracy and is
// re-read after the write; a new row starts at accuracy 0 and is returned as
// assembled, without a re-read.
func (repo *StatsRepository) UpdateStatistics(userID string) (models.StatisticsData, error) {
	unlock := repo.locks.lock(userID)
	defer unlock()

	stats, err := repo.CalculateCycleStats(userID)
	if err != nil {
		return models.StatisticsData{}, err
	}
	frequency, err := repo.GetSymptomFrequency(userID)
	if err != nil {
		return models.StatisticsData{}, err
	}

	existing, found, err := repo.FindByUserID(userID)
	if err != nil {
		return models.StatisticsData{}, err
	}

	now := time.Now()
	if found {
		updates := models.StatisticsData{
			CycleCount:         stats.CycleCount,
			AverageCycleLength: stats.AverageCycleLength,
			ShortestCycle:      stats.ShortestCycle,
			LongestCycle:       stats.LongestCycle,
			AveragePeriodDays:  stats.AveragePeriodDays,
			PredictionAccuracy: existing.PredictionAccuracy,
			SymptomFrequency:   frequency,
			LastUpdated:        now,
		}
		if err := repo.database.Model(&models.StatisticsData{}).
			Where("user_id = ?", userID).
			Select(
				"cycle_count", "average_cycle_length", "shortest_cycle",
				"longest_cycle", "average_period_days", "prediction_accuracy",
				"symptom_frequency", "last_updated", "updated_at",
			).
			Updates(updates).Error; err != nil {
			return models.StatisticsData{}, err
		}

		updated, refound, err := repo.FindByUserID(userID)
		if err != nil {
			return models.StatisticsData{}, err
		}
		if !refound {
			return models.StatisticsData{}, fmt.Errorf("statistics row for user %s missing after update", userID)
		}
		return updated, nil
	}

	fresh := models.StatisticsData{
		UserID:             userID,
		CycleCount:         stats.CycleCount,
		AverageCycleLength: stats.AverageCycleLength,
		ShortestCycle:      stats.ShortestCycle,
		LongestCycle:       stats.LongestCycle,
		AveragePeriodDays:  stats.AveragePeriodDays,
		PredictionAccuracy: 0,
		SymptomFrequency:   frequency,
		LastUpdated:        now,
	}
	if err := repo.database.Create(&fresh).Error; err != nil {
		return models.StatisticsData{}, err
	}
	return fresh, nil
}
