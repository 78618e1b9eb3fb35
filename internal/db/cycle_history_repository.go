package db

import (
	"time"

	"github.com/lunara-app/lunara/internal/models"
	"github.com/lunara-app/lunara/internal/services"
	"gorm.io/gorm"
)

type CycleHistoryRepository struct {
	database *gorm.DB
	locks    *userLocks
}

var _ Repository[models.CycleHistory, uint] = (*CycleHistoryRepository)(nil)

func NewCycleHistoryRepository(database *gorm.DB) *CycleHistoryRepository {
	return &CycleHistoryRepository{database: database, locks: newUserLocks()}
}

func (repo *CycleHistoryRepository) FindByID(id uint) (models.CycleHistory, bool, error) {
	history := models.CycleHistory{}
	result := repo.database.Where("id = ?", id).Limit(1).Find(&history)
	if result.Error != nil {
		return models.CycleHistory{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CycleHistory{}, false, nil
	}
	return history, true, nil
}

func (repo *CycleHistoryRepository) FindAll() ([]models.CycleHistory, error) {
	histories := make([]models.CycleHistory, 0)
	if err := repo.database.Find(&histories).Error; err != nil {
		return nil, err
	}
	return histories, nil
}

func (repo *CycleHistoryRepository) Save(history *models.CycleHistory) error {
	return repo.database.Create(history).Error
}

func (repo *CycleHistoryRepository) Update(id uint, history *models.CycleHistory) error {
	history.ID = id
	return repo.database.Model(history).
		Select("user_id", "start_date", "end_date", "average_length", "next_expected_date", "updated_at").
		Updates(history).Error
}

func (repo *CycleHistoryRepository) Delete(id uint) (bool, error) {
	result := repo.database.Delete(&models.CycleHistory{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *CycleHistoryRepository) Exists(id uint) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.CycleHistory{}).
		Where("id = ?", id).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// FindByUserID returns the single history row for the user. One row per user
// is an application-level convention, not a schema constraint.
func (repo *CycleHistoryRepository) FindByUserID(userID string) (models.CycleHistory, bool, error) {
	history := models.CycleHistory{}
	result := repo.database.Where("user_id = ?", userID).Limit(1).Find(&history)
	if result.Error != nil {
		return models.CycleHistory{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CycleHistory{}, false, nil
	}
	return history, true, nil
}

// UpdateCycles is a read-merge-write upsert keyed by user. An existing row
// keeps its stored startDate/endDate/averageLength untouched; the cycles list
// is carried on the returned aggregate only. A missing row is created with
// the system default average length and no date bounds.
func (repo *CycleHistoryRepository) UpdateCycles(userID string, cycles []models.CycleRecord) (models.CycleHistory, error) {
	unlock := repo.locks.lock(userID)
	defer unlock()

	return repo.updateCyclesLocked(userID, cycles)
}

// AddCycleRecord appends one record to the user's running list. It re-reads
// the whole history rather than doing a partial append at the store level.
func (repo *CycleHistoryRepository) AddCycleRecord(userID string, record models.CycleRecord) (models.CycleHistory, error) {
	unlock := repo.locks.lock(userID)
	defer unlock()

	history, found, err := repo.FindByUserID(userID)
	if err != nil {
		return models.CycleHistory{}, err
	}
	if found {
		return repo.updateCyclesLocked(userID, append(history.Cycles, record))
	}
	return repo.updateCyclesLocked(userID, []models.CycleRecord{record})
}

// GetCycleSummary aggregates over the raw cycle_records facts, independent of
// the cycles list stored on the history row.
func (repo *CycleHistoryRepository) GetCycleSummary(userID string) (services.CycleSummary, error) {
	facts, err := loadCycleFacts(repo.database, userID)
	if err != nil {
		return services.CycleSummary{}, err
	}
	return services.BuildCycleSummary(facts), nil
}

func (repo *CycleHistoryRepository) updateCyclesLocked(userID string, cycles []models.CycleRecord) (models.CycleHistory, error) {
	history := models.CycleHistory{}
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		existing := models.CycleHistory{}
		result := tx.Where("user_id = ?", userID).Limit(1).Find(&existing)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected > 0 {
			now := time.Now()
			if err := tx.Model(&models.CycleHistory{}).
				Where("user_id = ?", userID).
				Updates(map[string]any{
					"start_date":     existing.StartDate,
					"end_date":       existing.EndDate,
					"average_length": existing.AverageLength,
					"updated_at":     now,
				}).Error; err != nil {
				return err
			}

			history = existing
			history.Cycles = cycles
			history.UpdatedAt = now
			return nil
		}

		created := models.CycleHistory{
			UserID:        userID,
			Cycles:        cycles,
			AverageLength: models.DefaultAverageCycleLength,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		history = created
		return nil
	})
	if err != nil {
		return models.CycleHistory{}, err
	}
	return history, nil
}
