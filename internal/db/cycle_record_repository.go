package db

import (
	"fmt"
	"time"

	"github.com/lunara-app/lunara/internal/models"
	"github.com/lunara-app/lunara/internal/services"
	"gorm.io/gorm"
)

type CycleRecordRepository struct {
	database *gorm.DB
}

var _ Repository[models.CycleRecord, uint] = (*CycleRecordRepository)(nil)

func NewCycleRecordRepository(database *gorm.DB) *CycleRecordRepository {
	return &CycleRecordRepository{database: database}
}

func (repo *CycleRecordRepository) FindByID(id uint) (models.CycleRecord, bool, error) {
	record := models.CycleRecord{}
	result := repo.database.Where("id = ?", id).Limit(1).Find(&record)
	if result.Error != nil {
		return models.CycleRecord{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CycleRecord{}, false, nil
	}
	return record, true, nil
}

func (repo *CycleRecordRepository) FindAll() ([]models.CycleRecord, error) {
	records := make([]models.CycleRecord, 0)
	if err := repo.database.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Save inserts the record and backfills the store-generated identifier.
func (repo *CycleRecordRepository) Save(record *models.CycleRecord) error {
	return repo.database.Create(record).Error
}

// Update is a full-column replace keyed by identifier; created_at is left
// untouched.
func (repo *CycleRecordRepository) Update(id uint, record *models.CycleRecord) error {
	record.ID = id
	return repo.database.Model(record).
		Select("user_id", "date", "cycle_day", "symptoms", "notes", "updated_at").
		Updates(record).Error
}

func (repo *CycleRecordRepository) Delete(id uint) (bool, error) {
	result := repo.database.Delete(&models.CycleRecord{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *CycleRecordRepository) Exists(id uint) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.CycleRecord{}).
		Where("id = ?", id).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *CycleRecordRepository) FindByDate(userID string, date time.Time) (models.CycleRecord, bool, error) {
	record := models.CycleRecord{}
	result := repo.database.
		Where("user_id = ? AND date = ?", userID, services.FormatDay(date)).
		Limit(1).
		Find(&record)
	if result.Error != nil {
		return models.CycleRecord{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CycleRecord{}, false, nil
	}
	return record, true, nil
}

// FindByUserID returns all records for the user, most recent first.
func (repo *CycleRecordRepository) FindByUserID(userID string) ([]models.CycleRecord, error) {
	records := make([]models.CycleRecord, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByDateRange returns records within the inclusive day range, ordered
// ascending.
func (repo *CycleRecordRepository) FindByDateRange(userID string, start time.Time, end time.Time) ([]models.CycleRecord, error) {
	records := make([]models.CycleRecord, 0)
	if err := repo.database.
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, services.FormatDay(start), services.FormatDay(end)).
		Order("date ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *CycleRecordRepository) GetLastCycleRecord(userID string) (models.CycleRecord, bool, error) {
	record := models.CycleRecord{}
	result := repo.database.
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(1).
		Find(&record)
	if result.Error != nil {
		return models.CycleRecord{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CycleRecord{}, false, nil
	}
	return record, true, nil
}

// GetCycleRecordsForMonth returns records whose day falls in the given
// calendar month, ordered ascending. Month is 1-indexed.
func (repo *CycleRecordRepository) GetCycleRecordsForMonth(userID string, year int, month int) ([]models.CycleRecord, error) {
	searchPattern := fmt.Sprintf("%d-%02d%%", year, month)

	records := make([]models.CycleRecord, 0)
	if err := repo.database.
		Where("user_id = ? AND date LIKE ?", userID, searchPattern).
		Order("date ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
