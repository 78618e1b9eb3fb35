package db

import "gorm.io/gorm"

type Repositories struct {
	CycleRecords   *CycleRecordRepository
	CycleHistories *CycleHistoryRepository
	Statistics     *StatsRepository
	Settings       *SettingsRepository
	Storage        *KVStore
}

func NewRepositories(database *gorm.DB) *Repositories {
	storage := NewKVStore(database)
	return &Repositories{
		CycleRecords:   NewCycleRecordRepository(database),
		CycleHistories: NewCycleHistoryRepository(database),
		Statistics:     NewStatsRepository(database),
		Settings:       NewSettingsRepository(storage),
		Storage:        storage,
	}
}
