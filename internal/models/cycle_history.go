package models

import "time"

// CycleHistory is the denormalized per-user aggregate. Cycles is carried on the
// in-memory aggregate only; the table has no column for it, so the running list
// can drift from cycle_records when records are edited elsewhere.
type CycleHistory struct {
	ID               uint          `gorm:"primaryKey"`
	UserID           string        `gorm:"not null"`
	Cycles           []CycleRecord `gorm:"-"`
	StartDate        *string
	EndDate          *string
	AverageLength    int           `gorm:"not null;default:28"`
	NextExpectedDate *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (CycleHistory) TableName() string {
	return "cycle_history"
}
