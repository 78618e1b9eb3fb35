package models

import "time"

const (
	DefaultAverageCycleLength = 28
	DefaultShortestCycle      = 21
	DefaultLongestCycle       = 35
	DefaultAveragePeriodDays  = 5

	// Days with cycle_day at or below this threshold count as period days.
	PeriodDayThreshold = 7
)

type CycleRecord struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    string    `gorm:"not null"`
	Date      string    `gorm:"not null"`
	CycleDay  int       `gorm:"not null"`
	Symptoms  []string  `gorm:"serializer:json"`
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
