package models

import "time"

type StatisticsData struct {
	ID                   uint           `gorm:"primaryKey"`
	UserID               string         `gorm:"not null"`
	CycleCount           int            `gorm:"not null;default:0"`
	AverageCycleLength   float64        `gorm:"not null;default:28"`
	ShortestCycle        int            `gorm:"not null;default:21"`
	LongestCycle         int            `gorm:"not null;default:35"`
	AveragePeriodDays    float64        `gorm:"not null;default:5"`
	PredictionAccuracy   float64        `gorm:"not null;default:0"`
	SymptomFrequency     map[string]int `gorm:"serializer:json"`
	FertilityWindowStart *string
	FertilityWindowEnd   *string
	LastUpdated          time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (StatisticsData) TableName() string {
	return "statistics_data"
}
