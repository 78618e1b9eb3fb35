package db

import (
	"github.com/lunara-app/lunara/internal/services"
	"gorm.io/gorm"
)

type cycleFactRow struct {
	Date     string `gorm:"column:date"`
	CycleDay int    `gorm:"column:cycle_day"`
}

// loadCycleFacts reads the raw cycle_records facts for a user, ordered by
// date ascending. Every derived aggregate (statistics recompute, history
// summary) goes through this one read path.
func loadCycleFacts(database *gorm.DB, userID string) ([]services.CycleFact, error) {
	rows := make([]cycleFactRow, 0)
	if err := database.
		Raw(`SELECT date, cycle_day FROM cycle_records WHERE user_id = ? ORDER BY date ASC`, userID).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	facts := make([]services.CycleFact, 0, len(rows))
	for _, row := range rows {
		facts = append(facts, services.CycleFact{Date: row.Date, CycleDay: row.CycleDay})
	}
	return facts, nil
}
