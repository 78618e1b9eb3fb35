package services

import (
	"log"
	"math"
	"time"

	"github.com/lunara-app/lunara/internal/models"
)

// CycleFact is one row of the raw cycle_records facts, the shared input for
// every derived aggregate.
type CycleFact struct {
	Date     string
	CycleDay int
}

type CycleStats struct {
	CycleCount         int
	AverageCycleLength float64
	ShortestCycle      int
	LongestCycle       int
	AveragePeriodDays  float64
}

type CycleSummary struct {
	CycleCount    int
	StartDate     *string
	EndDate       *string
	AverageLength float64
}

func DefaultCycleStats() CycleStats {
	return CycleStats{
		CycleCount:         0,
		AverageCycleLength: models.DefaultAverageCycleLength,
		ShortestCycle:      models.DefaultShortestCycle,
		LongestCycle:       models.DefaultLongestCycle,
		AveragePeriodDays:  models.DefaultAveragePeriodDays,
	}
}

// BuildCycleStats derives cycle metrics from the facts, ordered by date
// ascending. CycleCount counts daily entries and AverageCycleLength averages
// the gaps between consecutive entries; both are kept as-is pending product
// confirmation of the cycle-boundary semantics.
func BuildCycleStats(facts []CycleFact) CycleStats {
	if len(facts) == 0 {
		return DefaultCycleStats()
	}

	totalGap := 0
	gapCount := 0
	shortest := 0
	longest := 0

	previous, previousValid := parseFactDay(facts[0])
	for _, fact := range facts[1:] {
		current, currentValid := parseFactDay(fact)
		if previousValid && currentValid {
			gap := DaysBetween(previous, current)
			totalGap += gap
			gapCount++
			if gapCount == 1 || gap < shortest {
				shortest = gap
			}
			if gapCount == 1 || gap > longest {
				longest = gap
			}
		}
		previous, previousValid = current, currentValid
	}

	averageCycleLength := float64(models.DefaultAverageCycleLength)
	if gapCount > 0 {
		averageCycleLength = float64(totalGap) / float64(gapCount)
	}
	if gapCount == 0 {
		shortest = models.DefaultShortestCycle
		longest = models.DefaultLongestCycle
	}

	cycleCount := len(facts)
	periodDayCount := 0
	for _, fact := range facts {
		if fact.CycleDay <= models.PeriodDayThreshold {
			periodDayCount++
		}
	}

	averagePeriodDays := float64(models.DefaultAveragePeriodDays)
	if periodDayCount > 0 {
		divisor := cycleCount
		if divisor == 0 {
			divisor = 1
		}
		averagePeriodDays = float64(periodDayCount) / float64(divisor)
	}

	return CycleStats{
		CycleCount:         cycleCount,
		AverageCycleLength: roundTwoDecimals(averageCycleLength),
		ShortestCycle:      shortest,
		LongestCycle:       longest,
		AveragePeriodDays:  roundTwoDecimals(averagePeriodDays),
	}
}

// BuildCycleSummary aggregates count, date bounds and mean cycle day over the
// facts, independent of any cycles list stored on a history row.
func BuildCycleSummary(facts []CycleFact) CycleSummary {
	if len(facts) == 0 {
		return CycleSummary{
			CycleCount:    0,
			AverageLength: models.DefaultAverageCycleLength,
		}
	}

	startDate := facts[0].Date
	endDate := facts[0].Date
	cycleDayTotal := 0
	for _, fact := range facts {
		if fact.Date < startDate {
			startDate = fact.Date
		}
		if fact.Date > endDate {
			endDate = fact.Date
		}
		cycleDayTotal += fact.CycleDay
	}

	averageLength := float64(cycleDayTotal) / float64(len(facts))
	if averageLength == 0 {
		averageLength = models.DefaultAverageCycleLength
	}

	return CycleSummary{
		CycleCount:    len(facts),
		StartDate:     &startDate,
		EndDate:       &endDate,
		AverageLength: averageLength,
	}
}

func parseFactDay(fact CycleFact) (time.Time, bool) {
	day, err := ParseDay(fact.Date)
	if err != nil {
		log.Printf("skip unparsable cycle record date %q: %v", fact.Date, err)
		return time.Time{}, false
	}
	return day, true
}

func roundTwoDecimals(value float64) float64 {
	return math.Round(value*100) / 100
}
