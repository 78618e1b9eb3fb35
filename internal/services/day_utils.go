package services

import (
	"math"
	"time"
)

const DayLayout = "2006-01-02"

func FormatDay(value time.Time) string {
	return value.Format(DayLayout)
}

func ParseDay(value string) (time.Time, error) {
	return time.Parse(DayLayout, value)
}

// DaysBetween returns the absolute difference between two instants in days,
// ceiling-rounded to a whole day.
func DaysBetween(a time.Time, b time.Time) int {
	diff := b.Sub(a)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}
