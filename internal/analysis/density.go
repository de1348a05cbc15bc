package analysis

import (
	"math"
	"time"

	"github.com/julianstephens/burnoutguard/internal/constants"
	"github.com/julianstephens/burnoutguard/internal/models"
	"github.com/julianstephens/burnoutguard/internal/utils"
)

// CalendarDensity is the percentage of waking hours in w occupied by events
// starting inside w, capped at 100 and rounded to two decimals.
func CalendarDensity(events []models.CalendarEvent, w utils.Window) float64 {
	wakingMinutes := float64(constants.WakingHoursPerDay * 60 * w.Days())
	return density(InWindow(events, w), wakingMinutes)
}

// DayDensity applies the same measure to the single day containing day.
func DayDensity(events []models.CalendarEvent, day time.Time) float64 {
	start := utils.StartOfDay(day)
	w := utils.Window{Start: start, End: start.AddDate(0, 0, 1)}
	return density(InWindow(events, w), float64(constants.WakingHoursPerDay*60))
}

func density(events []models.CalendarEvent, wakingMinutes float64) float64 {
	if len(events) == 0 || wakingMinutes <= 0 {
		return 0.0
	}

	var totalMinutes float64
	for _, e := range events {
		totalMinutes += e.Duration().Minutes()
	}

	return round2(math.Min(totalMinutes/wakingMinutes*100, 100))
}
