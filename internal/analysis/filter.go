package analysis

import (
	"math"

	"github.com/julianstephens/burnoutguard/internal/models"
	"github.com/julianstephens/burnoutguard/internal/utils"
)

// InWindow returns the events whose start lies in w, preserving input order.
func InWindow(events []models.CalendarEvent, w utils.Window) []models.CalendarEvent {
	var out []models.CalendarEvent
	for _, e := range events {
		if w.Contains(e.Start) {
			out = append(out, e)
		}
	}
	return out
}

// round2 rounds half away from zero to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
