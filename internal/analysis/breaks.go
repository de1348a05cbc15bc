package analysis

import (
	"sort"

	"github.com/julianstephens/burnoutguard/internal/constants"
	"github.com/julianstephens/burnoutguard/internal/models"
	"github.com/julianstephens/burnoutguard/internal/utils"
)

// AverageBreak returns the mean idle gap, in minutes, between consecutive
// events starting in w. Overlapping or back-to-back events contribute no gap.
//
// With fewer than two events there is no scheduling pressure and the full
// waking day is reported.
func AverageBreak(events []models.CalendarEvent, w utils.Window) float64 {
	windowed := InWindow(events, w)
	if len(windowed) < 2 {
		return float64(constants.MaxBreakMinutes)
	}

	sort.SliceStable(windowed, func(i, j int) bool {
		return windowed[i].Start.Before(windowed[j].Start)
	})

	var total float64
	var count int
	for i := 1; i < len(windowed); i++ {
		gap := windowed[i].Start.Sub(windowed[i-1].End).Minutes()
		if gap > 0 {
			total += gap
			count++
		}
	}

	if count == 0 {
		return 0.0
	}
	return round2(total / float64(count))
}
