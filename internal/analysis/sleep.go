package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/julianstephens/burnoutguard/internal/constants"
	"github.com/julianstephens/burnoutguard/internal/models"
	"github.com/julianstephens/burnoutguard/internal/utils"
)

type interval struct {
	start time.Time
	end   time.Time
}

// SleepOpportunity averages, over every night in w, the longest uninterrupted
// stretch inside the 22:00-08:00 sleep window. Each night is capped at
// constants.MaxSleepHours. All events are considered, not only those that
// start inside w, because a late event on the eve of the window still eats
// into its first night.
func SleepOpportunity(events []models.CalendarEvent, w utils.Window) float64 {
	nights := w.Days()
	if nights <= 0 {
		return 0.0
	}

	var total float64
	for i := 0; i < nights; i++ {
		start, end := w.Night(i)
		total += NightOpportunity(events, start, end)
	}
	return round2(total / float64(nights))
}

// NightOpportunity is the largest free interval, in hours, inside
// [sleepStart, sleepEnd] once overlapping events are clipped to it.
func NightOpportunity(events []models.CalendarEvent, sleepStart, sleepEnd time.Time) float64 {
	// The window bounds act as zero-length markers so gaps at either edge count.
	blocks := []interval{
		{start: sleepStart, end: sleepStart},
		{start: sleepEnd, end: sleepEnd},
	}
	for _, e := range events {
		if !e.End.After(sleepStart) || !e.Start.Before(sleepEnd) {
			continue
		}
		clipped := interval{start: e.Start, end: e.End}
		if clipped.start.Before(sleepStart) {
			clipped.start = sleepStart
		}
		if clipped.end.After(sleepEnd) {
			clipped.end = sleepEnd
		}
		blocks = append(blocks, clipped)
	}

	sort.Slice(blocks, func(i, j int) bool {
		if blocks[i].start.Equal(blocks[j].start) {
			return blocks[i].end.Before(blocks[j].end)
		}
		return blocks[i].start.Before(blocks[j].start)
	})

	var maxGap float64
	for i := 1; i < len(blocks); i++ {
		gap := blocks[i].start.Sub(blocks[i-1].end).Hours()
		if gap > maxGap {
			maxGap = gap
		}
	}
	return math.Min(maxGap, constants.MaxSleepHours)
}
