// Package scoring combines schedule measurements into a weighted stress score.
package scoring

import (
	"math"
	"time"

	"github.com/julianstephens/burnoutguard/internal/constants"
	"github.com/julianstephens/burnoutguard/internal/models"
)

// Inputs are the measurements feeding the score.
type Inputs struct {
	EventsCount       int
	HighStressCount   int
	RecreationalCount int
	CalendarDensity   float64 // percent, 0-100
	SleepHours        float64
	AverageBreak      float64 // minutes
	ImmediateTasks    int
}

// Calculate computes the sub-factors, total and risk level.
// Every field of the result is within [0, 100].
func Calculate(in Inputs, now time.Time) models.StressScore {
	calendar := CalendarFactor(in.CalendarDensity, in.EventsCount, in.HighStressCount, in.RecreationalCount)
	task := TaskFactor(in.ImmediateTasks)
	sleep := SleepFactor(in.SleepHours)
	brk := BreakFactor(in.AverageBreak)

	total := round2(clamp(
		calendar*constants.WeightCalendar+
			task*constants.WeightTask+
			sleep*constants.WeightSleep+
			brk*constants.WeightBreak,
		0, 100))

	return models.StressScore{
		TotalScore:     total,
		CalendarFactor: round2(calendar),
		TaskFactor:     round2(task),
		SleepFactor:    round2(sleep),
		BreakFactor:    round2(brk),
		RiskLevel:      RiskLevelFor(total),
		Timestamp:      now,
	}
}

// CalendarFactor rewards density and event count, adds weight for high-stress
// events and relief for recreational ones.
func CalendarFactor(density float64, events, highStress, recreational int) float64 {
	return clamp(
		density*constants.CalendarDensityCoef+
			float64(events)*constants.CalendarEventCoef+
			float64(highStress)*constants.CalendarHighStressCoef-
			float64(recreational)*constants.CalendarRecreationalCoef,
		0, 100)
}

// TaskFactor grows logarithmically so each extra task matters less than the last.
// 0 tasks -> 0, 1 -> 32.96, 3 -> 58.38, 5 -> 71.94, 10 -> 91.34; 14 or more cap at 100.
func TaskFactor(immediate int) float64 {
	if immediate <= 0 {
		return 0
	}
	return clamp(constants.TaskFactorScale*math.Log1p(float64(immediate)*2), 0, 100)
}

// SleepFactor is 0 at eight available hours and 100 with none.
func SleepFactor(hours float64) float64 {
	return clamp(100-hours*constants.SleepFactorPerHour, 0, 100)
}

// BreakFactor steps up as the average break shrinks.
func BreakFactor(avgBreakMin float64) float64 {
	switch {
	case avgBreakMin >= constants.BreakLongMin:
		return constants.BreakFactorLong
	case avgBreakMin >= constants.BreakMediumMin:
		return constants.BreakFactorMedium
	case avgBreakMin >= constants.BreakShortMin:
		return constants.BreakFactorShort
	default:
		return constants.BreakFactorNone
	}
}

// RiskLevelFor maps a total score to a risk level. Lower bounds are inclusive.
func RiskLevelFor(total float64) models.RiskLevel {
	switch {
	case total >= constants.ThresholdCritical:
		return models.RiskCritical
	case total >= constants.ThresholdHigh:
		return models.RiskHigh
	case total >= constants.ThresholdMedium:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// SleepQualityMessage describes available sleep hours for display. It plays
// no part in scoring.
func SleepQualityMessage(hours float64) string {
	switch {
	case hours >= 8:
		return "Excellent - meeting recommended 7-9 hours for optimal performance"
	case hours >= 7:
		return "Good - within recommended range for young adults"
	case hours >= 6:
		return "Insufficient - below 7-hour minimum, may impact performance"
	case hours >= 4:
		return "Severely deprived - cognitive effects similar to 48-hour sleep deprivation"
	default:
		return "Critical - major health and academic risk, seek support immediately"
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
