package constants

// Weight constants for the total stress score.
// They must sum to 1.0.
const (
	WeightCalendar = 0.30
	WeightTask     = 0.20
	WeightSleep    = 0.30
	WeightBreak    = 0.20
)

// Calendar factor coefficients.
const (
	CalendarDensityCoef      = 0.4
	CalendarEventCoef        = 1.2
	CalendarHighStressCoef   = 4.0
	CalendarRecreationalCoef = 2.0
)

const (
	// TaskFactorScale multiplies ln(1 + 2*immediate tasks).
	TaskFactorScale = 30.0

	// SleepFactorPerHour is subtracted from 100 for every available sleep hour.
	SleepFactorPerHour = 12.5
)

// Break factor steps, keyed by average break minutes.
const (
	BreakLongMin   = 60.0
	BreakMediumMin = 30.0
	BreakShortMin  = 15.0

	BreakFactorLong   = 0.0
	BreakFactorMedium = 30.0
	BreakFactorShort  = 60.0
	BreakFactorNone   = 90.0
)

// Thresholds that map a total score to a risk level (inclusive lower bounds).
const (
	ThresholdCritical = 80.0
	ThresholdHigh     = 60.0
	ThresholdMedium   = 40.0
)

// MaxInterventions is the most interventions handed back to a caller.
const MaxInterventions = 5

func init() {
	// Runtime validation: ensure score weights sum to 1.0
	sum := WeightCalendar + WeightTask + WeightSleep + WeightBreak
	if sum < 0.999999 || sum > 1.000001 {
		panic("stress score weights must sum to 1.0")
	}
}
