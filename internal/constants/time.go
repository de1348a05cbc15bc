package constants

import "time"

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DisplayFormat renders instants for humans in listings.
	DisplayFormat = "Mon Jan 2 15:04"

	// TimestampFormat is how canonical (zone-naive) instants are persisted.
	TimestampFormat = "2006-01-02T15:04:05.999999999"

	// AnalysisDays is the length of the rolling analysis window.
	AnalysisDays = 7

	// WakingHoursPerDay is the fixed waking-hours assumption behind calendar density.
	WakingHoursPerDay = 16

	// MaxBreakMinutes is reported when there are too few events to have a gap.
	MaxBreakMinutes = WakingHoursPerDay * 60

	// Nightly sleep window: SleepWindowStartHour on day N to SleepWindowEndHour on day N+1.
	SleepWindowStartHour = 22
	SleepWindowEndHour   = 8

	// MaxSleepHours caps the per-night sleep opportunity.
	MaxSleepHours = 12.0

	Day = 24 * time.Hour
)
