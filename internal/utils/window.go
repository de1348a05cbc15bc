package utils

import (
	"time"

	"github.com/julianstephens/burnoutguard/internal/constants"
)

// Window is the half-open analysis range [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow returns the rolling window anchored at the start of now's day.
func NewWindow(now time.Time) Window {
	start := StartOfDay(now)
	return Window{
		Start: start,
		End:   start.AddDate(0, 0, constants.AnalysisDays),
	}
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	c := Canonicalize(t)
	return !c.Before(w.Start) && c.Before(w.End)
}

// Days returns the number of whole days spanned by the window.
func (w Window) Days() int {
	return int(w.End.Sub(w.Start) / constants.Day)
}

// Day returns midnight of the i-th day of the window.
func (w Window) Day(i int) time.Time {
	return w.Start.AddDate(0, 0, i)
}

// Night returns the sleep window that begins on the i-th day.
func (w Window) Night(i int) (start, end time.Time) {
	day := w.Day(i)
	next := day.AddDate(0, 0, 1)
	start = time.Date(day.Year(), day.Month(), day.Day(), constants.SleepWindowStartHour, 0, 0, 0, time.UTC)
	end = time.Date(next.Year(), next.Month(), next.Day(), constants.SleepWindowEndHour, 0, 0, 0, time.UTC)
	return start, end
}
