package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/burnoutguard/internal/constants"
)

// ParseError reports a timestamp that could not be interpreted.
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid timestamp %q: %v", e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Layouts accepted by ParseTimestamp, tried in order. Offset-aware layouts come first.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	constants.DateFormat,
}

// ParseTimestamp parses an ISO-8601 timestamp and returns its canonical form.
// Offset-aware inputs keep the wall clock of their own offset; see Canonicalize.
func ParseTimestamp(s string) (time.Time, error) {
	value := strings.TrimSpace(s)
	if value == "" {
		return time.Time{}, &ParseError{Value: s, Err: errors.New("empty value")}
	}

	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return Canonicalize(t), nil
		}
		lastErr = err
	}
	return time.Time{}, &ParseError{Value: s, Err: lastErr}
}

// Canonicalize drops the zone of t while keeping its wall clock in that zone.
// The result is expressed in UTC so instants compare on wall-clock values only.
//
// Mixing inputs carrying different offsets can reorder them relative to real
// time. Downstream formulas were tuned against this behavior; keep it until
// the data model carries proper zones.
func Canonicalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// FormatTimestamp renders a canonical instant the way it is persisted.
func FormatTimestamp(t time.Time) string {
	return Canonicalize(t).Format(constants.TimestampFormat)
}

// StartOfDay truncates t to midnight of its (canonical) day.
func StartOfDay(t time.Time) time.Time {
	c := Canonicalize(t)
	return time.Date(c.Year(), c.Month(), c.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfTomorrow returns 23:59:59.999999 of the day after now.
func EndOfTomorrow(now time.Time) time.Time {
	return StartOfDay(now).AddDate(0, 0, 2).Add(-time.Microsecond)
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
