package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/burnoutguard/internal/utils"
)

// CalendarEvent is a scheduled block pulled from a calendar.
// Start and End are canonical (zone-naive) instants.
type CalendarEvent struct {
	ID          string    `json:"id"`
	Summary     string    `json:"summary"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Description string    `json:"description,omitempty"`
}

type calendarEventJSON struct {
	ID          string  `json:"id"`
	Summary     string  `json:"summary"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	Description *string `json:"description,omitempty"`
}

func (e *CalendarEvent) UnmarshalJSON(data []byte) error {
	var raw calendarEventJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	start, err := utils.ParseTimestamp(raw.Start)
	if err != nil {
		return fmt.Errorf("event %q start: %w", raw.ID, err)
	}
	end, err := utils.ParseTimestamp(raw.End)
	if err != nil {
		return fmt.Errorf("event %q end: %w", raw.ID, err)
	}

	*e = CalendarEvent{
		ID:      raw.ID,
		Summary: raw.Summary,
		Start:   start,
		End:     end,
	}
	if raw.Description != nil {
		e.Description = *raw.Description
	}
	return nil
}

func (e CalendarEvent) MarshalJSON() ([]byte, error) {
	raw := calendarEventJSON{
		ID:      e.ID,
		Summary: e.Summary,
		Start:   utils.FormatTimestamp(e.Start),
		End:     utils.FormatTimestamp(e.End),
	}
	if e.Description != "" {
		raw.Description = &e.Description
	}
	return json.Marshal(raw)
}

// Duration returns the length of the event, never negative.
func (e CalendarEvent) Duration() time.Duration {
	d := e.End.Sub(e.Start)
	if d < 0 {
		return 0
	}
	return d
}

// Text is the lowercase summary and description used for keyword matching.
func (e CalendarEvent) Text() string {
	return strings.ToLower(e.Summary + " " + e.Description)
}

func (e *CalendarEvent) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("event id cannot be empty")
	}
	if strings.TrimSpace(e.Summary) == "" {
		return fmt.Errorf("event summary cannot be empty")
	}
	if e.End.Before(e.Start) {
		return fmt.Errorf("event %q ends before it starts", e.Summary)
	}
	return nil
}
