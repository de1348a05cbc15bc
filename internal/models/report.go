package models

import (
	"encoding/json"
	"fmt"
	"io"
)

// Report is everything one analysis run produces.
type Report struct {
	StressScore   StressScore    `json:"stress_score"`
	Factors       StressFactors  `json:"factors"`
	Predictions   []string       `json:"predictions"`
	Interventions []Intervention `json:"interventions"`
}

// DecodeEvents reads a JSON array of calendar events.
func DecodeEvents(r io.Reader) ([]CalendarEvent, error) {
	var events []CalendarEvent
	if err := json.NewDecoder(r).Decode(&events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return events, nil
}

// DecodeTasks reads a JSON array of tasks.
func DecodeTasks(r io.Reader) ([]Task, error) {
	var tasks []Task
	if err := json.NewDecoder(r).Decode(&tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	return tasks, nil
}
