package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/burnoutguard/internal/utils"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority maps a user-supplied string onto a Priority.
// An empty string yields PriorityMedium.
func ParsePriority(s string) (Priority, error) {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return PriorityMedium, nil
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	default:
		return "", fmt.Errorf("invalid priority %q (expected low|medium|high)", s)
	}
}

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    Priority   `json:"priority"`
	Completed   bool       `json:"completed"`
}

type taskJSON struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	Priority    string  `json:"priority"`
	Completed   bool    `json:"completed"`
}

func (t *Task) UnmarshalJSON(data []byte) error {
	var raw taskJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	priority, err := ParsePriority(raw.Priority)
	if err != nil {
		return fmt.Errorf("task %q: %w", raw.ID, err)
	}

	*t = Task{
		ID:        raw.ID,
		Title:     raw.Title,
		Priority:  priority,
		Completed: raw.Completed,
	}
	if raw.Description != nil {
		t.Description = *raw.Description
	}
	if raw.DueDate != nil && *raw.DueDate != "" {
		due, err := utils.ParseTimestamp(*raw.DueDate)
		if err != nil {
			return fmt.Errorf("task %q due_date: %w", raw.ID, err)
		}
		t.DueDate = &due
	}
	return nil
}

func (t Task) MarshalJSON() ([]byte, error) {
	raw := taskJSON{
		ID:        t.ID,
		Title:     t.Title,
		Priority:  string(t.Priority),
		Completed: t.Completed,
	}
	if t.Description != "" {
		raw.Description = &t.Description
	}
	if t.DueDate != nil {
		due := utils.FormatTimestamp(*t.DueDate)
		raw.DueDate = &due
	}
	return json.Marshal(raw)
}

// IsOverdue reports whether an incomplete task's due date is before now.
func (t Task) IsOverdue(now time.Time) bool {
	return !t.Completed && t.DueDate != nil && t.DueDate.Before(now)
}

func (t *Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("task id cannot be empty")
	}
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("task title cannot be empty")
	}
	if _, err := ParsePriority(string(t.Priority)); err != nil {
		return err
	}
	return nil
}
