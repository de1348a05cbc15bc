package models

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/burnoutguard/internal/utils"
)

func TestDecodeEvents(t *testing.T) {
	input := `[
		{"id": "e1", "summary": "Midterm Exam", "start": "2025-03-10T09:00:00-05:00", "end": "2025-03-10T11:00:00-05:00"},
		{"id": "e2", "summary": "Yoga", "start": "2025-03-10T18:00:00", "end": "2025-03-10T19:00:00", "description": "studio B"}
	]`

	events, err := DecodeEvents(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeEvents() unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	if want := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC); !events[0].Start.Equal(want) {
		t.Errorf("events[0].Start = %v, want %v", events[0].Start, want)
	}
	if events[0].Description != "" {
		t.Errorf("events[0].Description = %q, want empty", events[0].Description)
	}
	if events[1].Description != "studio B" {
		t.Errorf("events[1].Description = %q, want %q", events[1].Description, "studio B")
	}
}

func TestDecodeEvents_MalformedTimestamp(t *testing.T) {
	input := `[{"id": "e1", "summary": "Exam", "start": "tomorrow-ish", "end": "2025-03-10T11:00:00"}]`

	_, err := DecodeEvents(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected error for malformed timestamp")
	}
	var pe *utils.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *utils.ParseError in chain, got %v", err)
	}
	if pe.Value != "tomorrow-ish" {
		t.Errorf("ParseError.Value = %q, want %q", pe.Value, "tomorrow-ish")
	}
}

func TestDecodeTasks(t *testing.T) {
	input := `[
		{"id": "t1", "title": "Lab report", "due_date": "2025-03-09T23:59:00Z", "priority": "high"},
		{"id": "t2", "title": "Read chapter", "due_date": null, "completed": true},
		{"id": "t3", "title": "Email TA"}
	]`

	tasks, err := DecodeTasks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeTasks() unexpected error: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	if tasks[0].Priority != PriorityHigh || tasks[0].DueDate == nil {
		t.Errorf("tasks[0] = %+v, want high priority with due date", tasks[0])
	}
	if tasks[1].DueDate != nil || !tasks[1].Completed {
		t.Errorf("tasks[1] = %+v, want completed without due date", tasks[1])
	}
	if tasks[2].Priority != PriorityMedium {
		t.Errorf("tasks[2].Priority = %q, want default %q", tasks[2].Priority, PriorityMedium)
	}
}

func TestDecodeTasks_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bad priority", `[{"id": "t1", "title": "x", "priority": "urgent"}]`},
		{"bad due date", `[{"id": "t1", "title": "x", "due_date": "31/12/2025"}]`},
		{"not an array", `{"id": "t1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTasks(strings.NewReader(tt.input)); err == nil {
				t.Errorf("DecodeTasks(%s) expected error", tt.input)
			}
		})
	}
}

func TestCalendarEventJSONRoundTripKeepsCanonicalWallClock(t *testing.T) {
	e := CalendarEvent{
		ID:      "e1",
		Summary: "Standup",
		Start:   time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		End:     time.Date(2025, 3, 10, 9, 15, 0, 0, time.UTC),
	}

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	if !strings.Contains(string(data), `"start":"2025-03-10T09:00:00"`) {
		t.Errorf("expected naive start in %s", data)
	}
	if strings.Contains(string(data), "description") {
		t.Errorf("empty description should be omitted: %s", data)
	}
}

func TestCalendarEvent_Validate(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		event   CalendarEvent
		wantErr bool
	}{
		{"valid", CalendarEvent{ID: "e", Summary: "s", Start: start, End: start.Add(time.Hour)}, false},
		{"zero length", CalendarEvent{ID: "e", Summary: "s", Start: start, End: start}, false},
		{"missing id", CalendarEvent{Summary: "s", Start: start, End: start}, true},
		{"missing summary", CalendarEvent{ID: "e", Start: start, End: start}, true},
		{"end before start", CalendarEvent{ID: "e", Summary: "s", Start: start, End: start.Add(-time.Minute)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.event.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCalendarEvent_DurationNeverNegative(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	e := CalendarEvent{Start: start, End: start.Add(-time.Hour)}
	if e.Duration() != 0 {
		t.Errorf("Duration() = %v, want 0", e.Duration())
	}
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"past due", Task{DueDate: &past}, true},
		{"future due", Task{DueDate: &future}, false},
		{"completed", Task{DueDate: &past, Completed: true}, false},
		{"no due date", Task{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.IsOverdue(now); got != tt.want {
				t.Errorf("IsOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntervention_Ratio(t *testing.T) {
	if got := (Intervention{ImpactScore: 40, EffortScore: 20}).Ratio(); got != 2 {
		t.Errorf("Ratio() = %v, want 2", got)
	}
	if got := (Intervention{ImpactScore: 10, EffortScore: 0}).Ratio(); !math.IsInf(got, 1) {
		t.Errorf("Ratio() with zero effort = %v, want +Inf", got)
	}
}
