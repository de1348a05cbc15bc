package analysis

import (
	"testing"
	"time"

	"github.com/julianstephens/burnoutguard/internal/models"
	"github.com/julianstephens/burnoutguard/internal/utils"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func at(day, hour, minute int) time.Time {
	return time.Date(2025, 3, 10+day, hour, minute, 0, 0, time.UTC)
}

func event(id string, start, end time.Time) models.CalendarEvent {
	return models.CalendarEvent{ID: id, Summary: id, Start: start, End: end}
}

func TestCalendarDensity(t *testing.T) {
	w := utils.NewWindow(testNow)

	tests := []struct {
		name   string
		events []models.CalendarEvent
		want   float64
	}{
		{
			name: "no events",
			want: 0.0,
		},
		{
			name: "three same-day events totalling 240 minutes",
			events: []models.CalendarEvent{
				event("a", at(0, 9, 0), at(0, 10, 0)),
				event("b", at(0, 11, 0), at(0, 12, 30)),
				event("c", at(0, 14, 0), at(0, 15, 30)),
			},
			want: 3.57,
		},
		{
			name:   "one full-day event",
			events: []models.CalendarEvent{event("a", at(0, 0, 0), at(1, 0, 0))},
			want:   21.43,
		},
		{
			name: "events outside the window are ignored",
			events: []models.CalendarEvent{
				event("past", at(-1, 9, 0), at(-1, 17, 0)),
				event("future", at(7, 9, 0), at(7, 17, 0)),
			},
			want: 0.0,
		},
		{
			name: "capped at 100",
			events: []models.CalendarEvent{
				event("a", at(0, 0, 0), at(3, 0, 0)),
				event("b", at(3, 0, 0), at(6, 0, 0)),
				event("c", at(6, 0, 0), at(7, 0, 0)),
				event("d", at(6, 0, 0), at(7, 0, 0)),
			},
			want: 100.0,
		},
		{
			name:   "inverted event contributes nothing",
			events: []models.CalendarEvent{event("a", at(0, 10, 0), at(0, 9, 0))},
			want:   0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalendarDensity(tt.events, w); got != tt.want {
				t.Errorf("CalendarDensity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDayDensity(t *testing.T) {
	tests := []struct {
		name   string
		events []models.CalendarEvent
		want   float64
	}{
		{
			name: "three same-day events totalling 240 minutes",
			events: []models.CalendarEvent{
				event("a", at(0, 9, 0), at(0, 10, 0)),
				event("b", at(0, 11, 0), at(0, 12, 30)),
				event("c", at(0, 14, 0), at(0, 15, 30)),
			},
			want: 25.0,
		},
		{
			name:   "full-day event exceeds waking hours and is capped",
			events: []models.CalendarEvent{event("a", at(0, 0, 0), at(1, 0, 0))},
			want:   100.0,
		},
		{
			name:   "eight hour workday",
			events: []models.CalendarEvent{event("a", at(0, 9, 0), at(0, 17, 0))},
			want:   50.0,
		},
		{
			name:   "tomorrow's events do not count",
			events: []models.CalendarEvent{event("a", at(1, 9, 0), at(1, 17, 0))},
			want:   0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayDensity(tt.events, testNow); got != tt.want {
				t.Errorf("DayDensity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAverageBreak(t *testing.T) {
	w := utils.NewWindow(testNow)

	tests := []struct {
		name   string
		events []models.CalendarEvent
		want   float64
	}{
		{
			name: "no events means maximal break",
			want: 960,
		},
		{
			name:   "single event means maximal break",
			events: []models.CalendarEvent{event("a", at(0, 9, 0), at(0, 10, 0))},
			want:   960,
		},
		{
			name: "averages positive gaps",
			events: []models.CalendarEvent{
				event("a", at(0, 9, 0), at(0, 10, 0)),
				event("b", at(0, 10, 30), at(0, 11, 0)),
				event("c", at(0, 13, 0), at(0, 14, 0)),
			},
			want: 75,
		},
		{
			name: "input order does not matter",
			events: []models.CalendarEvent{
				event("c", at(0, 13, 0), at(0, 14, 0)),
				event("a", at(0, 9, 0), at(0, 10, 0)),
				event("b", at(0, 10, 30), at(0, 11, 0)),
			},
			want: 75,
		},
		{
			name: "overlapping events give no break",
			events: []models.CalendarEvent{
				event("a", at(0, 9, 0), at(0, 11, 0)),
				event("b", at(0, 10, 0), at(0, 12, 0)),
			},
			want: 0,
		},
		{
			name: "back-to-back events give no break",
			events: []models.CalendarEvent{
				event("a", at(0, 9, 0), at(0, 10, 0)),
				event("b", at(0, 10, 0), at(0, 11, 0)),
			},
			want: 0,
		},
		{
			name: "fractional average",
			events: []models.CalendarEvent{
				event("a", at(0, 9, 0), at(0, 10, 0)),
				event("b", at(0, 10, 20), at(0, 11, 0)),
				event("c", at(0, 11, 25), at(0, 12, 0)),
			},
			want: 22.5,
		},
		{
			name: "only windowed events are considered",
			events: []models.CalendarEvent{
				event("past", at(-1, 9, 0), at(-1, 10, 0)),
				event("a", at(0, 9, 0), at(0, 10, 0)),
			},
			want: 960,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AverageBreak(tt.events, w); got != tt.want {
				t.Errorf("AverageBreak() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSleepOpportunity(t *testing.T) {
	w := utils.NewWindow(testNow)

	tests := []struct {
		name   string
		events []models.CalendarEvent
		want   float64
	}{
		{
			name: "no events gives the full ten hour window",
			want: 10.0,
		},
		{
			name:   "late event splits one night",
			events: []models.CalendarEvent{event("party", at(0, 23, 0), at(1, 1, 0))},
			want:   9.57,
		},
		{
			name:   "event straddling the last night",
			events: []models.CalendarEvent{event("flight", at(6, 21, 0), at(7, 3, 0))},
			want:   9.29,
		},
		{
			name:   "event covering every night",
			events: []models.CalendarEvent{event("shift", at(0, 20, 0), at(7, 10, 0))},
			want:   0.0,
		},
		{
			name:   "daytime events leave nights untouched",
			events: []models.CalendarEvent{event("class", at(2, 9, 0), at(2, 17, 0))},
			want:   10.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SleepOpportunity(tt.events, w); got != tt.want {
				t.Errorf("SleepOpportunity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNightOpportunity(t *testing.T) {
	start := at(0, 22, 0)
	end := at(1, 8, 0)

	t.Run("edges count as gaps", func(t *testing.T) {
		events := []models.CalendarEvent{event("early", at(0, 22, 0), at(0, 23, 0))}
		if got := NightOpportunity(events, start, end); got != 9 {
			t.Errorf("NightOpportunity() = %v, want 9", got)
		}
	})

	t.Run("largest of several gaps", func(t *testing.T) {
		events := []models.CalendarEvent{
			event("a", at(0, 23, 0), at(0, 23, 30)),
			event("b", at(1, 2, 0), at(1, 3, 0)),
		}
		// gaps: 1h, 2.5h, 5h
		if got := NightOpportunity(events, start, end); got != 5 {
			t.Errorf("NightOpportunity() = %v, want 5", got)
		}
	})

	t.Run("capped at twelve hours", func(t *testing.T) {
		if got := NightOpportunity(nil, at(0, 18, 0), at(1, 8, 0)); got != 12 {
			t.Errorf("NightOpportunity() = %v, want 12", got)
		}
	})
}

func TestMeasureTaskPressure(t *testing.T) {
	due := func(tm time.Time) *time.Time { return &tm }

	tasks := []models.Task{
		{ID: "1", Title: "overdue lab", DueDate: due(at(-1, 9, 0)), Priority: models.PriorityHigh},
		{ID: "2", Title: "due tonight", DueDate: due(at(0, 18, 0)), Priority: models.PriorityMedium},
		{ID: "3", Title: "last instant of tomorrow", DueDate: due(time.Date(2025, 3, 11, 23, 59, 59, 999999000, time.UTC))},
		{ID: "4", Title: "day after tomorrow", DueDate: due(at(2, 0, 0)), Priority: models.PriorityLow},
		{ID: "5", Title: "completed overdue", DueDate: due(at(-2, 9, 0)), Priority: models.PriorityHigh, Completed: true},
		{ID: "6", Title: "no due date", Priority: models.PriorityHigh},
	}

	got := MeasureTaskPressure(tasks, testNow)
	want := TaskPressure{Overdue: 1, Immediate: 3, HighPriority: 2}
	if got != want {
		t.Errorf("MeasureTaskPressure() = %+v, want %+v", got, want)
	}
}

func TestMeasureTaskPressure_Empty(t *testing.T) {
	if got := MeasureTaskPressure(nil, testNow); got != (TaskPressure{}) {
		t.Errorf("MeasureTaskPressure(nil) = %+v, want zero", got)
	}
}
