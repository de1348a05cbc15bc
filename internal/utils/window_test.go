package utils

import (
	"testing"
	"time"
)

func TestNewWindow(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	w := NewWindow(now)

	if want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC); !w.Start.Equal(want) {
		t.Errorf("Start = %v, want %v", w.Start, want)
	}
	if want := time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC); !w.End.Equal(want) {
		t.Errorf("End = %v, want %v", w.End, want)
	}
	if w.Days() != 7 {
		t.Errorf("Days() = %d, want 7", w.Days())
	}
}

func TestWindowContains(t *testing.T) {
	w := NewWindow(time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC))

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"start is inclusive", w.Start, true},
		{"earlier today counts", time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC), true},
		{"last instant", w.End.Add(-time.Nanosecond), true},
		{"end is exclusive", w.End, false},
		{"yesterday", time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Contains(tt.t); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestWindowNight(t *testing.T) {
	w := NewWindow(time.Date(2025, 3, 31, 9, 0, 0, 0, time.UTC))

	start, end := w.Night(0)
	if want := time.Date(2025, 3, 31, 22, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Errorf("Night(0) start = %v, want %v", start, want)
	}
	if want := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC); !end.Equal(want) {
		t.Errorf("Night(0) end = %v, want %v", end, want)
	}

	start, _ = w.Night(6)
	if want := time.Date(2025, 4, 6, 22, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Errorf("Night(6) start = %v, want %v", start, want)
	}
}
