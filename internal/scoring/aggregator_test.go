package scoring

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/burnoutguard/internal/models"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name string
		in   Inputs
		want models.StressScore
	}{
		{
			name: "empty schedule",
			in:   Inputs{SleepHours: 10, AverageBreak: 960},
			want: models.StressScore{RiskLevel: models.RiskLow},
		},
		{
			name: "moderate week",
			in: Inputs{
				EventsCount:       10,
				HighStressCount:   2,
				RecreationalCount: 1,
				CalendarDensity:   50,
				SleepHours:        6,
				AverageBreak:      45,
				ImmediateTasks:    3,
			},
			want: models.StressScore{
				TotalScore:     36.58,
				CalendarFactor: 38,
				TaskFactor:     58.38,
				SleepFactor:    25,
				BreakFactor:    30,
				RiskLevel:      models.RiskLow,
			},
		},
		{
			name: "saturated week",
			in: Inputs{
				EventsCount:     50,
				HighStressCount: 20,
				CalendarDensity: 100,
				SleepHours:      0,
				AverageBreak:    0,
				ImmediateTasks:  20,
			},
			want: models.StressScore{
				TotalScore:     98,
				CalendarFactor: 100,
				TaskFactor:     100,
				SleepFactor:    100,
				BreakFactor:    90,
				RiskLevel:      models.RiskCritical,
			},
		},
		{
			name: "recreation cannot push calendar below zero",
			in: Inputs{
				EventsCount:       2,
				RecreationalCount: 10,
				SleepHours:        8,
				AverageBreak:      90,
			},
			want: models.StressScore{RiskLevel: models.RiskLow},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.in, testNow)
			tt.want.Timestamp = testNow
			if got != tt.want {
				t.Errorf("Calculate() = %+v\nwant %+v", got, tt.want)
			}
		})
	}
}

func TestCalculate_AlwaysBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		in := Inputs{
			EventsCount:       rng.Intn(200),
			HighStressCount:   rng.Intn(100),
			RecreationalCount: rng.Intn(100),
			CalendarDensity:   rng.Float64() * 100,
			SleepHours:        rng.Float64() * 12,
			AverageBreak:      rng.Float64() * 960,
			ImmediateTasks:    rng.Intn(100),
		}
		s := Calculate(in, testNow)
		for name, v := range map[string]float64{
			"total":    s.TotalScore,
			"calendar": s.CalendarFactor,
			"task":     s.TaskFactor,
			"sleep":    s.SleepFactor,
			"break":    s.BreakFactor,
		} {
			if v < 0 || v > 100 {
				t.Fatalf("%s = %v out of range for %+v", name, v, in)
			}
		}
		if s.RiskLevel != RiskLevelFor(s.TotalScore) {
			t.Fatalf("risk level %q inconsistent with total %v", s.RiskLevel, s.TotalScore)
		}
	}
}

func TestTaskFactor(t *testing.T) {
	tests := []struct {
		tasks int
		want  float64
	}{
		{0, 0},
		{1, 32.96},
		{3, 58.38},
		{4, 65.92},
		{5, 71.94},
		{10, 91.34},
		{14, 100},
		{100, 100},
	}

	for _, tt := range tests {
		if got := round2(TaskFactor(tt.tasks)); got != tt.want {
			t.Errorf("TaskFactor(%d) = %v, want %v", tt.tasks, got, tt.want)
		}
	}
}

func TestSleepFactor(t *testing.T) {
	tests := []struct {
		hours float64
		want  float64
	}{
		{0, 100},
		{4, 50},
		{6, 25},
		{8, 0},
		{12, 0},
	}

	for _, tt := range tests {
		if got := SleepFactor(tt.hours); got != tt.want {
			t.Errorf("SleepFactor(%v) = %v, want %v", tt.hours, got, tt.want)
		}
	}
}

func TestBreakFactor(t *testing.T) {
	tests := []struct {
		minutes float64
		want    float64
	}{
		{960, 0},
		{60, 0},
		{59.99, 30},
		{30, 30},
		{29.99, 60},
		{15, 60},
		{14.99, 90},
		{0, 90},
	}

	for _, tt := range tests {
		if got := BreakFactor(tt.minutes); got != tt.want {
			t.Errorf("BreakFactor(%v) = %v, want %v", tt.minutes, got, tt.want)
		}
	}
}

func TestRiskLevelFor(t *testing.T) {
	tests := []struct {
		total float64
		want  models.RiskLevel
	}{
		{0, models.RiskLow},
		{39.99, models.RiskLow},
		{40, models.RiskMedium},
		{59.99, models.RiskMedium},
		{60, models.RiskHigh},
		{79.99, models.RiskHigh},
		{80, models.RiskCritical},
		{100, models.RiskCritical},
	}

	for _, tt := range tests {
		if got := RiskLevelFor(tt.total); got != tt.want {
			t.Errorf("RiskLevelFor(%v) = %q, want %q", tt.total, got, tt.want)
		}
	}
}

func TestRiskLevelFor_Monotonic(t *testing.T) {
	rank := map[models.RiskLevel]int{
		models.RiskLow:      0,
		models.RiskMedium:   1,
		models.RiskHigh:     2,
		models.RiskCritical: 3,
	}
	prev := rank[RiskLevelFor(0)]
	for total := 0.0; total <= 100; total += 0.01 {
		cur := rank[RiskLevelFor(total)]
		if cur < prev {
			t.Fatalf("risk level decreased at total %v", total)
		}
		prev = cur
	}
}

func TestSleepQualityMessage(t *testing.T) {
	tests := []struct {
		hours  float64
		prefix string
	}{
		{9, "Excellent"},
		{8, "Excellent"},
		{7.5, "Good"},
		{6, "Insufficient"},
		{4, "Severely deprived"},
		{3.99, "Critical"},
		{0, "Critical"},
	}

	for _, tt := range tests {
		if got := SleepQualityMessage(tt.hours); !strings.HasPrefix(got, tt.prefix) {
			t.Errorf("SleepQualityMessage(%v) = %q, want prefix %q", tt.hours, got, tt.prefix)
		}
	}
}
