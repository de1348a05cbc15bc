package metrics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/julianstephens/burnoutguard/internal/models"
)

func sampleReport() models.Report {
	return models.Report{
		StressScore: models.StressScore{
			TotalScore:     64.5,
			CalendarFactor: 70,
			TaskFactor:     58.38,
			SleepFactor:    25,
			BreakFactor:    60,
			RiskLevel:      models.RiskHigh,
			Timestamp:      time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
		},
		Factors: models.StressFactors{
			EventsNext7Days:      14,
			ImmediateActionTasks: 3,
			OverdueTasks:         1,
			HighPriorityTasks:    2,
			CalendarDensity:      41.2,
			CalendarDensityToday: 75,
			SleepHoursAvailable:  6,
			AverageBreakLength:   22.5,
		},
		Interventions: []models.Intervention{{ID: "a"}, {ID: "b"}},
	}
}

func parse(t *testing.T, text string) map[string]*dto.MetricFamily {
	t.Helper()
	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(strings.NewReader(text))
	if err != nil {
		t.Fatalf("failed to parse exposition: %v\n%s", err, text)
	}
	return families
}

func value(t *testing.T, mf *dto.MetricFamily, labelName, labelValue string) float64 {
	t.Helper()
	for _, m := range mf.GetMetric() {
		if labelName == "" && len(m.GetLabel()) == 0 {
			return m.GetGauge().GetValue()
		}
		for _, l := range m.GetLabel() {
			if l.GetName() == labelName && l.GetValue() == labelValue {
				return m.GetGauge().GetValue()
			}
		}
	}
	t.Fatalf("%s has no sample with %s=%q", mf.GetName(), labelName, labelValue)
	return 0
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write() unexpected error: %v", err)
	}
	families := parse(t, buf.String())

	tests := []struct {
		family     string
		labelName  string
		labelValue string
		want       float64
	}{
		{"burnoutguard_stress_score", "factor", "total", 64.5},
		{"burnoutguard_stress_score", "factor", "task", 58.38},
		{"burnoutguard_risk_level", "level", "high", 1},
		{"burnoutguard_risk_level", "level", "critical", 0},
		{"burnoutguard_events", "", "", 14},
		{"burnoutguard_tasks", "kind", "overdue", 1},
		{"burnoutguard_calendar_density_percent", "scope", "today", 75},
		{"burnoutguard_sleep_hours_available", "", "", 6},
		{"burnoutguard_average_break_minutes", "", "", 22.5},
		{"burnoutguard_interventions", "", "", 2},
	}

	for _, tt := range tests {
		t.Run(tt.family+"/"+tt.labelValue, func(t *testing.T) {
			mf, ok := families[tt.family]
			if !ok {
				t.Fatalf("family %s missing", tt.family)
			}
			if mf.GetType() != dto.MetricType_GAUGE {
				t.Errorf("%s type = %v, want gauge", tt.family, mf.GetType())
			}
			if got := value(t, mf, tt.labelName, tt.labelValue); got != tt.want {
				t.Errorf("%s{%s=%q} = %v, want %v", tt.family, tt.labelName, tt.labelValue, got, tt.want)
			}
		})
	}
}

func TestFamilies_Timestamps(t *testing.T) {
	r := sampleReport()
	for _, mf := range Families(r) {
		for _, m := range mf.GetMetric() {
			if m.GetTimestampMs() != r.StressScore.Timestamp.UnixMilli() {
				t.Errorf("%s sample timestamp = %d", mf.GetName(), m.GetTimestampMs())
			}
		}
	}

	r.StressScore.Timestamp = time.Time{}
	for _, mf := range Families(r) {
		for _, m := range mf.GetMetric() {
			if m.TimestampMs != nil {
				t.Errorf("%s should have no timestamp for a zero time", mf.GetName())
			}
		}
	}
}
