// Package metrics renders analysis reports in the Prometheus text
// exposition format, ready for the node_exporter textfile collector.
package metrics

import (
	"fmt"
	"io"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/julianstephens/burnoutguard/internal/models"
)

const namespace = "burnoutguard_"

var riskLevels = []models.RiskLevel{
	models.RiskLow,
	models.RiskMedium,
	models.RiskHigh,
	models.RiskCritical,
}

type label struct {
	name, value string
}

func gauge(value float64, labels ...label) *dto.Metric {
	m := &dto.Metric{Gauge: &dto.Gauge{Value: proto.Float64(value)}}
	for _, l := range labels {
		m.Label = append(m.Label, &dto.LabelPair{Name: proto.String(l.name), Value: proto.String(l.value)})
	}
	return m
}

func family(name, help string, metrics ...*dto.Metric) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name:   proto.String(namespace + name),
		Help:   proto.String(help),
		Type:   dto.MetricType_GAUGE.Enum(),
		Metric: metrics,
	}
}

// Families converts a report into gauge families. The stress timestamp is
// attached to every sample.
func Families(r models.Report) []*dto.MetricFamily {
	s, f := r.StressScore, r.Factors

	risk := make([]*dto.Metric, 0, len(riskLevels))
	for _, level := range riskLevels {
		v := 0.0
		if level == s.RiskLevel {
			v = 1
		}
		risk = append(risk, gauge(v, label{"level", string(level)}))
	}

	families := []*dto.MetricFamily{
		family("stress_score", "Weighted stress score and its factors, 0-100.",
			gauge(s.TotalScore, label{"factor", "total"}),
			gauge(s.CalendarFactor, label{"factor", "calendar"}),
			gauge(s.TaskFactor, label{"factor", "task"}),
			gauge(s.SleepFactor, label{"factor", "sleep"}),
			gauge(s.BreakFactor, label{"factor", "break"}),
		),
		family("risk_level", "1 for the current burnout risk level, 0 otherwise.", risk...),
		family("events", "Events starting in the next 7 days.",
			gauge(float64(f.EventsNext7Days)),
		),
		family("tasks", "Incomplete tasks by pressure kind.",
			gauge(float64(f.OverdueTasks), label{"kind", "overdue"}),
			gauge(float64(f.ImmediateActionTasks), label{"kind", "immediate"}),
			gauge(float64(f.HighPriorityTasks), label{"kind", "high_priority"}),
		),
		family("calendar_density_percent", "Share of waking hours occupied by events.",
			gauge(f.CalendarDensity, label{"scope", "week"}),
			gauge(f.CalendarDensityToday, label{"scope", "today"}),
		),
		family("sleep_hours_available", "Average longest free stretch in the nightly sleep window.",
			gauge(f.SleepHoursAvailable),
		),
		family("average_break_minutes", "Mean gap between consecutive events.",
			gauge(f.AverageBreakLength),
		),
		family("interventions", "Recommended interventions.",
			gauge(float64(len(r.Interventions))),
		),
	}

	if !s.Timestamp.IsZero() {
		ms := s.Timestamp.UnixMilli()
		for _, fam := range families {
			for _, m := range fam.Metric {
				m.TimestampMs = proto.Int64(ms)
			}
		}
	}
	return families
}

// Write emits the report as Prometheus text.
func Write(w io.Writer, r models.Report) error {
	for _, mf := range Families(r) {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
