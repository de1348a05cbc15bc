package models

import "time"

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

type StressLabel string

const (
	LabelHighStress   StressLabel = "high_stress"
	LabelRecreational StressLabel = "recreational"
	LabelNeutral      StressLabel = "neutral"
)

// StressScore is the weighted total and its sub-factors, each within [0, 100].
type StressScore struct {
	TotalScore     float64   `json:"total_score"`
	CalendarFactor float64   `json:"calendar_factor"`
	TaskFactor     float64   `json:"task_factor"`
	SleepFactor    float64   `json:"sleep_factor"`
	BreakFactor    float64   `json:"break_factor"`
	RiskLevel      RiskLevel `json:"risk_level"`
	Timestamp      time.Time `json:"timestamp"`
}

// StressFactors are the descriptive measurements behind a StressScore.
type StressFactors struct {
	EventsNext7Days      int     `json:"events_next_7_days"`
	ImmediateActionTasks int     `json:"immediate_action_tasks"`
	OverdueTasks         int     `json:"overdue_tasks"`
	HighPriorityTasks    int     `json:"high_priority_tasks"`
	CalendarDensity      float64 `json:"calendar_density"`
	CalendarDensityToday float64 `json:"calendar_density_today"`
	SleepHoursAvailable  float64 `json:"sleep_hours_available"`
	AverageBreakLength   float64 `json:"average_break_length"`
	SleepQualityMessage  string  `json:"sleep_quality_message"`
}
