package models

import "math"

type InterventionType string

const (
	InterventionReschedule InterventionType = "reschedule"
	InterventionDelegate   InterventionType = "delegate"
	InterventionBreakDown  InterventionType = "break_down"
	InterventionMicroBreak InterventionType = "micro_break"
)

type InterventionPriority string

const (
	InterventionPriorityLow      InterventionPriority = "low"
	InterventionPriorityMedium   InterventionPriority = "medium"
	InterventionPriorityHigh     InterventionPriority = "high"
	InterventionPriorityCritical InterventionPriority = "critical"
)

// Intervention is a concrete recommendation scored by impact and effort.
type Intervention struct {
	ID          string               `json:"id"`
	Type        InterventionType     `json:"type"`
	Priority    InterventionPriority `json:"priority"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	ImpactScore float64              `json:"impact_score"`
	EffortScore float64              `json:"effort_score"`
}

// Ratio is impact per unit of effort. A non-positive effort ranks as +Inf.
func (i Intervention) Ratio() float64 {
	if i.EffortScore <= 0 {
		return math.Inf(1)
	}
	return i.ImpactScore / i.EffortScore
}
