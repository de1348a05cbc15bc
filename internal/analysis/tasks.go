package analysis

import (
	"time"

	"github.com/julianstephens/burnoutguard/internal/models"
	"github.com/julianstephens/burnoutguard/internal/utils"
)

// TaskPressure counts incomplete tasks along three independent axes.
// A single task may be counted by more than one field.
type TaskPressure struct {
	Overdue      int
	Immediate    int
	HighPriority int
}

// MeasureTaskPressure counts overdue tasks (due before now), immediate tasks
// (due no later than the end of tomorrow) and high-priority tasks.
func MeasureTaskPressure(tasks []models.Task, now time.Time) TaskPressure {
	now = utils.Canonicalize(now)
	horizon := utils.EndOfTomorrow(now)

	var p TaskPressure
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		if t.Priority == models.PriorityHigh {
			p.HighPriority++
		}
		if t.DueDate == nil {
			continue
		}
		if t.DueDate.Before(now) {
			p.Overdue++
		}
		if !t.DueDate.After(horizon) {
			p.Immediate++
		}
	}
	return p
}
