// Package insights produces narrative predictions about upcoming stress
// without calling out to any external service.
package insights

import "github.com/julianstephens/burnoutguard/internal/models"

const (
	overduePredictionThreshold = 3
	densityPredictionThreshold = 70.0
	sleepPredictionThreshold   = 6.0
	eventsPredictionThreshold  = 20
)

const (
	PredictionOverdue    = "High number of overdue tasks may indicate difficulty with time management or task prioritization"
	PredictionDensity    = "Calendar density above 70% suggests limited time for breaks and recovery"
	PredictionSleep      = "Sleep deficit detected - less than 6 hours available may impact cognitive performance"
	PredictionEvents     = "Heavy event load in upcoming week may lead to meeting fatigue"
	PredictionManageable = "Current workload appears manageable with proper time management"
)

// FallbackPredictions derives predictions from the stress factors alone.
// It always returns at least one sentence.
func FallbackPredictions(factors models.StressFactors) []string {
	var predictions []string

	if factors.OverdueTasks > overduePredictionThreshold {
		predictions = append(predictions, PredictionOverdue)
	}
	if factors.CalendarDensity > densityPredictionThreshold {
		predictions = append(predictions, PredictionDensity)
	}
	if factors.SleepHoursAvailable < sleepPredictionThreshold {
		predictions = append(predictions, PredictionSleep)
	}
	if factors.EventsNext7Days > eventsPredictionThreshold {
		predictions = append(predictions, PredictionEvents)
	}

	if len(predictions) == 0 {
		predictions = append(predictions, PredictionManageable)
	}
	return predictions
}
