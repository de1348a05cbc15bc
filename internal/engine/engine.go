// Package engine runs the full stress analysis over one snapshot of events
// and tasks.
package engine

import (
	"time"

	"github.com/julianstephens/burnoutguard/internal/analysis"
	"github.com/julianstephens/burnoutguard/internal/classifier"
	"github.com/julianstephens/burnoutguard/internal/constants"
	"github.com/julianstephens/burnoutguard/internal/insights"
	"github.com/julianstephens/burnoutguard/internal/models"
	"github.com/julianstephens/burnoutguard/internal/optimizer"
	"github.com/julianstephens/burnoutguard/internal/scoring"
	"github.com/julianstephens/burnoutguard/internal/utils"
)

// Engine is immutable once built and safe for concurrent use.
type Engine struct {
	classifier       classifier.Classifier
	observer         Observer
	clock            func() time.Time
	limit            int
	optionalKeywords []string
	interventions    *optimizer.InterventionEngine
}

// Option configures an Engine.
type Option func(*Engine)

func WithClassifier(c classifier.Classifier) Option {
	return func(e *Engine) {
		if c != nil {
			e.classifier = c
		}
	}
}

func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// WithClock sets the source of "now" used by Analyze.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithInterventionLimit caps the number of interventions in a report.
func WithInterventionLimit(n int) Option {
	return func(e *Engine) {
		e.limit = n
	}
}

// WithOptionalKeywords replaces the keywords that mark events safe to move.
func WithOptionalKeywords(keywords ...string) Option {
	return func(e *Engine) {
		e.optionalKeywords = keywords
	}
}

// New creates a new Engine. Without options it uses the default classifier,
// the wall clock, and the standard intervention limit.
func New(opts ...Option) *Engine {
	e := &Engine{
		classifier: classifier.Default(),
		observer:   NopObserver{},
		clock:      time.Now,
		limit:      constants.MaxInterventions,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.interventions = optimizer.NewInterventionEngine(
		optimizer.WithLimit(e.limit),
		optimizer.WithOptionalKeywords(e.optionalKeywords...),
	)
	return e
}

// Now reads the engine clock in canonical form.
func (e *Engine) Now() time.Time {
	return utils.Canonicalize(e.clock())
}

// Analyze scores the snapshot against the engine clock.
func (e *Engine) Analyze(events []models.CalendarEvent, tasks []models.Task) models.Report {
	return e.AnalyzeAt(e.clock(), events, tasks)
}

// AnalyzeAt scores the snapshot as of now. Empty inputs are valid and yield
// a low-risk report.
func (e *Engine) AnalyzeAt(now time.Time, events []models.CalendarEvent, tasks []models.Task) models.Report {
	now = utils.Canonicalize(now)
	events = canonicalEvents(events)
	tasks = canonicalTasks(tasks)
	w := utils.NewWindow(now)
	e.observer.Trace("analysis window", "start", w.Start, "end", w.End, "events", len(events), "tasks", len(tasks))

	windowed := analysis.InWindow(events, w)
	counts := classifier.Tally(e.classifier, windowed)
	e.observer.Trace("classified events",
		"windowed", len(windowed),
		"high_stress", counts.HighStress,
		"recreational", counts.Recreational,
		"neutral", counts.Neutral,
	)

	density := analysis.CalendarDensity(events, w)
	densityToday := analysis.DayDensity(events, now)
	avgBreak := analysis.AverageBreak(events, w)
	sleepHours := analysis.SleepOpportunity(events, w)
	e.observer.Trace("calendar measured",
		"density", density,
		"density_today", densityToday,
		"average_break", avgBreak,
		"sleep_hours", sleepHours,
	)

	pressure := analysis.MeasureTaskPressure(tasks, now)
	e.observer.Trace("task pressure",
		"overdue", pressure.Overdue,
		"immediate", pressure.Immediate,
		"high_priority", pressure.HighPriority,
	)

	score := scoring.Calculate(scoring.Inputs{
		EventsCount:       len(windowed),
		HighStressCount:   counts.HighStress,
		RecreationalCount: counts.Recreational,
		CalendarDensity:   density,
		SleepHours:        sleepHours,
		AverageBreak:      avgBreak,
		ImmediateTasks:    pressure.Immediate,
	}, now)
	e.observer.Trace("stress score",
		"total", score.TotalScore,
		"calendar", score.CalendarFactor,
		"task", score.TaskFactor,
		"sleep", score.SleepFactor,
		"break", score.BreakFactor,
		"risk", score.RiskLevel,
	)

	factors := models.StressFactors{
		EventsNext7Days:      len(windowed),
		ImmediateActionTasks: pressure.Immediate,
		OverdueTasks:         pressure.Overdue,
		HighPriorityTasks:    pressure.HighPriority,
		CalendarDensity:      density,
		CalendarDensityToday: densityToday,
		SleepHoursAvailable:  sleepHours,
		AverageBreakLength:   avgBreak,
		SleepQualityMessage:  scoring.SleepQualityMessage(sleepHours),
	}

	interventions := e.interventions.Generate(score, factors, tasks, events, now)
	e.observer.Trace("interventions ranked", "count", len(interventions))

	return models.Report{
		StressScore:   score,
		Factors:       factors,
		Predictions:   insights.FallbackPredictions(factors),
		Interventions: interventions,
	}
}

// canonicalEvents copies events with Start and End in canonical form so every
// stage compares wall clocks. The caller's slice is left untouched.
func canonicalEvents(events []models.CalendarEvent) []models.CalendarEvent {
	if events == nil {
		return nil
	}
	out := make([]models.CalendarEvent, len(events))
	for i, e := range events {
		e.Start = utils.Canonicalize(e.Start)
		e.End = utils.Canonicalize(e.End)
		out[i] = e
	}
	return out
}

func canonicalTasks(tasks []models.Task) []models.Task {
	if tasks == nil {
		return nil
	}
	out := make([]models.Task, len(tasks))
	for i, t := range tasks {
		if t.DueDate != nil {
			due := utils.Canonicalize(*t.DueDate)
			t.DueDate = &due
		}
		out[i] = t
	}
	return out
}
