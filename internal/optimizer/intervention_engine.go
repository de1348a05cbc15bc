package optimizer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/burnoutguard/internal/constants"
	"github.com/julianstephens/burnoutguard/internal/models"
	"github.com/julianstephens/burnoutguard/internal/utils"
)

// Rule keys double as the name component of intervention IDs.
const (
	RuleDelegateOverdue   = "delegate_overdue"
	RuleBreakDownPriority = "break_down_priority"
	RuleReduceDensity     = "reduce_density"
	RuleFocusBlocks       = "focus_blocks"
	RuleProtectSleep      = "protect_sleep"
	RuleRecoveryTime      = "recovery_time"
	RuleRescheduleEvent   = "reschedule_event"
	RuleDeepWork          = "deep_work"
)

// Trigger thresholds.
const (
	taskFactorTrigger       = 60.0
	highPriorityTrigger     = 3
	calendarFactorTrigger   = 60.0
	densityTrigger          = 70.0
	sleepFactorTrigger      = 60.0
	recoveryTotalTrigger    = 70.0
	rescheduleEventsTrigger = 10
	rescheduleTotalTrigger  = 60.0
	deepWorkEventsTrigger   = 8
	deepWorkTotalTrigger    = 50.0

	taskTitleLimit  = 30
	eventTitleLimit = 25
)

// DefaultOptionalKeywords mark events that can usually move without harm.
var DefaultOptionalKeywords = []string{
	"coffee", "chat", "catch up", "social", "optional", "lunch", "networking",
}

var idNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte(constants.AppName+"/interventions"))

// InterventionEngine turns a scored snapshot into ranked recommendations.
type InterventionEngine struct {
	limit            int
	optionalKeywords []string
}

// Option configures an InterventionEngine.
type Option func(*InterventionEngine)

// WithLimit caps the number of interventions returned. Values above the
// default cap or below one are ignored.
func WithLimit(n int) Option {
	return func(ie *InterventionEngine) {
		if n > 0 && n <= constants.MaxInterventions {
			ie.limit = n
		}
	}
}

// WithOptionalKeywords replaces the keywords used to find movable events.
func WithOptionalKeywords(keywords ...string) Option {
	return func(ie *InterventionEngine) {
		if len(keywords) == 0 {
			return
		}
		ie.optionalKeywords = make([]string, len(keywords))
		for i, k := range keywords {
			ie.optionalKeywords[i] = strings.ToLower(k)
		}
	}
}

// NewInterventionEngine creates a new InterventionEngine
func NewInterventionEngine(opts ...Option) *InterventionEngine {
	ie := &InterventionEngine{
		limit:            constants.MaxInterventions,
		optionalKeywords: DefaultOptionalKeywords,
	}
	for _, opt := range opts {
		opt(ie)
	}
	return ie
}

// Generate evaluates every rule against the snapshot and returns the best
// candidates ranked by impact per unit of effort.
func (ie *InterventionEngine) Generate(
	score models.StressScore,
	factors models.StressFactors,
	tasks []models.Task,
	events []models.CalendarEvent,
	now time.Time,
) []models.Intervention {
	now = utils.Canonicalize(now)
	var candidates []models.Intervention

	if score.TaskFactor > taskFactorTrigger {
		if factors.OverdueTasks > 0 {
			if task, ok := earliestOverdue(tasks, now); ok {
				candidates = append(candidates, models.Intervention{
					ID:       interventionID(RuleDelegateOverdue, task.ID),
					Type:     models.InterventionDelegate,
					Priority: models.InterventionPriorityCritical,
					Title:    "Complete overdue: " + truncate(task.Title, taskTitleLimit),
					Description: fmt.Sprintf(
						"'%s' is overdue. Tackle this first thing today or delegate if possible. You have %d total overdue task(s) creating mental burden.",
						task.Title, factors.OverdueTasks,
					),
					ImpactScore: 40,
					EffortScore: 30,
				})
			}
		}

		if factors.HighPriorityTasks > highPriorityTrigger {
			if task, ok := firstHighPriority(tasks); ok {
				candidates = append(candidates, models.Intervention{
					ID:       interventionID(RuleBreakDownPriority, task.ID),
					Type:     models.InterventionBreakDown,
					Priority: models.InterventionPriorityHigh,
					Title:    "Break down: " + truncate(task.Title, taskTitleLimit),
					Description: fmt.Sprintf(
						"'%s' is complex. Split it into 3-4 smaller subtasks with mini-deadlines. You have %d high-priority items competing for attention.",
						task.Title, factors.HighPriorityTasks,
					),
					ImpactScore: 35,
					EffortScore: 20,
				})
			}
		}
	}

	if score.CalendarFactor > calendarFactorTrigger {
		if factors.CalendarDensity > densityTrigger {
			candidates = append(candidates, models.Intervention{
				ID:          interventionID(RuleReduceDensity, ""),
				Type:        models.InterventionReschedule,
				Priority:    models.InterventionPriorityHigh,
				Title:       "Reduce Calendar Density",
				Description: fmt.Sprintf("Your calendar is %v%% full. Consider rescheduling non-urgent meetings.", factors.CalendarDensity),
				ImpactScore: 35,
				EffortScore: 25,
			})
		}

		candidates = append(candidates, models.Intervention{
			ID:          interventionID(RuleFocusBlocks, ""),
			Type:        models.InterventionMicroBreak,
			Priority:    models.InterventionPriorityMedium,
			Title:       "Schedule Focus Blocks",
			Description: "Block 2-hour windows in your calendar for deep work on high-priority tasks.",
			ImpactScore: 20,
			EffortScore: 10,
		})
	}

	if score.SleepFactor > sleepFactorTrigger {
		candidates = append(candidates, models.Intervention{
			ID:          interventionID(RuleProtectSleep, ""),
			Type:        models.InterventionReschedule,
			Priority:    models.InterventionPriorityCritical,
			Title:       "Protect Sleep Time",
			Description: fmt.Sprintf("You only have %v hours for sleep. Move late evening commitments to daytime.", factors.SleepHoursAvailable),
			ImpactScore: 40,
			EffortScore: 20,
		})
	}

	if score.TotalScore > recoveryTotalTrigger {
		candidates = append(candidates, models.Intervention{
			ID:          interventionID(RuleRecoveryTime, ""),
			Type:        models.InterventionMicroBreak,
			Priority:    models.InterventionPriorityHigh,
			Title:       "Schedule Recovery Time",
			Description: "Block a 3-hour window this weekend for rest and recovery.",
			ImpactScore: 30,
			EffortScore: 15,
		})
	}

	upcoming := upcomingEvents(events, now)
	if len(upcoming) > rescheduleEventsTrigger && score.TotalScore > rescheduleTotalTrigger {
		if event, ok := ie.firstOptional(upcoming); ok {
			candidates = append(candidates, models.Intervention{
				ID:       interventionID(RuleRescheduleEvent, event.ID),
				Type:     models.InterventionReschedule,
				Priority: models.InterventionPriorityMedium,
				Title:    fmt.Sprintf("Reschedule '%s'", truncate(event.Summary, eventTitleLimit)),
				Description: fmt.Sprintf(
					"Move '%s' from %s at %s to next week. This gives you breathing room during a packed week with %d events.",
					event.Summary, event.Start.Format("Monday"), event.Start.Format("03:04PM"), len(upcoming),
				),
				ImpactScore: 25,
				EffortScore: 15,
			})
		}
	}

	if factors.EventsNext7Days > deepWorkEventsTrigger && score.TotalScore > deepWorkTotalTrigger {
		candidates = append(candidates, models.Intervention{
			ID:       interventionID(RuleDeepWork, ""),
			Type:     models.InterventionMicroBreak,
			Priority: models.InterventionPriorityHigh,
			Title:    "Block 2-hour deep work sessions",
			Description: fmt.Sprintf(
				"With %d events this week, your schedule is fragmented. Block two 2-hour 'Do Not Disturb' sessions for focused work on high-priority tasks.",
				factors.EventsNext7Days,
			),
			ImpactScore: 30,
			EffortScore: 20,
		})
	}

	return Rank(candidates, ie.limit)
}

// Rank orders interventions by impact/effort descending and keeps at most
// limit of them. Ties keep their generation order. A non-positive effort
// ranks ahead of any finite ratio.
func Rank(interventions []models.Intervention, limit int) []models.Intervention {
	ranked := make([]models.Intervention, len(interventions))
	copy(ranked, interventions)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Ratio() > ranked[j].Ratio()
	})
	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func interventionID(rule, subject string) string {
	return uuid.NewSHA1(idNamespace, []byte(rule+":"+subject)).String()
}

func earliestOverdue(tasks []models.Task, now time.Time) (models.Task, bool) {
	var (
		best  models.Task
		found bool
	)
	for _, t := range tasks {
		if !t.IsOverdue(now) {
			continue
		}
		if !found || t.DueDate.Before(*best.DueDate) {
			best, found = t, true
		}
	}
	return best, found
}

// firstHighPriority picks the incomplete high-priority task due soonest.
// Tasks without a due date come last.
func firstHighPriority(tasks []models.Task) (models.Task, bool) {
	var (
		best  models.Task
		found bool
	)
	for _, t := range tasks {
		if t.Completed || t.Priority != models.PriorityHigh {
			continue
		}
		switch {
		case !found:
			best, found = t, true
		case t.DueDate == nil:
		case best.DueDate == nil || t.DueDate.Before(*best.DueDate):
			best = t
		}
	}
	return best, found
}

// upcomingEvents keeps events starting within [now, now+7d].
func upcomingEvents(events []models.CalendarEvent, now time.Time) []models.CalendarEvent {
	horizon := now.AddDate(0, 0, constants.AnalysisDays)
	var out []models.CalendarEvent
	for _, e := range events {
		start := utils.Canonicalize(e.Start)
		if !start.Before(now) && !start.After(horizon) {
			out = append(out, e)
		}
	}
	return out
}

func (ie *InterventionEngine) firstOptional(events []models.CalendarEvent) (models.CalendarEvent, bool) {
	for _, e := range events {
		summary := strings.ToLower(e.Summary)
		for _, k := range ie.optionalKeywords {
			if strings.Contains(summary, k) {
				return e, true
			}
		}
	}
	return models.CalendarEvent{}, false
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
