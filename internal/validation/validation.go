// Package validation detects conflicts in stored events and tasks that the
// stress analysis itself tolerates but a user probably wants to know about.
package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/burnoutguard/internal/constants"
	"github.com/julianstephens/burnoutguard/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidEvent       ConflictType = "invalid_event"
	ConflictInvalidTask        ConflictType = "invalid_task"
	ConflictDuplicateEventID   ConflictType = "duplicate_event_id"
	ConflictOverlappingEvents  ConflictType = "overlapping_events"
	ConflictExceedsWakingHours ConflictType = "exceeds_waking_hours"
	ConflictOvercommitted      ConflictType = "overcommitted"
	ConflictDuplicateTaskTitle ConflictType = "duplicate_task_title"
)

// overcommitRatio of the waking day booked in events triggers a warning.
const overcommitRatio = 0.8

type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD, when the conflict belongs to one day
	IDs         []string // events or tasks involved
}

type Result struct {
	Conflicts []Conflict
}

func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (r *Result) FormatReport() string {
	if !r.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range r.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// Count returns how many conflicts have the given type.
func (r *Result) Count(t ConflictType) int {
	n := 0
	for _, c := range r.Conflicts {
		if c.Type == t {
			n++
		}
	}
	return n
}

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateEvents checks events for invalid records, duplicate ids, overlaps,
// and days booked beyond the waking-hours assumption.
func (v *Validator) ValidateEvents(events []models.CalendarEvent) Result {
	result := Result{}

	seen := make(map[string]int)
	var valid []models.CalendarEvent
	for _, e := range events {
		seen[e.ID]++
		if err := e.Validate(); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidEvent,
				Description: err.Error(),
				IDs:         []string{e.ID},
			})
			continue
		}
		valid = append(valid, e)
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if seen[id] > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateEventID,
				Description: fmt.Sprintf("Event id %q appears %d times", id, seen[id]),
				IDs:         []string{id},
			})
		}
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Start.Before(valid[j].Start)
	})

	// Sorted by start, so the inner loop stops at the first event that begins
	// after e ends.
	for i, e := range valid {
		for _, other := range valid[i+1:] {
			if !other.Start.Before(e.End) {
				break
			}
			if e.Duration() == 0 || other.Duration() == 0 {
				continue
			}
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: ConflictOverlappingEvents,
				Description: fmt.Sprintf("%s: %q (%s-%s) overlaps %q (%s-%s)",
					e.Start.Format(constants.DateFormat),
					e.Summary, e.Start.Format(constants.TimeFormat), e.End.Format(constants.TimeFormat),
					other.Summary, other.Start.Format(constants.TimeFormat), other.End.Format(constants.TimeFormat)),
				Date: e.Start.Format(constants.DateFormat),
				IDs:  []string{e.ID, other.ID},
			})
		}
	}

	result.Conflicts = append(result.Conflicts, dayLoad(valid)...)
	return result
}

func dayLoad(events []models.CalendarEvent) []Conflict {
	booked := make(map[string]time.Duration)
	var days []string
	for _, e := range events {
		day := e.Start.Format(constants.DateFormat)
		if _, ok := booked[day]; !ok {
			days = append(days, day)
		}
		booked[day] += e.Duration()
	}
	sort.Strings(days)

	waking := time.Duration(constants.WakingHoursPerDay) * time.Hour
	var conflicts []Conflict
	for _, day := range days {
		d := booked[day]
		switch {
		case d > waking:
			conflicts = append(conflicts, Conflict{
				Type: ConflictExceedsWakingHours,
				Description: fmt.Sprintf("%s: %.1fh booked exceeds %dh waking day",
					day, d.Hours(), constants.WakingHoursPerDay),
				Date: day,
			})
		case d.Hours() > waking.Hours()*overcommitRatio:
			conflicts = append(conflicts, Conflict{
				Type: ConflictOvercommitted,
				Description: fmt.Sprintf("%s: %.1fh booked in %dh waking day (>80%% capacity)",
					day, d.Hours(), constants.WakingHoursPerDay),
				Date: day,
			})
		}
	}
	return conflicts
}

// ValidateTasks checks tasks for invalid records and open tasks that share a
// title, which usually means an import ran twice.
func (v *Validator) ValidateTasks(tasks []models.Task) Result {
	result := Result{}

	titles := make(map[string][]string)
	display := make(map[string]string)
	var order []string
	for i := range tasks {
		t := tasks[i]
		if err := t.Validate(); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTask,
				Description: err.Error(),
				IDs:         []string{t.ID},
			})
			continue
		}
		if t.Completed {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(t.Title))
		if _, ok := titles[key]; !ok {
			order = append(order, key)
			display[key] = t.Title
		}
		titles[key] = append(titles[key], t.ID)
	}

	for _, key := range order {
		if ids := titles[key]; len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateTaskTitle,
				Description: fmt.Sprintf("Duplicate open task title: %q (IDs: %v)", display[key], ids),
				IDs:         ids,
			})
		}
	}
	return result
}
