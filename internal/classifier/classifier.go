// Package classifier labels calendar events by how stressful they are likely to be.
package classifier

import (
	"strings"

	"github.com/julianstephens/burnoutguard/internal/models"
)

// Classifier labels free text. Implementations must be safe for concurrent use.
type Classifier interface {
	Classify(text string) models.StressLabel
}

var (
	// HighStressKeywords mark evaluative or deadline-driven events.
	HighStressKeywords = []string{
		"exam", "test", "quiz", "midterm", "final", "interview", "presentation",
		"deadline", "meeting", "review", "assessment", "evaluation", "project due",
		"submission", "defense", "thesis", "dissertation", "lab", "homework",
	}

	// RecreationalKeywords mark restorative events.
	RecreationalKeywords = []string{
		"gym", "workout", "exercise", "yoga", "meditation", "break", "lunch",
		"dinner", "coffee", "social", "party", "game", "movie", "concert",
		"sports", "club", "relax", "hobby", "fun", "hang out", "chill",
	}
)

// Keyword is a substring matcher over two keyword lists.
// High-stress matches take precedence over recreational ones.
type Keyword struct {
	highStress   []string
	recreational []string
}

// NewKeyword builds a Keyword classifier. Nil lists fall back to the defaults.
func NewKeyword(highStress, recreational []string) *Keyword {
	if highStress == nil {
		highStress = HighStressKeywords
	}
	if recreational == nil {
		recreational = RecreationalKeywords
	}
	return &Keyword{
		highStress:   lowerAll(highStress),
		recreational: lowerAll(recreational),
	}
}

// Default returns the keyword classifier with the built-in lists.
func Default() *Keyword {
	return NewKeyword(nil, nil)
}

// Classify matches text case-insensitively. High-stress keywords win over
// recreational ones, so "Exam Party" is high stress.
func (k *Keyword) Classify(text string) models.StressLabel {
	text = strings.ToLower(text)
	if containsAny(text, k.highStress) {
		return models.LabelHighStress
	}
	if containsAny(text, k.recreational) {
		return models.LabelRecreational
	}
	return models.LabelNeutral
}

// ClassifyEvents labels each event by its summary and description, keyed by event id.
func ClassifyEvents(c Classifier, events []models.CalendarEvent) map[string]models.StressLabel {
	labels := make(map[string]models.StressLabel, len(events))
	for _, e := range events {
		labels[e.ID] = c.Classify(e.Text())
	}
	return labels
}

// Counts tallies labels.
type Counts struct {
	HighStress   int
	Recreational int
	Neutral      int
}

// Count tallies a label map produced by ClassifyEvents.
func Count(labels map[string]models.StressLabel) Counts {
	var c Counts
	for _, label := range labels {
		switch label {
		case models.LabelHighStress:
			c.HighStress++
		case models.LabelRecreational:
			c.Recreational++
		default:
			c.Neutral++
		}
	}
	return c
}

// Tally classifies events one by one. Unlike Count over ClassifyEvents it
// does not merge events that share an id.
func Tally(c Classifier, events []models.CalendarEvent) Counts {
	var counts Counts
	for _, e := range events {
		switch c.Classify(e.Text()) {
		case models.LabelHighStress:
			counts.HighStress++
		case models.LabelRecreational:
			counts.Recreational++
		default:
			counts.Neutral++
		}
	}
	return counts
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
