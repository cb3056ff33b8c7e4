package classifier

import (
	"strings"

	"github.com/petedur/BPD-Tracker/internal/models"
)

// Keyword lists for the energy-level heuristic. Matching is by
// case-insensitive substring, so "burnt" also catches "burnt out".
var highEnergyTerms = []string{
	"energized", "productive", "excited", "motivated", "great", "amazing",
	"happy", "confident", "focused", "uplifted", "optimistic",
	"full of energy", "on top of things",
}

var lowEnergyTerms = []string{
	"tired", "exhausted", "down", "sad", "low", "unmotivated", "stressed",
	"anxious", "overwhelmed", "hopeless", "burnt", "burned", "drained",
	"worn out", "no energy",
}

// Default thresholds for mapping a self-report score to a cycle state.
const (
	DefaultHighAt = 3
	DefaultLowAt  = -3
)

// Classify maps free text to a coarse energy label by counting keyword hits.
// High wins only on a strict, nonzero majority; ties and no-hits are neutral.
func Classify(text string) string {
	t := strings.ToLower(text)

	var high, low int
	for _, term := range highEnergyTerms {
		if strings.Contains(t, term) {
			high++
		}
	}
	for _, term := range lowEnergyTerms {
		if strings.Contains(t, term) {
			low++
		}
	}

	if high > low && high > 0 {
		return models.MoodHigh
	}
	if low > high && low > 0 {
		return models.MoodLow
	}
	return models.MoodNeutral
}

// ScoreState maps a signed self-report score to a cycle state using the
// given thresholds (inclusive on both sides).
func ScoreState(score, highAt, lowAt int) string {
	switch {
	case score >= highAt:
		return models.StateElevated
	case score <= lowAt:
		return models.StateLow
	default:
		return models.StateStable
	}
}

// ValidateMood normalizes a stored mood label, mapping anything unknown to
// neutral so legacy documents with free-form labels stay loadable.
func ValidateMood(mood string) string {
	switch strings.ToLower(strings.TrimSpace(mood)) {
	case models.MoodHigh:
		return models.MoodHigh
	case models.MoodLow:
		return models.MoodLow
	case models.MoodNeutral:
		return models.MoodNeutral
	default:
		return models.MoodNeutral
	}
}
