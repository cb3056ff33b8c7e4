// Package journal owns the entry collection: it loads and normalizes the
// persisted document, validates and classifies new entries, and writes the
// full collection back on every change.
package journal

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/petedur/BPD-Tracker/internal/classifier"
	"github.com/petedur/BPD-Tracker/internal/followup"
	"github.com/petedur/BPD-Tracker/internal/models"
	"github.com/petedur/BPD-Tracker/internal/store"
)

// Validation errors surfaced to the caller. Everything else recovers with a
// safe default at the load boundary.
var (
	ErrEmptyText  = errors.New("entry text is empty")
	ErrBadDate    = errors.New("entry date is not a valid date")
	ErrFutureDate = errors.New("entry date is in the future")
)

// Journal is the service around one store. It is not safe for concurrent
// writers to the same key; the last full snapshot wins.
type Journal struct {
	store    *store.Store
	selector *followup.Selector
	loc      *time.Location
	highAt   int
	lowAt    int
	now      func() time.Time
}

// New creates a journal service classifying scores with the given
// thresholds and evaluating "today" in loc.
func New(st *store.Store, sel *followup.Selector, loc *time.Location, highAt, lowAt int) *Journal {
	if loc == nil {
		loc = time.UTC
	}
	return &Journal{
		store:    st,
		selector: sel,
		loc:      loc,
		highAt:   highAt,
		lowAt:    lowAt,
		now:      time.Now,
	}
}

// SetClock overrides the clock, for tests.
func (j *Journal) SetClock(now func() time.Time) {
	j.now = now
}

// Entries loads and normalizes the full collection for a key. Never fails;
// a missing or corrupt document is an empty journal.
func (j *Journal) Entries(key string) []models.Entry {
	raw := j.store.Load(key)
	return Normalize(raw, j.now().In(j.loc), j.highAt, j.lowAt)
}

// Append validates, classifies, and persists a new entry, returning the
// stored entry. The follow-up prompt is chosen against the session and the
// existing collection before the entry is added.
func (j *Journal) Append(key string, req models.EntryRequest, sess *followup.Session) (models.Entry, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return models.Entry{}, ErrEmptyText
	}

	now := j.now().In(j.loc)

	entryDate := req.EntryDate
	if entryDate == "" {
		entryDate = now.Format(models.DateLayout)
	}
	d, err := time.ParseInLocation(models.DateLayout, entryDate, j.loc)
	if err != nil {
		return models.Entry{}, ErrBadDate
	}
	if d.Format(models.DateLayout) > now.Format(models.DateLayout) {
		return models.Entry{}, ErrFutureDate
	}

	entries := j.Entries(key)
	mood := classifier.Classify(text)

	entry := models.Entry{
		ID:         uuid.NewString(),
		EntryDate:  entryDate,
		RecordedAt: now.Format(models.RecordedAtLayout),
		Text:       text,
		Mood:       mood,
		Followup:   j.selector.Select(mood, entries, sess),
	}
	if req.MoodScore != nil {
		score := *req.MoodScore
		entry.MoodScore = &score
		entry.CycleState = classifier.ScoreState(score, j.highAt, j.lowAt)
	}

	entries = append(entries, entry)
	if err := j.store.Save(key, entries); err != nil {
		return models.Entry{}, fmt.Errorf("saving journal: %w", err)
	}
	return entry, nil
}

// Clear replaces the collection for a key with an empty one.
func (j *Journal) Clear(key string) error {
	if err := j.store.Save(key, nil); err != nil {
		return fmt.Errorf("clearing journal: %w", err)
	}
	return nil
}
