package journal

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/petedur/BPD-Tracker/internal/classifier"
	"github.com/petedur/BPD-Tracker/internal/models"
)

// rawEntry is the permissive view of a stored record. Every field is
// optional; legacy documents used created_at or timestamp for the save time
// and carried no entry_date, score, or id at all.
type rawEntry struct {
	ID         string          `json:"id"`
	EntryDate  string          `json:"entry_date"`
	RecordedAt string          `json:"recorded_at"`
	CreatedAt  string          `json:"created_at"`
	Timestamp  string          `json:"timestamp"`
	Text       string          `json:"text"`
	Mood       string          `json:"mood"`
	MoodScore  json.RawMessage `json:"mood_score"`
	Followup   string          `json:"followup"`
}

// Normalize repairs a raw record list into canonical entries. Records that
// are not JSON objects are dropped; individual missing fields are backfilled
// per the legacy-key rules. Normalizing an already-normalized list is a
// field-for-field no-op.
func Normalize(raw []json.RawMessage, now time.Time, highAt, lowAt int) []models.Entry {
	entries := make([]models.Entry, 0, len(raw))
	for _, msg := range raw {
		e, ok := normalizeOne(msg, now, highAt, lowAt)
		if !ok {
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

func normalizeOne(msg json.RawMessage, now time.Time, highAt, lowAt int) (models.Entry, bool) {
	// Reject anything that is not a key-value record before field mapping
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(msg, &probe); err != nil || probe == nil {
		return models.Entry{}, false
	}

	var re rawEntry
	if err := json.Unmarshal(msg, &re); err != nil {
		return models.Entry{}, false
	}

	recordedAt := firstNonEmpty(re.RecordedAt, re.CreatedAt, re.Timestamp)
	if recordedAt == "" {
		recordedAt = now.Format(models.RecordedAtLayout)
	}

	entryDate := re.EntryDate
	if !validDate(entryDate) {
		entryDate = ""
		if len(recordedAt) >= 10 && validDate(recordedAt[:10]) {
			entryDate = recordedAt[:10]
		}
		if entryDate == "" {
			entryDate = now.Format(models.DateLayout)
		}
	}

	e := models.Entry{
		ID:         re.ID,
		EntryDate:  entryDate,
		RecordedAt: recordedAt,
		Text:       re.Text,
		Mood:       classifier.ValidateMood(re.Mood),
		Followup:   re.Followup,
	}

	if len(re.MoodScore) > 0 && string(re.MoodScore) != "null" {
		score := parseScore(re.MoodScore)
		e.MoodScore = &score
		e.CycleState = classifier.ScoreState(score, highAt, lowAt)
	}

	return e, true
}

// parseScore coerces a score field to an int, defaulting to 0 on anything
// non-numeric rather than failing the record.
func parseScore(raw json.RawMessage) int {
	var i int
	if err := json.Unmarshal(raw, &i); err == nil {
		return i
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n
		}
	}
	return 0
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func validDate(s string) bool {
	_, err := time.Parse(models.DateLayout, s)
	return err == nil
}
