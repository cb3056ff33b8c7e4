package models

// Entry is the canonical persisted journal record. Older documents may be
// missing fields; the normalizer in internal/journal backfills them at load
// time so the rest of the system only ever sees this shape.
type Entry struct {
	ID         string `json:"id,omitempty"`
	EntryDate  string `json:"entry_date"`
	RecordedAt string `json:"recorded_at"`
	Text       string `json:"text"`
	Mood       string `json:"mood"`
	MoodScore  *int   `json:"mood_score,omitempty"`
	CycleState string `json:"cycle_state,omitempty"`
	Followup   string `json:"followup,omitempty"`
}

// DailyRecord is the winning entry for one calendar date, chosen by latest
// recorded_at when the same date has multiple entries. Derived, never persisted.
type DailyRecord struct {
	Date       string
	Mood       string
	MoodScore  *int
	CycleState string
	RecordedAt string
}

// Streak is a maximal run of consecutive calendar dates sharing a mood label.
type Streak struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Mood      string `json:"mood"`
	Days      int    `json:"days"`
}

// Period is a maximal run of consecutive calendar dates sharing a
// score-derived cycle state. Only elevated/low runs that meet the minimum
// length are reported.
type Period struct {
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	State     string  `json:"state"`
	Days      int     `json:"days"`
	AvgScore  float64 `json:"avg_score"`
}

// Switch is a high-energy/low-energy transition between two non-neutral days.
// The days need not be calendar-adjacent; neutral days in between are skipped.
type Switch struct {
	Date string `json:"date"`
	From string `json:"from"`
	To   string `json:"to"`
}

// EntryRequest is the body of POST /api/v1/entries.
type EntryRequest struct {
	EntryDate string `json:"entry_date"`
	Text      string `json:"text"`
	MoodScore *int   `json:"mood_score,omitempty"`
}

// EntryResponse is returned after saving an entry.
type EntryResponse struct {
	Status   string `json:"status"`
	Entry    Entry  `json:"entry"`
	Followup string `json:"followup"`
}

// EntriesResponse is returned by the entries listing endpoint.
type EntriesResponse struct {
	Entries []Entry `json:"entries"`
}

// SummaryResponse is the live view of the derived statistics.
type SummaryResponse struct {
	Counts   map[string]int `json:"counts"`
	Streaks  []Streak       `json:"streaks"`
	Periods  []Period       `json:"periods"`
	Switches []Switch       `json:"switches"`
	Calendar string         `json:"calendar"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Data    string `json:"data"`
	Version string `json:"version"`
}

// Mood labels derived from entry text.
const (
	MoodHigh    = "high energy"
	MoodLow     = "low energy"
	MoodNeutral = "neutral"
)

// Cycle states derived from the numeric self-report score.
const (
	StateElevated = "elevated"
	StateLow      = "low"
	StateStable   = "stable"
)

// Timestamp layouts. RecordedAtLayout sorts lexicographically in
// chronological order, which the daily aggregator relies on.
const (
	DateLayout       = "2006-01-02"
	RecordedAtLayout = "2006-01-02 15:04:05"
)
