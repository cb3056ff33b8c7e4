package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/petedur/BPD-Tracker/internal/calendar"
	"github.com/petedur/BPD-Tracker/internal/config"
	"github.com/petedur/BPD-Tracker/internal/followup"
	"github.com/petedur/BPD-Tracker/internal/journal"
	"github.com/petedur/BPD-Tracker/internal/models"
	"github.com/petedur/BPD-Tracker/internal/patterns"
	"github.com/petedur/BPD-Tracker/internal/report"
)

// Caps for the live view.
const (
	liveStreakCap = 5
	recentListCap = 25
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
		Code:  code,
	})
}

type Handlers struct {
	cfg      *config.Config
	journal  *journal.Journal
	composer *report.Composer

	// follow-up memory per storage key, scoped to this server process
	mu       sync.Mutex
	sessions map[string]*followup.Session

	now func() time.Time
}

func NewHandlers(cfg *config.Config, j *journal.Journal, composer *report.Composer) *Handlers {
	return &Handlers{
		cfg:      cfg,
		journal:  j,
		composer: composer,
		sessions: make(map[string]*followup.Session),
		now:      time.Now,
	}
}

func (h *Handlers) session(key string) *followup.Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	sess, ok := h.sessions[key]
	if !ok {
		sess = &followup.Session{}
		h.sessions[key] = sess
	}
	return sess
}

// Health handles GET /health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		Status:  "ok",
		Data:    h.checkDataDir(),
		Version: "1.0.0",
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

func (h *Handlers) checkDataDir() string {
	info, err := os.Stat(h.cfg.DataDir)
	if err != nil {
		return "error: " + err.Error()
	}
	if !info.IsDir() {
		return "error: not a directory"
	}
	return "writable"
}

// CreateEntry handles POST /api/v1/entries
func (h *Handlers) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req models.EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "INVALID_BODY")
		return
	}

	key := GetJournalKey(r)
	entry, err := h.journal.Append(key, req, h.session(key))
	if err != nil {
		switch {
		case errors.Is(err, journal.ErrEmptyText):
			writeError(w, http.StatusBadRequest, "please write something before saving", "EMPTY_TEXT")
		case errors.Is(err, journal.ErrBadDate):
			writeError(w, http.StatusBadRequest, "entry_date must be a valid YYYY-MM-DD date", "INVALID_DATE")
		case errors.Is(err, journal.ErrFutureDate):
			writeError(w, http.StatusBadRequest, "entry_date cannot be in the future", "FUTURE_DATE")
		default:
			writeError(w, http.StatusInternalServerError, "could not save entry", "SAVE_FAILED")
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(models.EntryResponse{
		Status:   "saved",
		Entry:    entry,
		Followup: entry.Followup,
	})
}

// ListEntries handles GET /api/v1/entries
func (h *Handlers) ListEntries(w http.ResponseWriter, r *http.Request) {
	entries := h.journal.Entries(GetJournalKey(r))

	// Newest first, capped
	if len(entries) > recentListCap {
		entries = entries[len(entries)-recentListCap:]
	}
	reversed := make([]models.Entry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		reversed = append(reversed, entries[i])
	}

	json.NewEncoder(w).Encode(models.EntriesResponse{Entries: reversed})
}

// ClearEntries handles DELETE /api/v1/entries
func (h *Handlers) ClearEntries(w http.ResponseWriter, r *http.Request) {
	if err := h.journal.Clear(GetJournalKey(r)); err != nil {
		writeError(w, http.StatusInternalServerError, "could not clear journal", "CLEAR_FAILED")
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"status": "cleared"})
}

// Summary handles GET /api/v1/summary
func (h *Handlers) Summary(w http.ResponseWriter, r *http.Request) {
	entries := h.journal.Entries(GetJournalKey(r))

	byDay := patterns.AggregateDaily(entries)
	days := patterns.SortedDays(byDay)

	dayCodes := make(map[string]string, len(byDay))
	for date, d := range byDay {
		dayCodes[date] = calendar.StateCode(d.Mood)
	}

	resp := models.SummaryResponse{
		Counts:   patterns.CountMoods(byDay),
		Streaks:  patterns.TopStreaks(patterns.DetectStreaks(days), liveStreakCap),
		Periods:  patterns.TopPeriods(patterns.DetectPeriods(days, h.cfg.MinEpisodeDays), liveStreakCap),
		Switches: patterns.DetectSwitches(days),
		Calendar: calendar.Render(dayCodes),
	}
	json.NewEncoder(w).Encode(resp)
}

// Report handles GET /api/v1/report
func (h *Handlers) Report(w http.ResponseWriter, r *http.Request) {
	entries := h.journal.Entries(GetJournalKey(r))
	text := h.composer.Compose(entries, h.now())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.DefaultFilename))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}
