// Package report assembles the plain-text summary document. The output is
// deterministic for a given collection and generation time.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/petedur/BPD-Tracker/internal/calendar"
	"github.com/petedur/BPD-Tracker/internal/models"
	"github.com/petedur/BPD-Tracker/internal/patterns"
)

// Disclaimer is printed verbatim at the top of every report.
const Disclaimer = "Disclaimer: This tool is observational only and does NOT provide diagnoses, " +
	"medical advice, medication advice, or emergency services."

const caveat = "Patterns below are heuristic observations of your own words and scores; " +
	"they are not clinical measurements."

const title = "OBSERVATIONAL JOURNAL SUMMARY (NON-DIAGNOSTIC)"

// DefaultFilename is the suggested name for a downloaded report.
const DefaultFilename = "journal_report.txt"

// Composer builds reports with fixed listing caps.
type Composer struct {
	MinEpisodeDays int
	MaxStreaks     int
	MaxRecent      int
}

// NewComposer returns a composer with the default caps.
func NewComposer(minEpisodeDays int) *Composer {
	if minEpisodeDays < 1 {
		minEpisodeDays = patterns.DefaultMinEpisodeDays
	}
	return &Composer{
		MinEpisodeDays: minEpisodeDays,
		MaxStreaks:     10,
		MaxRecent:      10,
	}
}

// Compose renders the full report. Statistics use the collapsed daily
// series; the "most recent entries" section deliberately lists raw entries,
// so a backdated or superseded same-day entry still appears there even
// though it does not count toward the distribution or streaks.
func (c *Composer) Compose(entries []models.Entry, now time.Time) string {
	var b strings.Builder

	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line(title)
	line("")
	line(Disclaimer)
	line(caveat)
	line("")
	line("Generated: %s", now.Format(models.RecordedAtLayout))
	line("")

	if len(entries) == 0 {
		line("No entries recorded.")
		return b.String()
	}

	byDay := patterns.AggregateDaily(entries)
	days := patterns.SortedDays(byDay)

	counts := patterns.CountMoods(byDay)
	line("Mood distribution (by day):")
	for _, mood := range []string{models.MoodHigh, models.MoodLow, models.MoodNeutral} {
		line("- %s: %d", mood, counts[mood])
	}
	line("")

	line("Mood streaks (longest first):")
	streaks := patterns.TopStreaks(patterns.DetectStreaks(days), c.MaxStreaks)
	if len(streaks) == 0 {
		line("- none")
	}
	for _, s := range streaks {
		line("- %s to %s: %s (%s)", s.StartDate, s.EndDate, s.Mood, dayCount(s.Days))
	}
	line("")

	line("Elevated/low periods (min %d days):", c.MinEpisodeDays)
	periods := patterns.TopPeriods(patterns.DetectPeriods(days, c.MinEpisodeDays), c.MaxStreaks)
	if len(periods) == 0 {
		line("- none")
	}
	for _, p := range periods {
		line("- %s to %s: %s (%s, avg score %+.1f)", p.StartDate, p.EndDate, p.State, dayCount(p.Days), p.AvgScore)
	}
	line("")

	line("Mood switches:")
	switches := patterns.DetectSwitches(days)
	if len(switches) == 0 {
		line("- none")
	}
	for _, sw := range switches {
		line("- %s: %s -> %s", sw.Date, sw.From, sw.To)
	}
	line("")

	line("Calendar:")
	dayCodes := make(map[string]string, len(byDay))
	for date, d := range byDay {
		dayCodes[date] = calendar.StateCode(d.Mood)
	}
	line("%s", calendar.Render(dayCodes))
	line("")

	line("Most recent entries:")
	recent := entries
	if len(recent) > c.MaxRecent {
		recent = recent[len(recent)-c.MaxRecent:]
	}
	for _, e := range recent {
		line("")
		header := fmt.Sprintf("[%s] saved %s | mood=%s", e.EntryDate, e.RecordedAt, e.Mood)
		if e.MoodScore != nil {
			header += fmt.Sprintf(" | score=%+d (%s)", *e.MoodScore, e.CycleState)
		}
		line("%s", header)
		line("%s", e.Text)
		if e.Followup != "" {
			line("Follow-up: %s", e.Followup)
		}
	}

	return b.String()
}

func dayCount(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
