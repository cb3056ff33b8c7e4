// Package calendar renders fixed-width month grids annotated with per-day
// state codes, one grid per (year, month) that has at least one dated entry.
package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/petedur/BPD-Tracker/internal/models"
)

// NoEntriesPlaceholder is returned when no parseable dated entries exist.
const NoEntriesPlaceholder = "No dated entries."

// StateCode maps a mood label to its one-character calendar code.
func StateCode(mood string) string {
	switch mood {
	case models.MoodHigh:
		return "H"
	case models.MoodLow:
		return "L"
	case models.MoodNeutral:
		return "N"
	default:
		return " "
	}
}

// Render draws a Monday-first 7-column grid for every month present in
// dayCodes (date string -> one-character code), months ascending. Each
// in-month cell is the two-digit day number plus the day's code, or a space
// when the day has no entry. Dates that fail to parse are ignored.
func Render(dayCodes map[string]string) string {
	months := monthsOf(dayCodes)
	if len(months) == 0 {
		return NoEntriesPlaceholder
	}

	var b strings.Builder
	for i, ym := range months {
		if i > 0 {
			b.WriteString("\n")
		}
		renderMonth(&b, ym, dayCodes)
	}
	return strings.TrimRight(b.String(), "\n")
}

type yearMonth struct {
	year  int
	month time.Month
}

func monthsOf(dayCodes map[string]string) []yearMonth {
	seen := make(map[yearMonth]bool)
	for date := range dayCodes {
		d, err := time.Parse(models.DateLayout, date)
		if err != nil {
			continue
		}
		seen[yearMonth{d.Year(), d.Month()}] = true
	}

	months := make([]yearMonth, 0, len(seen))
	for ym := range seen {
		months = append(months, ym)
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].year != months[j].year {
			return months[i].year < months[j].year
		}
		return months[i].month < months[j].month
	})
	return months
}

func renderMonth(b *strings.Builder, ym yearMonth, dayCodes map[string]string) {
	first := time.Date(ym.year, ym.month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	fmt.Fprintf(b, "%s %d\n", ym.month.String(), ym.year)
	b.WriteString("Mo  Tu  We  Th  Fr  Sa  Su\n")

	// Monday-first column index of the 1st
	col := (int(first.Weekday()) + 6) % 7

	var row [7]string
	for i := 0; i < col; i++ {
		row[i] = "   "
	}

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(ym.year, ym.month, day, 0, 0, 0, 0, time.UTC).Format(models.DateLayout)
		code, ok := dayCodes[date]
		if !ok || code == "" {
			code = " "
		}
		row[col] = fmt.Sprintf("%2d%s", day, code)
		col++
		if col == 7 {
			writeRow(b, row[:])
			col = 0
		}
	}
	if col > 0 {
		for i := col; i < 7; i++ {
			row[i] = "   "
		}
		writeRow(b, row[:])
	}
}

func writeRow(b *strings.Builder, cells []string) {
	line := strings.Join(cells, " ")
	b.WriteString(strings.TrimRight(line, " "))
	b.WriteString("\n")
}
