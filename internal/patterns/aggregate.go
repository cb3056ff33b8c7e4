// Package patterns derives the daily series and its calendar patterns
// (streaks, periods, switches) from the raw entry collection. Everything is
// recomputed from scratch on demand; nothing here is persisted.
package patterns

import (
	"sort"

	"github.com/petedur/BPD-Tracker/internal/models"
)

// AggregateDaily collapses the collection to one record per entry date. When
// a date has multiple entries, the one with the lexicographically largest
// recorded_at wins; that equals latest-saved given the fixed zero-padded
// layout. Equal timestamps keep the first entry seen.
func AggregateDaily(entries []models.Entry) map[string]models.DailyRecord {
	byDay := make(map[string]models.DailyRecord)
	for _, e := range entries {
		cur, exists := byDay[e.EntryDate]
		if exists && e.RecordedAt <= cur.RecordedAt {
			continue
		}
		byDay[e.EntryDate] = models.DailyRecord{
			Date:       e.EntryDate,
			Mood:       e.Mood,
			MoodScore:  e.MoodScore,
			CycleState: e.CycleState,
			RecordedAt: e.RecordedAt,
		}
	}
	return byDay
}

// SortedDays returns the daily records ordered by ascending date.
func SortedDays(byDay map[string]models.DailyRecord) []models.DailyRecord {
	days := make([]models.DailyRecord, 0, len(byDay))
	for _, d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})
	return days
}

// CountMoods tallies the daily records per mood label. Counting days rather
// than raw entries keeps same-day duplicates from skewing the distribution.
func CountMoods(byDay map[string]models.DailyRecord) map[string]int {
	counts := map[string]int{
		models.MoodHigh:    0,
		models.MoodLow:     0,
		models.MoodNeutral: 0,
	}
	for _, d := range byDay {
		counts[d.Mood]++
	}
	return counts
}
