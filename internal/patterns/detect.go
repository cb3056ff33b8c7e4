package patterns

import (
	"sort"
	"time"

	"github.com/petedur/BPD-Tracker/internal/models"
)

// DefaultMinEpisodeDays is the minimum length for a reportable period.
const DefaultMinEpisodeDays = 2

// DetectStreaks scans the date-ordered daily series for maximal runs of
// consecutive calendar dates sharing a mood label. Every run is reported,
// including length 1, in date order.
func DetectStreaks(days []models.DailyRecord) []models.Streak {
	if len(days) == 0 {
		return nil
	}

	var streaks []models.Streak
	start := days[0]
	prev := days[0]
	length := 1

	for _, d := range days[1:] {
		if isNextDay(prev.Date, d.Date) && d.Mood == start.Mood {
			length++
		} else {
			streaks = append(streaks, models.Streak{
				StartDate: start.Date,
				EndDate:   prev.Date,
				Mood:      start.Mood,
				Days:      length,
			})
			start = d
			length = 1
		}
		prev = d
	}

	return append(streaks, models.Streak{
		StartDate: start.Date,
		EndDate:   prev.Date,
		Mood:      start.Mood,
		Days:      length,
	})
}

// DetectPeriods scans the daily series for runs of consecutive dates sharing
// a cycle state. Only elevated and low runs of at least minDays are
// reported; stable runs never are. Each period carries the average of its
// days' scores.
func DetectPeriods(days []models.DailyRecord, minDays int) []models.Period {
	if len(days) == 0 {
		return nil
	}
	if minDays < 1 {
		minDays = DefaultMinEpisodeDays
	}

	var periods []models.Period
	start := days[0]
	prev := days[0]
	length := 1
	scoreSum := scoreOf(days[0])

	closeSegment := func() {
		if (start.CycleState == models.StateElevated || start.CycleState == models.StateLow) && length >= minDays {
			periods = append(periods, models.Period{
				StartDate: start.Date,
				EndDate:   prev.Date,
				State:     start.CycleState,
				Days:      length,
				AvgScore:  scoreSum / float64(length),
			})
		}
	}

	for _, d := range days[1:] {
		if isNextDay(prev.Date, d.Date) && d.CycleState == start.CycleState {
			length++
			scoreSum += scoreOf(d)
		} else {
			closeSegment()
			start = d
			length = 1
			scoreSum = scoreOf(d)
		}
		prev = d
	}
	closeSegment()

	return periods
}

// DetectSwitches finds high/low transitions in the neutral-filtered daily
// series. Neutral days and calendar gaps are skipped rather than treated as
// boundaries, so a switch registers across them.
func DetectSwitches(days []models.DailyRecord) []models.Switch {
	var switches []models.Switch
	prevMood := ""
	for _, d := range days {
		if d.Mood == models.MoodNeutral {
			continue
		}
		if prevMood != "" && d.Mood != prevMood {
			switches = append(switches, models.Switch{
				Date: d.Date,
				From: prevMood,
				To:   d.Mood,
			})
		}
		prevMood = d.Mood
	}
	return switches
}

// TopStreaks orders streaks by descending length, ties kept in date order,
// capped to n.
func TopStreaks(streaks []models.Streak, n int) []models.Streak {
	out := make([]models.Streak, len(streaks))
	copy(out, streaks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Days > out[j].Days
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// TopPeriods orders periods by descending length, ties kept in date order,
// capped to n.
func TopPeriods(periods []models.Period, n int) []models.Period {
	out := make([]models.Period, len(periods))
	copy(out, periods)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Days > out[j].Days
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func isNextDay(prev, next string) bool {
	p, err := time.Parse(models.DateLayout, prev)
	if err != nil {
		return false
	}
	n, err := time.Parse(models.DateLayout, next)
	if err != nil {
		return false
	}
	return p.AddDate(0, 0, 1).Equal(n)
}

func scoreOf(d models.DailyRecord) float64 {
	if d.MoodScore == nil {
		return 0
	}
	return float64(*d.MoodScore)
}
