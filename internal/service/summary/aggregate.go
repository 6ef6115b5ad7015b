package summary

import (
	"time"

	"github.com/moodjournal/mood-api/internal/domain"
)

// Aggregate computes PeriodStats over entries already filtered to one owner
// and to [start, end]. Entries whose UTC day falls outside the zero-filled
// daily map still count toward the other aggregates.
func Aggregate(entries []domain.MoodEntry, start, end time.Time) domain.PeriodStats {
	stats := domain.PeriodStats{
		Categories: domain.NewCategoryHistogram(),
		Daily:      zeroFilledDays(start, end),
	}

	var sum float64
	for _, e := range entries {
		stats.Categories.Add(e.Category)
		sum += e.Rating
		if _, ok := stats.Daily[e.DayKey()]; ok {
			stats.Daily[e.DayKey()]++
		}
	}

	stats.EntryCount = len(entries)
	if stats.EntryCount > 0 {
		stats.AverageRating = sum / float64(stats.EntryCount)
	}
	return stats
}

func zeroFilledDays(start, end time.Time) map[string]int {
	days := make(map[string]int)
	last := startOfDay(end)
	for d := startOfDay(start); !d.After(last); d = d.AddDate(0, 0, 1) {
		days[d.Format(domain.DayLayout)] = 0
	}
	return days
}
