package summary

import (
	"time"

	"github.com/moodjournal/mood-api/internal/domain"
)

// DefaultWindowDays is how far back a summary reaches when no range is
// given. The window holds seven calendar days including both endpoints.
const DefaultWindowDays = 6

// DefaultWindow returns the range used when the caller supplies none. The
// start is snapped to midnight UTC so the first day is covered whole.
func DefaultWindow(now time.Time) (start, end time.Time) {
	end = now.UTC()
	return startOfDay(end.AddDate(0, 0, -DefaultWindowDays)), end
}

// Classify maps a span to its cache bucket. The first matching rule wins,
// so a one-day delta is a Day, and spans between 32 and 359 days are Custom.
func Classify(start, end time.Time) domain.RangeLabel {
	delta := DaysBetween(start, end)
	switch {
	case delta <= 1:
		return domain.RangeDay
	case delta <= 7:
		return domain.RangeWeek
	case delta <= 31:
		return domain.RangeMonth
	case delta >= 360:
		return domain.RangeYear
	default:
		return domain.RangeCustom
	}
}

// DaysBetween counts whole calendar days from start's UTC date to end's.
func DaysBetween(start, end time.Time) int {
	s, e := startOfDay(start), startOfDay(end)
	return int(e.Sub(s).Hours() / 24)
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
