package summary

import (
	"testing"
	"time"

	"github.com/moodjournal/mood-api/internal/domain"
)

func TestClassify(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		days int
		want domain.RangeLabel
	}{
		{0, domain.RangeDay},
		{1, domain.RangeDay},
		{2, domain.RangeWeek},
		{6, domain.RangeWeek},
		{7, domain.RangeWeek},
		{8, domain.RangeMonth},
		{29, domain.RangeMonth},
		{31, domain.RangeMonth},
		{32, domain.RangeCustom},
		{100, domain.RangeCustom},
		{359, domain.RangeCustom},
		{360, domain.RangeYear},
		{364, domain.RangeYear},
		{800, domain.RangeYear},
	}
	for _, tt := range tests {
		got := Classify(base, base.AddDate(0, 0, tt.days))
		if got != tt.want {
			t.Errorf("Classify(+%d days) = %q, want %q", tt.days, got, tt.want)
		}
	}
}

func TestDaysBetween_CountsCalendarDays(t *testing.T) {
	start := time.Date(2025, 1, 1, 23, 59, 0, 0, time.UTC)
	end := time.Date(2025, 1, 2, 0, 1, 0, 0, time.UTC)
	if got := DaysBetween(start, end); got != 1 {
		t.Errorf("DaysBetween across midnight = %d, want 1", got)
	}
}

func TestDaysBetween_NormalizesZones(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	// 2025-01-02 08:00 JST is 2025-01-01 23:00 UTC.
	start := time.Date(2025, 1, 2, 8, 0, 0, 0, tokyo)
	end := time.Date(2025, 1, 1, 23, 30, 0, 0, time.UTC)
	if got := DaysBetween(start, end); got != 0 {
		t.Errorf("DaysBetween = %d, want 0", got)
	}
}

func TestDefaultWindow_SpansSevenDays(t *testing.T) {
	now := time.Date(2025, 5, 7, 18, 0, 0, 0, time.UTC)
	start, end := DefaultWindow(now)
	if !end.Equal(now) {
		t.Errorf("end = %v, want %v", end, now)
	}
	if want := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Errorf("start = %v, want %v", start, want)
	}
	if Classify(start, end) != domain.RangeWeek {
		t.Error("default window should classify as week")
	}
}
