package domain

import "time"

// RangeLabel is a coarse classification of a date span. It partitions the
// advice cache and says nothing precise about the aggregation window.
type RangeLabel string

const (
	RangeDay    RangeLabel = "day"
	RangeWeek   RangeLabel = "week"
	RangeMonth  RangeLabel = "month"
	RangeYear   RangeLabel = "year"
	RangeCustom RangeLabel = "custom"
)

// Valid reports whether l is one of the known labels.
func (l RangeLabel) Valid() bool {
	switch l {
	case RangeDay, RangeWeek, RangeMonth, RangeYear, RangeCustom:
		return true
	}
	return false
}

// CachedAdvice is one generated suggestion. Rows are append-only: they are
// never updated, and stale rows are ignored rather than deleted.
type CachedAdvice struct {
	ID         string     `json:"id" db:"id"`
	OwnerID    string     `json:"user_id" db:"user_id"`
	RangeLabel RangeLabel `json:"range_type" db:"range_type"`
	Advice     string     `json:"ai_suggestion" db:"ai_suggestion"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}
