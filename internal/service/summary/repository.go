package summary

import (
	"context"
	"time"

	"github.com/moodjournal/mood-api/internal/advice"
	"github.com/moodjournal/mood-api/internal/domain"
)

// EntryFetcher is the read side of the entry store.
type EntryFetcher interface {
	// Fetch returns the owner's entries with CreatedAt in [start, end],
	// inclusive at both ends, with timestamps normalized to UTC. Order is
	// unspecified.
	Fetch(ctx context.Context, ownerID string, start, end time.Time) ([]domain.MoodEntry, error)
}

// AdviceCache remembers generated suggestions per (owner, label).
//
// Implementations are append-only logs: Store never overwrites, and Lookup
// returns the most recent row created at or after since. Duplicate rows for
// the same bucket are allowed.
type AdviceCache interface {
	Lookup(ctx context.Context, ownerID string, label domain.RangeLabel, since time.Time) (string, bool, error)
	Store(ctx context.Context, ownerID string, label domain.RangeLabel, advice string) error
}

// AdviceGenerator produces suggestion text for a window's statistics.
type AdviceGenerator interface {
	Generate(ctx context.Context, req advice.Request) advice.Result
}
