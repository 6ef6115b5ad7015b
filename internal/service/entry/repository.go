package entry

import (
	"context"
	"time"

	"github.com/moodjournal/mood-api/internal/domain"
)

// Repository defines the data access contract for journal entries.
type Repository interface {
	// Create persists e, assigning an ID when empty.
	Create(ctx context.Context, e *domain.MoodEntry) error

	// List returns the owner's entries, newest first.
	List(ctx context.Context, ownerID string, filter ListFilter) ([]domain.MoodEntry, error)

	// Fetch returns the owner's entries with CreatedAt in [start, end]
	// inclusive, timestamps in UTC.
	Fetch(ctx context.Context, ownerID string, start, end time.Time) ([]domain.MoodEntry, error)
}

// ListFilter controls pagination for entry lists.
type ListFilter struct {
	Skip  int
	Limit int
}
