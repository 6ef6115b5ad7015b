package sobriety

import (
	"context"
	"time"

	"github.com/moodjournal/mood-api/internal/domain"
)

// Repository defines the data access contract for sobriety clocks.
type Repository interface {
	Create(ctx context.Context, c *domain.SobrietyClock) error

	// ListByUser returns the user's clocks, newest created first.
	ListByUser(ctx context.Context, userID string) ([]domain.SobrietyClock, error)

	// Delete removes a clock. Returns ErrNotFound if it doesn't exist.
	Delete(ctx context.Context, clockID string) error

	// Reset moves a clock's start date. Returns ErrNotFound if it doesn't exist.
	Reset(ctx context.Context, clockID string, start time.Time) (*domain.SobrietyClock, error)
}
