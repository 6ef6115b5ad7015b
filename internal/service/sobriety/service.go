package sobriety

import (
	"context"
	"strings"
	"time"

	"github.com/moodjournal/mood-api/internal/domain"
	"github.com/moodjournal/mood-api/internal/pkg/logger"
)

// Elapsed is the time since a clock's start date.
type Elapsed struct {
	Days  int `json:"days"`
	Hours int `json:"hours"` // 0-23, on top of Days
}

// Service manages sobriety clocks.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a sobriety service backed by repo.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create starts a new clock.
func (s *Service) Create(ctx context.Context, userID, addictionType, customName string, start time.Time) (*domain.SobrietyClock, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrUserRequired
	}
	addictionType = strings.TrimSpace(addictionType)
	if addictionType == "" {
		return nil, ErrAddictionRequired
	}
	if start.IsZero() {
		return nil, ErrStartRequired
	}

	c := &domain.SobrietyClock{
		UserID:        userID,
		AddictionType: addictionType,
		CustomName:    strings.TrimSpace(customName),
		StartDate:     start.UTC(),
		CreatedAt:     s.now().UTC(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	logger.Info("sobriety clock created", "user_id", userID, "clock_id", c.ID, "type", addictionType)
	return c, nil
}

// List returns the user's clocks, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]domain.SobrietyClock, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrUserRequired
	}
	return s.repo.ListByUser(ctx, userID)
}

// Delete removes a clock.
func (s *Service) Delete(ctx context.Context, clockID string) error {
	if err := s.repo.Delete(ctx, clockID); err != nil {
		return err
	}
	logger.Info("sobriety clock deleted", "clock_id", clockID)
	return nil
}

// Reset restarts a clock from newStart.
func (s *Service) Reset(ctx context.Context, clockID string, newStart time.Time) (*domain.SobrietyClock, error) {
	if newStart.IsZero() {
		return nil, ErrStartRequired
	}
	c, err := s.repo.Reset(ctx, clockID, newStart.UTC())
	if err != nil {
		return nil, err
	}
	logger.Info("sobriety clock reset", "clock_id", clockID)
	return c, nil
}

// Elapsed reports time since c started, relative to the service clock.
func (s *Service) Elapsed(c domain.SobrietyClock) Elapsed {
	return ElapsedSince(c.StartDate, s.now())
}

// ElapsedSince computes whole days and remaining hours from start to now.
// A start date in the future yields zero.
func ElapsedSince(start, now time.Time) Elapsed {
	d := now.Sub(start)
	if d < 0 {
		return Elapsed{}
	}
	hours := int(d / time.Hour)
	return Elapsed{Days: hours / 24, Hours: hours % 24}
}
