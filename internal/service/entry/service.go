package entry

import (
	"context"
	"strings"
	"time"

	"github.com/moodjournal/mood-api/internal/domain"
	"github.com/moodjournal/mood-api/internal/pkg/logger"
)

const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// CreateInput is the client-supplied part of a new entry.
type CreateInput struct {
	Text       string   `json:"text"`
	Rating     float64  `json:"mood_rating"`
	Category   string   `json:"category"`
	ImagePaths []string `json:"image_paths"`
}

// Service manages journal entries.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates an entry service backed by repo.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create stores a new entry stamped with the current UTC time. Ratings are
// stored as supplied.
func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (*domain.MoodEntry, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, ErrOwnerRequired
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return nil, ErrCategoryRequired
	}

	images := []string{}
	for _, p := range in.ImagePaths {
		if p = strings.TrimSpace(p); p != "" {
			images = append(images, p)
		}
	}

	e := &domain.MoodEntry{
		OwnerID:    ownerID,
		Text:       in.Text,
		Rating:     in.Rating,
		Category:   category,
		ImagePaths: images,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	logger.Info("entry created", "user_id", ownerID, "entry_id", e.ID, "category", category)
	return e, nil
}

// List returns a page of the owner's journal, newest first.
func (s *Service) List(ctx context.Context, ownerID string, skip, limit int) ([]domain.MoodEntry, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, ErrOwnerRequired
	}
	if skip < 0 {
		skip = 0
	}
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	return s.repo.List(ctx, ownerID, ListFilter{Skip: skip, Limit: limit})
}

// Fetch returns the owner's entries in [start, end].
func (s *Service) Fetch(ctx context.Context, ownerID string, start, end time.Time) ([]domain.MoodEntry, error) {
	entries, err := s.repo.Fetch(ctx, ownerID, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].CreatedAt = entries[i].CreatedAt.UTC()
	}
	return entries, nil
}
