package summary

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/moodjournal/mood-api/internal/advice"
	"github.com/moodjournal/mood-api/internal/domain"
	"github.com/moodjournal/mood-api/internal/pkg/logger"
)

// DefaultFreshness is how long a cached suggestion stays eligible.
const DefaultFreshness = 24 * time.Hour

// DefaultMaxSpanDays caps how many calendar days one summary may cover.
const DefaultMaxSpanDays = 3660

// Request asks for a summary. Start and End are both nil (default window)
// or both set. Entries are counted only when they fall inside [Start, End].
type Request struct {
	OwnerID  string
	Start    *time.Time
	End      *time.Time
	Language string
}

// Period echoes the bounds a summary was computed for.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Response is the summary payload returned to clients.
type Response struct {
	Period            Period                    `json:"period"`
	EntryCount        int                       `json:"entry_count"`
	AverageMoodRating float64                   `json:"average_mood_rating"`
	MoodStats         *domain.CategoryHistogram `json:"mood_stats"`
	DailyCounts       map[string]int            `json:"daily_counts"`
	AISuggestion      string                    `json:"ai_suggestion"`
	RangeLabel        domain.RangeLabel         `json:"range_label"`
	Cached            bool                      `json:"cached"`
}

// Service assembles period summaries. It is safe for concurrent use and
// keeps no per-request state.
type Service struct {
	entries   EntryFetcher
	cache     AdviceCache
	generator AdviceGenerator
	freshness time.Duration
	maxSpan   int
	now       func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithFreshness overrides the cache freshness window.
func WithFreshness(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.freshness = d
		}
	}
}

// WithMaxSpanDays overrides the longest accepted range in calendar days.
func WithMaxSpanDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.maxSpan = days
		}
	}
}

// WithClock replaces time.Now. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a summary service.
func NewService(entries EntryFetcher, cache AdviceCache, generator AdviceGenerator, opts ...Option) *Service {
	s := &Service{
		entries:   entries,
		cache:     cache,
		generator: generator,
		freshness: DefaultFreshness,
		maxSpan:   DefaultMaxSpanDays,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize runs Fetch → Aggregate → Classify → CacheLookup → {CacheHit |
// Generate} → Respond. Only entry store failures are returned as errors.
func (s *Service) Summarize(ctx context.Context, req Request) (*Response, error) {
	owner := strings.TrimSpace(req.OwnerID)
	if owner == "" {
		return nil, ErrOwnerRequired
	}
	start, end, err := s.window(req)
	if err != nil {
		return nil, err
	}

	entries, err := s.entries.Fetch(ctx, owner, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch entries: %w", err)
	}

	stats := Aggregate(entries, start, end)
	label := Classify(start, end)

	resp := &Response{
		Period:            Period{Start: start, End: end},
		EntryCount:        stats.EntryCount,
		AverageMoodRating: round2(stats.AverageRating),
		MoodStats:         stats.Categories,
		DailyCounts:       stats.Daily,
		RangeLabel:        label,
	}

	if text, ok := s.lookup(ctx, owner, label); ok {
		resp.AISuggestion = text
		resp.Cached = true
		logger.Info("summary: served cached advice", "user_id", owner, "label", label, "entries", stats.EntryCount)
		return resp, nil
	}

	result := s.generator.Generate(ctx, advice.Request{
		Stats:    stats,
		Start:    start,
		End:      end,
		Language: req.Language,
	})
	resp.AISuggestion = result.Text

	if result.Generated {
		if err := s.cache.Store(ctx, owner, label, result.Text); err != nil {
			logger.Warn("summary: advice cache store failed", "user_id", owner, "label", label, "error", err)
		}
	}

	logger.Info("summary: served generated advice",
		"user_id", owner, "label", label, "entries", stats.EntryCount,
		"generated", result.Generated, "model", result.Model)
	return resp, nil
}

func (s *Service) window(req Request) (time.Time, time.Time, error) {
	switch {
	case req.Start == nil && req.End == nil:
		start, end := DefaultWindow(s.now())
		return start, end, nil
	case req.Start == nil || req.End == nil:
		return time.Time{}, time.Time{}, ErrPartialRange
	}
	start, end := req.Start.UTC(), req.End.UTC()
	if start.After(end) {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	if DaysBetween(start, end) > s.maxSpan {
		return time.Time{}, time.Time{}, ErrRangeTooLong
	}
	return start, end, nil
}

// lookup treats cache errors as a miss.
func (s *Service) lookup(ctx context.Context, owner string, label domain.RangeLabel) (string, bool) {
	since := s.now().UTC().Add(-s.freshness)
	text, ok, err := s.cache.Lookup(ctx, owner, label, since)
	if err != nil {
		logger.Warn("summary: advice cache lookup failed", "user_id", owner, "label", label, "error", err)
		return "", false
	}
	return text, ok
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
