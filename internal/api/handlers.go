package api

import (
	"context"
	"time"

	"github.com/moodjournal/mood-api/internal/advice"
	"github.com/moodjournal/mood-api/internal/domain"
	"github.com/moodjournal/mood-api/internal/service/entry"
	"github.com/moodjournal/mood-api/internal/service/sobriety"
	"github.com/moodjournal/mood-api/internal/service/summary"
)

// Summarizer produces period summaries.
type Summarizer interface {
	Summarize(ctx context.Context, req summary.Request) (*summary.Response, error)
}

// Analyzer reflects on a single journal entry.
type Analyzer interface {
	Analyze(ctx context.Context, text, previousContext, language string) advice.Result
}

// EntryService creates and lists journal entries.
type EntryService interface {
	Create(ctx context.Context, ownerID string, in entry.CreateInput) (*domain.MoodEntry, error)
	List(ctx context.Context, ownerID string, skip, limit int) ([]domain.MoodEntry, error)
}

// SobrietyService manages sobriety clocks.
type SobrietyService interface {
	Create(ctx context.Context, userID, addictionType, customName string, start time.Time) (*domain.SobrietyClock, error)
	List(ctx context.Context, userID string) ([]domain.SobrietyClock, error)
	Delete(ctx context.Context, clockID string) error
	Reset(ctx context.Context, clockID string, newStart time.Time) (*domain.SobrietyClock, error)
	Elapsed(c domain.SobrietyClock) sobriety.Elapsed
}

// Handlers contains the HTTP handlers
type Handlers struct {
	summaries   Summarizer
	analyzer    Analyzer
	entries     EntryService
	sobriety    SobrietyService
	defaultLang string
}

// NewHandlers creates handlers over the given services.
func NewHandlers(summaries Summarizer, analyzer Analyzer, entries EntryService, sob SobrietyService, defaultLang string) *Handlers {
	return &Handlers{
		summaries:   summaries,
		analyzer:    analyzer,
		entries:     entries,
		sobriety:    sob,
		defaultLang: defaultLang,
	}
}
