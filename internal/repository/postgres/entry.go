package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/moodjournal/mood-api/internal/domain"
	"github.com/moodjournal/mood-api/internal/service/entry"
)

// imageSeparator joins image paths into the single image_paths column.
const imageSeparator = "|"

const entryColumns = `id, owner_id, COALESCE(text, ''), mood_rating, category,
	COALESCE(ai_analysis, ''), COALESCE(conversation, ''), COALESCE(image_paths, ''), date`

// EntryRepo implements entry.Repository against PostgreSQL.
type EntryRepo struct{ db *sql.DB }

// NewEntryRepo creates a Postgres-backed entry repository.
func NewEntryRepo(db *sql.DB) *EntryRepo { return &EntryRepo{db: db} }

func (r *EntryRepo) Create(ctx context.Context, e *domain.MoodEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO mood_entries (id, owner_id, text, mood_rating, category, ai_analysis, conversation, image_paths, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, e.ID, e.OwnerID, e.Text, e.Rating, e.Category, e.AIAnalysis, e.Conversation,
		strings.Join(e.ImagePaths, imageSeparator), e.CreatedAt)
	if err != nil {
		return fmt.Errorf("create entry: %w", err)
	}
	return nil
}

func (r *EntryRepo) List(ctx context.Context, ownerID string, f entry.ListFilter) ([]domain.MoodEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+entryColumns+`
		FROM mood_entries
		WHERE owner_id = $1
		ORDER BY date DESC
		LIMIT $2 OFFSET $3
	`, ownerID, f.Limit, f.Skip)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Fetch returns entries with date in [start, end], both inclusive.
func (r *EntryRepo) Fetch(ctx context.Context, ownerID string, start, end time.Time) ([]domain.MoodEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+entryColumns+`
		FROM mood_entries
		WHERE owner_id = $1 AND date >= $2 AND date <= $3
	`, ownerID, start.UTC(), end.UTC())
	if err != nil {
		return nil, fmt.Errorf("fetch entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]domain.MoodEntry, error) {
	var out []domain.MoodEntry
	for rows.Next() {
		var e domain.MoodEntry
		var images string
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Text, &e.Rating, &e.Category,
			&e.AIAnalysis, &e.Conversation, &images, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.ImagePaths = splitImages(images)
		e.CreatedAt = e.CreatedAt.UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return out, nil
}

func splitImages(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, imageSeparator)
}
