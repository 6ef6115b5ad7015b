package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moodjournal/mood-api/internal/domain"
)

// AdviceRepo is the append-only advice cache on the ai_analysis_cache table.
// Rows are never updated or deleted here.
type AdviceRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewAdviceRepo creates a Postgres-backed advice cache.
func NewAdviceRepo(db *sql.DB) *AdviceRepo { return &AdviceRepo{db: db, now: time.Now} }

// Lookup returns the newest suggestion for (owner, label) created at or after since.
func (r *AdviceRepo) Lookup(ctx context.Context, ownerID string, label domain.RangeLabel, since time.Time) (string, bool, error) {
	var text string
	err := r.db.QueryRowContext(ctx, `
		SELECT ai_suggestion
		FROM ai_analysis_cache
		WHERE user_id = $1 AND range_type = $2 AND created_at >= $3
		ORDER BY created_at DESC
		LIMIT 1
	`, ownerID, string(label), since.UTC()).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup advice: %w", err)
	}
	return text, true, nil
}

// Store appends a new row stamped with the current time.
func (r *AdviceRepo) Store(ctx context.Context, ownerID string, label domain.RangeLabel, advice string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ai_analysis_cache (id, user_id, range_type, ai_suggestion, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.New().String(), ownerID, string(label), advice, r.now().UTC())
	if err != nil {
		return fmt.Errorf("store advice: %w", err)
	}
	return nil
}
