package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moodjournal/mood-api/internal/domain"
	"github.com/moodjournal/mood-api/internal/service/sobriety"
)

// SobrietyRepo implements sobriety.Repository against PostgreSQL.
type SobrietyRepo struct{ db *sql.DB }

// NewSobrietyRepo creates a Postgres-backed sobriety clock repository.
func NewSobrietyRepo(db *sql.DB) *SobrietyRepo { return &SobrietyRepo{db: db} }

func (r *SobrietyRepo) Create(ctx context.Context, c *domain.SobrietyClock) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sobriety_clocks (id, user_id, addiction_type, custom_name, start_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, c.ID, c.UserID, c.AddictionType, c.CustomName, c.StartDate, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create sobriety clock: %w", err)
	}
	return nil
}

func (r *SobrietyRepo) ListByUser(ctx context.Context, userID string) ([]domain.SobrietyClock, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, addiction_type, COALESCE(custom_name, ''), start_date, created_at
		FROM sobriety_clocks
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list sobriety clocks: %w", err)
	}
	defer rows.Close()

	var out []domain.SobrietyClock
	for rows.Next() {
		var c domain.SobrietyClock
		if err := rows.Scan(&c.ID, &c.UserID, &c.AddictionType, &c.CustomName, &c.StartDate, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sobriety clock: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SobrietyRepo) Delete(ctx context.Context, clockID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sobriety_clocks WHERE id = $1`, clockID)
	if err != nil {
		return fmt.Errorf("delete sobriety clock: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sobriety.ErrNotFound
	}
	return nil
}

func (r *SobrietyRepo) Reset(ctx context.Context, clockID string, start time.Time) (*domain.SobrietyClock, error) {
	var c domain.SobrietyClock
	err := r.db.QueryRowContext(ctx, `
		UPDATE sobriety_clocks SET start_date = $2
		WHERE id = $1
		RETURNING id, user_id, addiction_type, COALESCE(custom_name, ''), start_date, created_at
	`, clockID, start).Scan(&c.ID, &c.UserID, &c.AddictionType, &c.CustomName, &c.StartDate, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sobriety.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reset sobriety clock: %w", err)
	}
	return &c, nil
}
