package domain

import "time"

// SobrietyClock tracks time since a user stopped a habit.
type SobrietyClock struct {
	ID            string    `json:"id" db:"id"`
	UserID        string    `json:"user_id" db:"user_id"`
	AddictionType string    `json:"addiction_type" db:"addiction_type"`
	CustomName    string    `json:"custom_name" db:"custom_name"`
	StartDate     time.Time `json:"start_date" db:"start_date"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
