package domain

import "time"

// MoodEntry is a single journal record. OwnerID never changes after creation;
// Rating (documented as 1.0-5.0) and Category are taken as supplied.
// CreatedAt is always UTC once it leaves the entry store.
type MoodEntry struct {
	ID           string    `json:"id" db:"id"`
	OwnerID      string    `json:"owner_id" db:"owner_id"`
	Text         string    `json:"text" db:"text"`
	Rating       float64   `json:"mood_rating" db:"mood_rating"`
	Category     string    `json:"category" db:"category"`
	AIAnalysis   string    `json:"ai_analysis,omitempty" db:"ai_analysis"`
	Conversation string    `json:"conversation,omitempty" db:"conversation"`
	ImagePaths   []string  `json:"image_paths" db:"image_paths"`
	CreatedAt    time.Time `json:"date" db:"date"`
}

// DayKey is the calendar-day key an entry contributes to in daily histograms.
func (e MoodEntry) DayKey() string {
	return e.CreatedAt.UTC().Format(DayLayout)
}

// DayLayout is the ISO date format used for daily histogram keys.
const DayLayout = "2006-01-02"
