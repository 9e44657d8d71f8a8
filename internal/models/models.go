package models

import "time"

// Mood is the tri-state mood label attached to every entry.
type Mood string

const (
	MoodPositive Mood = "positive"
	MoodNeutral  Mood = "neutral"
	MoodNegative Mood = "negative"
)

// Valid reports whether the mood is one of the three known labels.
func (m Mood) Valid() bool {
	switch m {
	case MoodPositive, MoodNeutral, MoodNegative:
		return true
	}
	return false
}

// Entry represents a single recorded habit event. Entries are immutable
// once written; analysis never mutates them.
type Entry struct {
	ID        int64     `json:"id"`
	Date      time.Time `json:"date"`      // calendar day, normalized to midnight UTC
	Timestamp time.Time `json:"timestamp"` // recording time, not used by analysis
	RawInput  string    `json:"raw_input"`
	Category  string    `json:"category"`
	Mood      Mood      `json:"mood"`
	Metrics   Metrics   `json:"metrics,omitempty"`
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DateKey returns the entry's calendar day as YYYY-MM-DD.
func (e *Entry) DateKey() string {
	return e.Date.Format(time.DateOnly)
}

// CreateEntryRequest represents the request to record a new entry.
type CreateEntryRequest struct {
	Date     string  `json:"date"` // YYYY-MM-DD, defaults to today
	RawInput string  `json:"raw_input" binding:"required"`
	Category string  `json:"category" binding:"required"`
	Mood     Mood    `json:"mood" binding:"required,oneof=positive neutral negative"`
	Metrics  Metrics `json:"metrics"`
	Note     *string `json:"note"`
}
