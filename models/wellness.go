package models

import "time"

// MoodEntry is one mood check-in, at most one per owner per day.
// Collection: mood_entries
//
// EntryDate is truncated to UTC midnight; it is the key used for streak
// and trend calculations.
type MoodEntry struct {
	ID            string    `bson:"_id" json:"id"`
	UserID        string    `bson:"user_id" json:"-"`
	CorrelationID string    `bson:"correlation_id,omitempty" json:"-"`
	MoodScore     int       `bson:"mood_score" json:"mood_score"`
	Tags          []string  `bson:"tags" json:"tags"`
	Note          string    `bson:"note" json:"note"`
	EntryDate     time.Time `bson:"entry_date" json:"-"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}

// ContactMessage is a contact form submission; UserID is empty for
// anonymous submitters correlated only by CorrelationID.
// Collection: contact_messages
type ContactMessage struct {
	ID            string    `bson:"_id" json:"id"`
	UserID        string    `bson:"user_id,omitempty" json:"-"`
	CorrelationID string    `bson:"correlation_id,omitempty" json:"-"`
	Name          string    `bson:"name" json:"name"`
	Email         string    `bson:"email" json:"email"`
	Category      string    `bson:"category" json:"category"`
	Message       string    `bson:"message" json:"message"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}

// ExerciseCompletion tracks a finished exercise for streaks and history.
// Collection: exercise_completions
type ExerciseCompletion struct {
	ID             string    `bson:"_id" json:"id"`
	UserID         string    `bson:"user_id" json:"-"`
	CorrelationID  string    `bson:"correlation_id,omitempty" json:"-"`
	ExerciseSlug   string    `bson:"exercise_slug" json:"exercise_slug"`
	CompletionDate time.Time `bson:"completion_date" json:"-"`
	CompletedAt    time.Time `bson:"completed_at" json:"completed_at"`
}
