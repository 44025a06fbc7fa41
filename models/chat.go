package models

import "time"

// Message roles within a chat session.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Placeholder titles that are replaced by the first user message.
const (
	TitleNewChat      = "New Chat"
	TitleUntitledChat = "Untitled Chat"
)

// ChatSession is the container for one conversation.
// Collection: chat_sessions
//
// LastMessageAt is nil until the first turn is recorded; afterwards it
// always equals the created_at of the newest message in the session.
type ChatSession struct {
	ID            string     `bson:"_id" json:"id"`
	UserID        string     `bson:"user_id" json:"-"`
	CorrelationID string     `bson:"correlation_id,omitempty" json:"-"`
	Title         string     `bson:"title" json:"title"`
	Tags          []string   `bson:"tags" json:"tags"`
	CreatedAt     time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `bson:"updated_at" json:"updated_at"`
	LastMessageAt *time.Time `bson:"last_message_at,omitempty" json:"last_message_at"`
}

// ChatMessage is a single turn half. Messages are append-only and never
// mutated after creation; ordering within a session is by created_at.
// Collection: chat_messages
type ChatMessage struct {
	ID        string    `bson:"_id" json:"id"`
	SessionID string    `bson:"session_id" json:"-"`
	Role      string    `bson:"role" json:"role"`
	Content   string    `bson:"content" json:"content"`
	Language  string    `bson:"language" json:"language"`
	RiskFlags []string  `bson:"risk_flags" json:"risk_flags"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
