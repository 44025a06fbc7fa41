package dto

import (
	"mindmate/models"
	"mindmate/safety"
)

// SendMessageRequest is one inbound chat turn. The user text travels in
// the "content" field.
type SendMessageRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Message   string `json:"content"`
	Language  string `json:"language"`
}

// SafetyCheck is the classification attached to a turn response.
type SafetyCheck struct {
	RiskLevel safety.RiskLevel `json:"risk_level"`
	Reasons   []string         `json:"reasons"`
}

// SendMessageResponse is the completed turn.
type SendMessageResponse struct {
	MessageID   string      `json:"message_id"`
	BotResponse string      `json:"bot_response"`
	CrisisMode  bool        `json:"crisis_mode"`
	SafetyCheck SafetyCheck `json:"safety_check"`
}

// CreateSessionRequest opens a new session. SessionID carries the
// client's anonymous correlation id, if any.
type CreateSessionRequest struct {
	SessionID string `json:"session_id"`
}

// RenameSessionRequest sets a caller-chosen title.
type RenameSessionRequest struct {
	Title string `json:"title"`
}

// SessionListResponse lists the owner's sessions.
type SessionListResponse struct {
	Sessions []models.ChatSession `json:"sessions"`
}

// SessionDetailResponse is one session with its messages.
type SessionDetailResponse struct {
	Session  *models.ChatSession  `json:"session"`
	Messages []models.ChatMessage `json:"messages"`
}

// DeleteSessionsResponse reports a bulk session delete.
type DeleteSessionsResponse struct {
	DeletedSessions int64 `json:"deleted_sessions"`
	DeletedMessages int64 `json:"deleted_messages"`
}

// SafetyCheckRequest is the standalone classification request.
type SafetyCheckRequest struct {
	Text string `json:"text"`
}
