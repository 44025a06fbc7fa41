package services

import (
	"context"
	"time"

	"mindmate/assistant"
	"mindmate/models"
)

// The interfaces below are the slices of the repositories and the
// generative backend the services actually touch. The repository types
// satisfy them directly; tests substitute in-memory fakes.

type SessionStore interface {
	Create(ctx context.Context, s *models.ChatSession) error
	FindByOwner(ctx context.Context, id, ownerID string) (*models.ChatSession, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.ChatSession, error)
	SearchByTitle(ctx context.Context, ownerID, query string) ([]models.ChatSession, error)
	FindByIDs(ctx context.Context, ownerID string, ids []string) ([]models.ChatSession, error)
	Rename(ctx context.Context, id, ownerID, title string) (*models.ChatSession, error)
}

type MessageStore interface {
	ListBySession(ctx context.Context, sessionID string) ([]models.ChatMessage, error)
	SearchSessionIDs(ctx context.Context, query string) ([]string, error)
}

type TurnStore interface {
	RecordTurn(ctx context.Context, sessionID string, userMsg, botMsg *models.ChatMessage, newTitle string) error
	DeleteSession(ctx context.Context, sessionID string) (int64, error)
	DeleteAllByOwner(ctx context.Context, ownerID string) (sessions int64, messages int64, err error)
}

// Generator is the generative backend surface used by the chat and
// exercise services. A nil Generator means no backend is configured.
type Generator interface {
	Reply(ctx context.Context, in assistant.ReplyInput) (string, error)
	GuidedStep(ctx context.Context, in assistant.StepInput) (assistant.GuidedStep, error)
}

// Admitter is the rate-limit admission check.
type Admitter interface {
	Admit(identity, action string, now time.Time) (ok bool, retryAfter time.Duration)
}
