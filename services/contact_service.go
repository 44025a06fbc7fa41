package services

import (
	"context"
	"regexp"
	"strings"
	"time"

	"mindmate/models"
	"mindmate/ratelimit"
)

const maxContactMessageChars = 2000

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactService handles the public contact form.
type ContactService struct {
	contacts ContactStore
	limiter  Admitter
}

type ContactStore interface {
	Insert(ctx context.Context, m *models.ContactMessage) error
}

func NewContactService(contacts ContactStore, limiter Admitter) *ContactService {
	return &ContactService{contacts: contacts, limiter: limiter}
}

// SubmitContactInput is one contact form submission. Honeypot is the
// hidden "company" field; bots filling it are rejected as invalid
// without touching storage. UserID may be empty for anonymous callers.
type SubmitContactInput struct {
	UserID        string
	CorrelationID string
	RemoteAddr    string
	Name          string
	Email         string
	Category      string
	Message       string
	Honeypot      string
}

// SubmitContact validates and stores one submission. The rate key
// prefers the user id, then the correlation id, then the remote address.
func (s *ContactService) SubmitContact(ctx context.Context, in SubmitContactInput) (*models.ContactMessage, *Error) {
	if strings.TrimSpace(in.Honeypot) != "" {
		return nil, Validation("invalid_submission")
	}

	email := strings.TrimSpace(in.Email)
	if email == "" || !emailPattern.MatchString(email) {
		return nil, Validation("email_invalid")
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return nil, Validation("category_required")
	}
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, Validation("message_required")
	}
	if runes := []rune(message); len(runes) > maxContactMessageChars {
		message = string(runes[:maxContactMessageChars])
	}

	identity := in.UserID
	if identity == "" {
		identity = in.CorrelationID
	}
	if identity == "" {
		identity = in.RemoteAddr
	}
	if ok, retryAfter := s.limiter.Admit(identity, ratelimit.ActionContact, time.Now()); !ok {
		return nil, RateLimited(retryAfter)
	}

	contact := &models.ContactMessage{
		UserID:        in.UserID,
		CorrelationID: in.CorrelationID,
		Name:          strings.TrimSpace(in.Name),
		Email:         email,
		Category:      category,
		Message:       message,
	}
	if err := s.contacts.Insert(ctx, contact); err != nil {
		return nil, Internal("contact_save_failed", err)
	}
	return contact, nil
}
