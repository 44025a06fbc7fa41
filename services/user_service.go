package services

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	"mindmate/models"
	"mindmate/repositories"
)

// UserService resolves authenticated identities and manages the user
// profile.
type UserService struct {
	users    *repositories.UserRepository
	sessions CorrelationClaimer
	moods    CorrelationClaimer
}

// CorrelationClaimer reassigns rows recorded under an anonymous
// correlation id to an owner.
type CorrelationClaimer interface {
	ClaimCorrelation(ctx context.Context, correlationID, ownerID string) (int64, error)
}

func NewUserService(users *repositories.UserRepository, sessions, moods CorrelationClaimer) *UserService {
	return &UserService{users: users, sessions: sessions, moods: moods}
}

// Resolve satisfies auth.IdentityResolver: it upserts the user record
// for a verified token subject.
func (s *UserService) Resolve(ctx context.Context, subject, email string) (*models.User, error) {
	return s.users.UpsertByAuthUID(ctx, subject, email)
}

// GetProfile returns the caller's own user document.
func (s *UserService) GetProfile(ctx context.Context, user *models.User) (*models.User, *Error) {
	fresh, err := s.users.FindByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, NotFound("user_not_found")
		}
		return nil, Internal("user_lookup_failed", err)
	}
	return fresh, nil
}

// UpdateProfile applies the non-nil profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, user *models.User, update repositories.ProfileUpdate) (*models.User, *Error) {
	if update.PreferredLanguage != nil && strings.TrimSpace(*update.PreferredLanguage) == "" {
		return nil, Validation("preferred_language_invalid")
	}

	fresh, err := s.users.UpdateProfile(ctx, user.ID, update)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, NotFound("user_not_found")
		}
		return nil, Internal("user_update_failed", err)
	}
	return fresh, nil
}

// AttachSessionResult reports how many anonymous rows were claimed.
type AttachSessionResult struct {
	Sessions int64 `json:"sessions"`
	Moods    int64 `json:"moods"`
}

// AttachSession claims rows recorded under an anonymous correlation id
// for the authenticated caller.
func (s *UserService) AttachSession(ctx context.Context, user *models.User, correlationID string) (*AttachSessionResult, *Error) {
	correlationID = strings.TrimSpace(correlationID)
	if correlationID == "" {
		return nil, Validation("session_id_required")
	}

	claimedSessions, err := s.sessions.ClaimCorrelation(ctx, correlationID, user.ID)
	if err != nil {
		return nil, Internal("attach_failed", err)
	}
	claimedMoods, err := s.moods.ClaimCorrelation(ctx, correlationID, user.ID)
	if err != nil {
		return nil, Internal("attach_failed", err)
	}

	return &AttachSessionResult{Sessions: claimedSessions, Moods: claimedMoods}, nil
}
