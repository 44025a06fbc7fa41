package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"mindmate/models"
	"mindmate/repositories"
)

// DataService covers the account-wide export and erase operations.
type DataService struct {
	users       *repositories.UserRepository
	sessions    *repositories.SessionRepository
	messages    *repositories.MessageRepository
	turns       *repositories.TurnRepository
	moods       *repositories.MoodRepository
	profiles    *repositories.ProfileRepository
	plans       *repositories.PlanRepository
	contacts    *repositories.ContactRepository
	completions *repositories.CompletionRepository
}

func NewDataService(
	users *repositories.UserRepository,
	sessions *repositories.SessionRepository,
	messages *repositories.MessageRepository,
	turns *repositories.TurnRepository,
	moods *repositories.MoodRepository,
	profiles *repositories.ProfileRepository,
	plans *repositories.PlanRepository,
	contacts *repositories.ContactRepository,
	completions *repositories.CompletionRepository,
) *DataService {
	return &DataService{
		users:       users,
		sessions:    sessions,
		messages:    messages,
		turns:       turns,
		moods:       moods,
		profiles:    profiles,
		plans:       plans,
		contacts:    contacts,
		completions: completions,
	}
}

// SessionWithMessages pairs a session with its full message history for
// the export document.
type SessionWithMessages struct {
	Session  models.ChatSession   `json:"session"`
	Messages []models.ChatMessage `json:"messages"`
}

// UserExport is the full account data document.
type UserExport struct {
	ExportedAt  time.Time                   `json:"exported_at"`
	User        *models.User                `json:"user"`
	MoodEntries []models.MoodEntry          `json:"mood_entries"`
	ChatData    []SessionWithMessages       `json:"chat_data"`
	Contacts    []models.ContactMessage     `json:"contact_messages"`
	Profile     *models.TherapyProfile      `json:"therapy_profile"`
	LatestPlan  *models.TherapyPlan         `json:"latest_plan"`
	Completions []models.ExerciseCompletion `json:"exercise_completions"`
}

// Export assembles everything stored for the caller into one document.
// Optional sections that do not exist are null rather than errors.
func (s *DataService) Export(ctx context.Context, user *models.User) (*UserExport, *Error) {
	export := &UserExport{
		ExportedAt: time.Now().UTC(),
		User:       user,
	}

	moods, err := s.moods.ListByOwner(ctx, user.ID, nil, nil)
	if err != nil {
		return nil, Internal("export_failed", err)
	}
	if moods == nil {
		moods = []models.MoodEntry{}
	}
	export.MoodEntries = moods

	sessions, err := s.sessions.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, Internal("export_failed", err)
	}
	export.ChatData = make([]SessionWithMessages, 0, len(sessions))
	for _, session := range sessions {
		messages, err := s.messages.ListBySession(ctx, session.ID)
		if err != nil {
			return nil, Internal("export_failed", err)
		}
		if messages == nil {
			messages = []models.ChatMessage{}
		}
		export.ChatData = append(export.ChatData, SessionWithMessages{Session: session, Messages: messages})
	}

	contacts, err := s.contacts.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, Internal("export_failed", err)
	}
	if contacts == nil {
		contacts = []models.ContactMessage{}
	}
	export.Contacts = contacts

	profile, err := s.profiles.FindByOwner(ctx, user.ID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, Internal("export_failed", err)
	}
	export.Profile = profile

	plan, err := s.plans.FindLatestByOwner(ctx, user.ID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, Internal("export_failed", err)
	}
	export.LatestPlan = plan

	completions, err := s.completions.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, Internal("export_failed", err)
	}
	if completions == nil {
		completions = []models.ExerciseCompletion{}
	}
	export.Completions = completions

	return export, nil
}

// DeletedCounts reports what an account erase removed.
type DeletedCounts struct {
	Sessions    int64 `json:"sessions"`
	Messages    int64 `json:"messages"`
	MoodEntries int64 `json:"mood_entries"`
	Plans       int64 `json:"plans"`
	Contacts    int64 `json:"contacts"`
	Completions int64 `json:"completions"`
}

// DeleteAll erases every collection's rows for the caller, ending with
// the user document itself.
func (s *DataService) DeleteAll(ctx context.Context, user *models.User) (*DeletedCounts, *Error) {
	counts := &DeletedCounts{}

	sessions, messages, err := s.turns.DeleteAllByOwner(ctx, user.ID)
	if err != nil {
		return nil, Internal("delete_failed", err)
	}
	counts.Sessions = sessions
	counts.Messages = messages

	if counts.MoodEntries, err = s.moods.DeleteAllByOwner(ctx, user.ID); err != nil {
		return nil, Internal("delete_failed", err)
	}
	if err := s.profiles.DeleteByOwner(ctx, user.ID); err != nil {
		return nil, Internal("delete_failed", err)
	}
	if counts.Plans, err = s.plans.DeleteAllByOwner(ctx, user.ID); err != nil {
		return nil, Internal("delete_failed", err)
	}
	if counts.Contacts, err = s.contacts.DeleteAllByOwner(ctx, user.ID); err != nil {
		return nil, Internal("delete_failed", err)
	}
	if counts.Completions, err = s.completions.DeleteAllByOwner(ctx, user.ID); err != nil {
		return nil, Internal("delete_failed", err)
	}
	if err := s.users.Delete(ctx, user.ID); err != nil {
		return nil, Internal("delete_failed", err)
	}

	return counts, nil
}
