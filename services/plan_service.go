package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"mindmate/content"
	"mindmate/models"
	"mindmate/ratelimit"
)

// PlanService manages the intake profile and the generated weekly plans.
type PlanService struct {
	profiles ProfileStore
	plans    PlanStore
	limiter  Admitter
}

type ProfileStore interface {
	Upsert(ctx context.Context, p *models.TherapyProfile) (*models.TherapyProfile, error)
	FindByOwner(ctx context.Context, ownerID string) (*models.TherapyProfile, error)
}

type PlanStore interface {
	Insert(ctx context.Context, p *models.TherapyPlan) error
	FindLatestByOwner(ctx context.Context, ownerID string) (*models.TherapyPlan, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.TherapyPlan, error)
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
	SetDayCompleted(ctx context.Context, id, ownerID string, dayIndex int, completed bool) (*models.TherapyPlan, error)
}

func NewPlanService(profiles ProfileStore, plans PlanStore, limiter Admitter) *PlanService {
	return &PlanService{profiles: profiles, plans: plans, limiter: limiter}
}

// SaveProfile upserts the owner's intake profile.
func (s *PlanService) SaveProfile(ctx context.Context, user *models.User, profile *models.TherapyProfile) (*models.TherapyProfile, *Error) {
	if strings.TrimSpace(profile.MainConcern) == "" {
		return nil, Validation("main_concern_required")
	}
	profile.UserID = user.ID

	stored, err := s.profiles.Upsert(ctx, profile)
	if err != nil {
		return nil, Internal("profile_save_failed", err)
	}
	return stored, nil
}

// GetProfile returns the owner's intake profile.
func (s *PlanService) GetProfile(ctx context.Context, user *models.User) (*models.TherapyProfile, *Error) {
	profile, err := s.profiles.FindByOwner(ctx, user.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, NotFound("profile_not_found")
		}
		return nil, Internal("profile_lookup_failed", err)
	}
	return profile, nil
}

// GeneratePlan builds a new plan version from the stored profile. A
// missing profile is a NotFound; generation is rate limited.
func (s *PlanService) GeneratePlan(ctx context.Context, user *models.User, correlationID string) (*models.TherapyPlan, *Error) {
	if ok, retryAfter := s.limiter.Admit(user.ID, ratelimit.ActionPlanGenerate, time.Now()); !ok {
		return nil, RateLimited(retryAfter)
	}

	profile, err := s.profiles.FindByOwner(ctx, user.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, NotFound("profile_not_found")
		}
		return nil, Internal("profile_lookup_failed", err)
	}

	count, err := s.plans.CountByOwner(ctx, user.ID)
	if err != nil {
		return nil, Internal("plan_count_failed", err)
	}

	document := content.GenerateWeeklyPlan(content.PlanProfile{
		MainConcern:   profile.MainConcern,
		Approach:      profile.Approach,
		MinutesPerDay: profile.MinutesPerDay,
	})

	plan := &models.TherapyPlan{
		UserID:        user.ID,
		CorrelationID: correlationID,
		Plan:          document,
		Version:       int(count) + 1,
	}
	if err := s.plans.Insert(ctx, plan); err != nil {
		return nil, Internal("plan_save_failed", err)
	}
	return plan, nil
}

// LatestPlan returns the owner's newest plan version.
func (s *PlanService) LatestPlan(ctx context.Context, user *models.User) (*models.TherapyPlan, *Error) {
	plan, err := s.plans.FindLatestByOwner(ctx, user.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, NotFound("plan_not_found")
		}
		return nil, Internal("plan_lookup_failed", err)
	}
	return plan, nil
}

// PlanHistory returns every plan version, newest first.
func (s *PlanService) PlanHistory(ctx context.Context, user *models.User) ([]models.TherapyPlan, *Error) {
	plans, err := s.plans.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, Internal("plan_list_failed", err)
	}
	if plans == nil {
		plans = []models.TherapyPlan{}
	}
	return plans, nil
}

// CompletePlanDay flips one day's completed flag after bounds checks.
func (s *PlanService) CompletePlanDay(ctx context.Context, user *models.User, planID string, dayIndex int, completed bool) (*models.TherapyPlan, *Error) {
	if planID == "" {
		return nil, Validation("plan_id_required")
	}
	if dayIndex < 0 || dayIndex > 6 {
		return nil, Validation("day_index_out_of_range")
	}

	plan, err := s.plans.SetDayCompleted(ctx, planID, user.ID, dayIndex, completed)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, NotFound("plan_not_found")
		}
		return nil, Internal("plan_update_failed", err)
	}
	return plan, nil
}
