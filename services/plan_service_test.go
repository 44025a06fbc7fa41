package services

import (
	"context"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	"mindmate/models"
)

type fakePlanStore struct {
	profile *models.TherapyProfile
	plans   []*models.TherapyPlan
}

func (f *fakePlanStore) Upsert(_ context.Context, p *models.TherapyProfile) (*models.TherapyProfile, error) {
	copied := *p
	f.profile = &copied
	return &copied, nil
}

func (f *fakePlanStore) FindByOwner(_ context.Context, _ string) (*models.TherapyProfile, error) {
	if f.profile == nil {
		return nil, mongo.ErrNoDocuments
	}
	copied := *f.profile
	return &copied, nil
}

func (f *fakePlanStore) Insert(_ context.Context, p *models.TherapyPlan) error {
	if p.ID == "" {
		p.ID = fmt.Sprintf("plan-%d", len(f.plans)+1)
	}
	copied := *p
	f.plans = append(f.plans, &copied)
	return nil
}

func (f *fakePlanStore) FindLatestByOwner(_ context.Context, _ string) (*models.TherapyPlan, error) {
	if len(f.plans) == 0 {
		return nil, mongo.ErrNoDocuments
	}
	copied := *f.plans[len(f.plans)-1]
	return &copied, nil
}

func (f *fakePlanStore) ListByOwner(_ context.Context, _ string) ([]models.TherapyPlan, error) {
	out := make([]models.TherapyPlan, 0, len(f.plans))
	for i := len(f.plans) - 1; i >= 0; i-- {
		out = append(out, *f.plans[i])
	}
	return out, nil
}

func (f *fakePlanStore) CountByOwner(_ context.Context, _ string) (int64, error) {
	return int64(len(f.plans)), nil
}

func (f *fakePlanStore) SetDayCompleted(_ context.Context, id, _ string, dayIndex int, completed bool) (*models.TherapyPlan, error) {
	for _, p := range f.plans {
		if p.ID == id {
			p.Plan.WeeklyPlan[dayIndex].Completed = completed
			copied := *p
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func TestGeneratePlanRequiresProfile(t *testing.T) {
	store := &fakePlanStore{}
	svc := NewPlanService(store, store, &fakeAdmitter{allow: true})

	if _, serr := svc.GeneratePlan(context.Background(), testUser(), ""); serr == nil || serr.StatusCode != 404 {
		t.Fatalf("expected 404 without a profile, got %v", serr)
	}
}

func TestGeneratePlanIncrementsVersion(t *testing.T) {
	store := &fakePlanStore{
		profile: &models.TherapyProfile{UserID: "user-1", MainConcern: "anxiety", Approach: "cbt", MinutesPerDay: 10},
	}
	svc := NewPlanService(store, store, &fakeAdmitter{allow: true})

	first, serr := svc.GeneratePlan(context.Background(), testUser(), "")
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	second, serr := svc.GeneratePlan(context.Background(), testUser(), "")
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}

	if first.Version != 1 || second.Version != 2 {
		t.Fatalf("expected versions 1 and 2, got %d and %d", first.Version, second.Version)
	}
	if len(first.Plan.WeeklyPlan) != 7 {
		t.Fatalf("expected a 7-day plan, got %d days", len(first.Plan.WeeklyPlan))
	}
}

func TestGeneratePlanRateLimited(t *testing.T) {
	store := &fakePlanStore{
		profile: &models.TherapyProfile{UserID: "user-1", MainConcern: "stress"},
	}
	svc := NewPlanService(store, store, &fakeAdmitter{allow: false})

	if _, serr := svc.GeneratePlan(context.Background(), testUser(), ""); serr == nil || serr.StatusCode != 429 {
		t.Fatalf("expected rate limit rejection, got %v", serr)
	}
	if len(store.plans) != 0 {
		t.Fatalf("rejected generations must not be stored")
	}
}

func TestSaveProfileRequiresMainConcern(t *testing.T) {
	store := &fakePlanStore{}
	svc := NewPlanService(store, store, &fakeAdmitter{allow: true})

	if _, serr := svc.SaveProfile(context.Background(), testUser(), &models.TherapyProfile{}); serr == nil || serr.ErrorCode != "main_concern_required" {
		t.Fatalf("expected main_concern_required, got %v", serr)
	}
}

func TestCompletePlanDayBounds(t *testing.T) {
	store := &fakePlanStore{
		profile: &models.TherapyProfile{UserID: "user-1", MainConcern: "anxiety", Approach: "cbt"},
	}
	svc := NewPlanService(store, store, &fakeAdmitter{allow: true})

	plan, serr := svc.GeneratePlan(context.Background(), testUser(), "")
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}

	for _, index := range []int{-1, 7} {
		if _, serr := svc.CompletePlanDay(context.Background(), testUser(), plan.ID, index, true); serr == nil || serr.StatusCode != 400 {
			t.Fatalf("index %d: expected validation error, got %v", index, serr)
		}
	}

	updated, serr := svc.CompletePlanDay(context.Background(), testUser(), plan.ID, 2, true)
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	if !updated.Plan.WeeklyPlan[2].Completed {
		t.Fatalf("expected day 2 marked complete")
	}

	if _, serr := svc.CompletePlanDay(context.Background(), testUser(), "missing", 0, true); serr == nil || serr.StatusCode != 404 {
		t.Fatalf("expected 404 for unknown plan, got %v", serr)
	}
}
