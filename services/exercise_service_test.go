package services

import (
	"context"
	"errors"
	"testing"

	"mindmate/assistant"
	"mindmate/models"
)

type fakeCompletionStore struct {
	inserted []*models.ExerciseCompletion
}

func (f *fakeCompletionStore) Insert(_ context.Context, c *models.ExerciseCompletion) error {
	f.inserted = append(f.inserted, c)
	return nil
}

func (f *fakeCompletionStore) ListByOwner(_ context.Context, _ string) ([]models.ExerciseCompletion, error) {
	out := make([]models.ExerciseCompletion, 0, len(f.inserted))
	for _, c := range f.inserted {
		out = append(out, *c)
	}
	return out, nil
}

type fakeStepGenerator struct {
	step  assistant.GuidedStep
	err   error
	calls int
}

func (g *fakeStepGenerator) Reply(_ context.Context, _ assistant.ReplyInput) (string, error) {
	return "", errors.New("not implemented")
}

func (g *fakeStepGenerator) GuidedStep(_ context.Context, _ assistant.StepInput) (assistant.GuidedStep, error) {
	g.calls++
	return g.step, g.err
}

func TestGuidedStepValidatesIndex(t *testing.T) {
	svc := NewExerciseService(&fakeCompletionStore{}, nil)

	if _, serr := svc.GuidedStep(context.Background(), "box-breathing", -1, "", "en"); serr == nil || serr.StatusCode != 400 {
		t.Fatalf("expected validation error for negative index, got %v", serr)
	}
	if _, serr := svc.GuidedStep(context.Background(), "box-breathing", 99, "", "en"); serr == nil || serr.StatusCode != 404 {
		t.Fatalf("expected 404 for out-of-range index, got %v", serr)
	}
	if _, serr := svc.GuidedStep(context.Background(), "no-such-exercise", 0, "", "en"); serr == nil || serr.StatusCode != 404 {
		t.Fatalf("expected 404 for unknown slug, got %v", serr)
	}
}

func TestGuidedStepScriptedMode(t *testing.T) {
	gen := &fakeStepGenerator{}
	svc := NewExerciseService(&fakeCompletionStore{}, gen)

	step, serr := svc.GuidedStep(context.Background(), "box-breathing", 1, "scripted", "en")
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	if gen.calls != 0 {
		t.Fatalf("scripted mode must not call the backend")
	}
	if step.Text != "Breathe in slowly through your nose for a count of 4." {
		t.Fatalf("unexpected step text: %q", step.Text)
	}
	if step.Title != "Step 2" {
		t.Fatalf("expected step-number title, got %q", step.Title)
	}
}

func TestGuidedStepAIMode(t *testing.T) {
	timer := 4
	gen := &fakeStepGenerator{step: assistant.GuidedStep{Title: "Step 2", Text: "Inhale slowly.", TimerSeconds: &timer}}
	svc := NewExerciseService(&fakeCompletionStore{}, gen)

	step, serr := svc.GuidedStep(context.Background(), "box-breathing", 1, "ai", "en")
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	if gen.calls != 1 {
		t.Fatalf("expected one backend call, got %d", gen.calls)
	}
	if step.Text != "Inhale slowly." {
		t.Fatalf("expected generated step, got %q", step.Text)
	}
}

func TestGuidedStepAIFailureFallsBackToScript(t *testing.T) {
	gen := &fakeStepGenerator{err: errors.New("backend down")}
	svc := NewExerciseService(&fakeCompletionStore{}, gen)

	step, serr := svc.GuidedStep(context.Background(), "box-breathing", 1, "ai", "en")
	if serr != nil {
		t.Fatalf("backend failure must fall back, not error: %v", serr)
	}
	if step.Text != "Breathe in slowly through your nose for a count of 4." {
		t.Fatalf("expected scripted fallback, got %q", step.Text)
	}
	if step.Title != "Step 2" {
		t.Fatalf("expected step-number title, got %q", step.Title)
	}
}

func TestGuidedStepAIModeWithoutBackendServesScript(t *testing.T) {
	svc := NewExerciseService(&fakeCompletionStore{}, nil)

	step, serr := svc.GuidedStep(context.Background(), "box-breathing", 0, "ai", "en")
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	if step.Text == "" {
		t.Fatalf("expected scripted step text")
	}
}

func TestCompleteUnknownExercise(t *testing.T) {
	store := &fakeCompletionStore{}
	svc := NewExerciseService(store, nil)

	if _, serr := svc.Complete(context.Background(), testUser(), "no-such-exercise", ""); serr == nil || serr.StatusCode != 404 {
		t.Fatalf("expected 404 for unknown slug, got %v", serr)
	}
	if len(store.inserted) != 0 {
		t.Fatalf("unknown slugs must not be recorded")
	}
}

func TestCompleteRecordsCompletion(t *testing.T) {
	store := &fakeCompletionStore{}
	svc := NewExerciseService(store, nil)

	completion, serr := svc.Complete(context.Background(), testUser(), "box-breathing", "anon-7")
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	if completion.ExerciseSlug != "box-breathing" || completion.UserID != "user-1" {
		t.Fatalf("unexpected completion: %+v", completion)
	}
	if completion.CorrelationID != "anon-7" {
		t.Fatalf("correlation id must be stored, got %q", completion.CorrelationID)
	}
}
