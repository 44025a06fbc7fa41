package services

import (
	"context"
	"fmt"
	"time"

	"mindmate/assistant"
	"mindmate/content"
	"mindmate/logger"
	"mindmate/models"
)

// ExerciseService serves the static exercise catalog, the guided-step
// mode, and per-user completion tracking.
type ExerciseService struct {
	completions CompletionStore
	backend     Generator
}

type CompletionStore interface {
	Insert(ctx context.Context, c *models.ExerciseCompletion) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.ExerciseCompletion, error)
}

func NewExerciseService(completions CompletionStore, backend Generator) *ExerciseService {
	return &ExerciseService{completions: completions, backend: backend}
}

// List returns every exercise without steps.
func (s *ExerciseService) List() []content.ExerciseSummary {
	return content.AllExercises()
}

// Get returns one exercise with its steps.
func (s *ExerciseService) Get(slug string) (content.Exercise, *Error) {
	ex, ok := content.ExerciseBySlug(slug)
	if !ok {
		return content.Exercise{}, NotFound("exercise_not_found")
	}
	return ex, nil
}

// Complete records a finished exercise for the owner.
func (s *ExerciseService) Complete(ctx context.Context, user *models.User, slug, correlationID string) (*models.ExerciseCompletion, *Error) {
	if _, ok := content.ExerciseBySlug(slug); !ok {
		return nil, NotFound("exercise_not_found")
	}

	completion := &models.ExerciseCompletion{
		UserID:        user.ID,
		CorrelationID: correlationID,
		ExerciseSlug:  slug,
		CompletedAt:   time.Now(),
	}
	if err := s.completions.Insert(ctx, completion); err != nil {
		return nil, Internal("completion_record_failed", err)
	}
	return completion, nil
}

// Progress lists the owner's completion history, newest first.
func (s *ExerciseService) Progress(ctx context.Context, user *models.User) ([]models.ExerciseCompletion, *Error) {
	completions, err := s.completions.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, Internal("completion_list_failed", err)
	}
	if completions == nil {
		completions = []models.ExerciseCompletion{}
	}
	return completions, nil
}

// GuidedStep returns one exercise step. Mode "ai" asks the backend for a
// generated step and falls back to the scripted step on any failure;
// every other mode serves the scripted step directly.
func (s *ExerciseService) GuidedStep(ctx context.Context, slug string, stepIndex int, mode, language string) (assistant.GuidedStep, *Error) {
	if stepIndex < 0 {
		return assistant.GuidedStep{}, Validation("step_index_invalid")
	}
	ex, ok := content.ExerciseBySlug(slug)
	if !ok {
		return assistant.GuidedStep{}, NotFound("exercise_not_found")
	}
	if stepIndex >= len(ex.Steps) {
		return assistant.GuidedStep{}, NotFound("step_not_found")
	}
	if language == "" {
		language = "en"
	}

	if mode == "ai" && s.backend != nil {
		step, err := s.backend.GuidedStep(ctx, assistant.StepInput{
			ExerciseTitle: ex.Title,
			StepIndex:     stepIndex,
			Language:      language,
		})
		if err == nil {
			return step, nil
		}
		logger.Log.Warnf("exercise: guided step generation failed, using scripted step: %v", err)
	}

	scripted := ex.Steps[stepIndex]
	return assistant.GuidedStep{
		Title: fmt.Sprintf("Step %d", scripted.Number),
		Text:  scripted.Instruction,
	}, nil
}
