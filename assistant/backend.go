// Package assistant wraps the Gemini API as the chat pipeline's
// generative backend. The handle is optional: when no API key is
// configured the service runs without one and the orchestrator serves
// scripted fallbacks instead.
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const SYSTEM_PROMPT = "You are a supportive mental health assistant, not a licensed therapist. " +
	"Your role is to offer empathetic, evidence-informed guidance. " +
	"Do NOT diagnose conditions, prescribe medication, or claim to provide professional treatment. " +
	"If the user seems to be in crisis, expresses intent to self-harm or harm others, or describes an emergency, " +
	"tell them you cannot provide crisis support and urge them to contact local emergency services or a trusted " +
	"mental health professional or crisis hotline immediately. " +
	"Be warm, validating, and non-judgmental. Offer practical, gentle suggestions using language like " +
	"'you might consider...' rather than telling the user what they must do. " +
	"Keep responses brief (3-6 sentences) and focused on the user's message."

const GUIDED_STEP_INSTRUCTION = `You are guiding a short wellness exercise, one step at a time.
The response MUST be a valid JSON object with three keys:

1. title: A short step heading, e.g. "Step 2".
2. text: The instruction for this step, in the requested language, 1-3 sentences.
3. timer_seconds: An integer number of seconds the user should hold this step, or null when no timer applies.

Additional constraints:
- You MUST NOT wrap the JSON output in a markdown code block (e.g. ` + "```json ... ```" + `).
- The response should contain ONLY the raw JSON string.`

// Config carries everything needed to construct a backend handle.
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Backend is a constructed, usable generative backend handle. A nil
// *Backend means the backend is unavailable; callers branch on that
// rather than probing with a call and catching the failure.
type Backend struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// Turn is one prior message handed to the model as history.
type Turn struct {
	Role    string
	Content string
}

// ReplyInput is the conversational context for one reply.
type ReplyInput struct {
	Language string
	Content  string
	History  []Turn
}

// StepInput requests one structured guided-exercise step.
type StepInput struct {
	ExerciseTitle string
	StepIndex     int
	Language      string
}

// GuidedStep is the small structured payload for one exercise step.
type GuidedStep struct {
	Title        string `json:"title"`
	Text         string `json:"text"`
	TimerSeconds *int   `json:"timer_seconds"`
}

// New constructs the backend handle. It fails when the API key is
// missing; deciding to run without a backend is the caller's call.
func New(ctx context.Context, cfg Config) (*Backend, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("assistant: api key is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("assistant: model name is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, err
	}

	return &Backend{client: client, model: cfg.Model, timeout: timeout}, nil
}

// Reply generates one assistant reply for the given context. The call is
// bounded by the configured timeout; a timeout surfaces as an error like
// any other backend failure.
func (b *Backend) Reply(ctx context.Context, in ReplyInput) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	contents := make([]*genai.Content, 0, len(in.History)+1)
	for _, turn := range in.History {
		role := "user"
		if turn.Role != "user" {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: turn.Content}},
		})
	}
	contents = append(contents, &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{{Text: fmt.Sprintf("[Language: %s] %s", in.Language, in.Content)}},
	})

	result, err := b.client.Models.GenerateContent(
		ctx,
		b.model,
		contents,
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: SYSTEM_PROMPT}}},
		},
	)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", errors.New("assistant: empty model response")
	}
	return text, nil
}

// GuidedStep asks the model for one structured exercise step. Any
// transport or decode failure is returned as-is; the caller falls back
// to the scripted step catalog.
func (b *Backend) GuidedStep(ctx context.Context, in StepInput) (GuidedStep, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"Exercise: %s. Step index: %d. Respond in language: %s.",
		in.ExerciseTitle, in.StepIndex, in.Language,
	)

	result, err := b.client.Models.GenerateContent(
		ctx,
		b.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: GUIDED_STEP_INSTRUCTION}}},
		},
	)
	if err != nil {
		return GuidedStep{}, err
	}

	return decodeGuidedStep(result.Text())
}

// decodeGuidedStep parses the model's JSON payload, tolerating the
// markdown fencing some models add despite the instruction.
func decodeGuidedStep(raw string) (GuidedStep, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var step GuidedStep
	if err := json.Unmarshal([]byte(raw), &step); err != nil {
		return GuidedStep{}, fmt.Errorf("assistant: decode guided step: %w", err)
	}
	if step.Text == "" {
		return GuidedStep{}, errors.New("assistant: guided step missing text")
	}
	return step, nil
}
