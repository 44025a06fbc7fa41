// Package content holds the static catalogs: the exercise library, the
// crisis-resource directory, and the weekly plan templates. Everything
// here is a pure lookup over in-process data; there is no mutation.
package content

// Exercise is one guided wellness exercise with its scripted steps.
type Exercise struct {
	ID              int            `json:"id"`
	Slug            string         `json:"slug"`
	Title           string         `json:"title"`
	Category        string         `json:"category"`
	DurationMinutes int            `json:"duration_minutes"`
	Description     string         `json:"description"`
	Steps           []ExerciseStep `json:"steps"`
}

// ExerciseStep is one scripted step of an exercise.
type ExerciseStep struct {
	Number      int    `json:"number"`
	Instruction string `json:"instruction"`
}

// ExerciseSummary is the list view of an exercise, without steps.
type ExerciseSummary struct {
	ID              int    `json:"id"`
	Slug            string `json:"slug"`
	Title           string `json:"title"`
	Category        string `json:"category"`
	DurationMinutes int    `json:"duration_minutes"`
	Description     string `json:"description"`
}

var exercises = []Exercise{
	{
		ID:              1,
		Slug:            "box-breathing",
		Title:           "Box Breathing",
		Category:        "Breathing",
		DurationMinutes: 5,
		Description:     "A calming breathing technique: inhale, hold, exhale, hold in equal counts.",
		Steps: []ExerciseStep{
			{Number: 1, Instruction: "Find a comfortable seated position. You can close your eyes if comfortable."},
			{Number: 2, Instruction: "Breathe in slowly through your nose for a count of 4."},
			{Number: 3, Instruction: "Hold your breath for a count of 4."},
			{Number: 4, Instruction: "Exhale slowly through your mouth for a count of 4."},
			{Number: 5, Instruction: "Hold the empty breath for a count of 4."},
			{Number: 6, Instruction: "Repeat this cycle 5-10 times, or until you feel calmer."},
		},
	},
	{
		ID:              2,
		Slug:            "5-4-3-2-1-grounding",
		Title:           "5-4-3-2-1 Grounding Technique",
		Category:        "Grounding",
		DurationMinutes: 5,
		Description:     "Engage all five senses to anchor yourself in the present moment.",
		Steps: []ExerciseStep{
			{Number: 1, Instruction: "Identify 5 things you can SEE around you. Name them silently."},
			{Number: 2, Instruction: "Identify 4 things you can TOUCH. Feel their texture."},
			{Number: 3, Instruction: "Identify 3 things you can HEAR. Listen carefully."},
			{Number: 4, Instruction: "Identify 2 things you can SMELL (or imagine)."},
			{Number: 5, Instruction: "Identify 1 thing you can TASTE."},
		},
	},
	{
		ID:              3,
		Slug:            "gratitude-journaling",
		Title:           "Gratitude Journaling",
		Category:        "Journaling",
		DurationMinutes: 10,
		Description:     "Reflect on things you're grateful for, no matter how small.",
		Steps: []ExerciseStep{
			{Number: 1, Instruction: "Find a quiet space and a notebook or device where you can write."},
			{Number: 2, Instruction: "Write at the top: \"Today I am grateful for...\""},
			{Number: 3, Instruction: "List 3 things you're grateful for. They can be big or small."},
			{Number: 4, Instruction: "For each item, write a sentence about WHY you're grateful for it."},
			{Number: 5, Instruction: "Pause and notice how you feel. Gratitude shifts our perspective."},
		},
	},
	{
		ID:              4,
		Slug:            "cbt-thought-reframe",
		Title:           "CBT Thought Reframe",
		Category:        "Cognitive",
		DurationMinutes: 10,
		Description:     "Challenge unhelpful thoughts by examining evidence and reframing.",
		Steps: []ExerciseStep{
			{Number: 1, Instruction: "Identify a negative thought you're having. Write it down."},
			{Number: 2, Instruction: "Ask: \"What evidence do I have for this thought-\""},
			{Number: 3, Instruction: "Ask: \"What evidence do I have AGAINST this thought-\""},
			{Number: 4, Instruction: "Create a more balanced thought. Example: instead of \"I always fail,\" try \"I'm learning and sometimes struggle.\""},
			{Number: 5, Instruction: "Repeat the balanced thought. Notice how it feels different."},
		},
	},
	{
		ID:              5,
		Slug:            "dbt-wise-mind",
		Title:           "DBT Wise Mind Exercise",
		Category:        "Emotion Regulation",
		DurationMinutes: 10,
		Description:     "Balance emotion and logic to access your inner wisdom.",
		Steps: []ExerciseStep{
			{Number: 1, Instruction: "Sit comfortably. Place your hand on your heart."},
			{Number: 2, Instruction: "Notice your EMOTION MIND: \"What do I feel right now-\""},
			{Number: 3, Instruction: "Notice your LOGICAL MIND: \"What do the facts say-\""},
			{Number: 4, Instruction: "Now access your WISE MIND - the balance of both. Ask: \"What is my wisest choice right now?\""},
			{Number: 5, Instruction: "Trust that answer. Your wise mind integrates emotion and logic."},
		},
	},
	{
		ID:              6,
		Slug:            "progressive-muscle-relaxation",
		Title:           "Progressive Muscle Relaxation",
		Category:        "Relaxation",
		DurationMinutes: 10,
		Description:     "Release tension by tightening and relaxing muscle groups in sequence.",
		Steps: []ExerciseStep{
			{Number: 1, Instruction: "Sit or lie down comfortably. Take a slow breath in and out."},
			{Number: 2, Instruction: "Tighten the muscles in your feet for 5 seconds, then release."},
			{Number: 3, Instruction: "Tighten your calves for 5 seconds, then release."},
			{Number: 4, Instruction: "Tighten your thighs and hips for 5 seconds, then release."},
			{Number: 5, Instruction: "Tighten your shoulders, arms, and hands for 5 seconds, then release."},
			{Number: 6, Instruction: "Tighten your jaw and face for 5 seconds, then release and breathe slowly."},
		},
	},
}

// AllExercises returns the summary view of every exercise.
func AllExercises() []ExerciseSummary {
	out := make([]ExerciseSummary, 0, len(exercises))
	for _, ex := range exercises {
		out = append(out, ExerciseSummary{
			ID:              ex.ID,
			Slug:            ex.Slug,
			Title:           ex.Title,
			Category:        ex.Category,
			DurationMinutes: ex.DurationMinutes,
			Description:     ex.Description,
		})
	}
	return out
}

// ExerciseBySlug returns the full exercise for slug, or false when the
// slug is unknown.
func ExerciseBySlug(slug string) (Exercise, bool) {
	for _, ex := range exercises {
		if ex.Slug == slug {
			return ex, true
		}
	}
	return Exercise{}, false
}
