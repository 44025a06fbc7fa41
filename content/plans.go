package content

import (
	"fmt"
	"strings"

	"mindmate/models"
)

// planTemplate is one (concern, approach) plan template.
type planTemplate struct {
	Theme     string
	Focus     string
	Exercises []string
}

var planTemplates = map[string]map[string]planTemplate{
	"anxiety": {
		"cbt": {
			Theme:     "Cognitive Behavioral Therapy for Anxiety",
			Focus:     "Identifying and challenging anxious thoughts, gradual exposure",
			Exercises: []string{"breathing", "thought-reframe", "grounding"},
		},
		"dbt": {
			Theme:     "Dialectical Behavior Therapy for Anxiety",
			Focus:     "Emotion regulation and distress tolerance",
			Exercises: []string{"breathing", "grounding", "wise-mind"},
		},
		"psychodynamic": {
			Theme:     "Psychodynamic Approach to Anxiety",
			Focus:     "Exploring unconscious patterns and roots of anxiety",
			Exercises: []string{"journaling", "reflection", "thought-reframe"},
		},
	},
	"depression": {
		"cbt": {
			Theme:     "Cognitive Behavioral Therapy for Depression",
			Focus:     "Behavioral activation and thought challenging",
			Exercises: []string{"gratitude", "breathing", "thought-reframe"},
		},
		"dbt": {
			Theme:     "Dialectical Behavior Therapy for Depression",
			Focus:     "Building a life worth living and emotion regulation",
			Exercises: []string{"wise-mind", "gratitude", "grounding"},
		},
	},
	"stress": {
		"cbt": {
			Theme:     "Managing Stress with Cognitive Strategies",
			Focus:     "Stress identification and cognitive restructuring",
			Exercises: []string{"breathing", "thought-reframe", "grounding"},
		},
		"dbt": {
			Theme:     "DBT Skills for Stress Management",
			Focus:     "Distress tolerance and emotion regulation",
			Exercises: []string{"breathing", "wise-mind", "grounding"},
		},
	},
}

var dailyExercises = map[string]string{
	"breathing":       "Box Breathing (4-4-4-4 count)",
	"grounding":       "5-4-3-2-1 Grounding Technique",
	"gratitude":       "Gratitude Journaling (3 things)",
	"thought-reframe": "CBT Thought Reframe",
	"wise-mind":       "DBT Wise Mind Exercise",
	"journaling":      "Reflective Journaling",
}

var reflectionQuestions = map[string][]string{
	"anxiety": {
		"What was one moment today where you felt slightly less anxious?",
		"What coping strategy helped you today?",
		"What triggered your anxiety, and what can you learn from it?",
	},
	"depression": {
		"What is one small thing you accomplished today?",
		"How did today compare to yesterday?",
		"What activity brought you even a small moment of ease?",
	},
	"stress": {
		"What was the biggest stressor today, and how did you manage it?",
		"What helped you feel calmer?",
		"What would you do differently tomorrow?",
	},
}

var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// PlanProfile is the subset of the therapy profile the generator uses.
type PlanProfile struct {
	MainConcern   string
	Approach      string
	MinutesPerDay int
}

func exerciseName(key string) string {
	if name, ok := dailyExercises[key]; ok {
		return name
	}
	return "Reflection"
}

// GenerateWeeklyPlan deterministically builds a weekly plan from the
// profile. Unknown approaches fall back to the concern's CBT template,
// and unknown concerns to a generic awareness plan, mirroring how the
// templates degrade rather than failing the request.
func GenerateWeeklyPlan(profile PlanProfile) models.PlanDocument {
	concern := strings.ToLower(profile.MainConcern)
	if concern == "" {
		concern = "stress"
	}
	approach := strings.ToLower(profile.Approach)
	if approach == "" {
		approach = "cbt"
	}
	minutes := profile.MinutesPerDay
	if minutes <= 0 {
		minutes = 10
	}

	template, ok := planTemplates[concern][approach]
	if !ok {
		template, ok = planTemplates[concern]["cbt"]
	}
	if !ok {
		template = planTemplate{
			Theme:     fmt.Sprintf("Therapeutic Plan for %s", titleCase(concern)),
			Focus:     "Building awareness and coping strategies",
			Exercises: []string{"breathing", "grounding", "thought-reframe"},
		}
	}

	exercises := template.Exercises
	if len(exercises) == 0 {
		exercises = []string{"breathing", "grounding"}
	}
	reflections, ok := reflectionQuestions[concern]
	if !ok || len(reflections) == 0 {
		reflections = []string{"How are you feeling today?"}
	}

	weeklyPlan := make([]models.PlanDay, 0, len(weekdays))
	for i, day := range weekdays {
		exerciseKey := exercises[i%len(exercises)]
		weeklyPlan = append(weeklyPlan, models.PlanDay{
			Day:                day,
			DailyGoal:          fmt.Sprintf("Practice %s (%d min)", exerciseName(exerciseKey), minutes),
			Exercise:           exerciseKey,
			ExerciseName:       exerciseName(exerciseKey),
			ReflectionQuestion: reflections[i%len(reflections)],
		})
	}

	return models.PlanDocument{
		Theme:         template.Theme,
		Focus:         template.Focus,
		MinutesPerDay: minutes,
		WeeklyPlan:    weeklyPlan,
		ActionItems: []string{
			"Schedule one calming activity this week",
			"Practice your chosen exercise at least twice",
			"Share your goal with someone you trust",
		},
		ReflectionPrompt: reflections[0],
		CopingExercise:   exerciseName(exercises[0]),
		MicroGoals: []string{
			"Drink a glass of water after waking up",
			"Step outside for 5 minutes",
			"Write one encouraging note to yourself",
		},
		Note: fmt.Sprintf(
			"This plan is tailored to your concerns (%s) using %s principles. Adjust as needed - consistency matters more than perfection.",
			concern, strings.ToUpper(approach),
		),
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
