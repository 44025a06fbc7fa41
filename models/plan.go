package models

import "time"

// TherapyProfile is the caller's intake profile used for plan generation.
// Collection: therapy_profiles
type TherapyProfile struct {
	ID                  string    `bson:"_id" json:"-"`
	UserID              string    `bson:"user_id" json:"-"`
	CorrelationID       string    `bson:"correlation_id,omitempty" json:"-"`
	MainConcern         string    `bson:"main_concern" json:"main_concern"`
	ConcernExtra        string    `bson:"concern_extra" json:"concern_extra"`
	Approach            string    `bson:"approach" json:"approach"`
	Goals               string    `bson:"goals" json:"goals"`
	MinutesPerDay       int       `bson:"minutes_per_day" json:"minutes_per_day"`
	PrimaryGoals        string    `bson:"primary_goals" json:"primary_goals"`
	PreferredApproaches string    `bson:"preferred_approaches" json:"preferred_approaches"`
	FrequencyPreference string    `bson:"frequency_preference" json:"frequency_preference"`
	FocusAreas          []string  `bson:"focus_areas" json:"focus_areas"`
	UpdatedAt           time.Time `bson:"updated_at" json:"updated_at"`
}

// TherapyPlan is one generated plan version for a user.
// Collection: therapy_plans
type TherapyPlan struct {
	ID            string       `bson:"_id" json:"id"`
	UserID        string       `bson:"user_id" json:"-"`
	CorrelationID string       `bson:"correlation_id,omitempty" json:"-"`
	Plan          PlanDocument `bson:"plan" json:"plan"`
	Version       int          `bson:"version" json:"version"`
	CreatedAt     time.Time    `bson:"created_at" json:"created_at"`
}

// PlanDocument is the generated weekly plan, stored as a typed
// subdocument rather than an opaque serialized blob.
type PlanDocument struct {
	Theme            string    `bson:"theme" json:"theme"`
	Focus            string    `bson:"focus" json:"focus"`
	MinutesPerDay    int       `bson:"minutes_per_day" json:"minutes_per_day"`
	WeeklyPlan       []PlanDay `bson:"weekly_plan" json:"weekly_plan"`
	ActionItems      []string  `bson:"action_items" json:"action_items"`
	ReflectionPrompt string    `bson:"reflection_prompt" json:"reflection_prompt"`
	CopingExercise   string    `bson:"coping_exercise" json:"coping_exercise"`
	MicroGoals       []string  `bson:"micro_goals" json:"micro_goals"`
	Note             string    `bson:"note" json:"note"`
}

// PlanDay is one day of the weekly plan.
type PlanDay struct {
	Day                string `bson:"day" json:"day"`
	DailyGoal          string `bson:"daily_goal" json:"daily_goal"`
	Exercise           string `bson:"exercise" json:"exercise"`
	ExerciseName       string `bson:"exercise_name" json:"exercise_name"`
	ReflectionQuestion string `bson:"reflection_question" json:"reflection_question"`
	Completed          bool   `bson:"completed" json:"completed"`
}
