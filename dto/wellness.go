package dto

import "mindmate/models"

// MoodRequest is one mood check-in.
type MoodRequest struct {
	MoodScore int      `json:"mood_score"`
	Tags      []string `json:"tags"`
	Note      string   `json:"note"`
	SessionID string   `json:"session_id"`
}

// MoodListResponse lists mood entries oldest first.
type MoodListResponse struct {
	Entries []models.MoodEntry `json:"entries"`
}

// ContactRequest is the public contact form. Reason is an accepted alias
// for Category; Company is the hidden honeypot field.
type ContactRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Category  string `json:"category"`
	Reason    string `json:"reason"`
	Message   string `json:"message"`
	Company   string `json:"company"`
	SessionID string `json:"session_id"`
}

// ExerciseCompleteRequest records a finished exercise.
type ExerciseCompleteRequest struct {
	Slug      string `json:"slug" binding:"required"`
	SessionID string `json:"session_id"`
}

// GuidedStepRequest asks for one exercise step, scripted or generated.
type GuidedStepRequest struct {
	Slug      string `json:"slug" binding:"required"`
	StepIndex int    `json:"step_index"`
	Mode      string `json:"mode"`
	Language  string `json:"language"`
}

// TherapyProfileRequest is the plan intake form.
type TherapyProfileRequest struct {
	MainConcern         string   `json:"main_concern"`
	ConcernExtra        string   `json:"concern_extra"`
	Approach            string   `json:"approach"`
	Goals               string   `json:"goals"`
	MinutesPerDay       int      `json:"minutes_per_day"`
	PrimaryGoals        string   `json:"primary_goals"`
	PreferredApproaches string   `json:"preferred_approaches"`
	FrequencyPreference string   `json:"frequency_preference"`
	FocusAreas          []string `json:"focus_areas"`
}

// PlanCompleteRequest flips one day's completed flag. A missing
// Completed field means true.
type PlanCompleteRequest struct {
	PlanID    string `json:"plan_id" binding:"required"`
	DayIndex  int    `json:"day_index"`
	Completed *bool  `json:"completed"`
}

// PlanHistoryResponse lists plan versions newest first.
type PlanHistoryResponse struct {
	Plans []models.TherapyPlan `json:"plans"`
}

// UserProfileRequest updates the account profile; nil fields are left
// untouched.
type UserProfileRequest struct {
	DisplayName        *string                    `json:"display_name"`
	PreferredLanguage  *string                    `json:"preferred_language"`
	TherapyPreferences *models.TherapyPreferences `json:"therapy_preferences"`
	NotificationPrefs  *models.NotificationPrefs  `json:"notification_prefs"`
}

// AttachSessionRequest claims anonymous rows by correlation id.
type AttachSessionRequest struct {
	SessionID string `json:"session_id"`
}

// GeoCountryResponse is the geolocation placeholder.
type GeoCountryResponse struct {
	Country *string `json:"country"`
}
