package models

import "time"

// User represents an authenticated caller.
// Collection: users
type User struct {
	ID                 string             `bson:"_id" json:"id"`
	AuthUID            string             `bson:"auth_uid" json:"auth_uid"`
	Email              string             `bson:"email" json:"email"`
	DisplayName        string             `bson:"display_name" json:"display_name"`
	PreferredLanguage  string             `bson:"preferred_language" json:"preferred_language"`
	TherapyPreferences TherapyPreferences `bson:"therapy_preferences" json:"therapy_preferences"`
	NotificationPrefs  NotificationPrefs  `bson:"notification_prefs" json:"notification_prefs"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
}

// TherapyPreferences holds the caller's conversational preferences.
// Stored as a typed subdocument, validated at the storage boundary.
type TherapyPreferences struct {
	Tone           string   `bson:"tone" json:"tone"`
	ResponseLength string   `bson:"response_length" json:"response_length"`
	FocusAreas     []string `bson:"focus_areas" json:"focus_areas"`
}

// NotificationPrefs holds opt-in notification switches.
type NotificationPrefs struct {
	EmailReminders   bool `bson:"email_reminders" json:"email_reminders"`
	CheckinReminders bool `bson:"checkin_reminders" json:"checkin_reminders"`
}
