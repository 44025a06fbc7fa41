// Package repositories wraps the MongoDB collections behind typed
// accessors. Repositories do not enforce authorization; owner scoping is
// passed in explicitly by the services.
package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindmate/models"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

// UpsertByAuthUID finds the user for a verified auth subject, creating
// the record on first sight. The email is refreshed on every call so a
// changed address propagates without a separate update path.
func (r *UserRepository) UpsertByAuthUID(ctx context.Context, authUID, email string) (*models.User, error) {
	now := time.Now()

	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":                 uuid.NewString(),
			"auth_uid":            authUID,
			"display_name":        "",
			"preferred_language":  "en",
			"therapy_preferences": models.TherapyPreferences{FocusAreas: []string{}},
			"notification_prefs":  models.NotificationPrefs{},
			"created_at":          now,
		},
	}
	if email != "" {
		update["$set"] = bson.M{"email": email}
	} else {
		update["$setOnInsert"].(bson.M)["email"] = ""
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var user models.User
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"auth_uid": authUID}, update, opts).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID returns a user by internal id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ProfileUpdate carries the optional profile fields; nil fields are left
// untouched.
type ProfileUpdate struct {
	DisplayName        *string
	PreferredLanguage  *string
	TherapyPreferences *models.TherapyPreferences
	NotificationPrefs  *models.NotificationPrefs
}

// UpdateProfile applies the non-nil fields of the update and returns the
// fresh document.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*models.User, error) {
	set := bson.M{}
	if update.DisplayName != nil {
		set["display_name"] = *update.DisplayName
	}
	if update.PreferredLanguage != nil {
		set["preferred_language"] = *update.PreferredLanguage
	}
	if update.TherapyPreferences != nil {
		set["therapy_preferences"] = *update.TherapyPreferences
	}
	if update.NotificationPrefs != nil {
		set["notification_prefs"] = *update.NotificationPrefs
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes the user document.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
