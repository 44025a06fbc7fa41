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

type ProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: db.Collection("therapy_profiles")}
}

// Upsert stores the owner's single intake profile, replacing any
// previous one.
func (r *ProfileRepository) Upsert(ctx context.Context, p *models.TherapyProfile) (*models.TherapyProfile, error) {
	p.UpdatedAt = time.Now()
	if p.FocusAreas == nil {
		p.FocusAreas = []string{}
	}

	update := bson.M{
		"$set": bson.M{
			"main_concern":         p.MainConcern,
			"concern_extra":        p.ConcernExtra,
			"approach":             p.Approach,
			"goals":                p.Goals,
			"minutes_per_day":      p.MinutesPerDay,
			"primary_goals":        p.PrimaryGoals,
			"preferred_approaches": p.PreferredApproaches,
			"frequency_preference": p.FrequencyPreference,
			"focus_areas":          p.FocusAreas,
			"updated_at":           p.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":     uuid.NewString(),
			"user_id": p.UserID,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored models.TherapyProfile
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"user_id": p.UserID}, update, opts).Decode(&stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// FindByOwner returns the owner's profile, or mongo.ErrNoDocuments.
func (r *ProfileRepository) FindByOwner(ctx context.Context, ownerID string) (*models.TherapyProfile, error) {
	var p models.TherapyProfile
	if err := r.col.FindOne(ctx, bson.M{"user_id": ownerID}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteByOwner removes the owner's profile if present.
func (r *ProfileRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"user_id": ownerID})
	return err
}
