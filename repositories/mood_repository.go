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

type MoodRepository struct {
	col *mongo.Collection
}

func NewMoodRepository(db *mongo.Database) *MoodRepository {
	return &MoodRepository{col: db.Collection("mood_entries")}
}

// UpsertByOwnerAndDate stores the entry for (owner, entry_date),
// replacing a same-day check-in rather than duplicating it.
func (r *MoodRepository) UpsertByOwnerAndDate(ctx context.Context, e *models.MoodEntry) (*models.MoodEntry, error) {
	if e.Tags == nil {
		e.Tags = []string{}
	}
	now := time.Now()

	update := bson.M{
		"$set": bson.M{
			"mood_score": e.MoodScore,
			"tags":       e.Tags,
			"note":       e.Note,
			"created_at": now,
		},
		"$setOnInsert": bson.M{
			"_id":        uuid.NewString(),
			"user_id":    e.UserID,
			"entry_date": e.EntryDate,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored models.MoodEntry
	filter := bson.M{"user_id": e.UserID, "entry_date": e.EntryDate}
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// ListByOwner returns the owner's entries, oldest first, optionally
// bounded by entry date.
func (r *MoodRepository) ListByOwner(ctx context.Context, ownerID string, from, to *time.Time) ([]models.MoodEntry, error) {
	filter := bson.M{"user_id": ownerID}
	dateRange := bson.M{}
	if from != nil {
		dateRange["$gte"] = *from
	}
	if to != nil {
		dateRange["$lte"] = *to
	}
	if len(dateRange) > 0 {
		filter["entry_date"] = dateRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "entry_date", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var results []models.MoodEntry
	for cur.Next(ctx) {
		var e models.MoodEntry
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		results = append(results, e)
	}
	return results, cur.Err()
}

// ClaimCorrelation reassigns anonymous entries to the given owner.
func (r *MoodRepository) ClaimCorrelation(ctx context.Context, correlationID, ownerID string) (int64, error) {
	res, err := r.col.UpdateMany(ctx,
		bson.M{"correlation_id": correlationID, "user_id": bson.M{"$ne": ownerID}},
		bson.M{"$set": bson.M{"user_id": ownerID}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// DeleteAllByOwner removes every entry of an owner.
func (r *MoodRepository) DeleteAllByOwner(ctx context.Context, ownerID string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"user_id": ownerID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
