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

type CompletionRepository struct {
	col *mongo.Collection
}

func NewCompletionRepository(db *mongo.Database) *CompletionRepository {
	return &CompletionRepository{col: db.Collection("exercise_completions")}
}

// Insert records one finished exercise.
func (r *CompletionRepository) Insert(ctx context.Context, c *models.ExerciseCompletion) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CompletedAt.IsZero() {
		c.CompletedAt = time.Now()
	}
	if c.CompletionDate.IsZero() {
		c.CompletionDate = c.CompletedAt.UTC().Truncate(24 * time.Hour)
	}
	_, err := r.col.InsertOne(ctx, c)
	return err
}

// ListByOwner returns the owner's completions, newest first.
func (r *CompletionRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.ExerciseCompletion, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "completed_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	cur, err := r.col.Find(ctx, bson.M{"user_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var results []models.ExerciseCompletion
	for cur.Next(ctx) {
		var c models.ExerciseCompletion
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, cur.Err()
}

// DeleteAllByOwner removes the owner's completion history.
func (r *CompletionRepository) DeleteAllByOwner(ctx context.Context, ownerID string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"user_id": ownerID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
