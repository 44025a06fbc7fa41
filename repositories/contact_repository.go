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

type ContactRepository struct {
	col *mongo.Collection
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{col: db.Collection("contact_messages")}
}

// Insert stores one contact submission.
func (r *ContactRepository) Insert(ctx context.Context, m *models.ContactMessage) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	_, err := r.col.InsertOne(ctx, m)
	return err
}

// ListByOwner returns the owner's submissions newest first.
func (r *ContactRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.ContactMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"user_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.ContactMessage
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteAllByOwner removes the owner's submissions.
func (r *ContactRepository) DeleteAllByOwner(ctx context.Context, ownerID string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"user_id": ownerID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
