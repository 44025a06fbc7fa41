package repositories

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindmate/models"
)

type SessionRepository struct {
	col *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{col: db.Collection("chat_sessions")}
}

// Create inserts a new session. An empty ID or CreatedAt is filled in.
func (r *SessionRepository) Create(ctx context.Context, s *models.ChatSession) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	if s.Tags == nil {
		s.Tags = []string{}
	}
	_, err := r.col.InsertOne(ctx, s)
	return err
}

// FindByOwner returns the session only when it belongs to ownerID.
func (r *SessionRepository) FindByOwner(ctx context.Context, id, ownerID string) (*models.ChatSession, error) {
	var s models.ChatSession
	if err := r.col.FindOne(ctx, bson.M{"_id": id, "user_id": ownerID}).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByOwner returns all sessions of an owner, newest first.
func (r *SessionRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.ChatSession, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	cur, err := r.col.Find(ctx, bson.M{"user_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var results []models.ChatSession
	for cur.Next(ctx) {
		var s models.ChatSession
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		results = append(results, s)
	}
	return results, cur.Err()
}

// SearchByTitle returns the owner's sessions whose title contains the
// query, case-insensitively.
func (r *SessionRepository) SearchByTitle(ctx context.Context, ownerID, query string) ([]models.ChatSession, error) {
	filter := bson.M{
		"user_id": ownerID,
		"title":   primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"},
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var results []models.ChatSession
	for cur.Next(ctx) {
		var s models.ChatSession
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		results = append(results, s)
	}
	return results, cur.Err()
}

// FindByIDs returns the owner's sessions matching any of the given ids.
func (r *SessionRepository) FindByIDs(ctx context.Context, ownerID string, ids []string) ([]models.ChatSession, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	filter := bson.M{
		"user_id": ownerID,
		"_id":     bson.M{"$in": ids},
	}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var results []models.ChatSession
	for cur.Next(ctx) {
		var s models.ChatSession
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		results = append(results, s)
	}
	return results, cur.Err()
}

// Rename updates the title of an owned session. Returns
// mongo.ErrNoDocuments when the session is missing or not owned.
func (r *SessionRepository) Rename(ctx context.Context, id, ownerID, title string) (*models.ChatSession, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"title": title, "updated_at": time.Now()}}

	var s models.ChatSession
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id, "user_id": ownerID}, update, opts).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ClaimCorrelation reassigns sessions recorded under an anonymous
// correlation id to the given owner. Returns the number claimed.
func (r *SessionRepository) ClaimCorrelation(ctx context.Context, correlationID, ownerID string) (int64, error) {
	res, err := r.col.UpdateMany(ctx,
		bson.M{"correlation_id": correlationID, "user_id": bson.M{"$ne": ownerID}},
		bson.M{"$set": bson.M{"user_id": ownerID, "updated_at": time.Now()}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
