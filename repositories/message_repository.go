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

type MessageRepository struct {
	col *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{col: db.Collection("chat_messages")}
}

// Insert appends a single message.
func (r *MessageRepository) Insert(ctx context.Context, m *models.ChatMessage) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	if m.RiskFlags == nil {
		m.RiskFlags = []string{}
	}
	_, err := r.col.InsertOne(ctx, m)
	return err
}

// ListBySession returns all messages of a session in chronological order.
func (r *MessageRepository) ListBySession(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: 1},
		{Key: "_id", Value: 1},
	})
	cur, err := r.col.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var results []models.ChatMessage
	for cur.Next(ctx) {
		var m models.ChatMessage
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		results = append(results, m)
	}
	return results, cur.Err()
}

// SearchSessionIDs returns the distinct session ids that contain a
// message matching the query, case-insensitively. Ownership is filtered
// by the caller against its own session list.
func (r *MessageRepository) SearchSessionIDs(ctx context.Context, query string) ([]string, error) {
	filter := bson.M{
		"content": primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"},
	}
	values, err := r.col.Distinct(ctx, "session_id", filter)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// CountBySession returns the message count of one session.
func (r *MessageRepository) CountBySession(ctx context.Context, sessionID string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"session_id": sessionID})
}

// DeleteBySession removes every message of a session.
func (r *MessageRepository) DeleteBySession(ctx context.Context, sessionID string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"session_id": sessionID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
