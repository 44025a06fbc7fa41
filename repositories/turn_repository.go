package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mindmate/models"
)

// TurnRepository persists the multi-document writes of the chat
// pipeline inside MongoDB transactions, so a turn is either fully
// recorded or not recorded at all.
type TurnRepository struct {
	client   *mongo.Client
	sessions *mongo.Collection
	messages *mongo.Collection
}

func NewTurnRepository(client *mongo.Client, db *mongo.Database) *TurnRepository {
	return &TurnRepository{
		client:   client,
		sessions: db.Collection("chat_sessions"),
		messages: db.Collection("chat_messages"),
	}
}

// RecordTurn inserts both halves of a turn and bumps the session's
// bookkeeping fields in one transaction. newTitle is set when the first
// user message replaces a placeholder title; empty keeps the title.
func (r *TurnRepository) RecordTurn(ctx context.Context, sessionID string, userMsg, botMsg *models.ChatMessage, newTitle string) error {
	sess, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.messages.InsertOne(sc, userMsg); err != nil {
			return nil, err
		}
		if _, err := r.messages.InsertOne(sc, botMsg); err != nil {
			return nil, err
		}

		set := bson.M{
			"updated_at":      time.Now(),
			"last_message_at": botMsg.CreatedAt,
		}
		if newTitle != "" {
			set["title"] = newTitle
		}
		if _, err := r.sessions.UpdateByID(sc, sessionID, bson.M{"$set": set}); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

// DeleteSession removes a session and all of its messages in one
// transaction. Returns the number of deleted messages.
func (r *TurnRepository) DeleteSession(ctx context.Context, sessionID string) (int64, error) {
	sess, err := r.client.StartSession()
	if err != nil {
		return 0, err
	}
	defer sess.EndSession(ctx)

	result, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.messages.DeleteMany(sc, bson.M{"session_id": sessionID})
		if err != nil {
			return nil, err
		}
		if _, err := r.sessions.DeleteOne(sc, bson.M{"_id": sessionID}); err != nil {
			return nil, err
		}
		return res.DeletedCount, nil
	})
	if err != nil {
		return 0, err
	}
	return result.(int64), nil
}

// DeleteAllByOwner removes every session of an owner along with its
// messages. Returns deleted session and message counts.
func (r *TurnRepository) DeleteAllByOwner(ctx context.Context, ownerID string) (sessions int64, messages int64, err error) {
	sess, err := r.client.StartSession()
	if err != nil {
		return 0, 0, err
	}
	defer sess.EndSession(ctx)

	type counts struct{ sessions, messages int64 }

	result, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		cur, err := r.sessions.Find(sc, bson.M{"user_id": ownerID})
		if err != nil {
			return nil, err
		}
		var ids []string
		for cur.Next(sc) {
			var doc struct {
				ID string `bson:"_id"`
			}
			if err := cur.Decode(&doc); err != nil {
				cur.Close(sc)
				return nil, err
			}
			ids = append(ids, doc.ID)
		}
		cur.Close(sc)
		if err := cur.Err(); err != nil {
			return nil, err
		}

		var c counts
		if len(ids) > 0 {
			msgRes, err := r.messages.DeleteMany(sc, bson.M{"session_id": bson.M{"$in": ids}})
			if err != nil {
				return nil, err
			}
			c.messages = msgRes.DeletedCount
		}
		sessRes, err := r.sessions.DeleteMany(sc, bson.M{"user_id": ownerID})
		if err != nil {
			return nil, err
		}
		c.sessions = sessRes.DeletedCount
		return c, nil
	})
	if err != nil {
		return 0, 0, err
	}
	c := result.(counts)
	return c.sessions, c.messages, nil
}
