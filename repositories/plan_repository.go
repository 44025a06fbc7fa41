package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindmate/models"
)

type PlanRepository struct {
	col *mongo.Collection
}

func NewPlanRepository(db *mongo.Database) *PlanRepository {
	return &PlanRepository{col: db.Collection("therapy_plans")}
}

// Insert stores a newly generated plan version.
func (r *PlanRepository) Insert(ctx context.Context, p *models.TherapyPlan) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	_, err := r.col.InsertOne(ctx, p)
	return err
}

// FindLatestByOwner returns the owner's newest plan.
func (r *PlanRepository) FindLatestByOwner(ctx context.Context, ownerID string) (*models.TherapyPlan, error) {
	opts := options.FindOne().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	var p models.TherapyPlan
	if err := r.col.FindOne(ctx, bson.M{"user_id": ownerID}, opts).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByOwner returns all plan versions of an owner, newest first.
func (r *PlanRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.TherapyPlan, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	cur, err := r.col.Find(ctx, bson.M{"user_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var results []models.TherapyPlan
	for cur.Next(ctx) {
		var p models.TherapyPlan
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, cur.Err()
}

// CountByOwner returns how many plan versions the owner has.
func (r *PlanRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"user_id": ownerID})
}

// FindByIDAndOwner returns one owned plan version.
func (r *PlanRepository) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*models.TherapyPlan, error) {
	var p models.TherapyPlan
	if err := r.col.FindOne(ctx, bson.M{"_id": id, "user_id": ownerID}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SetDayCompleted flips one day's completed flag on an owned plan.
func (r *PlanRepository) SetDayCompleted(ctx context.Context, id, ownerID string, dayIndex int, completed bool) (*models.TherapyPlan, error) {
	field := fmt.Sprintf("plan.weekly_plan.%d.completed", dayIndex)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.TherapyPlan
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "user_id": ownerID},
		bson.M{"$set": bson.M{field: completed}},
		opts,
	).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteAllByOwner removes every plan version of an owner.
func (r *PlanRepository) DeleteAllByOwner(ctx context.Context, ownerID string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"user_id": ownerID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
