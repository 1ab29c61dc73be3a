package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/academicms/portal-api/internal/core/domain"
)

const activityCollection = "auth_activity"

// ActivityRepository persists the auth activity trail.
type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activityCollection)}
}

type mongoActivity struct {
	UserID   string `bson:"user_id"`
	Username string `bson:"username"`
	Action   string `bson:"action"`
	At       int64  `bson:"at"`
}

func (r *ActivityRepository) Insert(ctx context.Context, event domain.ActivityEvent) error {
	doc := mongoActivity{
		UserID:   event.UserID,
		Username: event.Username,
		Action:   event.Action,
		At:       event.At.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (r *ActivityRepository) Recent(ctx context.Context, limit int) ([]domain.ActivityEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find activity: %w", err)
	}
	defer cursor.Close(ctx)

	var events []domain.ActivityEvent
	for cursor.Next(ctx) {
		var ma mongoActivity
		if err := cursor.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode activity: %w", err)
		}
		events = append(events, domain.ActivityEvent{
			UserID:   ma.UserID,
			Username: ma.Username,
			Action:   ma.Action,
			At:       time.Unix(ma.At, 0).UTC(),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("find activity: %w", err)
	}
	return events, nil
}
