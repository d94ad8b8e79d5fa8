package repositories

import (
	"context"
	"time"

	"github.com/anonto42/recipebox/backend/internal/models"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActivityRepository defines the interface for the activity log
type ActivityRepository interface {
	Record(ctx context.Context, activity *models.Activity) error
	ListByUser(ctx context.Context, userID uint, skip, limit int64) ([]models.Activity, error)
}

// MongoActivityRepository implements ActivityRepository for MongoDB
type MongoActivityRepository struct {
	collection *mongo.Collection
}

// NewMongoActivityRepository creates a new MongoActivityRepository
func NewMongoActivityRepository(db *mongo.Database) *MongoActivityRepository {
	return &MongoActivityRepository{collection: db.Collection("activities")}
}

var _ ActivityRepository = (*MongoActivityRepository)(nil)

// Record stores an activity, assigning its ID and creation time.
func (r *MongoActivityRepository) Record(ctx context.Context, activity *models.Activity) error {
	activity.ID = primitive.NewObjectID()
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now().UTC()
	}
	if _, err := r.collection.InsertOne(ctx, activity); err != nil {
		return errors.Wrap(err, "insert activity")
	}
	return nil
}

// ListByUser retrieves the activities of a user, newest first
func (r *MongoActivityRepository) ListByUser(ctx context.Context, userID uint, skip, limit int64) ([]models.Activity, error) {
	activities := []models.Activity{}
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, errors.Wrap(err, "find activities")
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &activities); err != nil {
		return nil, errors.Wrap(err, "decode activities")
	}
	return activities, nil
}

// NopActivityRepository discards activities. It is used when no MongoDB is
// configured.
type NopActivityRepository struct{}

var _ ActivityRepository = NopActivityRepository{}

func (NopActivityRepository) Record(context.Context, *models.Activity) error { return nil }

func (NopActivityRepository) ListByUser(context.Context, uint, int64, int64) ([]models.Activity, error) {
	return []models.Activity{}, nil
}
