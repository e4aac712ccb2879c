package repositories

import (
	"context"

	"github.com/anonto42/faithconnect/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ActivityRepository stores the audit trail of domain events
type ActivityRepository interface {
	InsertEvent(ctx context.Context, event *models.ActivityEvent) error
}

// MongoActivityRepository implements ActivityRepository for MongoDB
type MongoActivityRepository struct {
	collection *mongo.Collection
}

// NewMongoActivityRepository creates a new MongoActivityRepository
func NewMongoActivityRepository(db *mongo.Database) *MongoActivityRepository {
	return &MongoActivityRepository{collection: db.Collection("activity_events")}
}

func (r *MongoActivityRepository) InsertEvent(ctx context.Context, event *models.ActivityEvent) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, event)
	return err
}
