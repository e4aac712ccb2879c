package events

import (
	"context"

	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/anonto42/faithconnect/backend/internal/repositories"
)

// MongoSink mirrors every event into the activity_events collection.
type MongoSink struct {
	repo repositories.ActivityRepository
}

func NewMongoSink(repo repositories.ActivityRepository) *MongoSink {
	return &MongoSink{repo: repo}
}

func (s *MongoSink) Publish(ctx context.Context, evt Event) error {
	return s.repo.InsertEvent(ctx, &models.ActivityEvent{
		Type:          evt.Type,
		RecipientID:   evt.RecipientID,
		ActorID:       evt.ActorID,
		Message:       evt.Message,
		ReferenceType: evt.ReferenceType,
		ReferenceID:   evt.ReferenceID,
		OccurredAt:    evt.OccurredAt,
	})
}
