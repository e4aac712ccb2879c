package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityEvent mirrors a domain event into MongoDB for auditing.
type ActivityEvent struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Type          string             `json:"type" bson:"type"`
	RecipientID   uint               `json:"recipient_id" bson:"recipient_id"`
	ActorID       uint               `json:"actor_id" bson:"actor_id"`
	Message       string             `json:"message" bson:"message"`
	ReferenceType string             `json:"reference_type,omitempty" bson:"reference_type,omitempty"`
	ReferenceID   uint               `json:"reference_id,omitempty" bson:"reference_id,omitempty"`
	OccurredAt    time.Time          `json:"occurred_at" bson:"occurred_at"`
}
