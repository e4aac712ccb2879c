// Package events decouples domain mutations from the side effects they
// trigger. Services mutate first and then publish an Event to a Sink.
package events

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

type Event struct {
	Type          string    `json:"type"`
	RecipientID   uint      `json:"recipient_id"`
	ActorID       uint      `json:"actor_id"`
	Message       string    `json:"message"`
	ReferenceType string    `json:"reference_type,omitempty"`
	ReferenceID   uint      `json:"reference_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Sink interface {
	Publish(ctx context.Context, evt Event) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, evt Event) error

func (f SinkFunc) Publish(ctx context.Context, evt Event) error { return f(ctx, evt) }

// Fanout delivers to Primary and then to every mirror. Only the primary's
// error reaches the caller; mirror failures are logged.
type Fanout struct {
	Primary Sink
	Mirrors []Sink
	Log     *slog.Logger
}

func (f *Fanout) Publish(ctx context.Context, evt Event) error {
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}
	if f.Primary == nil {
		return errors.New("events: fanout has no primary sink")
	}
	if err := f.Primary.Publish(ctx, evt); err != nil {
		return err
	}
	for _, m := range f.Mirrors {
		if err := m.Publish(ctx, evt); err != nil && f.Log != nil {
			f.Log.Warn("event mirror failed", "type", evt.Type, "recipient_id", evt.RecipientID, "error", err)
		}
	}
	return nil
}

// Recorder keeps published events in memory.
type Recorder struct {
	Events []Event
	Err    error
}

func (r *Recorder) Publish(_ context.Context, evt Event) error {
	if r.Err != nil {
		return r.Err
	}
	r.Events = append(r.Events, evt)
	return nil
}

// OfType returns the recorded events with the given type.
func (r *Recorder) OfType(t string) []Event {
	var out []Event
	for _, e := range r.Events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
