package events

import (
	"context"
	"errors"
	"testing"

	"github.com/anonto42/faithconnect/backend/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFanoutDeliversToPrimaryThenMirrors(t *testing.T) {
	primary := &Recorder{}
	mirror := &Recorder{}
	f := &Fanout{Primary: primary, Mirrors: []Sink{mirror}, Log: logging.Discard()}

	require.NoError(t, f.Publish(context.Background(), Event{Type: "new_post", RecipientID: 7}))

	require.Len(t, primary.Events, 1)
	require.Len(t, mirror.Events, 1)
	assert.False(t, primary.Events[0].OccurredAt.IsZero())
}

func TestFanoutReturnsPrimaryErrorAndSkipsMirrors(t *testing.T) {
	boom := errors.New("insert failed")
	mirror := &Recorder{}
	f := &Fanout{Primary: &Recorder{Err: boom}, Mirrors: []Sink{mirror}}

	err := f.Publish(context.Background(), Event{Type: "new_message"})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, mirror.Events)
}

func TestFanoutSwallowsMirrorErrors(t *testing.T) {
	primary := &Recorder{}
	broken := SinkFunc(func(context.Context, Event) error { return errors.New("queue down") })
	f := &Fanout{Primary: primary, Mirrors: []Sink{broken}, Log: logging.Discard()}

	assert.NoError(t, f.Publish(context.Background(), Event{Type: "new_follower"}))
	assert.Len(t, primary.Events, 1)
}

func TestRecorderOfType(t *testing.T) {
	r := &Recorder{}
	_ = r.Publish(context.Background(), Event{Type: "a"})
	_ = r.Publish(context.Background(), Event{Type: "b"})
	_ = r.Publish(context.Background(), Event{Type: "a"})

	assert.Len(t, r.OfType("a"), 2)
	assert.Empty(t, r.OfType("c"))
}
