package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_FanOutByType(t *testing.T) {
	d := NewInMemoryDispatcher()

	var created, deleted int
	d.Subscribe(EventComplaintCreated, func(context.Context, Event) error {
		created++
		return nil
	})
	d.Subscribe(EventComplaintCreated, func(context.Context, Event) error {
		created++
		return nil
	})
	d.Subscribe(EventComplaintDeleted, func(context.Context, Event) error {
		deleted++
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventComplaintCreated}))
	assert.Equal(t, 2, created)
	assert.Zero(t, deleted)
}

func TestDispatcher_HandlerErrorDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var reached bool
	d.Subscribe(EventComplaintStatusChanged, func(context.Context, Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventComplaintStatusChanged, func(context.Context, Event) error {
		reached = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventComplaintStatusChanged}))
	assert.True(t, reached)
}

func TestDispatcher_NoSubscribersIsANoop(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventComplaintCreated}))
}
