package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var seen []string
	d.Subscribe(EventTicketProcessed, func(ctx context.Context, event Event) error {
		seen = append(seen, "first:"+event.TicketID)
		return nil
	})
	d.Subscribe(EventTicketProcessed, func(ctx context.Context, event Event) error {
		seen = append(seen, "second:"+event.TicketID)
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventTicketProcessed, TicketID: "t-1"})

	require.NoError(t, err)
	assert.Equal(t, []string{"first:t-1", "second:t-1"}, seen)
}

func TestDispatcherIgnoresUnrelatedEventTypes(t *testing.T) {
	d := NewInMemoryDispatcher()

	called := false
	d.Subscribe(EventTicketEscalated, func(ctx context.Context, event Event) error {
		called = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventFeedbackRecorded, TicketID: "t-1"})

	require.NoError(t, err)
	assert.False(t, called)
}

func TestDispatcherContinuesPastHandlerError(t *testing.T) {
	d := NewInMemoryDispatcher()

	var reached bool
	d.Subscribe(EventKnowledgeAdded, func(ctx context.Context, event Event) error {
		return errors.New("handler failed")
	})
	d.Subscribe(EventKnowledgeAdded, func(ctx context.Context, event Event) error {
		reached = true
		return nil
	})

	_ = d.Publish(context.Background(), Event{Type: EventKnowledgeAdded})

	assert.True(t, reached)
}
