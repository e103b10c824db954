package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPublishToSubscriber(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	hub.Publish("user-1", Event{UserID: "user-1", Event: "notification", Data: "hello"})

	select {
	case event := <-ch:
		assert.Equal(t, "notification", event.Event)
		assert.Equal(t, "hello", event.Data)
	default:
		t.Fatal("expected an event on the channel")
	}
}

func TestHubPublishOnlyToTargetUser(t *testing.T) {
	hub := NewHub()

	ch1, cleanup1 := hub.Subscribe("user-1")
	defer cleanup1()
	ch2, cleanup2 := hub.Subscribe("user-2")
	defer cleanup2()

	hub.Publish("user-1", Event{UserID: "user-1", Event: "notification"})

	require.Len(t, ch1, 1)
	assert.Empty(t, ch2)
}

func TestHubMultipleSubscribersSameUser(t *testing.T) {
	hub := NewHub()

	ch1, cleanup1 := hub.Subscribe("user-1")
	defer cleanup1()
	ch2, cleanup2 := hub.Subscribe("user-1")
	defer cleanup2()

	assert.Equal(t, 2, hub.SubscriberCount("user-1"))

	hub.Publish("user-1", Event{UserID: "user-1", Event: "notification"})
	assert.Len(t, ch1, 1)
	assert.Len(t, ch2, 1)
}

func TestHubCleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("user-1")
	assert.Equal(t, 1, hub.SubscriberCount("user-1"))

	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount("user-1"))

	// Publishing to a user with no subscribers must not panic.
	hub.Publish("user-1", Event{UserID: "user-1", Event: "notification"})
}

func TestHubSlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	// Fill the buffer past capacity; extra events are dropped, not blocked on.
	for i := 0; i < 20; i++ {
		hub.Publish("user-1", Event{UserID: "user-1", Event: "notification"})
	}

	assert.Equal(t, 10, len(ch))
}
