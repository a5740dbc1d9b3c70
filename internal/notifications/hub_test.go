package notifications

import (
	"testing"
	"time"
)

// TestHubPublishSubscribe проверяет доставку событий подписчику.
func TestHubPublishSubscribe(t *testing.T) {
	hub := NewHub()

	ch, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	hub.Publish(Event{Type: "state_updated"})

	select {
	case event := <-ch:
		if event.Type != "state_updated" {
			t.Fatalf("expected event type state_updated, got %s", event.Type)
		}
		if event.Timestamp.IsZero() {
			t.Fatal("expected timestamp to be set")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected event to be delivered")
	}
}

// TestHubUnsubscribe проверяет закрытие канала после отписки.
func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub()

	ch, unsubscribe := hub.Subscribe()
	unsubscribe()

	if _, ok := <-ch; ok {
		t.Fatal("expected channel to be closed")
	}
}

// TestHubSlowSubscriber проверяет, что переполненный канал не блокирует Publish.
func TestHubSlowSubscriber(t *testing.T) {
	hub := NewHub()

	_, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Publish(Event{Type: "state_updated"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on slow subscriber")
	}
}
