package sse

import (
	"sync"
)

// Event is a server-sent event addressed to one recipient.
type Event struct {
	UserID string
	Event  string
	Data   interface{}
}

// Hub fans notification events out to the open SSE streams of each user.
// A user may hold several streams at once (multiple browser tabs).
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a stream for a user and returns the event channel
// together with a cleanup function the caller must run when the stream ends.
func (h *Hub) Subscribe(userID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[chan Event]struct{})
	}
	h.subscribers[userID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[userID], ch)
		close(ch)
		if len(h.subscribers[userID]) == 0 {
			delete(h.subscribers, userID)
		}
	}

	return ch, cleanup
}

// Publish delivers an event to every open stream of the user. Delivery is
// best effort: a stream with a full buffer is skipped rather than blocked on,
// since the notification row is persisted regardless.
func (h *Hub) Publish(userID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers[userID] {
		select {
		case ch <- event:
		default:
		}
	}
}
