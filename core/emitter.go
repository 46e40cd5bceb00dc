package agent

import (
	"sync"

	"github.com/liralabs/lira-core/core/events"
)

// eventEmitter fans agent events out to independently attached subscribers.
// Multiple observers (logging, websocket forwarding, UIs) can listen at the
// same time without overwriting each other.
type eventEmitter struct {
	mu          sync.RWMutex
	subscribers map[int]func(events.Event)
	nextID      int
}

func newEventEmitter() *eventEmitter {
	return &eventEmitter{subscribers: map[int]func(events.Event){}}
}

// Subscribe attaches a subscriber and returns its detach function. Detaching
// more than once is a no-op.
func (e *eventEmitter) Subscribe(subscriber func(events.Event)) (unsubscribe func()) {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.subscribers[id] = subscriber
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		delete(e.subscribers, id)
		e.mu.Unlock()
	}
}

// Emit delivers the event to every subscriber on the caller's goroutine.
// Subscribers are expected not to block.
func (e *eventEmitter) Emit(event events.Event) {
	e.mu.RLock()
	subscribers := make([]func(events.Event), 0, len(e.subscribers))
	for _, subscriber := range e.subscribers {
		subscribers = append(subscribers, subscriber)
	}
	e.mu.RUnlock()

	for _, subscriber := range subscribers {
		subscriber(event)
	}
}
