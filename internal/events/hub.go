package events

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"showcase/backend/internal/countdown"
	"showcase/backend/internal/logger"
)

const (
	KindTick      = "tick"
	KindCompleted = "completed"
)

const defaultBuffer = 32

// Event is one countdown update for an account.
type Event struct {
	Kind      string             `json:"kind"`
	TimerID   string             `json:"timerId"`
	Name      string             `json:"name,omitempty"`
	Remaining *countdown.Display `json:"remaining,omitempty"`
	Message   string             `json:"message,omitempty"`
}

// CompletionMessage is the celebration line shown when a timer reaches zero.
func CompletionMessage(name string) string {
	return fmt.Sprintf("\"%s\" has reached zero!", name)
}

// Hub fans countdown updates out to the subscribers of each account. Publishing
// never blocks; a subscriber whose buffer is full misses the event.
type Hub struct {
	buffer int

	mu     sync.Mutex
	nextID int
	closed bool
	subs   map[string]map[int]chan Event
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{
		buffer: buffer,
		subs:   make(map[string]map[int]chan Event),
	}
}

// Subscribe registers a listener for ownerID. The returned func unsubscribes
// and closes the channel; it is safe to call more than once. After Close the
// channel comes back already closed.
func (h *Hub) Subscribe(ownerID string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, h.buffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	if h.subs[ownerID] == nil {
		h.subs[ownerID] = make(map[int]chan Event)
	}
	h.subs[ownerID][id] = ch

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.removeLocked(ownerID, id)
	}
}

// Close ends every subscription so open streams return.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for ownerID, subs := range h.subs {
		for id := range subs {
			h.removeLocked(ownerID, id)
		}
	}
}

func (h *Hub) removeLocked(ownerID string, id int) {
	ch, ok := h.subs[ownerID][id]
	if !ok {
		return
	}
	delete(h.subs[ownerID], id)
	if len(h.subs[ownerID]) == 0 {
		delete(h.subs, ownerID)
	}
	close(ch)
}

func (h *Hub) Subscribers(ownerID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[ownerID])
}

func (h *Hub) TimerTick(ownerID, timerID string, remaining countdown.Breakdown) {
	display := remaining.Display()
	h.publish(ownerID, Event{Kind: KindTick, TimerID: timerID, Remaining: &display})
}

func (h *Hub) TimerCompleted(ownerID, timerID, name string) {
	h.publish(ownerID, Event{
		Kind:    KindCompleted,
		TimerID: timerID,
		Name:    name,
		Message: CompletionMessage(name),
	})
}

func (h *Hub) publish(ownerID string, event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs[ownerID] {
		select {
		case ch <- event:
		default:
			logger.Warn("events: subscriber buffer full, dropping event",
				zap.String("owner_id", ownerID),
				zap.String("timer_id", event.TimerID),
				zap.String("kind", event.Kind))
		}
	}
}
