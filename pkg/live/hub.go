package live

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/matzehuels/archview/pkg/observability"
)

// ReloadMessage is the token delivered to subscribers after a successful
// regeneration.
const ReloadMessage = "reload"

// Hub fans messages out to subscribers. Each subscriber has a one-slot
// buffer and sends never block: a subscriber that has not consumed its
// previous message simply keeps that one, which already means "reload".
type Hub struct {
	mu   sync.Mutex
	subs map[string]*Subscription
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]*Subscription)}
}

// Subscription receives broadcast messages on C until Close is called.
type Subscription struct {
	ID string
	C  <-chan string

	ch   chan string
	hub  *Hub
	once sync.Once
}

// Close removes the subscription from its hub. It is safe to call more
// than once.
func (s *Subscription) Close() {
	s.once.Do(func() { s.hub.remove(s.ID) })
}

// Subscribe registers a new subscriber.
func (h *Hub) Subscribe() *Subscription {
	ch := make(chan string, 1)
	s := &Subscription{ID: uuid.NewString(), C: ch, ch: ch, hub: h}

	h.mu.Lock()
	h.subs[s.ID] = s
	n := len(h.subs)
	h.mu.Unlock()

	observability.Live().OnSubscribersChanged(context.Background(), n)
	return s
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	_, ok := h.subs[id]
	delete(h.subs, id)
	n := len(h.subs)
	h.mu.Unlock()

	if ok {
		observability.Live().OnSubscribersChanged(context.Background(), n)
	}
}

// Broadcast offers msg to every subscriber and returns how many accepted it.
func (h *Hub) Broadcast(msg string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for _, s := range h.subs {
		select {
		case s.ch <- msg:
			delivered++
		default:
		}
	}
	return delivered
}

// Len returns the number of subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
