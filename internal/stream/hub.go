package stream

import (
	"context"
	"sync"

	"grain_dryer/internal/logger"
	"grain_dryer/internal/models"
)

// Event is the envelope delivered to live subscribers.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Subscriber is one live connection eligible to receive broadcasts.
// Close tears the connection down; the hub calls it whenever it drops
// a subscriber so the peer sees the disconnect and can reconnect.
type Subscriber interface {
	ID() string
	Deliver(e Event) error
	Close()
}

// SnapshotSource supplies the latest reading view sent to a subscriber
// on join, so the dashboard is never blank.
type SnapshotSource interface {
	LatestView(ctx context.Context) (models.ReadingView, bool)
}

// Hub tracks the set of currently connected subscribers and fans events
// out to all of them. A failure to deliver to one subscriber never
// blocks delivery to the others and never reaches the caller: the
// failing subscriber is dropped and the rest proceed.
//
// A reconnecting client is a brand-new registration: it receives the
// fresh latest-snapshot on connect, which together with the periodic
// re-broadcast is the whole resume mechanism. No replay log is kept.
type Hub struct {
	log *logger.Logger

	mu       sync.RWMutex
	subs     map[string]Subscriber
	snapshot SnapshotSource
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		log:  log,
		subs: make(map[string]Subscriber),
	}
}

// SetSnapshotSource wires the latest-reading provider. Called once
// during startup, before any subscriber connects.
func (h *Hub) SetSnapshotSource(src SnapshotSource) {
	h.mu.Lock()
	h.snapshot = src
	h.mu.Unlock()
}

// Register adds a subscriber to the live set and immediately sends it
// the latest stored reading, if one exists.
func (h *Hub) Register(s Subscriber) {
	h.mu.Lock()
	h.subs[s.ID()] = s
	src := h.snapshot
	h.mu.Unlock()

	if h.log != nil {
		h.log.Infow("subscriber_registered", "id", s.ID())
	}

	if src == nil {
		return
	}
	view, ok := src.LatestView(context.Background())
	if !ok {
		return
	}
	if err := s.Deliver(Event{Type: "reading", Payload: view}); err != nil {
		if h.log != nil {
			h.log.Warnw("snapshot_deliver_failed", "id", s.ID(), "err", err)
		}
		h.drop(s)
	}
}

// Unregister removes a subscriber. Idempotent; a second call for the
// same id is a no-op.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	_, ok := h.subs[id]
	delete(h.subs, id)
	h.mu.Unlock()

	if ok && h.log != nil {
		h.log.Infow("subscriber_unregistered", "id", id)
	}
}

// Broadcast delivers one event to every registered subscriber,
// best-effort. Delivery errors are isolated per subscriber: the failing
// connection is dropped, the loop continues, the caller never sees it.
func (h *Hub) Broadcast(event string, payload any) {
	h.mu.RLock()
	targets := make([]Subscriber, 0, len(h.subs))
	for _, s := range h.subs {
		targets = append(targets, s)
	}
	h.mu.RUnlock()

	e := Event{Type: event, Payload: payload}
	for _, s := range targets {
		if err := s.Deliver(e); err != nil {
			if h.log != nil {
				h.log.Warnw("deliver_failed", "id", s.ID(), "event", event, "err", err)
			}
			h.drop(s)
		}
	}
}

// drop removes a failed subscriber and closes its connection. Removal
// alone is not enough: the transport would stay open, the peer would
// keep answering pings while never receiving another event, and it
// would never learn it has to reconnect.
func (h *Hub) drop(s Subscriber) {
	h.Unregister(s.ID())
	s.Close()
}

// Count returns the number of currently registered subscribers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
