package stream

import (
	"context"
	"errors"
	"testing"

	"grain_dryer/internal/models"
)

type stubSubscriber struct {
	id       string
	err      error
	received []Event
	closed   int
}

func (s *stubSubscriber) ID() string { return s.id }

func (s *stubSubscriber) Close() { s.closed++ }

func (s *stubSubscriber) Deliver(e Event) error {
	if s.err != nil {
		return s.err
	}
	s.received = append(s.received, e)
	return nil
}

type stubSnapshot struct {
	view models.ReadingView
	ok   bool
}

func (s *stubSnapshot) LatestView(ctx context.Context) (models.ReadingView, bool) {
	return s.view, s.ok
}

func TestHub_BroadcastReachesAllSubscribers(t *testing.T) {
	h := NewHub(nil)
	a := &stubSubscriber{id: "a"}
	b := &stubSubscriber{id: "b"}
	h.Register(a)
	h.Register(b)

	h.Broadcast("reading", models.ReadingView{Temperature: 55})

	for _, s := range []*stubSubscriber{a, b} {
		if len(s.received) != 1 {
			t.Fatalf("subscriber %s received %d events, want 1", s.id, len(s.received))
		}
		if s.received[0].Type != "reading" {
			t.Fatalf("subscriber %s got event type %q", s.id, s.received[0].Type)
		}
	}
}

func TestHub_FailingSubscriberIsIsolatedAndDropped(t *testing.T) {
	h := NewHub(nil)
	a := &stubSubscriber{id: "a"}
	bad := &stubSubscriber{id: "bad", err: errors.New("gone")}
	c := &stubSubscriber{id: "c"}
	h.Register(a)
	h.Register(bad)
	h.Register(c)

	h.Broadcast("alert", models.Notification{Type: models.NotificationCritical})

	if len(a.received) != 1 || len(c.received) != 1 {
		t.Fatalf("healthy subscribers must still receive: a=%d c=%d", len(a.received), len(c.received))
	}
	if h.Count() != 2 {
		t.Fatalf("failing subscriber must be dropped, count = %d", h.Count())
	}
	// Removal alone would leave the peer's connection open forever. The hub
	// has to tear it down so the client notices and reconnects.
	if bad.closed != 1 {
		t.Fatalf("dropped subscriber must be closed, Close called %d times", bad.closed)
	}
	if a.closed != 0 || c.closed != 0 {
		t.Fatalf("healthy subscribers must stay open: a=%d c=%d", a.closed, c.closed)
	}

	// The dropped subscriber stays gone on the next broadcast.
	h.Broadcast("reading", models.ReadingView{})
	if len(a.received) != 2 || len(c.received) != 2 {
		t.Fatalf("second broadcast incomplete: a=%d c=%d", len(a.received), len(c.received))
	}
}

func TestHub_RegisterDeliversLatestSnapshotToJoinerOnly(t *testing.T) {
	h := NewHub(nil)
	h.SetSnapshotSource(&stubSnapshot{view: models.ReadingView{Temperature: 57, Status: models.StatusDrying}, ok: true})

	early := &stubSubscriber{id: "early"}
	h.Register(early)
	if len(early.received) != 1 {
		t.Fatalf("joiner must get exactly one snapshot, got %d", len(early.received))
	}

	late := &stubSubscriber{id: "late"}
	h.Register(late)
	if len(late.received) != 1 {
		t.Fatalf("late joiner must get its own snapshot, got %d", len(late.received))
	}
	// Registration of a new subscriber must not re-send to existing ones.
	if len(early.received) != 1 {
		t.Fatalf("existing subscriber must not receive the late joiner's snapshot, got %d", len(early.received))
	}

	ev := late.received[0]
	if ev.Type != "reading" {
		t.Fatalf("snapshot event type = %q", ev.Type)
	}
	view, ok := ev.Payload.(models.ReadingView)
	if !ok || view.Temperature != 57 {
		t.Fatalf("unexpected snapshot payload: %#v", ev.Payload)
	}
}

func TestHub_RegisterWithoutSnapshotIsQuiet(t *testing.T) {
	h := NewHub(nil)
	// No snapshot source wired at all.
	s := &stubSubscriber{id: "s"}
	h.Register(s)
	if len(s.received) != 0 {
		t.Fatalf("expected no events, got %#v", s.received)
	}

	// Source present but store empty.
	h.SetSnapshotSource(&stubSnapshot{ok: false})
	s2 := &stubSubscriber{id: "s2"}
	h.Register(s2)
	if len(s2.received) != 0 {
		t.Fatalf("empty store must not produce a snapshot, got %#v", s2.received)
	}
}

func TestHub_RegisterDropsSubscriberWhenSnapshotDeliveryFails(t *testing.T) {
	h := NewHub(nil)
	h.SetSnapshotSource(&stubSnapshot{view: models.ReadingView{}, ok: true})

	bad := &stubSubscriber{id: "bad", err: ErrSlowSubscriber}
	h.Register(bad)
	if h.Count() != 0 {
		t.Fatalf("subscriber failing its join snapshot must be dropped, count = %d", h.Count())
	}
	if bad.closed != 1 {
		t.Fatalf("dropped subscriber must be closed, Close called %d times", bad.closed)
	}
}

func TestHub_UnregisterIsIdempotent(t *testing.T) {
	h := NewHub(nil)
	s := &stubSubscriber{id: "s"}
	h.Register(s)

	h.Unregister("s")
	h.Unregister("s")
	h.Unregister("never-registered")
	if h.Count() != 0 {
		t.Fatalf("count = %d, want 0", h.Count())
	}
}
