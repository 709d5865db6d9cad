package service

import (
	"sync"
	"time"

	"grain_dryer/internal/models"

	"github.com/google/uuid"
)

// StableTitle/StableMessage are the contents of the rate-limited
// "all clear" record.
const (
	StableTitle   = "System Operating Normally"
	StableMessage = "All parameters within acceptable range"
)

// Stabilizer decides which alert candidates become notifications.
// Breach candidates always pass through: every evaluation pass that
// still breaches produces a fresh record. The only suppression it
// applies is to STABLE notices: at most one per window.
//
// The last-stable timestamp is the single piece of mutable state here;
// it is owned by this instance and reset on process restart.
type Stabilizer struct {
	window time.Duration
	now    func() time.Time

	mu         sync.Mutex
	lastStable time.Time
}

// NewStabilizer builds a stabilizer with an injectable clock so tests
// can control time.
func NewStabilizer(window time.Duration, now func() time.Time) *Stabilizer {
	if now == nil {
		now = time.Now
	}
	return &Stabilizer{window: window, now: now}
}

// Filter turns candidates into the notifications to persist and
// deliver. With no candidates it may emit one STABLE notification,
// subject to the suppression window.
func (s *Stabilizer) Filter(r models.Reading, t models.Thresholds, candidates []models.AlertCandidate) []models.Notification {
	now := s.now().UTC()

	if len(candidates) == 0 {
		if !s.allowStable(now) {
			return nil
		}
		return []models.Notification{{
			ID:         uuid.NewString(),
			Type:       models.NotificationStable,
			Title:      StableTitle,
			Message:    StableMessage,
			System:     models.SystemLabel,
			SensorData: r.Snapshot(),
			Thresholds: t,
			CreatedAt:  now,
		}}
	}

	out := make([]models.Notification, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, models.Notification{
			ID:         uuid.NewString(),
			Type:       c.Severity,
			Title:      c.Title,
			Message:    c.Message,
			System:     models.SystemLabel,
			SensorData: r.Snapshot(),
			Thresholds: t,
			CreatedAt:  now,
		})
	}
	return out
}

// allowStable reports whether a STABLE notice may be emitted now, and
// records the emission time when it may.
func (s *Stabilizer) allowStable(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lastStable.IsZero() && now.Sub(s.lastStable) <= s.window {
		return false
	}
	s.lastStable = now
	return true
}
