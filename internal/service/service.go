package service

import (
	"context"
	"errors"
	"time"

	"grain_dryer/internal/logger"
	"grain_dryer/internal/models"
	"grain_dryer/internal/repository"
)

// ErrValidation marks malformed readings rejected at the ingestion
// boundary. This is the one alert-pipeline error a caller gets to see.
var ErrValidation = errors.New("invalid reading")

type Authorization interface {
	SignUp(p SignUpParams) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Broadcast runs the ingestion pipeline and the periodic re-broadcast
// loop, and serves the latest-snapshot view for joining subscribers.
type Broadcast interface {
	IngestReading(ctx context.Context, in ReadingInput) (models.Reading, error)
	Run(ctx context.Context, interval time.Duration)
	LatestView(ctx context.Context) (models.ReadingView, bool)
}

// History exposes read-only access to stored readings.
type History interface {
	Latest(ctx context.Context) (*models.Reading, error)
	Recent(ctx context.Context, limit int) ([]models.Reading, error)
}

// Notifications exposes the persisted alert records and their
// read/unread state.
type Notifications interface {
	List(ctx context.Context, f NotificationFilter) ([]models.Notification, error)
	MarkRead(ctx context.Context, id string) (int64, error)
	MarkAllRead(ctx context.Context) (int64, error)
}

// Profile exposes the signed-in user's profile.
type Profile interface {
	Get(ctx context.Context, userID int) (models.User, error)
	Update(ctx context.Context, userID int, p ProfileParams) (models.User, error)
}

// EventSink delivers one event to all currently registered live
// subscribers, best-effort. Implemented by the websocket hub.
type EventSink interface {
	Broadcast(event string, payload any)
}

// PushSender is the fire-and-forget push-notification boundary.
// Failures are logged by the caller and never retried.
type PushSender interface {
	Send(ctx context.Context, title, message string, attrs map[string]string) error
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Broadcast
	History
	Notifications
	Profile
	Authorization
}

// NewService wires the repository layer, the live-event sink and the
// push boundary into concrete services.
func NewService(
	repos *repository.Repository,
	sink EventSink,
	push PushSender,
	thresholds models.Thresholds,
	stableWindow time.Duration,
	log *logger.Logger,
) *Service {
	stabilizer := NewStabilizer(stableWindow, time.Now)
	return &Service{
		Broadcast:     NewBroadcastService(repos.Readings, repos.Notifications, thresholds, stabilizer, sink, push, log),
		History:       NewHistoryService(repos.Readings),
		Notifications: NewNotificationService(repos.Notifications),
		Profile:       NewProfileService(repos.Auth),
		Authorization: NewAuthService(repos.Auth),
	}
}

// SignUpParams carries the sign-up payload.
type SignUpParams struct {
	Username string
	Fullname string
	Email    string
	Password string
}

// ProfileParams carries a profile update; empty fields keep the current
// value, mirroring the partial-update behavior of the dashboard.
type ProfileParams struct {
	Username string
	Fullname string
	Email    string
	Avatar   string
}

// NotificationFilter narrows the notification listing.
type NotificationFilter struct {
	UnreadOnly bool
	Type       string // "", CRITICAL, WARNING, STABLE
	Limit      int
}
