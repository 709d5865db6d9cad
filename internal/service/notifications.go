package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"grain_dryer/internal/models"
	"grain_dryer/internal/repository"
)

var errInvalidNotificationType = errors.New("invalid notification type: must be CRITICAL, WARNING, or STABLE")

// NotificationService exposes the alert history and read-state
// transitions. Records themselves are immutable; only IsRead moves,
// and only from false to true.
type NotificationService struct {
	repo repository.NotificationRepo
}

func NewNotificationService(repo repository.NotificationRepo) *NotificationService {
	return &NotificationService{repo: repo}
}

// List returns notifications newest-first, filtered by read-state and type.
func (s *NotificationService) List(ctx context.Context, f NotificationFilter) ([]models.Notification, error) {
	typ := strings.ToUpper(strings.TrimSpace(f.Type))
	switch typ {
	case "", models.NotificationCritical, models.NotificationWarning, models.NotificationStable:
	default:
		return nil, errInvalidNotificationType
	}

	return s.repo.List(ctx, repository.NotificationQuery{
		UnreadOnly: f.UnreadOnly,
		Type:       typ,
		Limit:      f.Limit,
	})
}

// MarkRead acknowledges a single notification. Idempotent: a second
// call (or an unknown id) affects zero rows and is not an error.
func (s *NotificationService) MarkRead(ctx context.Context, id string) (int64, error) {
	if strings.TrimSpace(id) == "" {
		return 0, fmt.Errorf("%w: notification id is required", ErrValidation)
	}
	return s.repo.MarkRead(ctx, id)
}

// MarkAllRead acknowledges every unread notification at once.
func (s *NotificationService) MarkAllRead(ctx context.Context) (int64, error) {
	return s.repo.MarkAllRead(ctx)
}
