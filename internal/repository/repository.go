package repository

import (
	"context"
	"database/sql"
	"errors"

	"grain_dryer/internal/models"
)

// ErrStorage marks persistence failures. The fan-out path treats these
// as non-fatal: the live broadcast proceeds and the loss is logged.
var ErrStorage = errors.New("storage unavailable")

type Authorization interface {
	Create(username, fullname, email, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
	GetByID(id int) (*models.User, error)
	UpdateProfile(ctx context.Context, u models.User) error
}

// ReadingRepo is the append-only store of sensor readings.
type ReadingRepo interface {
	Append(ctx context.Context, r models.Reading) (models.Reading, error)
	Latest(ctx context.Context) (*models.Reading, error)
	Recent(ctx context.Context, limit int) ([]models.Reading, error)
}

// NotificationQuery filters the notification listing.
type NotificationQuery struct {
	UnreadOnly bool
	Type       string // "", CRITICAL, WARNING, STABLE
	Limit      int    // 0 means repository default
}

type NotificationRepo interface {
	Save(ctx context.Context, n models.Notification) error
	List(ctx context.Context, q NotificationQuery) ([]models.Notification, error)
	MarkRead(ctx context.Context, id string) (int64, error)
	MarkAllRead(ctx context.Context) (int64, error)
}

type Repository struct {
	Readings      ReadingRepo
	Notifications NotificationRepo
	Auth          Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Readings:      NewReadingSQLite(db),
		Notifications: NewNotificationSQLite(db),
		Auth:          NewUserRepository(db),
	}
}
