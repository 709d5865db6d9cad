package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"grain_dryer/internal/models"

	"github.com/google/uuid"
)

type NotificationSQLite struct {
	db *sql.DB
}

func NewNotificationSQLite(db *sql.DB) *NotificationSQLite { return &NotificationSQLite{db: db} }

var _ NotificationRepo = (*NotificationSQLite)(nil)

const (
	insertNotificationSQL = `
		INSERT INTO notifications (id, type, title, message, system, sensor_data, thresholds, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	markReadSQL    = `UPDATE notifications SET is_read = 1 WHERE id = ? AND is_read = 0`
	markAllReadSQL = `UPDATE notifications SET is_read = 1 WHERE is_read = 0`
)

// Save inserts a new notification. ID and CreatedAt are assigned when
// empty. Snapshots are stored as JSON text columns.
func (r *NotificationSQLite) Save(ctx context.Context, n models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	} else {
		n.CreatedAt = n.CreatedAt.UTC()
	}
	if n.System == "" {
		n.System = models.SystemLabel
	}

	sensorJSON, err := json.Marshal(n.SensorData)
	if err != nil {
		return fmt.Errorf("marshal sensor snapshot: %w", err)
	}
	thresholdsJSON, err := json.Marshal(n.Thresholds)
	if err != nil {
		return fmt.Errorf("marshal thresholds snapshot: %w", err)
	}

	_, err = r.db.ExecContext(ctx, insertNotificationSQL,
		n.ID,
		n.Type,
		n.Title,
		n.Message,
		n.System,
		string(sensorJSON),
		string(thresholdsJSON),
		n.IsRead,
		n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: insert notification: %v", ErrStorage, err)
	}
	return nil
}

// List returns notifications newest-first, optionally filtered by
// read-state and type.
func (r *NotificationSQLite) List(ctx context.Context, q NotificationQuery) ([]models.Notification, error) {
	var (
		conds []string
		args  []any
	)

	if q.UnreadOnly {
		conds = append(conds, "is_read = 0")
	}
	if typ := strings.ToUpper(strings.TrimSpace(q.Type)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}

	query := `SELECT id, type, title, message, system, sensor_data, thresholds, is_read, created_at FROM notifications`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	query += " LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: select notifications: %v", ErrStorage, err)
	}
	defer rows.Close()

	out := make([]models.Notification, 0, limit)
	for rows.Next() {
		var (
			n              models.Notification
			sensorJSON     string
			thresholdsJSON string
		)
		if err := rows.Scan(
			&n.ID,
			&n.Type,
			&n.Title,
			&n.Message,
			&n.System,
			&sensorJSON,
			&thresholdsJSON,
			&n.IsRead,
			&n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scan notification: %v", ErrStorage, err)
		}
		if err := json.Unmarshal([]byte(sensorJSON), &n.SensorData); err != nil {
			return nil, fmt.Errorf("unmarshal sensor snapshot for %s: %w", n.ID, err)
		}
		if err := json.Unmarshal([]byte(thresholdsJSON), &n.Thresholds); err != nil {
			return nil, fmt.Errorf("unmarshal thresholds snapshot for %s: %w", n.ID, err)
		}
		n.CreatedAt = n.CreatedAt.UTC()
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate notifications: %v", ErrStorage, err)
	}
	return out, nil
}

// MarkRead flips one notification to read. Already-read rows are left
// untouched; the affected-row count tells the caller which case it was.
func (r *NotificationSQLite) MarkRead(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, markReadSQL, id)
	if err != nil {
		return 0, fmt.Errorf("%w: mark notification %s read: %v", ErrStorage, id, err)
	}
	return res.RowsAffected()
}

// MarkAllRead flips every unread notification to read.
func (r *NotificationSQLite) MarkAllRead(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, markAllReadSQL)
	if err != nil {
		return 0, fmt.Errorf("%w: mark all notifications read: %v", ErrStorage, err)
	}
	return res.RowsAffected()
}
