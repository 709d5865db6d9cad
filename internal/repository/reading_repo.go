package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"grain_dryer/internal/models"

	"github.com/google/uuid"
)

type ReadingSQLite struct {
	db *sql.DB
}

func NewReadingSQLite(db *sql.DB) *ReadingSQLite { return &ReadingSQLite{db: db} }

var _ ReadingRepo = (*ReadingSQLite)(nil)

const (
	insertReadingSQL = `
		INSERT INTO sensor_readings (id, device_id, temperature, humidity, moisture1, moisture2, weight1, weight2, status, ts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectReadingSQL = `
		SELECT id, device_id, temperature, humidity, moisture1, moisture2, weight1, weight2, status, ts
		FROM sensor_readings ORDER BY ts DESC LIMIT ?
	`
)

// Append persists a reading, assigning an ID and a UTC timestamp when
// absent, and returns the stored record.
func (r *ReadingSQLite) Append(ctx context.Context, reading models.Reading) (models.Reading, error) {
	if reading.ID == "" {
		reading.ID = uuid.NewString()
	}
	if reading.DeviceID == "" {
		reading.DeviceID = models.DefaultDeviceID
	}
	if reading.Timestamp.IsZero() {
		reading.Timestamp = time.Now().UTC()
	} else {
		reading.Timestamp = reading.Timestamp.UTC()
	}
	if reading.Status == "" {
		reading.Status = models.StatusIdle
	}

	_, err := r.db.ExecContext(ctx, insertReadingSQL,
		reading.ID,
		reading.DeviceID,
		reading.Temperature,
		reading.Humidity,
		reading.Moisture1,
		reading.Moisture2,
		reading.Weight1,
		reading.Weight2,
		reading.Status,
		reading.Timestamp,
	)
	if err != nil {
		return models.Reading{}, fmt.Errorf("%w: insert reading: %v", ErrStorage, err)
	}
	return reading, nil
}

// Latest returns the newest stored reading, or nil when none exists.
// An empty store is not an error.
func (r *ReadingSQLite) Latest(ctx context.Context) (*models.Reading, error) {
	readings, err := r.Recent(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(readings) == 0 {
		return nil, nil
	}
	return &readings[0], nil
}

// Recent returns up to limit readings ordered newest-first.
func (r *ReadingSQLite) Recent(ctx context.Context, limit int) ([]models.Reading, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.QueryContext(ctx, selectReadingSQL, limit)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: select readings: %v", ErrStorage, err)
	}
	defer rows.Close()

	out := make([]models.Reading, 0, limit)
	for rows.Next() {
		var rec models.Reading
		if err := rows.Scan(
			&rec.ID,
			&rec.DeviceID,
			&rec.Temperature,
			&rec.Humidity,
			&rec.Moisture1,
			&rec.Moisture2,
			&rec.Weight1,
			&rec.Weight2,
			&rec.Status,
			&rec.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("%w: scan reading: %v", ErrStorage, err)
		}
		rec.Timestamp = rec.Timestamp.UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate readings: %v", ErrStorage, err)
	}
	return out, nil
}
