package repository

import (
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"grain_dryer/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func notificationColumns() []string {
	return []string{"id", "type", "title", "message", "system", "sensor_data", "thresholds", "is_read", "created_at"}
}

func TestNotificationSave_AssignsDefaultsAndMarshalsJSON(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewNotificationSQLite(db)

	snapshot := models.SensorSnapshot{Temperature: 63, Humidity: 60}
	sensorJSON, _ := json.Marshal(snapshot)
	thresholdsJSON, _ := json.Marshal(models.DefaultThresholds())

	mock.ExpectExec(regexp.QuoteMeta(insertNotificationSQL)).
		WithArgs(
			sqlmock.AnyArg(), // generated id
			models.NotificationCritical,
			"High Temperature Alert",
			"Temperature (63°C) exceeded maximum (60°C)",
			models.SystemLabel, // defaulted system label
			string(sensorJSON),
			string(thresholdsJSON),
			false,
			sqlmock.AnyArg(), // assigned created_at
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(ctx(t), models.Notification{
		Type:       models.NotificationCritical,
		Title:      "High Temperature Alert",
		Message:    "Temperature (63°C) exceeded maximum (60°C)",
		SensorData: snapshot,
		Thresholds: models.DefaultThresholds(),
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestNotificationSave_DBErrorWrapsErrStorage(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewNotificationSQLite(db)

	mock.ExpectExec("INSERT INTO notifications").WillReturnError(errors.New("locked"))

	err := repo.Save(ctx(t), models.Notification{Type: models.NotificationStable})
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestNotificationList_NoFiltersParsesJSONColumns(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewNotificationSQLite(db)

	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	sensorJSON, _ := json.Marshal(models.SensorSnapshot{Temperature: 63})
	thresholdsJSON, _ := json.Marshal(models.DefaultThresholds())

	rows := sqlmock.NewRows(notificationColumns()).
		AddRow("n-1", "CRITICAL", "High Temperature Alert", "msg", models.SystemLabel,
			string(sensorJSON), string(thresholdsJSON), false, created)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, type, title, message, system, sensor_data, thresholds, is_read, created_at FROM notifications ORDER BY created_at DESC LIMIT ?`,
	)).
		WithArgs(100).
		WillReturnRows(rows)

	got, err := repo.List(ctx(t), NotificationQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(got))
	}
	n := got[0]
	if n.SensorData.Temperature != 63 {
		t.Fatalf("sensor_data not parsed: %+v", n.SensorData)
	}
	if n.Thresholds.TemperatureMax != 60 {
		t.Fatalf("thresholds not parsed: %+v", n.Thresholds)
	}
	if !n.CreatedAt.Equal(created) {
		t.Fatalf("created_at mismatch: %v", n.CreatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestNotificationList_UnreadAndTypeFilter(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewNotificationSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, type, title, message, system, sensor_data, thresholds, is_read, created_at FROM notifications WHERE is_read = 0 AND type = ? ORDER BY created_at DESC LIMIT ?`,
	)).
		WithArgs("WARNING", 10).
		WillReturnRows(sqlmock.NewRows(notificationColumns()))

	got, err := repo.List(ctx(t), NotificationQuery{UnreadOnly: true, Type: "warning", Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestNotificationMarkRead_ReportsAffectedRows(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewNotificationSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta(markReadSQL)).
		WithArgs("n-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(markReadSQL)).
		WithArgs("n-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.MarkRead(ctx(t), "n-1")
	if err != nil || n != 1 {
		t.Fatalf("first MarkRead = (%d, %v), want (1, nil)", n, err)
	}
	// Second call finds the row already read.
	n, err = repo.MarkRead(ctx(t), "n-1")
	if err != nil || n != 0 {
		t.Fatalf("second MarkRead = (%d, %v), want (0, nil)", n, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestNotificationMarkAllRead(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewNotificationSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta(markAllReadSQL)).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.MarkAllRead(ctx(t))
	if err != nil || n != 4 {
		t.Fatalf("MarkAllRead = (%d, %v), want (4, nil)", n, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}
