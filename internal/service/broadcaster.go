package service

import (
	"context"
	"fmt"
	"time"

	"grain_dryer/internal/logger"
	"grain_dryer/internal/models"
	"grain_dryer/internal/repository"

	"github.com/google/uuid"
)

// Live event names on the subscriber channel.
const (
	EventReading = "reading"
	EventAlert   = "alert"
)

// defaultPollInterval backs Run when the configured interval is unusable.
const defaultPollInterval = 5 * time.Second

// ReadingInput is the ingestion payload from the device or a gateway.
// Numeric fields are pointers so an absent field is distinguishable
// from zero. Moisture/Weight are deprecated single-sensor aliases that
// fill both channels when the per-sensor fields are absent.
type ReadingInput struct {
	DeviceID    string     `json:"deviceId"`
	Temperature *float64   `json:"temperature"`
	Humidity    *float64   `json:"humidity"`
	Moisture1   *float64   `json:"moisture1"`
	Moisture2   *float64   `json:"moisture2"`
	Weight1     *float64   `json:"weight1"`
	Weight2     *float64   `json:"weight2"`
	Moisture    *float64   `json:"moisture"` // deprecated alias
	Weight      *float64   `json:"weight"`   // deprecated alias
	Status      string     `json:"status"`
	Timestamp   *time.Time `json:"timestamp"`
}

// toReading validates the input and produces a fully normalized reading
// (ID, device, status and timestamp assigned). Validation failures wrap
// ErrValidation.
func (in ReadingInput) toReading(now time.Time) (models.Reading, error) {
	if in.Temperature == nil {
		return models.Reading{}, fmt.Errorf("%w: temperature is required", ErrValidation)
	}
	if in.Humidity == nil {
		return models.Reading{}, fmt.Errorf("%w: humidity is required", ErrValidation)
	}
	if in.Status != "" && !models.ValidStatus(in.Status) {
		return models.Reading{}, fmt.Errorf("%w: unknown status %q", ErrValidation, in.Status)
	}

	r := models.Reading{
		ID:          uuid.NewString(),
		DeviceID:    in.DeviceID,
		Temperature: *in.Temperature,
		Humidity:    *in.Humidity,
		Status:      in.Status,
		Timestamp:   now,
	}
	if r.DeviceID == "" {
		r.DeviceID = models.DefaultDeviceID
	}
	if r.Status == "" {
		r.Status = models.StatusIdle
	}
	if in.Timestamp != nil && !in.Timestamp.IsZero() {
		r.Timestamp = in.Timestamp.UTC()
	}

	r.Moisture1 = pick(in.Moisture1, in.Moisture)
	r.Moisture2 = pick(in.Moisture2, in.Moisture)
	r.Weight1 = pick(in.Weight1, in.Weight)
	r.Weight2 = pick(in.Weight2, in.Weight)

	for name, v := range map[string]float64{
		"temperature": r.Temperature,
		"humidity":    r.Humidity,
		"moisture1":   r.Moisture1,
		"moisture2":   r.Moisture2,
		"weight1":     r.Weight1,
		"weight2":     r.Weight2,
	} {
		if v < 0 {
			return models.Reading{}, fmt.Errorf("%w: %s must be non-negative, got %g", ErrValidation, name, v)
		}
	}

	return r, nil
}

func pick(primary, alias *float64) float64 {
	if primary != nil {
		return *primary
	}
	if alias != nil {
		return *alias
	}
	return 0
}

// BroadcastService orchestrates the end-to-end pipeline:
// persist → evaluate → stabilize → persist alerts → fan out.
type BroadcastService struct {
	readings      repository.ReadingRepo
	notifications repository.NotificationRepo
	thresholds    models.Thresholds
	stabilizer    *Stabilizer
	sink          EventSink
	push          PushSender
	log           *logger.Logger
}

func NewBroadcastService(
	readings repository.ReadingRepo,
	notifications repository.NotificationRepo,
	thresholds models.Thresholds,
	stabilizer *Stabilizer,
	sink EventSink,
	push PushSender,
	log *logger.Logger,
) *BroadcastService {
	return &BroadcastService{
		readings:      readings,
		notifications: notifications,
		thresholds:    thresholds,
		stabilizer:    stabilizer,
		sink:          sink,
		push:          push,
		log:           log,
	}
}

// IngestReading runs the ingestion-triggered path. A storage failure is
// returned to the caller but does not stop the live broadcast: the
// reading is still evaluated and fanned out, and the loss is logged.
// Alert broadcasts always precede the reading broadcast.
func (s *BroadcastService) IngestReading(ctx context.Context, in ReadingInput) (models.Reading, error) {
	reading, err := in.toReading(time.Now().UTC())
	if err != nil {
		return models.Reading{}, err
	}

	stored, appendErr := s.readings.Append(ctx, reading)
	if appendErr != nil {
		// Data-loss event: keep the normalized reading for the live path.
		if s.log != nil {
			s.log.Errorw("reading_persist_failed", "err", appendErr, "device", reading.DeviceID)
		}
		stored = reading
	}

	candidates := Evaluate(stored, s.thresholds)
	for _, n := range s.stabilizer.Filter(stored, s.thresholds, candidates) {
		if err := s.notifications.Save(ctx, n); err != nil && s.log != nil {
			s.log.Errorw("notification_persist_failed", "err", err, "type", n.Type, "title", n.Title)
		}
		s.sink.Broadcast(EventAlert, n)
		s.sendPush(ctx, n)
	}

	s.sink.Broadcast(EventReading, stored.View())

	return stored, appendErr
}

// sendPush forwards a notification to the push channel, best-effort.
func (s *BroadcastService) sendPush(ctx context.Context, n models.Notification) {
	if s.push == nil {
		return
	}
	attrs := map[string]string{
		"type":   n.Type,
		"system": n.System,
	}
	if err := s.push.Send(ctx, n.Title, n.Message, attrs); err != nil && s.log != nil {
		s.log.Warnw("push_send_failed", "err", err, "title", n.Title)
	}
}

// Run re-broadcasts the latest stored reading at the given interval
// until ctx is canceled. It keeps polling-only clients and clients that
// missed a push in sync; an empty store is a no-op, not an error.
func (s *BroadcastService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		// time.NewTicker panics on non-positive durations.
		interval = defaultPollInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			latest, err := s.readings.Latest(ctx)
			if err != nil {
				if s.log != nil {
					s.log.Errorw("poll_latest_failed", "err", err)
				}
				continue
			}
			if latest == nil {
				continue
			}
			s.sink.Broadcast(EventReading, latest.View())
		}
	}
}

// LatestView serves the snapshot sent to a subscriber on join so the
// dashboard is never blank. The second return is false when no reading
// has been stored yet or the store is unreachable.
func (s *BroadcastService) LatestView(ctx context.Context) (models.ReadingView, bool) {
	latest, err := s.readings.Latest(ctx)
	if err != nil {
		if s.log != nil {
			s.log.Errorw("snapshot_latest_failed", "err", err)
		}
		return models.ReadingView{}, false
	}
	if latest == nil {
		return models.ReadingView{}, false
	}
	return latest.View(), true
}
