package service

import (
	"context"

	"grain_dryer/internal/models"
	"grain_dryer/internal/repository"
)

const (
	defaultHistoryLimit = 100
	maxHistoryLimit     = 1000
)

// HistoryService serves the bounded reading history for dashboards.
type HistoryService struct {
	readings repository.ReadingRepo
}

func NewHistoryService(readings repository.ReadingRepo) *HistoryService {
	return &HistoryService{readings: readings}
}

// Latest returns the newest stored reading, or nil when none exists.
func (s *HistoryService) Latest(ctx context.Context) (*models.Reading, error) {
	return s.readings.Latest(ctx)
}

// Recent returns up to limit readings, newest first. Out-of-range
// limits are clamped rather than rejected.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]models.Reading, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return s.readings.Recent(ctx, limit)
}
