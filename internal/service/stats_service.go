package service

import (
	"context"

	"github.com/scantrack/scantrack-backend/internal/models"
)

// recentWindow is the number of events shown on the admin dashboard.
const recentWindow = 50

// StatsService computes aggregate statistics from the event store on demand.
// Nothing is maintained incrementally.
type StatsService interface {
	Compute(ctx context.Context) (*models.Stats, error)
}

type statsService struct {
	store EventStore
}

// NewStatsService creates a new statistics service.
func NewStatsService(store EventStore) StatsService {
	return &statsService{store: store}
}

// Compute runs three independent reads against the store. An event recorded
// between them may skew one number relative to another; that is accepted.
func (s *statsService) Compute(ctx context.Context) (*models.Stats, error) {
	totalScans, err := s.store.CountByKind(ctx, "scan")
	if err != nil {
		return nil, err
	}

	uniqueDevices, err := s.store.CountDistinctSessions(ctx, "scan")
	if err != nil {
		return nil, err
	}

	lastEvents, err := s.store.ListRecent(ctx, recentWindow)
	if err != nil {
		return nil, err
	}

	return &models.Stats{
		TotalScans:    totalScans,
		UniqueDevices: uniqueDevices,
		LastEvents:    lastEvents,
	}, nil
}
