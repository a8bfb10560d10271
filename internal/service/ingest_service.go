package service

import (
	"context"
	"errors"
	"time"

	"github.com/scantrack/scantrack-backend/internal/models"
	"github.com/scantrack/scantrack-backend/internal/pkg/metrics"
)

// ErrKindRequired is returned when an ingestion request carries no kind.
// It maps to a 400 at the HTTP layer and is never persisted or broadcast.
var ErrKindRequired = errors.New("kind required")

// EventStore is the persistence surface the services depend on. The SQLite
// implementation lives in internal/repository; tests inject fakes.
type EventStore interface {
	Append(ctx context.Context, e *models.Event) error
	CountByKind(ctx context.Context, kind string) (int64, error)
	CountDistinctSessions(ctx context.Context, kind string) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]models.Event, error)
	ListAll(ctx context.Context) ([]models.Event, error)
}

// Broadcaster delivers a persisted event to connected live viewers.
type Broadcaster interface {
	BroadcastEvent(e *models.Event) error
}

// EventContext carries the request-derived metadata for one ingestion:
// resolved client IP, user-agent, and the session id from the cookie
// resolver.
type EventContext struct {
	ClientIP  string
	UserAgent string
	SessionID string
}

// IngestService validates and records new events.
type IngestService interface {
	// Ingest persists one event and then fans it out to live viewers.
	// Persistence strictly precedes broadcast: a viewer never observes an
	// event that failed to persist. Broadcast failures are swallowed.
	Ingest(ctx context.Context, kind string, ec EventContext) (*models.Event, error)
}

type ingestService struct {
	store EventStore
	hub   Broadcaster
	now   func() time.Time
}

// NewIngestService creates a new ingestion service.
func NewIngestService(store EventStore, hub Broadcaster) IngestService {
	return &ingestService{
		store: store,
		hub:   hub,
		now:   time.Now,
	}
}

func (s *ingestService) Ingest(ctx context.Context, kind string, ec EventContext) (*models.Event, error) {
	if kind == "" {
		metrics.EventsRejectedTotal.Inc()
		return nil, ErrKindRequired
	}

	event := &models.Event{
		Timestamp: s.now().UnixMilli(),
		ClientIP:  ec.ClientIP,
		UserAgent: ec.UserAgent,
		Kind:      kind,
		SessionID: ec.SessionID,
	}

	if err := s.store.Append(ctx, event); err != nil {
		return nil, err
	}
	metrics.EventsIngestedTotal.WithLabelValues(kind).Inc()

	// Best-effort fan-out; delivery failures are invisible to the caller.
	_ = s.hub.BroadcastEvent(event)

	return event, nil
}
