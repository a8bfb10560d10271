package repository

import (
	"context"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/scantrack/scantrack-backend/internal/models"
)

// EventStore is the durable append-only event log backed by a single SQLite
// file. One store handle is shared by all requests for the process lifetime;
// SQLite serializes writers internally, so callers need no external locking.
type EventStore struct {
	db *sqlx.DB
}

// NewEventStore opens (or creates) the SQLite database at dbPath.
//
// The pragmas ride in the DSN so they apply to every connection the pool
// opens, not just the first one. WAL allows readers to proceed while a write
// is in flight; busy_timeout covers writer contention under concurrent
// appends.
func NewEventStore(dbPath string) (*EventStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", dbPath)
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite: %w", err)
	}

	return &EventStore{db: db}, nil
}

// Close closes the database connection.
func (s *EventStore) Close() error {
	return s.db.Close()
}

// Ping verifies database connectivity. Used by the readiness probe.
func (s *EventStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// RunMigrations applies every *.sql file in the given filesystem in lexical
// order. All statements are IF NOT EXISTS, so repeated startups against the
// same database file are idempotent and never lose existing rows.
func (s *EventStore) RunMigrations(migrationFS fs.FS) error {
	entries, err := fs.Glob(migrationFS, "*.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(entries)

	for _, name := range entries {
		sqlBytes, err := fs.ReadFile(migrationFS, name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", name, err)
		}
	}
	return nil
}

// Append inserts one event. The event log is append-only; nothing in this
// package issues UPDATE or DELETE against the events table.
func (s *EventStore) Append(ctx context.Context, e *models.Event) error {
	query := `
		INSERT INTO events (ts, ip, ua, kind, session_id)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		e.Timestamp,
		e.ClientIP,
		e.UserAgent,
		e.Kind,
		e.SessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

// CountByKind returns the number of stored events with exactly that kind.
// Matching is case-sensitive (SQLite = on TEXT without NOCASE).
func (s *EventStore) CountByKind(ctx context.Context, kind string) (int64, error) {
	var count int64
	err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM events WHERE kind = ?`, kind)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

// CountDistinctSessions returns the number of distinct session ids among
// events of the given kind.
func (s *EventStore) CountDistinctSessions(ctx context.Context, kind string) (int64, error) {
	var count int64
	err := s.db.GetContext(ctx, &count, `SELECT COUNT(DISTINCT session_id) FROM events WHERE kind = ?`, kind)
	if err != nil {
		return 0, fmt.Errorf("failed to count distinct sessions: %w", err)
	}
	return count, nil
}

// ListRecent returns up to limit events ordered by timestamp descending.
// rowid breaks timestamp ties so the order is stable within one query.
func (s *EventStore) ListRecent(ctx context.Context, limit int) ([]models.Event, error) {
	events := []models.Event{}
	query := `
		SELECT ts, ip, ua, kind, session_id FROM events
		ORDER BY ts DESC, rowid DESC
		LIMIT ?
	`

	if err := s.db.SelectContext(ctx, &events, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list recent events: %w", err)
	}
	return events, nil
}

// ListAll returns every stored event ordered by timestamp ascending, oldest
// first. Used by the CSV export.
func (s *EventStore) ListAll(ctx context.Context) ([]models.Event, error) {
	events := []models.Event{}
	query := `
		SELECT ts, ip, ua, kind, session_id FROM events
		ORDER BY ts ASC, rowid ASC
	`

	if err := s.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}
