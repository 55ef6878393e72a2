package runlog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore keeps the ledger in postgres via the pgx stdlib driver, with
// a small LRU over per-session listings. Append invalidates the session's
// cached listing.
type PostgresStore struct {
	db *sql.DB

	schemaOnce sync.Once
	schemaErr  error

	listCache *lru.Cache[string, []Record]
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	cache, err := lru.New[string, []Record](1024)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresStore{db: db, listCache: cache}, nil
}

func (s *PostgresStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS analysis_runs (
    run_id      TEXT NOT NULL,
    session_id  TEXT NOT NULL,
    cell_id     TEXT NOT NULL DEFAULT '',
    kind        TEXT NOT NULL DEFAULT '',
    status      TEXT NOT NULL DEFAULT '',
    error       TEXT NOT NULL DEFAULT '',
    started_at  TIMESTAMPTZ NOT NULL,
    finished_at TIMESTAMPTZ,
    PRIMARY KEY (session_id, run_id)
);
CREATE INDEX IF NOT EXISTS analysis_runs_session_started
    ON analysis_runs (session_id, started_at);
`)
	})
	return s.schemaErr
}

func (s *PostgresStore) Append(ctx context.Context, rec Record) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("store is nil")
	}
	if err := validate(rec); err != nil {
		return err
	}
	if err := s.ensureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	var finished any
	if !rec.FinishedAt.IsZero() {
		finished = rec.FinishedAt
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO analysis_runs (run_id, session_id, cell_id, kind, status, error, started_at, finished_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (session_id, run_id) DO UPDATE SET
    status      = EXCLUDED.status,
    error       = EXCLUDED.error,
    finished_at = EXCLUDED.finished_at
`, rec.RunID, rec.SessionID, rec.CellID, rec.Kind, rec.Status, rec.Error, rec.StartedAt, finished)
	if err != nil {
		return fmt.Errorf("append run %s: %w", rec.RunID, err)
	}
	s.listCache.Remove(rec.SessionID)
	return nil
}

func (s *PostgresStore) ListBySession(ctx context.Context, sessionID string) ([]Record, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("store is nil")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("session_id is required")
	}
	if cached, ok := s.listCache.Get(sessionID); ok {
		return append([]Record(nil), cached...), nil
	}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT run_id, session_id, cell_id, kind, status, error, started_at, finished_at
FROM analysis_runs
WHERE session_id = $1
ORDER BY started_at, run_id
`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	out := make([]Record, 0, 16)
	for rows.Next() {
		var rec Record
		var finished sql.NullTime
		if err := rows.Scan(&rec.RunID, &rec.SessionID, &rec.CellID, &rec.Kind, &rec.Status, &rec.Error, &rec.StartedAt, &finished); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if finished.Valid {
			rec.FinishedAt = finished.Time
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	s.listCache.Add(sessionID, append([]Record(nil), out...))
	return out, nil
}
