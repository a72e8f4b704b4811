package history

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flavorfolio/recipe-extractor/internal/common"
	"github.com/flavorfolio/recipe-extractor/internal/extract"
	"github.com/flavorfolio/recipe-extractor/internal/llm"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS extraction_runs (
	id           UUID PRIMARY KEY,
	kind         TEXT NOT NULL,
	input_url    TEXT NOT NULL DEFAULT '',
	resolved_url TEXT NOT NULL DEFAULT '',
	status       TEXT NOT NULL,
	error_kind   TEXT NOT NULL DEFAULT '',
	raw_output   BYTEA,
	result       JSONB,
	duration_ms  BIGINT NOT NULL DEFAULT 0,
	created_at   TIMESTAMPTZ NOT NULL
)`

// Store persists extraction runs to Postgres. It is an operational audit log:
// the pipeline works without it, and a write failure never fails a request.
type Store struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// Open creates a pgx pool, applies the schema, and returns the store.
func Open(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("history.db.connecting")

	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, common.WrapError(err, "parse dsn")
	}
	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "recipe-extractor"

	dialCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(dialCtx, pc)
	if err != nil {
		return nil, common.WrapError(err, "connect")
	}

	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		pool.Close()
		return nil, common.WrapError(err, "ensure schema")
	}

	logger.Info("history.db.connected")
	return &Store{pool: pool, log: logger}, nil
}

// HealthCheck pings the pool to catch DSN issues early.
func (s *Store) HealthCheck(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return s.pool.Ping(ctx)
}

func (s *Store) Close() {
	s.log.Info("history.db.closing")
	s.pool.Close()
}

// Record implements extract.Recorder. Write failures are logged, not returned:
// history must never affect a caller's result.
func (s *Store) Record(ctx context.Context, run extract.Run) {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO extraction_runs
			(id, kind, input_url, resolved_url, status, error_kind, raw_output, result, duration_ms, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		run.ID, string(run.Kind), run.InputURL, run.ResolvedURL, run.Status,
		run.ErrorKind, run.RawOutput, nullableJSON(run.Result),
		run.Duration.Milliseconds(), run.CreatedAt,
	)
	if err != nil {
		s.log.Error("history.record.failed", "run_id", run.ID, "error", err)
		return
	}
	s.log.Debug("history.record.ok", "run_id", run.ID)
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]extract.Run, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, kind, input_url, resolved_url, status, error_kind, result, duration_ms, created_at
		 FROM extraction_runs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, common.WrapError(err, "query runs")
	}
	defer rows.Close()

	var runs []extract.Run
	for rows.Next() {
		var (
			r          extract.Run
			kind       string
			durationMS int64
		)
		if err := rows.Scan(&r.ID, &kind, &r.InputURL, &r.ResolvedURL, &r.Status,
			&r.ErrorKind, &r.Result, &durationMS, &r.CreatedAt); err != nil {
			return nil, common.WrapError(err, "scan run")
		}
		r.Kind = llm.SourceKind(kind)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func nullableJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}
