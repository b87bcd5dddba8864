package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	// TableName is the PostgreSQL table holding journal rows.
	TableName = "ingest_journal"

	defaultMaxConns        = 2
	defaultMaxConnIdleTime = 5 * time.Minute
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS ingest_journal (
    id            bigserial   PRIMARY KEY,
    run_id        text        NOT NULL,
    recorded_at   timestamptz NOT NULL,
    event         text        NOT NULL,
    label         text        NOT NULL DEFAULT '',
    resource_type text        NOT NULL DEFAULT '',
    sha256        text        NOT NULL DEFAULT '',
    item_id       text        NOT NULL DEFAULT '',
    property      text        NOT NULL DEFAULT '',
    value         text        NOT NULL DEFAULT '',
    error         text        NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS ingest_journal_run_id_idx ON ingest_journal (run_id);
`

const insertSQL = `
INSERT INTO ingest_journal
    (run_id, recorded_at, event, label, resource_type, sha256, item_id, property, value, error)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

const selectRunSQL = `
SELECT run_id, recorded_at, event, label, resource_type, sha256, item_id, property, value, error
FROM ingest_journal
WHERE $1 = '' OR run_id = $1
ORDER BY id`

// Postgres stores events in the ingest_journal table.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to dsn and creates the journal table if missing.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse journal DSN: %w", err)
	}
	poolConfig.MaxConns = defaultMaxConns
	poolConfig.MaxConnIdleTime = defaultMaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect journal database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect journal database: %w", err)
	}

	j := &Postgres{pool: pool}
	if err := j.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return j, nil
}

// EnsureSchema creates the journal table and index when absent.
func (j *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := j.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create %s: %w", TableName, err)
	}
	return nil
}

// Record inserts one row.
func (j *Postgres) Record(ctx context.Context, e Event) error {
	e = stamp(e)
	_, err := j.pool.Exec(ctx, insertSQL,
		e.RunID, e.Time, string(e.Kind), e.Label, e.ResourceType,
		e.Digest, e.ItemID, e.Property, e.Value, e.Error)
	if err != nil {
		return fmt.Errorf("insert journal event: %w", err)
	}
	return nil
}

// Run returns the rows of runID in insertion order. An empty runID returns every row.
func (j *Postgres) Run(ctx context.Context, runID string) ([]Event, error) {
	rows, err := j.pool.Query(ctx, selectRunSQL, runID)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Event, error) {
		var e Event
		var kind string
		err := row.Scan(&e.RunID, &e.Time, &kind, &e.Label, &e.ResourceType,
			&e.Digest, &e.ItemID, &e.Property, &e.Value, &e.Error)
		e.Kind = Kind(kind)
		e.Time = e.Time.UTC()
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("read journal rows: %w", err)
	}
	return events, nil
}

// Close releases the connection pool.
func (j *Postgres) Close() error {
	j.pool.Close()
	return nil
}
