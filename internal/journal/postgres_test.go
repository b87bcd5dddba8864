//go:build journaltest

package journal

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppedin/wikibase-api/internal/testinfra"
)

var pgContainer *testinfra.PostgresContainer

func TestMain(m *testing.M) {
	ctx := context.Background()

	ctr, err := testinfra.StartPostgres(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "start postgres: %v\n", err)
		os.Exit(1)
	}
	pgContainer = ctr

	code := m.Run()

	pgContainer.Terminate(ctx) //nolint:errcheck
	os.Exit(code)
}

func TestPostgres_RecordAndRun(t *testing.T) {
	ctx := context.Background()

	j, err := Open(ctx, Config{Driver: DriverPostgres, DSN: pgContainer.ConnString})
	require.NoError(t, err)
	defer j.Close()

	pg := j.(*Postgres)
	// A second schema pass is a no-op.
	require.NoError(t, pg.EnsureSchema(ctx))

	when := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, pg.Record(ctx, Event{RunID: "run-1", Time: when, Kind: KindStarted, Label: "Foo", Digest: "abc"}))
	require.NoError(t, pg.Record(ctx, Event{RunID: "run-2", Kind: KindStarted}))
	require.NoError(t, pg.Record(ctx, Event{RunID: "run-1", Kind: KindItemCreated, ItemID: "Q9"}))
	require.NoError(t, pg.Record(ctx, Event{RunID: "run-1", Kind: KindFailed, ItemID: "Q9", Property: "P73", Error: "rejected"}))

	events, err := pg.Run(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, when, events[0].Time)
	assert.Equal(t, "abc", events[0].Digest)
	assert.Equal(t, KindItemCreated, events[1].Kind)
	assert.Equal(t, "rejected", events[2].Error)

	all, err := pg.Run(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestOpenPostgres_BadDSN(t *testing.T) {
	_, err := OpenPostgres(context.Background(), "not a dsn ::")
	assert.Error(t, err)
}
