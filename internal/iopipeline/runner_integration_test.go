package iopipeline_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/goldrec/goldrec/internal/iodb"
	"github.com/goldrec/goldrec/internal/iopipeline"
	"github.com/goldrec/goldrec/internal/iorun"
	"github.com/goldrec/goldrec/internal/ioschema"
	"github.com/goldrec/goldrec/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// Note: this is an integration test against a real PostgreSQL
// instance. Set GOLDREC_TEST_DB to the test database name to enable
// it; skip with: go test -short

func integrationConfig(t *testing.T) *config.Config {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	dbName := os.Getenv("GOLDREC_TEST_DB")
	if dbName == "" {
		t.Skip("GOLDREC_TEST_DB not set, skipping integration test")
	}

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabaseDatabase(dbName),
		config.OptJobsNumber(2),
	})
	if host := os.Getenv("GOLDREC_TEST_DB_HOST"); host != "" {
		cfg.Update([]config.Option{config.OptDatabaseHost(host)})
	}
	return cfg
}

func makeIntegrationLanding(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.sqlite")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`
CREATE TABLE raw_customers (
  external_id TEXT, first_name TEXT, last_name TEXT, email TEXT,
  phone TEXT, address TEXT, city TEXT, country TEXT,
  created_at_raw TEXT, ingested_at TEXT, source_file TEXT
);
CREATE TABLE order_stats (
  external_id TEXT, order_count INTEGER,
  last_order_date TIMESTAMP, total_spend REAL
);
INSERT INTO raw_customers (external_id, first_name, email, created_at_raw)
VALUES
  ('C001', 'jean', '  Jean@Example.com ', '2023-02-01'),
  ('C002', 'JEAN', 'jean@example.com', '2023-03-15'),
  ('C003', 'Marie', 'marie@example.com', '15/03/2023');
INSERT INTO order_stats (external_id, order_count, last_order_date, total_spend)
VALUES ('C001', 5, '2023-06-20 00:00:00+00:00', 320.0);
`)
	require.NoError(t, err)
	return path
}

// TestRun_Integration runs the whole pipeline twice against a real
// database and checks the mart and the run log.
func TestRun_Integration(t *testing.T) {
	cfg := integrationConfig(t)
	cfg.Update([]config.Option{
		config.OptLandingPath(makeIntegrationLanding(t)),
	})

	ctx := context.Background()
	op := iodb.NewPgxOperator()
	require.NoError(t, op.Connect(ctx, &cfg.Database))
	defer op.Close()

	require.NoError(t, op.DropAllTables(ctx))
	require.NoError(t, ioschema.NewManager(op).Create(ctx))

	recorder := iorun.NewRecorder(op)
	runner := iopipeline.NewRunner(cfg, op, recorder)
	require.NoError(t, runner.Run(ctx))

	// Two records share an email, so three raws become two golden
	// records.
	var martCount int
	err := op.Pool().QueryRow(ctx,
		"SELECT count(*) FROM customers_scored").Scan(&martCount)
	require.NoError(t, err)
	assert.Equal(t, 2, martCount)

	var rowsIn, rowsOut int
	err = op.Pool().QueryRow(ctx, `
SELECT rows_in, rows_out FROM pipeline_runs
WHERE status = 'success'
ORDER BY started_at DESC LIMIT 1`).Scan(&rowsIn, &rowsOut)
	require.NoError(t, err)
	assert.Equal(t, 3, rowsIn)
	assert.Equal(t, 2, rowsOut)

	// A second run replaces the batch instead of appending to it.
	require.NoError(t, runner.Run(ctx))

	err = op.Pool().QueryRow(ctx,
		"SELECT count(*) FROM customers_scored").Scan(&martCount)
	require.NoError(t, err)
	assert.Equal(t, 2, martCount)

	var runCount int
	err = op.Pool().QueryRow(ctx,
		"SELECT count(*) FROM pipeline_runs WHERE status = 'success'").
		Scan(&runCount)
	require.NoError(t, err)
	assert.Equal(t, 2, runCount)
}
