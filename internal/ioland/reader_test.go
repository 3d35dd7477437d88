package ioland_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/goldrec/goldrec/internal/ioland"
	"github.com/goldrec/goldrec/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func landingConfig(path string) config.LandingConfig {
	return config.LandingConfig{
		Path:       path,
		RawTable:   "raw_customers",
		StatsTable: "order_stats",
	}
}

func makeLanding(t *testing.T, withStats bool) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "landing.sqlite")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`
CREATE TABLE raw_customers (
  external_id TEXT,
  first_name TEXT,
  last_name TEXT,
  email TEXT,
  phone TEXT,
  address TEXT,
  city TEXT,
  country TEXT,
  created_at_raw TEXT,
  ingested_at TEXT,
  source_file TEXT
)`)
	require.NoError(t, err)

	_, err = db.Exec(`
INSERT INTO raw_customers
  (external_id, first_name, last_name, email, created_at_raw)
VALUES
  ('C001', 'Jean', 'Dupont', 'jean@example.com', '2023-02-01'),
  ('C002', NULL, NULL, NULL, NULL)`)
	require.NoError(t, err)

	if withStats {
		_, err = db.Exec(`
CREATE TABLE order_stats (
  external_id TEXT,
  order_count INTEGER,
  last_order_date TIMESTAMP,
  total_spend REAL
)`)
		require.NoError(t, err)

		_, err = db.Exec(`
INSERT INTO order_stats
  (external_id, order_count, last_order_date, total_spend)
VALUES
  ('C001', 12, '2023-06-15 00:00:00+00:00', 840.5),
  ('C002', 0, NULL, 0)`)
		require.NoError(t, err)
	}

	return path
}

func TestReadRaw(t *testing.T) {
	path := makeLanding(t, true)
	r, err := ioland.New(landingConfig(path))
	require.NoError(t, err)
	defer r.Close()

	recs, err := r.Read(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "C001", recs[0].ExternalID)
	assert.Equal(t, "Jean", recs[0].FirstName)
	assert.Equal(t, "jean@example.com", recs[0].Email)
	assert.Equal(t, "2023-02-01", recs[0].CreatedAtRaw)

	// NULL columns come back as empty strings.
	assert.Equal(t, "C002", recs[1].ExternalID)
	assert.Empty(t, recs[1].FirstName)
	assert.Empty(t, recs[1].Email)
	assert.Empty(t, recs[1].CreatedAtRaw)
}

func TestOrderStats(t *testing.T) {
	path := makeLanding(t, true)
	r, err := ioland.New(landingConfig(path))
	require.NoError(t, err)
	defer r.Close()

	stats, err := r.OrderStats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)

	st := stats["C001"]
	assert.Equal(t, 12, st.OrderCount)
	assert.InDelta(t, 840.5, st.TotalSpend, 0.001)
	require.NotNil(t, st.LastOrderDate)
	assert.Equal(t, 2023, st.LastOrderDate.Year())

	st = stats["C002"]
	assert.Zero(t, st.OrderCount)
	assert.Nil(t, st.LastOrderDate)
}

func TestOrderStatsMissingTable(t *testing.T) {
	path := makeLanding(t, false)
	r, err := ioland.New(landingConfig(path))
	require.NoError(t, err)
	defer r.Close()

	stats, err := r.OrderStats(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestOpenMissingFile(t *testing.T) {
	cfg := landingConfig(filepath.Join(t.TempDir(), "nope.sqlite"))
	_, err := ioland.New(cfg)
	assert.Error(t, err)
}
