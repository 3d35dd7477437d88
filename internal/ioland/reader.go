// Package ioland reads raw customer records and order aggregates
// from a SQLite landing file. This is an impure I/O package that
// implements contracts defined in pkg/.
package ioland

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/goldrec/goldrec/pkg/config"
	"github.com/goldrec/goldrec/pkg/goldrec"
	"github.com/goldrec/goldrec/pkg/record"

	_ "modernc.org/sqlite"
)

// reader implements the goldrec.LandingReader interface over a
// SQLite landing database.
type reader struct {
	cfg config.LandingConfig
	db  *sql.DB
}

// New opens the landing database read-only and returns a
// LandingReader.
func New(cfg config.LandingConfig) (goldrec.LandingReader, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro", cfg.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, OpenError(cfg.Path, err)
	}

	// sql.Open is lazy, force the file to be touched.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, OpenError(cfg.Path, err)
	}

	return &reader{cfg: cfg, db: db}, nil
}

// Read returns all raw customer records from the landing table.
// Missing columns come back as empty strings, never as errors.
func (r *reader) Read(ctx context.Context) ([]record.Raw, error) {
	q := fmt.Sprintf(`
SELECT
  COALESCE(external_id, ''),
  COALESCE(first_name, ''),
  COALESCE(last_name, ''),
  COALESCE(email, ''),
  COALESCE(phone, ''),
  COALESCE(address, ''),
  COALESCE(city, ''),
  COALESCE(country, ''),
  COALESCE(created_at_raw, ''),
  COALESCE(ingested_at, ''),
  COALESCE(source_file, '')
FROM %s`, r.cfg.RawTable)

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, QueryError(r.cfg.RawTable, err)
	}
	defer rows.Close()

	var res []record.Raw
	for rows.Next() {
		var rec record.Raw
		err := rows.Scan(
			&rec.ExternalID,
			&rec.FirstName,
			&rec.LastName,
			&rec.Email,
			&rec.Phone,
			&rec.Address,
			&rec.City,
			&rec.Country,
			&rec.CreatedAtRaw,
			&rec.IngestedAt,
			&rec.SourceFile,
		)
		if err != nil {
			return nil, ScanError(r.cfg.RawTable, err)
		}
		res = append(res, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, ScanError(r.cfg.RawTable, err)
	}

	slog.Info("Read landing records",
		"table", r.cfg.RawTable,
		"records", humanize.Comma(int64(len(res))),
	)
	return res, nil
}

// OrderStats returns order aggregates keyed by external id. A
// missing aggregates table is not an error: scoring then treats
// every customer as having no orders.
func (r *reader) OrderStats(
	ctx context.Context,
) (map[string]record.OrderStats, error) {
	exists, err := r.tableExists(ctx, r.cfg.StatsTable)
	if err != nil {
		return nil, QueryError(r.cfg.StatsTable, err)
	}
	if !exists {
		slog.Warn("Order aggregates table missing, scoring without orders",
			"table", r.cfg.StatsTable)
		return map[string]record.OrderStats{}, nil
	}

	q := fmt.Sprintf(`
SELECT
  COALESCE(external_id, ''),
  COALESCE(order_count, 0),
  last_order_date,
  COALESCE(total_spend, 0)
FROM %s`, r.cfg.StatsTable)

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, QueryError(r.cfg.StatsTable, err)
	}
	defer rows.Close()

	res := make(map[string]record.OrderStats)
	for rows.Next() {
		var st record.OrderStats
		var lastOrder sql.NullTime
		err := rows.Scan(
			&st.ExternalID,
			&st.OrderCount,
			&lastOrder,
			&st.TotalSpend,
		)
		if err != nil {
			return nil, ScanError(r.cfg.StatsTable, err)
		}
		if lastOrder.Valid {
			t := lastOrder.Time
			st.LastOrderDate = &t
		}
		if st.ExternalID == "" {
			continue
		}
		res[st.ExternalID] = st
	}
	if err := rows.Err(); err != nil {
		return nil, ScanError(r.cfg.StatsTable, err)
	}

	slog.Info("Read order aggregates",
		"table", r.cfg.StatsTable,
		"customers", humanize.Comma(int64(len(res))),
	)
	return res, nil
}

// Close releases the landing database handle.
func (r *reader) Close() error {
	return r.db.Close()
}

func (r *reader) tableExists(
	ctx context.Context,
	table string,
) (bool, error) {
	q := `
SELECT EXISTS (
  SELECT 1 FROM sqlite_master
  WHERE type = 'table' AND name = ?
)`
	var exists bool
	err := r.db.QueryRowContext(ctx, q, table).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
