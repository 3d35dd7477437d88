package iopipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/goldrec/goldrec/pkg/record"
	"github.com/goldrec/goldrec/pkg/schema"
)

// insertColumns are the mart columns written by the publisher, in
// placeholder order.
var insertColumns = []string{
	"customer_key",
	"external_id",
	"first_name",
	"last_name",
	"email",
	"is_valid_email",
	"phone",
	"address",
	"city",
	"country",
	"created_at",
	"recency_score",
	"frequency_score",
	"monetary_score",
	"rfm_segment",
	"health_score",
	"health_status",
	"computed_at",
}

// maxQueryParams is the PostgreSQL limit on bind parameters per
// statement.
const maxQueryParams = 65535

// publish rewrites the scored table in a single transaction: either
// the previous batch stays untouched, or the new batch replaces it
// completely.
func (r *runner) publish(
	ctx context.Context,
	scored []record.Scored,
) error {
	pool := r.operator.Pool()
	if pool == nil {
		return PublishError(fmt.Errorf("not connected to database"))
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return PublishError(err)
	}
	defer tx.Rollback(ctx)

	table := schema.ScoredCustomer{}.TableName()
	if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
		return PublishError(err)
	}

	bar := pb.Full.Start(len(scored))
	bar.Set(pb.CleanOnFinish, true)

	size := batchLimit(r.cfg.Database.BatchSize, len(insertColumns))
	for lo := 0; lo < len(scored); lo += size {
		hi := min(lo+size, len(scored))
		batch := scored[lo:hi]

		q, args := insertBatch(table, batch)
		if _, err := tx.Exec(ctx, q, args...); err != nil {
			bar.Finish()
			return PublishError(err)
		}
		bar.Add(len(batch))
	}
	bar.Finish()

	if err := tx.Commit(ctx); err != nil {
		return PublishError(err)
	}

	slog.Info("Published scored customers",
		"table", table,
		"rows", humanize.Comma(int64(len(scored))),
	)
	return nil
}

// batchLimit clamps the configured batch size so one multi-row
// INSERT never exceeds the parameter limit.
func batchLimit(configured, columns int) int {
	maxRows := maxQueryParams / columns
	if configured < 1 || configured > maxRows {
		return maxRows
	}
	return configured
}

// insertBatch builds one multi-row INSERT for a batch of scored
// records.
func insertBatch(
	table string,
	batch []record.Scored,
) (string, []any) {
	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(table)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(insertColumns, ", "))
	sb.WriteString(") VALUES ")

	cols := len(insertColumns)
	args := make([]any, 0, len(batch)*cols)
	for i, s := range batch {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for j := range cols {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", i*cols+j+1)
		}
		sb.WriteString(")")
		args = append(args, rowArgs(s)...)
	}

	return sb.String(), args
}

// rowArgs flattens one scored record into bind arguments. Nil
// pointers become SQL NULLs.
func rowArgs(s record.Scored) []any {
	return []any{
		s.CustomerKey,
		s.ExternalID,
		s.FirstNameClean,
		s.LastNameClean,
		s.EmailClean,
		s.IsValidEmail,
		s.PhoneClean,
		nullIfEmpty(s.Address),
		nullIfEmpty(s.City),
		nullIfEmpty(s.Country),
		s.CreatedAtParsed,
		s.RFM.Recency,
		s.RFM.Frequency,
		s.RFM.Monetary,
		s.RFM.Segment,
		s.Health.Score,
		s.Health.Status,
		s.ComputedAt,
	}
}

func nullIfEmpty(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
