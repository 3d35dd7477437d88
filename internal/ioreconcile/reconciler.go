// Package ioreconcile checks that the mart matches the landing
// batch: the number of published golden records must equal the
// number of distinct identities in the landing store.
package ioreconcile

import (
	"context"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/goldrec/goldrec/internal/ioland"
	"github.com/goldrec/goldrec/pkg/config"
	"github.com/goldrec/goldrec/pkg/db"
	"github.com/goldrec/goldrec/pkg/dateparse"
	"github.com/goldrec/goldrec/pkg/goldrec"
	"github.com/goldrec/goldrec/pkg/identity"
	"github.com/goldrec/goldrec/pkg/normalize"
	"github.com/goldrec/goldrec/pkg/schema"
)

// reconciler implements the goldrec.Reconciler interface.
type reconciler struct {
	cfg      *config.Config
	operator db.Operator
}

// NewReconciler creates a Reconciler comparing the configured
// landing store against the mart.
func NewReconciler(cfg *config.Config, op db.Operator) goldrec.Reconciler {
	return &reconciler{cfg: cfg, operator: op}
}

// Reconcile recomputes the expected identity count from the landing
// batch and compares it with the published row count. A mismatch is
// an error so exit codes can drive alerting.
func (r *reconciler) Reconcile(ctx context.Context) error {
	reader, err := ioland.New(r.cfg.Landing)
	if err != nil {
		return err
	}
	defer reader.Close()

	raws, err := reader.Read(ctx)
	if err != nil {
		return err
	}

	norm := normalize.New(dateparse.New(r.cfg.Dates.FormatPriority))
	keys := make(map[string]struct{}, len(raws))
	for _, raw := range raws {
		keys[identity.MatchKey(norm.Record(raw))] = struct{}{}
	}

	martCount, err := r.countScored(ctx)
	if err != nil {
		return err
	}

	slog.Info("Reconciliation counts",
		"raw", len(raws),
		"identities", len(keys),
		"published", martCount,
	)

	if martCount != len(keys) {
		return MismatchError(len(raws), len(keys), martCount)
	}

	gn.Info(
		"<em>OK</em>: %s raw records, %s identities, %s published rows",
		humanize.Comma(int64(len(raws))),
		humanize.Comma(int64(len(keys))),
		humanize.Comma(int64(martCount)),
	)
	return nil
}

func (r *reconciler) countScored(ctx context.Context) (int, error) {
	pool := r.operator.Pool()
	if pool == nil {
		return 0, QueryError(errNotConnected)
	}

	table := schema.ScoredCustomer{}.TableName()
	var count int
	err := pool.QueryRow(ctx, "SELECT count(*) FROM "+table).Scan(&count)
	if err != nil {
		return 0, QueryError(err)
	}
	return count, nil
}
