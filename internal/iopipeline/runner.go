// Package iopipeline wires the batch pipeline together: read the
// landing batch, normalize, resolve identities, score, publish to
// the mart. The run log records every attempt, successful or not.
package iopipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/goldrec/goldrec/internal/ioland"
	"github.com/goldrec/goldrec/pkg/config"
	"github.com/goldrec/goldrec/pkg/dateparse"
	"github.com/goldrec/goldrec/pkg/db"
	"github.com/goldrec/goldrec/pkg/goldrec"
	"github.com/goldrec/goldrec/pkg/identity"
	"github.com/goldrec/goldrec/pkg/normalize"
	"github.com/goldrec/goldrec/pkg/record"
	"github.com/goldrec/goldrec/pkg/schema"
	"github.com/goldrec/goldrec/pkg/score"
	"golang.org/x/sync/errgroup"
)

// runner implements the goldrec.Runner interface.
type runner struct {
	cfg      *config.Config
	operator db.Operator
	recorder goldrec.Recorder
	norm     *normalize.Normalizer
}

// NewRunner creates a pipeline Runner. The date parser honors the
// configured format priority.
func NewRunner(
	cfg *config.Config,
	op db.Operator,
	rec goldrec.Recorder,
) goldrec.Runner {
	return &runner{
		cfg:      cfg,
		operator: op,
		recorder: rec,
		norm:     normalize.New(dateparse.New(cfg.Dates.FormatPriority)),
	}
}

// Run executes one batch. The outcome always lands in the run log:
// a failed stage marks the run 'failed' before the error is
// returned.
func (r *runner) Run(ctx context.Context) error {
	start := time.Now()

	runID, err := r.recorder.Start(
		ctx, config.PipelineName, schema.ScoredCustomer{}.TableName(),
	)
	if err != nil {
		return err
	}

	rowsIn, rowsOut, err := r.execute(ctx, start)
	if err != nil {
		// Best effort: the original error matters more than a
		// failure to record it.
		if recErr := r.recorder.Fail(ctx, runID, err.Error()); recErr != nil {
			slog.Error("Could not record run failure",
				"run_id", runID, "error", recErr)
		}
		return err
	}

	if err := r.recorder.Success(ctx, runID, rowsIn, rowsOut); err != nil {
		return err
	}

	gn.Info("Pipeline finished in <em>%s</em>",
		gnfmt.TimeString(time.Since(start).Seconds()))
	return nil
}

// execute runs the pipeline stages and returns the batch row counts.
func (r *runner) execute(
	ctx context.Context,
	start time.Time,
) (rowsIn, rowsOut int, err error) {
	gn.Info("Reading batch from <em>%s</em>", r.cfg.Landing.Path)
	reader, err := ioland.New(r.cfg.Landing)
	if err != nil {
		return 0, 0, err
	}
	defer reader.Close()

	raws, err := reader.Read(ctx)
	if err != nil {
		return 0, 0, err
	}
	rowsIn = len(raws)
	if rowsIn == 0 {
		return 0, 0, EmptyBatchError(r.cfg.Landing.Path)
	}

	stats, err := reader.OrderStats(ctx)
	if err != nil {
		return rowsIn, 0, err
	}

	gn.Info("Normalizing <em>%s</em> records",
		humanize.Comma(int64(rowsIn)))
	normalized, err := r.normalizeAll(ctx, raws)
	if err != nil {
		return rowsIn, 0, err
	}

	gn.Info("Resolving identities")
	golden := identity.Resolve(normalized)
	slog.Info("Identities resolved",
		"records", rowsIn, "customers", len(golden))

	gn.Info("Scoring <em>%s</em> customers",
		humanize.Comma(int64(len(golden))))
	scored := scoreAll(golden, stats, start, r.cfg.Scoring)
	rowsOut = len(scored)

	gn.Info("Publishing to <em>%s</em>",
		schema.ScoredCustomer{}.TableName())
	if err := r.publish(ctx, scored); err != nil {
		return rowsIn, 0, err
	}

	return rowsIn, rowsOut, nil
}

// normalizeAll cleans records concurrently. Workers own disjoint
// index ranges of the output slice, so the result order is the
// landing order regardless of scheduling.
func (r *runner) normalizeAll(
	ctx context.Context,
	raws []record.Raw,
) ([]record.Normalized, error) {
	jobs := r.cfg.JobsNumber
	if jobs < 1 {
		jobs = 1
	}

	res := make([]record.Normalized, len(raws))
	g, ctx := errgroup.WithContext(ctx)

	chunk := (len(raws) + jobs - 1) / jobs
	for lo := 0; lo < len(raws); lo += chunk {
		hi := min(lo+chunk, len(raws))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				select {
				case <-ctx.Done():
					return CancelledError(ctx.Err())
				default:
				}
				res[i] = r.norm.Record(raws[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// scoreAll attaches RFM and health scores to every golden record.
func scoreAll(
	golden []record.Golden,
	stats map[string]record.OrderStats,
	asOf time.Time,
	p score.Params,
) []record.Scored {
	rfm := score.RFM(golden, stats, asOf, p)

	res := make([]record.Scored, len(golden))
	for i, g := range golden {
		res[i] = record.Scored{
			Golden:     g,
			RFM:        rfm[i],
			Health:     score.Health(rfm[i], g.IsValidEmail, p),
			ComputedAt: asOf.UTC(),
		}
	}
	return res
}
