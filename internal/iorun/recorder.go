// Package iorun records pipeline run outcomes in the mart. Every
// run gets its own row in pipeline_runs: started rows are inserted
// as 'running' and later updated to a terminal status, never
// deleted.
package iorun

import (
	"context"
	"log/slog"
	"time"

	"github.com/goldrec/goldrec/pkg/db"
	"github.com/goldrec/goldrec/pkg/goldrec"
	"github.com/goldrec/goldrec/pkg/schema"
	"github.com/google/uuid"
)

// recorder implements the goldrec.Recorder interface over the
// mart database.
type recorder struct {
	operator db.Operator
}

// NewRecorder creates a new run Recorder.
func NewRecorder(op db.Operator) goldrec.Recorder {
	return &recorder{operator: op}
}

// Start inserts a new 'running' row and returns its run id.
func (r *recorder) Start(
	ctx context.Context,
	pipeline, target string,
) (string, error) {
	pool := r.operator.Pool()
	if pool == nil {
		return "", StartError(pipeline, ErrNotConnected)
	}

	runID := uuid.New().String()
	q := `
INSERT INTO pipeline_runs
  (run_id, pipeline_name, target_name, status, started_at)
VALUES ($1, $2, $3, $4, $5)`

	_, err := pool.Exec(ctx, q,
		runID, pipeline, target, schema.StatusRunning, time.Now().UTC(),
	)
	if err != nil {
		return "", StartError(pipeline, err)
	}

	slog.Info("Pipeline run started",
		"run_id", runID, "pipeline", pipeline, "target", target,
	)
	return runID, nil
}

// Success marks a running row as 'success' and records row counts.
func (r *recorder) Success(
	ctx context.Context,
	runID string,
	rowsIn, rowsOut int,
) error {
	pool := r.operator.Pool()
	if pool == nil {
		return FinishError(runID, ErrNotConnected)
	}

	q := `
UPDATE pipeline_runs
SET status = $1, rows_in = $2, rows_out = $3, completed_at = $4
WHERE run_id = $5 AND status = $6`

	_, err := pool.Exec(ctx, q,
		schema.StatusSuccess, rowsIn, rowsOut, time.Now().UTC(),
		runID, schema.StatusRunning,
	)
	if err != nil {
		return FinishError(runID, err)
	}

	slog.Info("Pipeline run succeeded",
		"run_id", runID, "rows_in", rowsIn, "rows_out", rowsOut,
	)
	return nil
}

// Fail marks a running row as 'failed' and records the error
// message.
func (r *recorder) Fail(
	ctx context.Context,
	runID string,
	errMsg string,
) error {
	pool := r.operator.Pool()
	if pool == nil {
		return FinishError(runID, ErrNotConnected)
	}

	q := `
UPDATE pipeline_runs
SET status = $1, error_message = $2, completed_at = $3
WHERE run_id = $4 AND status = $5`

	_, err := pool.Exec(ctx, q,
		schema.StatusFailed, errMsg, time.Now().UTC(),
		runID, schema.StatusRunning,
	)
	if err != nil {
		return FinishError(runID, err)
	}

	slog.Error("Pipeline run failed",
		"run_id", runID, "error", errMsg,
	)
	return nil
}
