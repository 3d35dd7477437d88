// Package goldrec defines the lifecycle interfaces of the customer
// golden-record pipeline. Pure logic lives in the normalize,
// dateparse, identity and score packages; implementations of the
// interfaces here are impure and live under internal/.
package goldrec

import (
	"context"

	"github.com/goldrec/goldrec/pkg/record"
)

// SchemaManager manages the customer mart schema.
// It uses GORM AutoMigrate to handle both initial schema creation
// and migrations. Schema management is idempotent - safe to run
// multiple times.
type SchemaManager interface {
	// Create creates the initial mart schema using GORM
	// AutoMigrate. If tables already exist, behavior depends on
	// user confirmation via DropAllTables.
	Create(ctx context.Context) error

	// Migrate updates the mart schema to the latest models.
	Migrate(ctx context.Context) error
}

// LandingReader reads one raw customer batch from the landing store.
type LandingReader interface {
	// Read returns every raw record of the batch, in landing-store
	// order.
	Read(ctx context.Context) ([]record.Raw, error)

	// OrderStats returns the transactional aggregates keyed by
	// external id. A landing store without aggregates yields an
	// empty map, not an error.
	OrderStats(ctx context.Context) (map[string]record.OrderStats, error)

	// Close releases the underlying batch file.
	Close() error
}

// Recorder writes the pipeline run log. A run row is inserted with
// status 'running' and transitions exactly once to a terminal state;
// terminal rows are never modified.
type Recorder interface {
	// Start appends a 'running' row and returns its run id.
	Start(ctx context.Context, pipeline, target string) (string, error)

	// Success transitions the run to 'success' with its row counts.
	Success(ctx context.Context, runID string, rowsIn, rowsOut int) error

	// Fail transitions the run to 'failed' with an error message.
	Fail(ctx context.Context, runID string, errMsg string) error
}

// Runner executes the full batch pipeline: read, normalize, resolve
// identities, score, publish. The run log is written regardless of
// outcome.
type Runner interface {
	Run(ctx context.Context) error
}

// Reconciler compares row counts between the landing store and the
// mart and reports mismatches.
type Reconciler interface {
	Reconcile(ctx context.Context) error
}
