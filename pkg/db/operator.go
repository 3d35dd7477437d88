// Package db defines the contract for customer mart database
// operations. Implementations live in internal/iodb.
package db

import (
	"context"

	"github.com/goldrec/goldrec/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator defines the interface for basic database management
// operations. It provides connection lifecycle management and
// exposes the pgxpool.Pool for higher-level components (SchemaManager,
// Runner, Recorder) to execute their specialized SQL internally.
//
// Design rationale:
// - Keeps interface minimal to avoid bloat with mixed semantics
// - Pool() enables components to run transactions and bulk inserts
// - Schema creation and migration are handled by GORM AutoMigrate
//   via SchemaManager
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool for higher-level
	// components. Components use this for transactions, bulk
	// inserts, and custom queries.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables in the
	// public schema. Used to decide whether schema creation should
	// prompt for confirmation.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables in the public schema.
	// Used during schema initialization when overwriting
	// existing data.
	DropAllTables(ctx context.Context) error
}
