// Package ioschema implements SchemaManager for the customer mart.
// This is an impure I/O package that wraps GORM AutoMigrate
// functionality.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/goldrec/goldrec/pkg/db"
	"github.com/goldrec/goldrec/pkg/goldrec"
	"github.com/goldrec/goldrec/pkg/schema"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// manager implements the goldrec.SchemaManager interface using GORM
// AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) goldrec.SchemaManager {
	return &manager{operator: op}
}

// Create creates the mart schema using GORM AutoMigrate. Deciding
// what to do with pre-existing tables is the caller's job.
func (m *manager) Create(ctx context.Context) error {
	gormDB, err := m.gormDB()
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB); err != nil {
		return CreateSchemaError(err)
	}

	slog.Info("Mart schema created")
	return nil
}

// Migrate updates the mart schema to the latest models using GORM
// AutoMigrate.
func (m *manager) Migrate(ctx context.Context) error {
	gormDB, err := m.gormDB()
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB); err != nil {
		return MigrateSchemaError(err)
	}

	slog.Info("Mart schema migrated")
	return nil
}

func (m *manager) gormDB() (*gorm.DB, error) {
	pool := m.operator.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(pool)

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{},
	)
	if err != nil {
		return nil, GORMConnectionError(err)
	}
	return gormDB, nil
}
