package ioschema

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/goldrec/goldrec/pkg/errcode"
)

// NotConnectedError creates an error for schema operations attempted
// without a database connection.
func NotConnectedError() error {
	msg := "Schema operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// GORMConnectionError creates an error for a failed GORM session.
func GORMConnectionError(err error) error {
	msg := "Could not open GORM session over the connection pool"

	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to open gorm session: %w", err),
	}
}

// CreateSchemaError creates an error for a failed schema creation.
func CreateSchemaError(err error) error {
	msg := `Could not create mart schema

<em>How to fix:</em>
  1. Check the database user has CREATE privileges
  2. Review the log for the failing statement`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to create schema: %w", err),
	}
}

// MigrateSchemaError creates an error for a failed schema migration.
func MigrateSchemaError(err error) error {
	msg := "Could not migrate mart schema"

	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to migrate schema: %w", err),
	}
}
