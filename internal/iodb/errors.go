package iodb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/goldrec/goldrec/pkg/errcode"
)

// ConnectionError creates an error for a failed PostgreSQL
// connection attempt.
func ConnectionError(
	host string,
	port int,
	database, user string,
	err error,
) error {
	msg := `Could not connect to PostgreSQL database

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Database configuration is incorrect
  - Network connectivity issues

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>
  2. Verify database exists:
     <em>psql -h %s -U %s -l</em>
  3. Check your configuration file`

	vars := []any{host, port, host, user}

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to connect to %s:%d/%s: %w",
			host, port, database, err),
	}
}

// NotConnectedError creates an error for operations attempted
// without a database connection.
func NotConnectedError() error {
	msg := "Database operation attempted without connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// TableCheckError creates an error for a failed check of the
// database state.
func TableCheckError(err error) error {
	msg := "Could not verify database state"

	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to check database tables: %w", err),
	}
}

// TableExistsCheckError creates an error for a failed existence
// check of a single table.
func TableExistsCheckError(table string, err error) error {
	msg := "Could not check table <em>%s</em>"
	vars := []any{table}

	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to check table %s: %w", table, err),
	}
}

// QueryTablesError creates an error for a failed table listing.
func QueryTablesError(err error) error {
	msg := "Could not list database tables"

	return &gn.Error{
		Code: errcode.DBQueryTablesError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to query tables: %w", err),
	}
}

// ScanTableError creates an error for a failed table name scan.
func ScanTableError(err error) error {
	msg := "Could not read database table names"

	return &gn.Error{
		Code: errcode.DBScanTableError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to scan table name: %w", err),
	}
}

// DropTableError creates an error for a failed DROP TABLE.
func DropTableError(table string, err error) error {
	msg := "Could not drop table <em>%s</em>"
	vars := []any{table}

	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to drop table %s: %w", table, err),
	}
}
