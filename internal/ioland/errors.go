package ioland

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/goldrec/goldrec/pkg/errcode"
)

// OpenError creates an error for a landing file that could not be
// opened.
func OpenError(path string, err error) error {
	msg := `Could not open landing database <em>%s</em>

<em>Possible causes:</em>
  - The landing file does not exist yet
  - The path in the configuration is wrong

<em>How to fix:</em>
  1. Check the file exists: <em>ls -l %s</em>
  2. Verify <em>landing.path</em> in your configuration`

	vars := []any{path, path}

	return &gn.Error{
		Code: errcode.LandingOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to open landing database %s: %w", path, err),
	}
}

// QueryError creates an error for a failed landing query.
func QueryError(table string, err error) error {
	msg := "Could not query landing table <em>%s</em>"
	vars := []any{table}

	return &gn.Error{
		Code: errcode.LandingQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to query landing table %s: %w", table, err),
	}
}

// ScanError creates an error for a failed landing row scan.
func ScanError(table string, err error) error {
	msg := "Could not read rows from landing table <em>%s</em>"
	vars := []any{table}

	return &gn.Error{
		Code: errcode.LandingScanError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to scan landing table %s: %w", table, err),
	}
}
