package ioreconcile

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/goldrec/goldrec/pkg/errcode"
)

var errNotConnected = errors.New("not connected to database")

// QueryError creates an error for a failed mart count query.
func QueryError(err error) error {
	msg := "Could not count published customers"

	return &gn.Error{
		Code: errcode.ReconcileQueryError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to count published customers: %w", err),
	}
}

// MismatchError creates an error for a mart that does not match the
// landing batch.
func MismatchError(raw, identities, published int) error {
	msg := `<em>MISMATCH</em>: %d raw records resolve to %d identities, but %d rows are published

<em>How to fix:</em>
  1. Re-run the pipeline against the same batch
  2. Check the run log for a failed publish`

	vars := []any{raw, identities, published}

	return &gn.Error{
		Code: errcode.ReconcileMismatchError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"reconciliation mismatch: %d identities vs %d published rows",
			identities, published),
	}
}
