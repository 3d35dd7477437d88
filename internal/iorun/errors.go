package iorun

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/goldrec/goldrec/pkg/errcode"
)

// ErrNotConnected reports a recorder used without a database
// connection.
var ErrNotConnected = errors.New("not connected to database")

// StartError creates an error for a run that could not be
// recorded as started.
func StartError(pipeline string, err error) error {
	msg := "Could not record start of pipeline <em>%s</em>"
	vars := []any{pipeline}

	return &gn.Error{
		Code: errcode.RunStartError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to record run start for %s: %w", pipeline, err),
	}
}

// FinishError creates an error for a run outcome that could not
// be recorded.
func FinishError(runID string, err error) error {
	msg := "Could not record outcome of run <em>%s</em>"
	vars := []any{runID}

	return &gn.Error{
		Code: errcode.RunFinishError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to record run outcome for %s: %w", runID, err),
	}
}
