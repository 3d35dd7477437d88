package iopipeline

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/goldrec/goldrec/pkg/errcode"
)

// EmptyBatchError creates an error for a landing batch with no raw
// records. Publishing an empty batch would silently wipe the mart,
// so the run fails instead.
func EmptyBatchError(path string) error {
	msg := `Landing batch <em>%s</em> has no records

<em>How to fix:</em>
  1. Check the upstream export produced data
  2. Verify <em>landing.path</em> points at the right batch file`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.PipelineEmptyBatchError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("empty batch in %s", path),
	}
}

// PublishError creates an error for a failed mart rewrite. The
// transaction rolls back, so the previously published batch stays
// intact.
func PublishError(err error) error {
	msg := "Could not publish scored customers, previous batch kept"

	return &gn.Error{
		Code: errcode.PipelinePublishError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to publish scored customers: %w", err),
	}
}

// CancelledError creates an error for a run interrupted by its
// context.
func CancelledError(err error) error {
	msg := "Pipeline run cancelled"

	return &gn.Error{
		Code: errcode.PipelineCancelledError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("pipeline cancelled: %w", err),
	}
}
