// Package errcode defines error codes for all goldrec subsystems.
// Codes are attached to gn.Error values created by per-package
// error constructors.
package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Config errors
	ConfigLoadError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableCheckError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError

	// Landing store errors
	LandingOpenError
	LandingQueryError
	LandingScanError

	// Pipeline errors
	PipelineReadError
	PipelineEmptyBatchError
	PipelinePublishError
	PipelineCancelledError

	// Run recorder errors
	RunStartError
	RunFinishError

	// Reconcile errors
	ReconcileQueryError
	ReconcileMismatchError
)
