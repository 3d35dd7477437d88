// Package schema provides database schema models for the goldrec
// customer mart. Models are consumed by GORM AutoMigrate and by the
// publisher's bulk inserts.
package schema

import (
	"database/sql"
	"time"
)

// ScoredCustomer is one published golden record with its behavioral
// scores (Output A). The table is fully rewritten by each successful
// pipeline run.
type ScoredCustomer struct {
	// CustomerKey is the identity match key: UUID v5 of the clean
	// email, or of the external id when the email is absent.
	CustomerKey string `db:"customer_key" gorm:"type:uuid;primaryKey"`

	// ExternalID is the upstream identifier of the winning record.
	ExternalID string `db:"external_id" gorm:"type:varchar(255);not null;index"`

	FirstName sql.NullString `db:"first_name" gorm:"type:varchar(255)"`
	LastName  sql.NullString `db:"last_name" gorm:"type:varchar(255)"`

	// Email is the cleaned (trimmed, lowercased) address.
	Email sql.NullString `db:"email" gorm:"type:varchar(255);index"`

	// IsValidEmail reports contactability; never NULL.
	IsValidEmail bool `db:"is_valid_email" gorm:"not null"`

	Phone   sql.NullString `db:"phone" gorm:"type:varchar(50)"`
	Address sql.NullString `db:"address" gorm:"type:text"`
	City    sql.NullString `db:"city" gorm:"type:varchar(255)"`
	Country sql.NullString `db:"country" gorm:"type:varchar(255)"`

	// CreatedAt is the parsed customer creation date.
	CreatedAt sql.NullTime `db:"created_at" gorm:"type:date"`

	// RecencyScore, FrequencyScore and MonetaryScore are the RFM
	// sub-scores, each in [1,5].
	RecencyScore   int `db:"recency_score" gorm:"not null"`
	FrequencyScore int `db:"frequency_score" gorm:"not null"`
	MonetaryScore  int `db:"monetary_score" gorm:"not null"`

	// RFMSegment is the derived segment label.
	RFMSegment string `db:"rfm_segment" gorm:"type:varchar(50);not null;index"`

	// HealthScore is the weighted composite in [0,100].
	HealthScore int `db:"health_score" gorm:"not null"`

	// HealthStatus is the classification band.
	HealthStatus string `db:"health_status" gorm:"type:varchar(50);not null"`

	// ComputedAt is when the run that produced this row started.
	ComputedAt time.Time `db:"computed_at" gorm:"not null"`
}

// TableName returns the PostgreSQL table name for scored customers.
func (ScoredCustomer) TableName() string {
	return "customers_scored"
}

// PipelineRun is one record per pipeline execution (Output B). The
// log is append-only: a row is inserted as 'running' and transitions
// exactly once to 'success' or 'failed'; terminal rows are never
// modified afterwards.
type PipelineRun struct {
	// RunID is a random UUID assigned at run start.
	RunID string `db:"run_id" gorm:"type:uuid;primaryKey"`

	// PipelineName identifies the pipeline; single-writer per name
	// is assumed.
	PipelineName string `db:"pipeline_name" gorm:"type:varchar(255);not null;index"`

	// TargetName is the table the run publishes into.
	TargetName string `db:"target_name" gorm:"type:varchar(255);not null"`

	RowsIn  sql.NullInt64 `db:"rows_in"`
	RowsOut sql.NullInt64 `db:"rows_out"`

	// Status is 'running', 'success' or 'failed'.
	Status string `db:"status" gorm:"type:varchar(20);not null;index"`

	StartedAt   time.Time    `db:"started_at" gorm:"not null"`
	CompletedAt sql.NullTime `db:"completed_at"`

	// ErrorMessage is set only on failed runs.
	ErrorMessage sql.NullString `db:"error_message" gorm:"type:text"`
}

// TableName returns the PostgreSQL table name for the run log.
func (PipelineRun) TableName() string {
	return "pipeline_runs"
}

// Run statuses.
const (
	StatusRunning = "running"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)
