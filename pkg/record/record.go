// Package record defines the typed records that flow through the
// goldrec pipeline stages. All types here are plain data with no
// behavior; the transformations that produce them live in the
// normalize, dateparse, identity and score packages.
package record

import (
	"time"
)

// Raw is one customer record exactly as received from the landing
// store. Raw records may contain duplicates and malformed fields by
// design; empty strings stand for NULL values in the landing store.
// ExternalID and IngestedAt are the only fields guaranteed present.
type Raw struct {
	// ExternalID is the upstream identifier. It is not guaranteed
	// to be unique within a batch.
	ExternalID string

	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	Country   string

	// CreatedAtRaw is the free-text creation date as received.
	CreatedAtRaw string

	// IngestedAt is the landing-store ingestion timestamp,
	// kept verbatim for audit.
	IngestedAt string

	// SourceFile tags the upstream file the record came from.
	SourceFile string
}

// Normalized is a Raw record plus its cleaned fields. Raw
// counterparts are retained for audit. A nil pointer means the field
// could not be cleaned into anything useful.
type Normalized struct {
	Raw

	// EmailClean is the trimmed, lowercased email, or nil when the
	// raw value is empty or all whitespace.
	EmailClean *string

	// IsValidEmail reports whether the trimmed raw email matches
	// the canonical address grammar. It is independent of
	// EmailClean being set.
	IsValidEmail bool

	FirstNameClean *string
	LastNameClean  *string

	// PhoneClean contains digits and an optional leading '+' only.
	PhoneClean *string

	// CreatedAtParsed is the calendar date parsed from
	// CreatedAtRaw, or nil when no configured format matched.
	CreatedAtParsed *time.Time
}

// Golden is the single canonical record chosen to represent a
// resolved customer identity.
type Golden struct {
	Normalized

	// CustomerKey is the identity match key: a deterministic
	// UUID v5 digest of the normalized email, or of the external
	// id when the email is absent.
	CustomerKey string
}

// OrderStats holds the transactional aggregates for one customer,
// supplied by an external collaborator. A customer without any
// orders has zero values and a nil LastOrderDate.
type OrderStats struct {
	ExternalID    string
	OrderCount    int
	LastOrderDate *time.Time
	TotalSpend    float64
}

// RFMScore holds the three behavioral sub-scores and the derived
// segment label for one golden record.
type RFMScore struct {
	Recency   int
	Frequency int
	Monetary  int
	Segment   string
}

// HealthScore is the weighted composite of RFM sub-scores and
// contactability, with its classification band.
type HealthScore struct {
	Score  int
	Status string
}

// Scored is the fully scored golden record, ready for publishing.
type Scored struct {
	Golden

	RFM        RFMScore
	Health     HealthScore
	ComputedAt time.Time
}
