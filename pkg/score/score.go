// Package score derives the behavioral scores for golden records:
// recency/frequency/monetary sub-scores with a segment label, and a
// weighted health score with a classification band.
//
// Frequency and monetary scores are population-relative quintile
// ranks, so scoring is a two-pass algorithm: the first pass computes
// quintile boundaries over the whole batch, the second assigns
// per-record scores. No score is final until the full population has
// been seen; streaming partial results is not valid.
package score

import (
	"sort"
	"time"

	"github.com/goldrec/goldrec/pkg/record"
)

// RecencyBand maps days-since-last-order to a recency score. Bands
// are checked in order; the first band with Days >= days wins.
type RecencyBand struct {
	// MaxDays is the inclusive upper bound of the band.
	MaxDays int `mapstructure:"max_days" yaml:"max_days"`
	Score   int `mapstructure:"score"    yaml:"score"`
}

// Weights are the multipliers of the health score formula.
type Weights struct {
	Recency    int `mapstructure:"recency"     yaml:"recency"`
	Frequency  int `mapstructure:"frequency"   yaml:"frequency"`
	Monetary   int `mapstructure:"monetary"    yaml:"monetary"`
	ValidEmail int `mapstructure:"valid_email" yaml:"valid_email"`
}

// Bands are the classification cut-points of the health score.
type Bands struct {
	Excellent int `mapstructure:"excellent" yaml:"excellent"`
	Good      int `mapstructure:"good"      yaml:"good"`
	Fair      int `mapstructure:"fair"      yaml:"fair"`
}

// SegmentRule matches an RFM triple against inclusive bounds. A zero
// bound means "unconstrained". Rules are evaluated in order and the
// first match wins, so rule priority is part of the business rule.
type SegmentRule struct {
	Name         string `mapstructure:"name"          yaml:"name"`
	MinRecency   int    `mapstructure:"min_recency"   yaml:"min_recency"`
	MaxRecency   int    `mapstructure:"max_recency"   yaml:"max_recency"`
	MinFrequency int    `mapstructure:"min_frequency" yaml:"min_frequency"`
	MaxFrequency int    `mapstructure:"max_frequency" yaml:"max_frequency"`
	MinMonetary  int    `mapstructure:"min_monetary"  yaml:"min_monetary"`
}

// SegmentOthers is the fallback segment when no rule matches.
const SegmentOthers = "Others"

// Params bundles every scoring policy knob. Each field has an
// independent default; overriding one never changes the others.
type Params struct {
	RecencyBands []RecencyBand `mapstructure:"recency_bands" yaml:"recency_bands"`
	Weights      Weights       `mapstructure:"weights"       yaml:"weights"`
	Bands        Bands         `mapstructure:"bands"         yaml:"bands"`
	Segments     []SegmentRule `mapstructure:"segments"      yaml:"segments"`
}

// DefaultParams returns the documented scoring defaults.
func DefaultParams() Params {
	return Params{
		RecencyBands: []RecencyBand{
			{MaxDays: 30, Score: 5},
			{MaxDays: 60, Score: 4},
			{MaxDays: 90, Score: 3},
			{MaxDays: 180, Score: 2},
		},
		Weights: Weights{Recency: 25, Frequency: 25, Monetary: 30, ValidEmail: 20},
		Bands:   Bands{Excellent: 80, Good: 60, Fair: 40},
		Segments: []SegmentRule{
			{Name: "VIP", MinRecency: 4, MinFrequency: 4, MinMonetary: 4},
			{Name: "Champion", MinRecency: 4, MinFrequency: 3},
			{Name: "Loyal", MinRecency: 3, MinFrequency: 3},
			{Name: "At Risk", MaxRecency: 2, MinFrequency: 3},
			{Name: "Lost", MaxRecency: 2, MaxFrequency: 2},
		},
	}
}

// RFM scores the whole golden population. The returned slice is
// parallel to golden. Stats are looked up by external id; customers
// without stats score as having no orders and zero spend.
func RFM(
	golden []record.Golden,
	stats map[string]record.OrderStats,
	asOf time.Time,
	p Params,
) []record.RFMScore {
	// Pass 1: population statistics for quintile boundaries.
	counts := make([]float64, len(golden))
	spends := make([]float64, len(golden))
	for i, g := range golden {
		st := stats[g.ExternalID]
		counts[i] = float64(st.OrderCount)
		spends[i] = st.TotalSpend
	}
	countBounds := quintileBounds(counts)
	spendBounds := quintileBounds(spends)

	// Pass 2: per-record scores.
	res := make([]record.RFMScore, len(golden))
	for i, g := range golden {
		st := stats[g.ExternalID]
		s := record.RFMScore{
			Recency:   recencyScore(st.LastOrderDate, asOf, p.RecencyBands),
			Frequency: quintileRank(float64(st.OrderCount), countBounds),
			Monetary:  quintileRank(st.TotalSpend, spendBounds),
		}
		s.Segment = segment(s, p.Segments)
		res[i] = s
	}
	return res
}

// Health combines the RFM sub-scores and the contactability flag
// into one weighted score with its classification band. Each RFM term
// contributes weight*score/5 points, so a weight is the number of
// points its maxed sub-score adds: with the defaults a 5/5/5 customer
// with a valid email scores exactly 100, and the floor for a 1/1/1
// customer without one is 16.
func Health(rfm record.RFMScore, validEmail bool, p Params) record.HealthScore {
	w := p.Weights
	score := rfm.Recency*w.Recency/5 + rfm.Frequency*w.Frequency/5 +
		rfm.Monetary*w.Monetary/5
	if validEmail {
		score += w.ValidEmail
	}

	b := p.Bands
	status := "At Risk"
	switch {
	case score >= b.Excellent:
		status = "Excellent"
	case score >= b.Good:
		status = "Good"
	case score >= b.Fair:
		status = "Fair"
	}

	return record.HealthScore{Score: score, Status: status}
}

// recencyScore bands days-since-last-order. No last order at all is
// the coldest possible customer and scores 1.
func recencyScore(last *time.Time, asOf time.Time, bands []RecencyBand) int {
	if last == nil {
		return 1
	}
	days := int(asOf.Sub(*last).Hours() / 24)
	for _, b := range bands {
		if days <= b.MaxDays {
			return b.Score
		}
	}
	return 1
}

// quintileBounds returns the four boundary values splitting a sorted
// copy of values into five equal-sized buckets.
func quintileBounds(values []float64) [4]float64 {
	var bounds [4]float64
	n := len(values)
	if n == 0 {
		return bounds
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	for i := range 4 {
		idx := (i + 1) * n / 5
		if idx >= n {
			idx = n - 1
		}
		bounds[i] = sorted[idx]
	}
	return bounds
}

// quintileRank is 1 plus the number of boundaries at or below the
// value; rank 5 is the top quintile.
func quintileRank(v float64, bounds [4]float64) int {
	rank := 1
	for _, b := range bounds {
		if v >= b {
			rank++
		}
	}
	return rank
}

// SegmentFor returns the first matching segment rule name for an
// RFM triple, or Others when no rule matches.
func SegmentFor(s record.RFMScore, p Params) string {
	return segment(s, p.Segments)
}

// segment returns the first matching rule name, or Others.
func segment(s record.RFMScore, rules []SegmentRule) string {
	for _, r := range rules {
		if matches(s, r) {
			return r.Name
		}
	}
	return SegmentOthers
}

func matches(s record.RFMScore, r SegmentRule) bool {
	if r.MinRecency > 0 && s.Recency < r.MinRecency {
		return false
	}
	if r.MaxRecency > 0 && s.Recency > r.MaxRecency {
		return false
	}
	if r.MinFrequency > 0 && s.Frequency < r.MinFrequency {
		return false
	}
	if r.MaxFrequency > 0 && s.Frequency > r.MaxFrequency {
		return false
	}
	if r.MinMonetary > 0 && s.Monetary < r.MinMonetary {
		return false
	}
	return true
}
