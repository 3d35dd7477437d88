// Package identity collapses normalized records that represent the
// same real-world customer into a single golden record per identity.
// Resolution is a full, stateless recomputation: the same batch
// always yields the same golden set, regardless of input order or of
// how many workers produced the normalized records.
package identity

import (
	"sort"

	"github.com/gnames/gnuuid"
	"github.com/goldrec/goldrec/pkg/record"
)

// MatchKey returns the identity match key for a normalized record:
// a deterministic UUID v5 digest of the clean email, or of the raw
// external id when the email is absent. Records with equal clean
// emails always share a key; records that both lack an email are
// keyed by their own external id and are never merged just because
// both emails are null.
func MatchKey(n record.Normalized) string {
	if n.EmailClean != nil {
		return gnuuid.New(*n.EmailClean).String()
	}
	return gnuuid.New(n.ExternalID).String()
}

// Resolve groups records by match key and keeps one golden record
// per group: the one with the earliest parsed creation date (nil
// dates sort last), with the lexicographically smallest external id
// as tie-break. The result is ordered by customer key so repeated
// runs over the same batch are byte-identical.
func Resolve(batch []record.Normalized) []record.Golden {
	groups := make(map[string][]record.Normalized)
	for _, n := range batch {
		key := MatchKey(n)
		groups[key] = append(groups[key], n)
	}

	res := make([]record.Golden, 0, len(groups))
	for key, group := range groups {
		sort.SliceStable(group, func(i, j int) bool {
			return less(group[i], group[j])
		})
		res = append(res, record.Golden{
			Normalized:  group[0],
			CustomerKey: key,
		})
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].CustomerKey < res[j].CustomerKey
	})
	return res
}

// less ranks records within one identity group: earliest created
// first, nil dates last, external id as the deterministic tie-break.
func less(a, b record.Normalized) bool {
	switch {
	case a.CreatedAtParsed == nil && b.CreatedAtParsed == nil:
		return a.ExternalID < b.ExternalID
	case a.CreatedAtParsed == nil:
		return false
	case b.CreatedAtParsed == nil:
		return true
	case a.CreatedAtParsed.Equal(*b.CreatedAtParsed):
		return a.ExternalID < b.ExternalID
	default:
		return a.CreatedAtParsed.Before(*b.CreatedAtParsed)
	}
}
