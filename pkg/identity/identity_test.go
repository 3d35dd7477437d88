package identity_test

import (
	"testing"

	"github.com/goldrec/goldrec/pkg/identity"
	"github.com/goldrec/goldrec/pkg/normalize"
	"github.com/goldrec/goldrec/pkg/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func norm(t *testing.T, r record.Raw) record.Normalized {
	t.Helper()
	return normalize.New(nil).Record(r)
}

func TestMatchKeyDeterministic(t *testing.T) {
	a := norm(t, record.Raw{ExternalID: "A", Email: "Jean@Gmail.com"})
	b := norm(t, record.Raw{ExternalID: "B", Email: "jean@gmail.com "})
	c := norm(t, record.Raw{ExternalID: "C", Email: "other@gmail.com"})

	assert.Equal(t, identity.MatchKey(a), identity.MatchKey(b),
		"equal clean emails share a key")
	assert.NotEqual(t, identity.MatchKey(a), identity.MatchKey(c),
		"different clean emails get different keys")
}

func TestMatchKeyNullEmail(t *testing.T) {
	a := norm(t, record.Raw{ExternalID: "A"})
	b := norm(t, record.Raw{ExternalID: "B"})
	a2 := norm(t, record.Raw{ExternalID: "A"})

	assert.NotEqual(t, identity.MatchKey(a), identity.MatchKey(b),
		"null-email records are distinct identities")
	assert.Equal(t, identity.MatchKey(a), identity.MatchKey(a2),
		"same external id yields same key")
}

func TestResolveDuplicateEmails(t *testing.T) {
	batch := []record.Normalized{
		norm(t, record.Raw{
			ExternalID:   "C-0200",
			Email:        "jean@gmail.com ",
			CreatedAtRaw: "2023-02-01",
		}),
		norm(t, record.Raw{
			ExternalID:   "C-0100",
			Email:        "Jean@Gmail.com",
			CreatedAtRaw: "2023-01-10",
		}),
	}

	golden := identity.Resolve(batch)

	require.Len(t, golden, 1)
	assert.Equal(t, "C-0100", golden[0].ExternalID,
		"earliest created record wins")
	require.NotNil(t, golden[0].EmailClean)
	assert.Equal(t, "jean@gmail.com", *golden[0].EmailClean)
}

func TestResolveNilDatesSortLast(t *testing.T) {
	batch := []record.Normalized{
		norm(t, record.Raw{ExternalID: "Z", Email: "x@y.com",
			CreatedAtRaw: "garbage"}),
		norm(t, record.Raw{ExternalID: "A", Email: "x@y.com",
			CreatedAtRaw: "2023-05-01"}),
	}

	golden := identity.Resolve(batch)

	require.Len(t, golden, 1)
	assert.Equal(t, "A", golden[0].ExternalID,
		"record with a parsed date beats one without")
}

func TestResolveTieBreakExternalID(t *testing.T) {
	batch := []record.Normalized{
		norm(t, record.Raw{ExternalID: "B", Email: "x@y.com",
			CreatedAtRaw: "2023-05-01"}),
		norm(t, record.Raw{ExternalID: "A", Email: "x@y.com",
			CreatedAtRaw: "2023-05-01"}),
	}

	golden := identity.Resolve(batch)

	require.Len(t, golden, 1)
	assert.Equal(t, "A", golden[0].ExternalID)
}

func TestResolveCountMatchesDistinctKeys(t *testing.T) {
	batch := []record.Normalized{
		norm(t, record.Raw{ExternalID: "1", Email: "a@b.com"}),
		norm(t, record.Raw{ExternalID: "2", Email: "a@b.com"}),
		norm(t, record.Raw{ExternalID: "3", Email: "c@d.com"}),
		norm(t, record.Raw{ExternalID: "4"}),
		norm(t, record.Raw{ExternalID: "5"}),
	}

	keys := make(map[string]struct{})
	for _, n := range batch {
		keys[identity.MatchKey(n)] = struct{}{}
	}

	golden := identity.Resolve(batch)

	assert.Len(t, golden, len(keys))
	seen := make(map[string]struct{})
	for _, g := range golden {
		_, dup := seen[g.CustomerKey]
		assert.False(t, dup, "no duplicate customer keys")
		seen[g.CustomerKey] = struct{}{}
	}
}

// Resolve is a pure recomputation: shuffled input yields the same
// golden set in the same order.
func TestResolveDeterministicOrder(t *testing.T) {
	mk := func(id, email, created string) record.Normalized {
		return norm(t, record.Raw{
			ExternalID: id, Email: email, CreatedAtRaw: created,
		})
	}

	batch := []record.Normalized{
		mk("1", "a@b.com", "2023-01-01"),
		mk("2", "a@b.com", "2022-01-01"),
		mk("3", "c@d.com", "2023-03-03"),
		mk("4", "", "2021-01-01"),
	}
	shuffled := []record.Normalized{batch[3], batch[1], batch[0], batch[2]}

	first := identity.Resolve(batch)
	second := identity.Resolve(shuffled)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].CustomerKey, second[i].CustomerKey)
		assert.Equal(t, first[i].ExternalID, second[i].ExternalID)
	}
}

func TestResolveKeepsUnparsedDateOnlyGroup(t *testing.T) {
	batch := []record.Normalized{
		norm(t, record.Raw{ExternalID: "B", Email: "x@y.com"}),
		norm(t, record.Raw{ExternalID: "A", Email: "x@y.com"}),
	}

	golden := identity.Resolve(batch)

	require.Len(t, golden, 1)
	assert.Equal(t, "A", golden[0].ExternalID,
		"external id tie-break applies when no record has a date")
}
