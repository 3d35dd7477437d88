package iopipeline

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/goldrec/goldrec/pkg/config"
	"github.com/goldrec/goldrec/pkg/dateparse"
	"github.com/goldrec/goldrec/pkg/normalize"
	"github.com/goldrec/goldrec/pkg/record"
	"github.com/goldrec/goldrec/pkg/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRunner(jobs int) *runner {
	cfg := config.New()
	cfg.JobsNumber = jobs
	return &runner{
		cfg:  cfg,
		norm: normalize.New(dateparse.New(cfg.Dates.FormatPriority)),
	}
}

func TestNormalizeAllKeepsOrder(t *testing.T) {
	raws := make([]record.Raw, 100)
	for i := range raws {
		raws[i] = record.Raw{
			ExternalID: fmt.Sprintf("C%03d", i),
			Email:      fmt.Sprintf("  User%d@Example.com ", i),
		}
	}

	for _, jobs := range []int{1, 4, 0} {
		r := testRunner(jobs)
		normalized, err := r.normalizeAll(context.Background(), raws)
		require.NoError(t, err)
		require.Len(t, normalized, len(raws))

		for i, n := range normalized {
			assert.Equal(t, raws[i].ExternalID, n.ExternalID)
			require.NotNil(t, n.EmailClean)
			assert.Equal(t, fmt.Sprintf("user%d@example.com", i), *n.EmailClean)
		}
	}
}

func TestNormalizeAllCancelled(t *testing.T) {
	raws := make([]record.Raw, 50)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := testRunner(2)
	_, err := r.normalizeAll(ctx, raws)
	assert.Error(t, err)
}

func TestScoreAll(t *testing.T) {
	asOf := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
	recent := asOf.AddDate(0, 0, -10)

	email := "a@example.com"
	golden := []record.Golden{
		{
			Normalized: record.Normalized{
				Raw:          record.Raw{ExternalID: "C001"},
				EmailClean:   &email,
				IsValidEmail: true,
			},
			CustomerKey: "11111111-1111-5111-8111-111111111111",
		},
		{
			Normalized: record.Normalized{
				Raw: record.Raw{ExternalID: "C002"},
			},
			CustomerKey: "22222222-2222-5222-8222-222222222222",
		},
	}
	stats := map[string]record.OrderStats{
		"C001": {
			ExternalID:    "C001",
			OrderCount:    12,
			LastOrderDate: &recent,
			TotalSpend:    840.5,
		},
	}

	scored := scoreAll(golden, stats, asOf, score.DefaultParams())
	require.Len(t, scored, 2)

	assert.Equal(t, 5, scored[0].RFM.Recency)
	assert.Greater(t, scored[0].Health.Score, scored[1].Health.Score)

	// No stats means the coldest possible customer. In a population
	// of two the zero-order customer still lands in a middle
	// quintile, so the cold recency drives the segment.
	assert.Equal(t, 1, scored[1].RFM.Recency)
	assert.Equal(t, "At Risk", scored[1].RFM.Segment)

	for _, s := range scored {
		assert.Equal(t, asOf.UTC(), s.ComputedAt)
	}
}
