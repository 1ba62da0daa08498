package rollup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-insights-api/internal/domain"
)

func TestAggregate(t *testing.T) {
	stats := Aggregate([]domain.PerformanceRecord{
		{Recipients: 1000, Delivered: 900, OpensUnique: 300, ClicksUnique: 30, ConversionUniques: 3, Revenue: 150, Bounced: 100, Unsubscribes: 9},
		{Recipients: 1000, Delivered: 1100, OpensUnique: 100, ClicksUnique: 10, ConversionUniques: 2, Revenue: 100},
	})

	assert.Equal(t, 2, stats.TotalCampaigns)
	assert.Equal(t, int64(2000), stats.TotalRecipients)
	assert.Equal(t, int64(2000), stats.TotalDelivered)
	assert.InDelta(t, 250.0, stats.TotalRevenue, 1e-9)
	assert.InDelta(t, 20.0, stats.AvgOpenRate, 1e-9)
	assert.InDelta(t, 2.0, stats.AvgClickRate, 1e-9)
	assert.InDelta(t, 0.25, stats.AvgConversionRate, 1e-9)
	assert.InDelta(t, 5.0, stats.AvgBounceRate, 1e-9)
	assert.InDelta(t, 0.45, stats.AvgUnsubscribeRate, 1e-9)
	assert.InDelta(t, 0.125, stats.RevenuePerRecipient, 1e-9)
	assert.InDelta(t, 50.0, stats.AvgOrderValue, 1e-9)
}

func TestAggregate_Empty(t *testing.T) {
	assert.Equal(t, domain.AggregateStats{}, Aggregate(nil))
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		expected float64
	}{
		{name: "crescimento", current: 150, previous: 100, expected: 50},
		{name: "queda", current: 50, previous: 100, expected: -50},
		{name: "sem período anterior com valor", current: 10, previous: 0, expected: 100},
		{name: "sem período anterior e sem valor", current: 0, previous: 0, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comparison := Compare(
				domain.AggregateStats{TotalRevenue: tt.current},
				domain.AggregateStats{TotalRevenue: tt.previous},
			)

			change, ok := comparison.Changes["revenue"]
			require.True(t, ok)
			assert.InDelta(t, tt.expected, change.Change, 1e-9)
			assert.Equal(t, tt.current, change.Current)
			assert.Equal(t, tt.previous, change.Previous)
		})
	}
}

func TestCampaign(t *testing.T) {
	c := Campaign(domain.PerformanceRecord{
		AccountID:         "A",
		Recipients:        1000,
		Delivered:         500,
		OpensUnique:       100,
		ClicksUnique:      25,
		ConversionUniques: 5,
		Revenue:           250,
	}, "")

	assert.Equal(t, "A", c.AccountName)
	assert.InDelta(t, 20.0, c.OpenRate, 1e-9)
	assert.InDelta(t, 5.0, c.ClickRate, 1e-9)
	assert.InDelta(t, 1.0, c.ConversionRate, 1e-9)
	assert.InDelta(t, 25.0, c.ClickToOpenRate, 1e-9)
	assert.InDelta(t, 0.25, c.RevenuePerRecipient, 1e-9)
	assert.InDelta(t, 13.0, c.EngagementRate, 1e-9)
}
