package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-insights-api/internal/domain"
)

func TestListByPeriodQuery(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)

	t.Run("todos os filtros", func(t *testing.T) {
		query, args, err := listByPeriodQuery(start, end, []string{"X", "Y"})
		require.NoError(t, err)

		assert.Contains(t, query, "FROM campaign_performance cp")
		assert.Contains(t, query, "cp.sent_at >= $1 AND cp.sent_at <= $2 AND cp.account_id IN ($3,$4)")
		assert.Contains(t, query, "ORDER BY cp.sent_at ASC, cp.id ASC")
		assert.Equal(t, []any{start, end, "X", "Y"}, args)
	})

	t.Run("sem filtros", func(t *testing.T) {
		query, args, err := listByPeriodQuery(time.Time{}, time.Time{}, nil)
		require.NoError(t, err)

		assert.NotContains(t, query, "WHERE")
		assert.Empty(t, args)
	})
}

func TestClickHouseListQuery(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	query, args := clickHouseListQuery(start, time.Time{}, []string{"X"})

	assert.Contains(t, query, "FROM campaign_performance FINAL")
	assert.Contains(t, query, "WHERE sent_at >= ? AND account_id IN ?")
	assert.NotContains(t, query, "sent_at <=")
	assert.Equal(t, []any{start, []string{"X"}}, args)
}

func TestStaleRankingsQuery(t *testing.T) {
	query, args, err := staleRankingsQuery([]*domain.ScoreRankingItem{
		{AccountID: "ACC001", Month: "01-2024", Formula: domain.FormulaEngagementScore},
		{AccountID: "ACC002", Month: "01-2024", Formula: domain.FormulaEngagementScore},
	})
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM score_ranking WHERE formula = $1 AND month = $2 AND account_id NOT IN ($3,$4)", query)
	assert.Equal(t, []any{"engagement-score", "01-2024", "ACC001", "ACC002"}, args)
}

func TestNullInt(t *testing.T) {
	assert.Nil(t, nullInt(sql.NullInt64{}))
	assert.Equal(t, int64(42), nullInt(sql.NullInt64{Int64: 42, Valid: true}))
}
