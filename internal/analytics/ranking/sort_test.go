package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-insights-api/internal/domain"
)

func TestSortState_Toggle(t *testing.T) {
	state := SortState{}

	state = state.Toggle(ColumnRevenue)
	assert.Equal(t, SortState{Column: ColumnRevenue, Direction: domain.SortDesc}, state)

	state = state.Toggle(ColumnRevenue)
	assert.Equal(t, SortState{Column: ColumnRevenue, Direction: domain.SortAsc}, state)

	state = state.Toggle(ColumnOpenRate)
	assert.Equal(t, SortState{Column: ColumnOpenRate, Direction: domain.SortDesc}, state)

	state = state.Toggle(ColumnOpenRate)
	state = state.Toggle(ColumnOpenRate)
	assert.Equal(t, domain.SortDesc, state.Direction)
}

func campaign(id, name, account string, revenue float64, sentAt time.Time) domain.CampaignPerformance {
	return domain.CampaignPerformance{
		PerformanceRecord: domain.PerformanceRecord{ID: id, Name: name, Revenue: revenue, SentAt: sentAt},
		AccountName:       account,
	}
}

func campaignIDs(campaigns []domain.CampaignPerformance) []string {
	result := make([]string, 0, len(campaigns))
	for _, c := range campaigns {
		result = append(result, c.ID)
	}
	return result
}

func TestSortCampaigns(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	campaigns := []domain.CampaignPerformance{
		campaign("1", "beta", "Loja B", 100, base),
		campaign("2", "Alpha", "loja a", 300, base.AddDate(0, 0, 2)),
		campaign("3", "gamma", "Loja C", 100, base.AddDate(0, 0, 1)),
		campaign("4", "ÁGUA", "Loja D", 200, base.AddDate(0, 0, 3)),
	}

	tests := []struct {
		name     string
		state    SortState
		expected []string
	}{
		{name: "receita decrescente com empate estável", state: SortState{Column: ColumnRevenue, Direction: domain.SortDesc}, expected: []string{"2", "4", "1", "3"}},
		{name: "receita crescente com empate estável", state: SortState{Column: ColumnRevenue, Direction: domain.SortAsc}, expected: []string{"1", "3", "4", "2"}},
		{name: "nome crescente sem diferenciar maiúsculas", state: SortState{Column: ColumnCampaign, Direction: domain.SortAsc}, expected: []string{"4", "2", "1", "3"}},
		{name: "conta decrescente", state: SortState{Column: ColumnAccount, Direction: domain.SortDesc}, expected: []string{"4", "3", "1", "2"}},
		{name: "data padrão decrescente", state: SortState{Column: ColumnSentAt}, expected: []string{"4", "2", "3", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sorted, err := SortCampaigns(campaigns, tt.state, "pt-BR")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, campaignIDs(sorted))
		})
	}

	assert.Equal(t, []string{"1", "2", "3", "4"}, campaignIDs(campaigns), "entrada não deve ser alterada")
}

func TestSortCampaigns_Errors(t *testing.T) {
	_, err := SortCampaigns(nil, SortState{Column: "nope"}, "")
	assert.ErrorIs(t, err, ErrUnknownSortColumn)

	_, err = SortCampaigns(nil, SortState{Column: ColumnRevenue, Direction: "up"}, "")
	assert.ErrorIs(t, err, ErrInvalidSortDirection)
}

func scored(id, name string, score int, revenue float64, campaigns int) domain.ScoredAccount {
	return domain.ScoredAccount{
		AccountRollup: domain.AccountRollup{
			AccountID:       id,
			AccountName:     name,
			Revenue:         revenue,
			Campaigns:       campaigns,
			EngagementScore: float64(score) / 2,
		},
		PerformanceScore: score,
	}
}

func accountIDs(accounts []domain.ScoredAccount) []string {
	result := make([]string, 0, len(accounts))
	for _, a := range accounts {
		result = append(result, a.AccountID)
	}
	return result
}

func TestSortAccounts_Modes(t *testing.T) {
	accounts := []domain.ScoredAccount{
		scored("A", "zeta", 40, 100, 3),
		scored("B", "Alfa", 90, 50, 9),
		scored("C", "beta", 60, 300, 1),
	}

	tests := []struct {
		mode     string
		expected []string
	}{
		{mode: ModeScoreDesc, expected: []string{"B", "C", "A"}},
		{mode: ModeScoreAsc, expected: []string{"A", "C", "B"}},
		{mode: ModeName, expected: []string{"B", "C", "A"}},
		{mode: ModePrimaryDesc, expected: []string{"B", "C", "A"}},
		{mode: ModePrimaryAsc, expected: []string{"A", "C", "B"}},
		{mode: ModeRevenue, expected: []string{"C", "A", "B"}},
		{mode: ModeCampaigns, expected: []string{"B", "A", "C"}},
		{mode: "clickRate", expected: []string{"A", "B", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			sorted, err := SortAccounts(accounts, ParseAccountSortMode(tt.mode), domain.FormulaEngagementScore, "")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, accountIDs(sorted))
		})
	}
}

func TestSortAccounts_UnknownColumn(t *testing.T) {
	_, err := SortAccounts(nil, SortState{Column: "luck"}, domain.DefaultFormula, "")
	assert.ErrorIs(t, err, ErrUnknownSortColumn)

	assert.ErrorIs(t, ValidateAccountColumn("luck"), ErrUnknownSortColumn)
	assert.NoError(t, ValidateAccountColumn(ColumnPerformanceScore))
	assert.NoError(t, ValidateCampaignColumn(ColumnCTOR))
}
