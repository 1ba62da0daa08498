package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-insights-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-insights-api/internal/analytics"
	"github.com/vfg2006/campaign-insights-api/internal/domain"
	"go.uber.org/mock/gomock"
)

type scoreRankingMocks struct {
	accountRepo *mocks.MockAccountRepository
	recordRepo  *mocks.MockPerformanceRecordRepository
	rankingRepo *mocks.MockScoreRankingRepository
}

func newScoreRankingService(t *testing.T) (*ScoreRankingService, scoreRankingMocks) {
	ctrl := gomock.NewController(t)

	m := scoreRankingMocks{
		accountRepo: mocks.NewMockAccountRepository(ctrl),
		recordRepo:  mocks.NewMockPerformanceRecordRepository(ctrl),
		rankingRepo: mocks.NewMockScoreRankingRepository(ctrl),
	}

	service := &ScoreRankingService{
		accountRepo: m.accountRepo,
		recordRepo:  m.recordRepo,
		rankingRepo: m.rankingRepo,
		engine:      analytics.NewEngine(analytics.Options{}),
		config: ScoreRankingConfig{
			CronSchedule: "0 6 * * *",
			Formula:      domain.FormulaEngagementScore,
		},
	}

	return service, m
}

func stringPtr(s string) *string {
	return &s
}

func januaryRecords() []domain.RawRecord {
	return []domain.RawRecord{
		{ID: "a1", AccountID: "ACC001", Channel: "email", SentAt: "2024-01-10T10:00:00Z", Recipients: 1000, Delivered: 1000, OpensUnique: 300, ClicksUnique: 30, ConversionUniques: 3, Revenue: 900},
		{ID: "b1", AccountID: "ACC002", Channel: "email", SentAt: "2024-01-11T10:00:00Z", Recipients: 1000, Delivered: 1000, OpensUnique: 100, ClicksUnique: 10, ConversionUniques: 1, Revenue: 100},
	}
}

func TestScoreRankingService_processScoreRankingWithDate(t *testing.T) {
	service, m := newScoreRankingService(t)

	// Execução em 16 de janeiro considera o mês até o dia 15
	referenceDate := time.Date(2024, 1, 16, 6, 0, 0, 0, time.UTC)
	month := "01-2024"

	m.accountRepo.EXPECT().
		ListAccounts(gomock.Any(), []domain.AccountStatus{domain.AccountStatusActive}).
		Return([]*domain.Account{
			{ID: "ACC001", Name: "Loja A", Status: domain.AccountStatusActive},
			{ID: "ACC002", Name: "Loja B", Nickname: stringPtr("Filial B"), Status: domain.AccountStatusActive},
		}, nil)

	m.recordRepo.EXPECT().
		ListByPeriod(
			gomock.Any(),
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 15, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC),
			[]string{"ACC001", "ACC002"},
		).
		Return(januaryRecords(), nil)

	// ACC002 liderava, ACC001 estava em segundo
	m.rankingRepo.EXPECT().
		GetByAccountID(gomock.Any(), "ACC001", month, domain.FormulaEngagementScore).
		Return(&domain.ScoreRankingItem{AccountID: "ACC001", Position: 2}, nil)
	m.rankingRepo.EXPECT().
		GetByAccountID(gomock.Any(), "ACC002", month, domain.FormulaEngagementScore).
		Return(&domain.ScoreRankingItem{AccountID: "ACC002", Position: 1}, nil)

	var saved []*domain.ScoreRankingItem
	m.rankingRepo.EXPECT().
		SaveOrUpdateScoreRanking(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rankings []*domain.ScoreRankingItem) error {
			saved = rankings
			return nil
		})

	result, err := service.processScoreRankingWithDate(context.Background(), "run-1", referenceDate)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, result, saved)

	first := result[0]
	assert.Equal(t, "ACC001", first.AccountID)
	assert.Equal(t, "Loja A", first.AccountName)
	assert.Equal(t, month, first.Month)
	assert.Equal(t, "run-1", first.RunID)
	assert.Equal(t, domain.FormulaEngagementScore, first.Formula)
	assert.Equal(t, 100, first.Score)
	assert.Equal(t, 1, first.Position)
	assert.Equal(t, 1, first.PositionChange) // subiu uma posição
	assert.Equal(t, 2, first.PreviousPosition)
	assert.Equal(t, 900.0, first.Revenue)

	second := result[1]
	assert.Equal(t, "ACC002", second.AccountID)
	assert.Equal(t, "Filial B", second.AccountName)
	assert.Equal(t, 50, second.Score)
	assert.Equal(t, 2, second.Position)
	assert.Equal(t, -1, second.PositionChange) // desceu uma posição
	assert.Equal(t, 1, second.PreviousPosition)
}

func TestScoreRankingService_processScoreRankingWithDate_FirstDayOfMonth(t *testing.T) {
	service, m := newScoreRankingService(t)

	// No dia 1º o ranking ainda é do mês anterior inteiro
	referenceDate := time.Date(2024, 2, 1, 6, 0, 0, 0, time.UTC)

	m.accountRepo.EXPECT().
		ListAccounts(gomock.Any(), gomock.Any()).
		Return([]*domain.Account{{ID: "ACC001", Name: "Loja A"}}, nil)

	m.recordRepo.EXPECT().
		ListByPeriod(
			gomock.Any(),
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 31, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC),
			[]string{"ACC001"},
		).
		Return(januaryRecords()[:1], nil)

	m.rankingRepo.EXPECT().
		GetByAccountID(gomock.Any(), "ACC001", "01-2024", domain.FormulaEngagementScore).
		Return(nil, nil)
	m.rankingRepo.EXPECT().
		SaveOrUpdateScoreRanking(gomock.Any(), gomock.Any()).
		Return(nil)

	result, err := service.processScoreRankingWithDate(context.Background(), "run-2", referenceDate)
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(t, "01-2024", result[0].Month)
	assert.Equal(t, 1, result[0].Position)
	assert.Zero(t, result[0].PositionChange) // conta nova no ranking
	assert.Zero(t, result[0].PreviousPosition)
}

func TestScoreRankingService_processScoreRankingWithDate_NoAccounts(t *testing.T) {
	service, m := newScoreRankingService(t)

	m.accountRepo.EXPECT().
		ListAccounts(gomock.Any(), gomock.Any()).
		Return([]*domain.Account{}, nil)

	result, err := service.processScoreRankingWithDate(context.Background(), "run-3", time.Now())
	require.NoError(t, err)

	assert.Empty(t, result)
}

func TestScoreRankingService_processScoreRankingWithDate_SourceError(t *testing.T) {
	service, m := newScoreRankingService(t)

	m.accountRepo.EXPECT().
		ListAccounts(gomock.Any(), gomock.Any()).
		Return([]*domain.Account{{ID: "ACC001"}}, nil)
	m.recordRepo.EXPECT().
		ListByPeriod(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, assert.AnError)

	_, err := service.processScoreRankingWithDate(context.Background(), "run-4", time.Now())

	assert.ErrorIs(t, err, assert.AnError)
}

func TestScoreRankingService_previousLookupFailureKeepsRanking(t *testing.T) {
	service, m := newScoreRankingService(t)

	m.accountRepo.EXPECT().
		ListAccounts(gomock.Any(), gomock.Any()).
		Return([]*domain.Account{{ID: "ACC001"}, {ID: "ACC002"}}, nil)
	m.recordRepo.EXPECT().
		ListByPeriod(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(januaryRecords(), nil)
	m.rankingRepo.EXPECT().
		GetByAccountID(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, assert.AnError).
		Times(2)
	m.rankingRepo.EXPECT().
		SaveOrUpdateScoreRanking(gomock.Any(), gomock.Any()).
		Return(nil)

	result, err := service.processScoreRankingWithDate(context.Background(), "run-5", time.Date(2024, 1, 16, 6, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, result, 2)
	assert.Zero(t, result[0].PreviousPosition)
	assert.Zero(t, result[1].PreviousPosition)
}

func TestScoreRankingService_updatePositions(t *testing.T) {
	service := &ScoreRankingService{}

	tests := []struct {
		name              string
		rankings          []*domain.ScoreRankingItem
		before            map[string]*domain.ScoreRankingItem
		expectedOrder     []string
		expectedPositions map[string]int
		expectedChanges   map[string]int
	}{
		{
			name: "Ordena por pontuação decrescente",
			rankings: []*domain.ScoreRankingItem{
				{AccountID: "A", Score: 40},
				{AccountID: "B", Score: 90},
				{AccountID: "C", Score: 70},
			},
			before:            map[string]*domain.ScoreRankingItem{},
			expectedOrder:     []string{"B", "C", "A"},
			expectedPositions: map[string]int{"A": 3, "B": 1, "C": 2},
			expectedChanges:   map[string]int{"A": 0, "B": 0, "C": 0},
		},
		{
			name: "Empate desfeito pela receita",
			rankings: []*domain.ScoreRankingItem{
				{AccountID: "A", Score: 80, Revenue: 100},
				{AccountID: "B", Score: 80, Revenue: 500},
			},
			before:            map[string]*domain.ScoreRankingItem{},
			expectedOrder:     []string{"B", "A"},
			expectedPositions: map[string]int{"A": 2, "B": 1},
			expectedChanges:   map[string]int{"A": 0, "B": 0},
		},
		{
			name: "Empate total mantém a ordem de entrada",
			rankings: []*domain.ScoreRankingItem{
				{AccountID: "A", Score: 80, Revenue: 100},
				{AccountID: "B", Score: 80, Revenue: 100},
			},
			before:            map[string]*domain.ScoreRankingItem{},
			expectedOrder:     []string{"A", "B"},
			expectedPositions: map[string]int{"A": 1, "B": 2},
			expectedChanges:   map[string]int{"A": 0, "B": 0},
		},
		{
			name: "Mudança de posição é anterior menos atual",
			rankings: []*domain.ScoreRankingItem{
				{AccountID: "A", Score: 10},
				{AccountID: "B", Score: 20},
				{AccountID: "C", Score: 30},
			},
			before: map[string]*domain.ScoreRankingItem{
				"A": {AccountID: "A", Position: 1},
				"C": {AccountID: "C", Position: 3},
			},
			expectedOrder:     []string{"C", "B", "A"},
			expectedPositions: map[string]int{"A": 3, "B": 2, "C": 1},
			expectedChanges:   map[string]int{"A": -2, "B": 0, "C": 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service.updatePositions(tt.rankings, tt.before)

			order := make([]string, 0, len(tt.rankings))
			for _, ranking := range tt.rankings {
				order = append(order, ranking.AccountID)
				assert.Equal(t, tt.expectedPositions[ranking.AccountID], ranking.Position, ranking.AccountID)
				assert.Equal(t, tt.expectedChanges[ranking.AccountID], ranking.PositionChange, ranking.AccountID)
			}
			assert.Equal(t, tt.expectedOrder, order)
		})
	}
}

func TestScoreRankingService_UpdateScoreRankingSkipsWhenRunning(t *testing.T) {
	service, _ := newScoreRankingService(t)
	service.syncRunning = true

	err := service.UpdateScoreRanking(context.Background())
	require.NoError(t, err)

	assert.False(t, service.TriggerManualSync(context.Background()))
	assert.Equal(t, true, service.GetStatus()["sync_running"])
}

func TestScoreRankingService_GetStatus(t *testing.T) {
	service, _ := newScoreRankingService(t)

	status := service.GetStatus()

	assert.Equal(t, false, status["sync_enabled"])
	assert.Equal(t, "0 6 * * *", status["sync_cron"])
	assert.Equal(t, domain.FormulaEngagementScore, status["formula"])
}

func TestScoreRankingService_StartDisabled(t *testing.T) {
	service, _ := newScoreRankingService(t)

	assert.NoError(t, service.Start(context.Background()))
}
