package reporting

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-insights-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-insights-api/internal/analytics"
	"github.com/vfg2006/campaign-insights-api/internal/domain"
	"github.com/vfg2006/campaign-insights-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func march(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func records() []domain.RawRecord {
	return []domain.RawRecord{
		{ID: "c1", AccountID: "X", Name: "Spring sale", Channel: "email", SentAt: "2024-03-01T10:00:00Z", Recipients: 1000, Delivered: 1000, OpensUnique: 300, ClicksUnique: 30, ConversionUniques: 3, Revenue: "300.00"},
		{ID: "c2", AccountID: "Y", Name: "Newsletter", Channel: "email", SentAt: "2024-03-02T10:00:00Z", Recipients: 2000, Delivered: 2000, OpensUnique: 400, ClicksUnique: 20, ConversionUniques: 2, Revenue: 100},
	}
}

func newService(t *testing.T) (*mocks.MockPerformanceRecordRepository, *mocks.MockAccountRepository, Reporter) {
	ctrl := gomock.NewController(t)

	recordRepo := mocks.NewMockPerformanceRecordRepository(ctrl)
	accountRepo := mocks.NewMockAccountRepository(ctrl)

	return recordRepo, accountRepo, NewService(analytics.NewEngine(analytics.Options{}), recordRepo, accountRepo, time.Second)
}

func TestService_CompareFetchesUnionOfRanges(t *testing.T) {
	recordRepo, accountRepo, service := newService(t)

	req := domain.AggregationRequest{
		DateRange:           domain.DateRange{Start: march(1), End: march(31)},
		ComparisonDateRange: &domain.DateRange{Start: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		AccountIDs:          []string{"X", "Y"},
	}

	expectedStart := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	expectedEnd := time.Date(2024, 3, 31, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)

	recordRepo.EXPECT().
		ListByPeriod(gomock.Any(), expectedStart, expectedEnd, []string{"X", "Y"}).
		Return(records(), nil)
	accountRepo.EXPECT().
		ListAccountLabels(gomock.Any()).
		Return(map[string]string{"X": "Loja X", "Y": "Loja Y"}, nil)

	report, err := service.Compare(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, report.Accounts, 2)
	assert.Equal(t, domain.FormulaEngagementScore, report.Formula)
	assert.NotNil(t, report.Comparison)
	assert.Equal(t, "Loja X", report.Rollups[0].AccountName)
}

func TestService_InvalidRequestSkipsSource(t *testing.T) {
	_, _, service := newService(t)

	_, err := service.Series(context.Background(), domain.AggregationRequest{Granularity: "hourly"})

	assert.ErrorIs(t, err, analytics.ErrInvalidRequest)
}

func TestService_SourceFailure(t *testing.T) {
	recordRepo, accountRepo, service := newService(t)

	recordRepo.EXPECT().
		ListByPeriod(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))
	accountRepo.EXPECT().
		ListAccountLabels(gomock.Any()).
		Return(map[string]string{}, nil)

	_, err := service.CampaignTable(context.Background(), domain.AggregationRequest{})
	require.Error(t, err)

	var reportErr *ReportError
	require.True(t, errors.As(err, &reportErr))
	assert.Equal(t, apiErrors.ErrDatabaseOperation, reportErr.Code)
	assert.ErrorIs(t, err, ErrFetchRecords)
}

func TestService_SourceTimeout(t *testing.T) {
	recordRepo, accountRepo, service := newService(t)

	recordRepo.EXPECT().
		ListByPeriod(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("erro ao consultar registros: %w", context.DeadlineExceeded))
	accountRepo.EXPECT().
		ListAccountLabels(gomock.Any()).
		Return(map[string]string{}, nil)

	_, err := service.Series(context.Background(), domain.AggregationRequest{})

	var reportErr *ReportError
	require.True(t, errors.As(err, &reportErr))
	assert.Equal(t, apiErrors.ErrTimeout, reportErr.Code)
}

func TestService_LabelFailure(t *testing.T) {
	recordRepo, accountRepo, service := newService(t)

	recordRepo.EXPECT().
		ListByPeriod(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(records(), nil)
	accountRepo.EXPECT().
		ListAccountLabels(gomock.Any()).
		Return(nil, errors.New("timeout"))

	_, err := service.TopPerformers(context.Background(), domain.AggregationRequest{})

	assert.ErrorIs(t, err, ErrFetchLabels)
}

func TestService_EvaluateDoesNotTouchSource(t *testing.T) {
	_, _, service := newService(t)

	report, err := service.Evaluate(records(), map[string]string{"X": "Loja X"}, domain.AggregationRequest{})
	require.NoError(t, err)

	assert.Len(t, report.Series.Combined, 2)
	assert.Len(t, report.Comparison.Accounts, 2)
	assert.Len(t, report.CampaignTable.Campaigns, 2)
	assert.Equal(t, "c2", report.CampaignTable.Campaigns[0].ID)
}

func TestFetchWindow(t *testing.T) {
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	tests := []struct {
		name          string
		req           domain.AggregationRequest
		expectedStart time.Time
		expectedEnd   time.Time
	}{
		{
			name:          "Sem período busca tudo",
			req:           domain.AggregationRequest{},
			expectedStart: time.Time{},
			expectedEnd:   time.Time{},
		},
		{
			name:          "Período único vai até o fim do dia",
			req:           domain.AggregationRequest{DateRange: domain.DateRange{Start: march(1), End: march(3)}},
			expectedStart: march(1),
			expectedEnd:   march(3).Add(24*time.Hour - time.Nanosecond),
		},
		{
			name: "Comparação posterior estende o fim",
			req: domain.AggregationRequest{
				DateRange:           domain.DateRange{Start: march(1), End: march(3)},
				ComparisonDateRange: &domain.DateRange{Start: march(4), End: march(6)},
			},
			expectedStart: march(1),
			expectedEnd:   march(6).Add(24*time.Hour - time.Nanosecond),
		},
		{
			name: "Fuso da requisição",
			req: domain.AggregationRequest{
				DateRange: domain.DateRange{Start: time.Date(2024, 3, 1, 0, 0, 0, 0, saoPaulo), End: time.Date(2024, 3, 1, 0, 0, 0, 0, saoPaulo)},
				Location:  saoPaulo,
			},
			expectedStart: time.Date(2024, 3, 1, 0, 0, 0, 0, saoPaulo),
			expectedEnd:   time.Date(2024, 3, 1, 23, 59, 59, int(time.Second-time.Nanosecond), saoPaulo),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := FetchWindow(tt.req)

			assert.True(t, tt.expectedStart.Equal(start), "start %s", start)
			assert.True(t, tt.expectedEnd.Equal(end), "end %s", end)
		})
	}
}
