package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-insights-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-insights-api/internal/analytics"
	"github.com/vfg2006/campaign-insights-api/internal/api/handler/router"
	"github.com/vfg2006/campaign-insights-api/internal/domain"
	"github.com/vfg2006/campaign-insights-api/internal/usecases/ranking"
	"github.com/vfg2006/campaign-insights-api/internal/usecases/reporting"
	"github.com/vfg2006/campaign-insights-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

type fakeCronJob struct {
	started bool
	busy    bool
}

func (f *fakeCronJob) TriggerManualSync(context.Context) bool {
	if f.busy {
		return false
	}
	f.started = true
	return true
}

func (f *fakeCronJob) GetStatus() map[string]any {
	return map[string]any{"sync_running": f.busy}
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error {
	return f.err
}

func rawRecords() []domain.RawRecord {
	return []domain.RawRecord{
		{ID: "c1", AccountID: "X", Name: "Spring sale", Channel: "email", SentAt: "2024-03-01T10:00:00Z", Recipients: 1000, Delivered: 1000, OpensUnique: 300, ClicksUnique: 30, ConversionUniques: 3, Revenue: "300.00"},
		{ID: "c2", AccountID: "Y", Name: "Newsletter", Channel: "sms", SentAt: "2024-03-02T10:00:00Z", Recipients: 2000, Delivered: 2000, OpensUnique: 400, ClicksUnique: 20, ConversionUniques: 2, Revenue: 100},
	}
}

type fixture struct {
	records  *mocks.MockPerformanceRecordRepository
	accounts *mocks.MockAccountRepository
	rankings *mocks.MockScoreRankingRepository
	cron     *fakeCronJob
	handler  http.Handler
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		records:  mocks.NewMockPerformanceRecordRepository(ctrl),
		accounts: mocks.NewMockAccountRepository(ctrl),
		rankings: mocks.NewMockScoreRankingRepository(ctrl),
		cron:     &fakeCronJob{},
	}

	reporter := reporting.NewService(analytics.NewEngine(analytics.Options{}), f.records, f.accounts, time.Second)
	rankingService := ranking.NewScoreRankingService(f.rankings, domain.FormulaEngagementScore)

	f.handler = router.New(
		router.WithRoutes(Healthcheck(map[string]Pinger{"postgres": fakePinger{}})...),
		router.WithRoutes(Reports(reporter)...),
		router.WithRoutes(ScoreRanking(rankingService)...),
		router.WithRoutes(CronJobs(CronJobServices{ScoreRankingService: f.cron})...),
	)

	return f
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()

	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func TestGetSeriesReport_Daily(t *testing.T) {
	f := newFixture(t)

	f.records.EXPECT().
		ListByPeriod(gomock.Any(), gomock.Any(), gomock.Any(), []string{"X", "Y"}).
		Return(rawRecords(), nil)
	f.accounts.EXPECT().
		ListAccountLabels(gomock.Any()).
		Return(map[string]string{"X": "Loja X", "Y": "Loja Y"}, nil)

	rec := f.do(http.MethodGet, "/v1/reports/series?start_date=2024-03-01&end_date=2024-03-03&account_ids=X,%20Y", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var report domain.SeriesReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, domain.GranularityDaily, report.Granularity)
	assert.Len(t, report.Combined, 3)
}

func TestReportHandlers_RejectInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{name: "granularidade desconhecida", target: "/v1/reports/series?granularity=hourly"},
		{name: "view mode desconhecido", target: "/v1/reports/series?view_mode=stacked"},
		{name: "canal desconhecido", target: "/v1/reports/accounts?channel=fax"},
		{name: "fórmula desconhecida", target: "/v1/reports/accounts?formula=magic"},
		{name: "coluna de ordenação", target: "/v1/reports/campaigns?sort=color"},
		{name: "data malformada", target: "/v1/reports/series?start_date=03/01/2024&end_date=2024-03-02"},
		{name: "intervalo incompleto", target: "/v1/reports/series?start_date=2024-03-01"},
		{name: "intervalo invertido", target: "/v1/reports/series?start_date=2024-03-05&end_date=2024-03-01"},
		{name: "min_recipients negativo", target: "/v1/reports/top-performers?min_recipients=-1"},
		{name: "bottom inválido", target: "/v1/reports/top-performers?bottom=talvez"},
		{name: "fuso inválido", target: "/v1/reports/series?tz=Mars/Olympus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			rec := f.do(http.MethodGet, tt.target, "")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, apiErrors.ErrInvalidRequest, decodeAPIError(t, rec).Code)
		})
	}
}

func TestGetAccountsReport_SourceFailure(t *testing.T) {
	f := newFixture(t)

	f.records.EXPECT().
		ListByPeriod(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))
	f.accounts.EXPECT().
		ListAccountLabels(gomock.Any()).
		Return(map[string]string{}, nil)

	rec := f.do(http.MethodGet, "/v1/reports/accounts", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apiErrors.ErrDatabaseOperation, decodeAPIError(t, rec).Code)
}

func TestListFormulas(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/v1/reports/formulas", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var formulas []domain.FormulaDescriptor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &formulas))
	assert.Len(t, formulas, 10)
}

func TestEvaluateRecords(t *testing.T) {
	f := newFixture(t)

	body := `{
		"records": [
			{"id": "c1", "account_id": "X", "name": "Spring sale", "channel": "email", "sent_at": "2024-03-01T10:00:00Z",
			 "recipients": 1000, "delivered": 1000, "opens_unique": 300, "clicks_unique": 30, "conversion_uniques": 3, "revenue": 300.5},
			{"id": "bad", "account_id": "X", "channel": "email", "sent_at": "ontem", "recipients": 10}
		],
		"accountLabels": {"X": "Loja X"}
	}`

	rec := f.do(http.MethodPost, "/v1/reports/evaluate?granularity=weekly", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var report domain.EvaluationReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, domain.GranularityWeekly, report.Series.Granularity)
	require.Len(t, report.CampaignTable.Campaigns, 1)
	assert.Equal(t, "c1", report.CampaignTable.Campaigns[0].ID)
	assert.Equal(t, 1, report.CampaignTable.Skipped)
}

func TestEvaluateRecords_InvalidBody(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/v1/reports/evaluate", `{"records": [`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidFormat, decodeAPIError(t, rec).Code)
}

func TestGetScoreRanking(t *testing.T) {
	t.Run("retorna o ranking gravado", func(t *testing.T) {
		f := newFixture(t)

		f.rankings.EXPECT().
			GetScoreRanking(gomock.Any(), "01-2024", domain.FormulaListHealth).
			Return(&domain.ScoreRankingResponse{
				Formula: domain.FormulaListHealth,
				Month:   "01-2024",
				Ranking: []domain.ScoreRankingItem{{AccountID: "ACC001", Position: 1, Score: 90}},
			}, nil)

		rec := f.do(http.MethodGet, "/v1/accounts/ranking/score?month=01-2024&formula=list-health", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var response domain.ScoreRankingResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		require.Len(t, response.Ranking, 1)
		assert.Equal(t, "ACC001", response.Ranking[0].AccountID)
	})

	t.Run("mês inválido", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/v1/accounts/ranking/score?month=2024-01", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("fórmula inválida", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/v1/accounts/ranking/score?month=01-2024&formula=magic", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("sem ranking", func(t *testing.T) {
		f := newFixture(t)

		f.rankings.EXPECT().
			GetScoreRanking(gomock.Any(), "01-2024", domain.FormulaEngagementScore).
			Return(&domain.ScoreRankingResponse{Month: "01-2024"}, nil)

		rec := f.do(http.MethodGet, "/v1/accounts/ranking/score?month=01-2024", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apiErrors.ErrNotFound, decodeAPIError(t, rec).Code)
	})

	t.Run("erro no banco", func(t *testing.T) {
		f := newFixture(t)

		f.rankings.EXPECT().
			GetScoreRanking(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("connection reset"))

		rec := f.do(http.MethodGet, "/v1/accounts/ranking/score?month=01-2024", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestRunCronJob(t *testing.T) {
	t.Run("dispara o job", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/v1/cron/score-ranking/run", "")

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.True(t, f.cron.started)
	})

	t.Run("job em execução", func(t *testing.T) {
		f := newFixture(t)
		f.cron.busy = true

		rec := f.do(http.MethodPost, "/v1/cron/score-ranking/run", "")

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, apiErrors.ErrSchedulerBusy, decodeAPIError(t, rec).Code)
	})

	t.Run("tipo desconhecido", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/v1/cron/meta/run", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, f.cron.started)
	})
}

func TestGetCronStatus(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/v1/cron/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var status map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Contains(t, status, CronJobTypeScoreRanking)
}

func TestHealthcheckHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	HealthcheckHandler(map[string]Pinger{"clickhouse": fakePinger{err: errors.New("down")}}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "down")

	f := newFixture(t)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/healthcheck", "").Code)
}

func TestRouter_NotFound(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/v1/unknown", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrNotFound, decodeAPIError(t, rec).Code)
}
