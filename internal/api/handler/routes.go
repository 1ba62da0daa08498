package handler

import (
	"net/http"

	"github.com/vfg2006/campaign-insights-api/internal/api/handler/router"
	"github.com/vfg2006/campaign-insights-api/internal/usecases/ranking"
	"github.com/vfg2006/campaign-insights-api/internal/usecases/reporting"
	"github.com/vfg2006/campaign-insights-api/pkg/metrics"
	"github.com/vfg2006/campaign-insights-api/pkg/middleware"
)

// measured registra a rota com o middleware de métricas usando o path do template
func measured(path, method string, handler http.Handler) router.Route {
	return router.Route{
		Path:        path,
		Method:      method,
		Handler:     handler,
		Middlewares: []func(http.Handler) http.Handler{middleware.Metrics(path)},
	}
}

func Healthcheck(dependencies map[string]Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(dependencies),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metrics.Handler(),
		},
	}
}

func Reports(service reporting.Reporter) []router.Route {
	return []router.Route{
		measured("/v1/reports/series", http.MethodGet, GetSeriesReport(service)),
		measured("/v1/reports/accounts", http.MethodGet, GetAccountsReport(service)),
		measured("/v1/reports/top-performers", http.MethodGet, GetTopPerformers(service)),
		measured("/v1/reports/campaigns", http.MethodGet, GetCampaignTable(service)),
		measured("/v1/reports/formulas", http.MethodGet, ListFormulas(service)),
		measured("/v1/reports/evaluate", http.MethodPost, EvaluateRecords(service)),
	}
}

func ScoreRanking(service ranking.RankingService) []router.Route {
	return []router.Route{
		measured("/v1/accounts/ranking/score", http.MethodGet, GetScoreRanking(service)),
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		measured("/v1/cron/:type/run", http.MethodPost, RunCronJob(services)),
		measured("/v1/cron/status", http.MethodGet, GetCronStatus(services)),
	}
}
