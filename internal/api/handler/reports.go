package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/vfg2006/campaign-insights-api/internal/analytics"
	"github.com/vfg2006/campaign-insights-api/internal/domain"
	"github.com/vfg2006/campaign-insights-api/internal/usecases/reporting"
	"github.com/vfg2006/campaign-insights-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-insights-api/pkg/log"
)

// maxEvaluateBody limita o corpo aceito em /v1/reports/evaluate
const maxEvaluateBody = 10 << 20

type evaluateBody struct {
	Records       []domain.RawRecord `json:"records"`
	AccountLabels map[string]string  `json:"accountLabels"`
}

// reportFunc executa uma visão do pipeline para a requisição já lida da URL
type reportFunc func(ctx context.Context, req domain.AggregationRequest) (any, error)

func reportHandler(name string, run reportFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context()).WithField("report_name", name)

		req, err := parseAggregationRequest(r.URL.Query())
		if err != nil {
			logger.WithError(err).Warn("reports: invalid query parameters")
			writeReportError(w, err)
			return
		}

		logger.WithFields(log.Fields{
			"report_granularity": req.Granularity,
			"report_view_mode":   req.ViewMode,
			"report_accounts":    len(req.AccountIDs),
		}).Debug("reports: building report")

		report, err := run(r.Context(), req)
		if err != nil {
			logger.WithError(err).Error("reports: failed to build report")
			writeReportError(w, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, report)
	})
}

func GetSeriesReport(service reporting.Reporter) http.Handler {
	return reportHandler("series", func(ctx context.Context, req domain.AggregationRequest) (any, error) {
		return service.Series(ctx, req)
	})
}

func GetAccountsReport(service reporting.Reporter) http.Handler {
	return reportHandler("accounts", func(ctx context.Context, req domain.AggregationRequest) (any, error) {
		return service.Compare(ctx, req)
	})
}

func GetTopPerformers(service reporting.Reporter) http.Handler {
	return reportHandler("top_performers", func(ctx context.Context, req domain.AggregationRequest) (any, error) {
		return service.TopPerformers(ctx, req)
	})
}

func GetCampaignTable(service reporting.Reporter) http.Handler {
	return reportHandler("campaigns", func(ctx context.Context, req domain.AggregationRequest) (any, error) {
		return service.CampaignTable(ctx, req)
	})
}

func ListFormulas(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, log.ForContext(r.Context()), http.StatusOK, service.Formulas())
	})
}

// EvaluateRecords roda todas as visões sobre os registros enviados no corpo.
// Os filtros continuam vindo da query string.
func EvaluateRecords(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context()).WithField("report_name", "evaluate")

		req, err := parseAggregationRequest(r.URL.Query())
		if err != nil {
			logger.WithError(err).Warn("reports: invalid query parameters")
			writeReportError(w, err)
			return
		}

		var body evaluateBody
		decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEvaluateBody))
		decoder.UseNumber()
		if err := decoder.Decode(&body); err != nil {
			logger.WithError(err).Warn("reports: invalid evaluate body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", err.Error())
			return
		}

		logger.WithField("report_records", len(body.Records)).Info("reports: evaluating posted records")

		report, err := service.Evaluate(body.Records, body.AccountLabels, req)
		if err != nil {
			logger.WithError(err).Warn("reports: failed to evaluate records")
			writeReportError(w, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, report)
	})
}

// writeReportError converte os erros do pipeline no envelope padrão da API
func writeReportError(w http.ResponseWriter, err error) {
	var reportErr *reporting.ReportError

	switch {
	case errors.Is(err, errInvalidParam):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parâmetro inválido", err.Error())
	case errors.Is(err, analytics.ErrInvalidRequest):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Requisição inválida", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		apiErrors.WriteError(w, apiErrors.ErrTimeout, "Tempo limite da consulta excedido", nil)
	case errors.As(err, &reportErr):
		apiErrors.WriteError(w, reportErr.Code, "Erro ao buscar registros de performance", reportErr.Operation)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar relatório", nil)
	}
}

func writeJSON(w http.ResponseWriter, logger log.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.WithError(err).Error("failed to encode response")
	}
}
