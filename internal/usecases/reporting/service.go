// Package reporting busca os registros de performance na fonte configurada e
// executa o pipeline de análise sobre eles
package reporting

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-insights-api/infrastructure/repository"
	"github.com/vfg2006/campaign-insights-api/internal/analytics"
	"github.com/vfg2006/campaign-insights-api/internal/domain"
	"github.com/vfg2006/campaign-insights-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-insights-api/pkg/utils"
)

type Reporter interface {
	Series(ctx context.Context, req domain.AggregationRequest) (domain.SeriesReport, error)
	Compare(ctx context.Context, req domain.AggregationRequest) (domain.ComparisonReport, error)
	TopPerformers(ctx context.Context, req domain.AggregationRequest) (domain.TopPerformersReport, error)
	CampaignTable(ctx context.Context, req domain.AggregationRequest) (domain.CampaignTable, error)
	Formulas() []domain.FormulaDescriptor

	// Evaluate roda todas as visões sobre registros enviados pelo cliente, sem consultar a fonte
	Evaluate(raw []domain.RawRecord, labels map[string]string, req domain.AggregationRequest) (domain.EvaluationReport, error)
}

type Service struct {
	engine       analytics.Engine
	recordRepo   repository.PerformanceRecordRepository
	accountRepo  repository.AccountRepository
	queryTimeout time.Duration
}

func NewService(
	engine analytics.Engine,
	recordRepo repository.PerformanceRecordRepository,
	accountRepo repository.AccountRepository,
	queryTimeout time.Duration,
) Reporter {
	return &Service{
		engine:       engine,
		recordRepo:   recordRepo,
		accountRepo:  accountRepo,
		queryTimeout: queryTimeout,
	}
}

func (s *Service) Series(ctx context.Context, req domain.AggregationRequest) (domain.SeriesReport, error) {
	raw, labels, err := s.load(ctx, req, analytics.OperationSeries)
	if err != nil {
		return domain.SeriesReport{}, err
	}
	return s.engine.Series(raw, labels, req)
}

func (s *Service) Compare(ctx context.Context, req domain.AggregationRequest) (domain.ComparisonReport, error) {
	raw, labels, err := s.load(ctx, req, analytics.OperationCompare)
	if err != nil {
		return domain.ComparisonReport{}, err
	}
	return s.engine.Compare(raw, labels, req)
}

func (s *Service) TopPerformers(ctx context.Context, req domain.AggregationRequest) (domain.TopPerformersReport, error) {
	raw, labels, err := s.load(ctx, req, analytics.OperationTopPerformers)
	if err != nil {
		return domain.TopPerformersReport{}, err
	}
	return s.engine.TopPerformers(raw, labels, req)
}

func (s *Service) CampaignTable(ctx context.Context, req domain.AggregationRequest) (domain.CampaignTable, error) {
	raw, labels, err := s.load(ctx, req, analytics.OperationCampaignTable)
	if err != nil {
		return domain.CampaignTable{}, err
	}
	return s.engine.CampaignTable(raw, labels, req)
}

func (s *Service) Formulas() []domain.FormulaDescriptor {
	return s.engine.Formulas()
}

func (s *Service) Evaluate(raw []domain.RawRecord, labels map[string]string, req domain.AggregationRequest) (domain.EvaluationReport, error) {
	var (
		report domain.EvaluationReport
		err    error
	)

	if report.Series, err = s.engine.Series(raw, labels, req); err != nil {
		return report, err
	}
	if report.Comparison, err = s.engine.Compare(raw, labels, req); err != nil {
		return report, err
	}
	if report.TopPerformers, err = s.engine.TopPerformers(raw, labels, req); err != nil {
		return report, err
	}
	if report.CampaignTable, err = s.engine.CampaignTable(raw, labels, req); err != nil {
		return report, err
	}

	return report, nil
}

// load valida a requisição antes de qualquer consulta e busca registros e nomes das
// contas em paralelo
func (s *Service) load(ctx context.Context, req domain.AggregationRequest, operation string) ([]domain.RawRecord, map[string]string, error) {
	resolved, err := s.engine.Validate(req, operation)
	if err != nil {
		return nil, nil, err
	}

	if s.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.queryTimeout)
		defer cancel()
	}

	start, end := FetchWindow(resolved)

	var (
		wg        sync.WaitGroup
		raw       []domain.RawRecord
		labels    map[string]string
		recordErr error
		labelErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		raw, recordErr = s.recordRepo.ListByPeriod(ctx, start, end, resolved.AccountIDs)
	}()
	go func() {
		defer wg.Done()
		labels, labelErr = s.accountRepo.ListAccountLabels(ctx)
	}()
	wg.Wait()

	if recordErr != nil {
		logrus.WithFields(logrus.Fields{
			"operation": operation,
			"start":     start,
			"end":       end,
		}).WithError(recordErr).Error("Erro ao buscar registros de performance")
		return nil, nil, NewReportError(ErrFetchRecords, sourceErrorCode(recordErr), operation, recordErr.Error())
	}
	if labelErr != nil {
		logrus.WithField("operation", operation).WithError(labelErr).Error("Erro ao buscar nomes das contas")
		return nil, nil, NewReportError(ErrFetchLabels, sourceErrorCode(labelErr), operation, labelErr.Error())
	}

	logrus.WithFields(logrus.Fields{
		"operation": operation,
		"records":   len(raw),
		"accounts":  len(labels),
	}).Debug("Registros carregados para o relatório")

	return raw, labels, nil
}

func sourceErrorCode(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return apiErrors.ErrTimeout
	}
	return apiErrors.ErrDatabaseOperation
}

// FetchWindow devolve o menor intervalo que cobre o período principal e o de comparação.
// Um período principal vazio significa buscar tudo.
func FetchWindow(req domain.AggregationRequest) (time.Time, time.Time) {
	if req.DateRange.IsZero() {
		return time.Time{}, time.Time{}
	}

	loc := req.Location
	if loc == nil {
		loc = time.UTC
	}

	start, end := req.DateRange.Start, req.DateRange.End
	if cmp := req.ComparisonDateRange; cmp != nil && !cmp.IsZero() {
		if cmp.Start.Before(start) {
			start = cmp.Start
		}
		if cmp.End.After(end) {
			end = cmp.End
		}
	}

	start = start.In(loc)
	return utils.StartOfDay(start.Year(), start.Month(), start.Day(), loc), utils.EndOfDay(end.In(loc))
}
