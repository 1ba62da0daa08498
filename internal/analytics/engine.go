// Package analytics orquestra o pipeline de normalização, agregação, benchmarks,
// pontuação e ranking dos envios
package analytics

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-insights-api/internal/analytics/benchmark"
	"github.com/vfg2006/campaign-insights-api/internal/analytics/filter"
	"github.com/vfg2006/campaign-insights-api/internal/analytics/normalizer"
	"github.com/vfg2006/campaign-insights-api/internal/analytics/ranking"
	"github.com/vfg2006/campaign-insights-api/internal/analytics/rollup"
	"github.com/vfg2006/campaign-insights-api/internal/analytics/scoring"
	"github.com/vfg2006/campaign-insights-api/internal/analytics/series"
	"github.com/vfg2006/campaign-insights-api/internal/domain"
	"github.com/vfg2006/campaign-insights-api/pkg/metrics"
)

// ErrInvalidRequest envolve qualquer erro de validação da requisição
var ErrInvalidRequest = errors.New("invalid aggregation request")

// Nomes das operações usados nas métricas e nos logs
const (
	OperationSeries        = "series"
	OperationCompare       = "compare"
	OperationTopPerformers = "top_performers"
	OperationCampaignTable = "campaign_table"
)

type Options struct {
	Benchmarks         benchmark.Defaults
	Workers            int
	TopLimit           int
	Locale             string
	MinVolumeThreshold int64
	DefaultFormula     domain.FormulaID
}

type Engine interface {
	Series(raw []domain.RawRecord, labels map[string]string, req domain.AggregationRequest) (domain.SeriesReport, error)
	Compare(raw []domain.RawRecord, labels map[string]string, req domain.AggregationRequest) (domain.ComparisonReport, error)
	TopPerformers(raw []domain.RawRecord, labels map[string]string, req domain.AggregationRequest) (domain.TopPerformersReport, error)
	CampaignTable(raw []domain.RawRecord, labels map[string]string, req domain.AggregationRequest) (domain.CampaignTable, error)
	Formulas() []domain.FormulaDescriptor
	Validate(req domain.AggregationRequest, operation string) (domain.AggregationRequest, error)
}

type engine struct {
	opts Options
}

func NewEngine(opts Options) Engine {
	if opts.Workers <= 0 {
		opts.Workers = rollup.DefaultWorkers
	}
	if opts.TopLimit <= 0 {
		opts.TopLimit = ranking.DefaultLimit
	}
	if opts.Locale == "" {
		opts.Locale = ranking.DefaultLocale
	}
	if opts.MinVolumeThreshold <= 0 {
		opts.MinVolumeThreshold = domain.DefaultMinVolumeThreshold
	}
	if opts.DefaultFormula == "" {
		opts.DefaultFormula = domain.DefaultFormula
	}
	if opts.Benchmarks == (benchmark.Defaults{}) {
		opts.Benchmarks = benchmark.DefaultDefaults()
	}

	return &engine{opts: opts}
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
}

// Validate aplica os valores padrão e rejeita requisições inválidas. A
// requisição recebida não é alterada; uma cópia resolvida é devolvida.
func (e *engine) Validate(req domain.AggregationRequest, operation string) (domain.AggregationRequest, error) {
	if req.Granularity == "" {
		req.Granularity = domain.GranularityDaily
	}
	if err := series.ValidateGranularity(req.Granularity); err != nil {
		return req, invalid(err)
	}

	if req.ViewMode == "" {
		req.ViewMode = domain.ViewModeCombined
	}
	if err := series.ValidateViewMode(req.ViewMode); err != nil {
		return req, invalid(err)
	}

	if req.ChannelFilter == "" {
		req.ChannelFilter = domain.ChannelAll
	}
	switch req.ChannelFilter {
	case domain.ChannelAll, domain.ChannelEmail, domain.ChannelSMS, domain.ChannelPush, domain.ChannelOther:
	default:
		return req, invalid(fmt.Errorf("canal desconhecido: %q", req.ChannelFilter))
	}

	if err := filter.ValidateDateRange(req.DateRange); err != nil {
		return req, invalid(err)
	}
	if req.ComparisonDateRange != nil {
		if err := filter.ValidateDateRange(*req.ComparisonDateRange); err != nil {
			return req, invalid(err)
		}
	}

	if req.MinVolumeThreshold <= 0 {
		req.MinVolumeThreshold = e.opts.MinVolumeThreshold
	}

	if req.SelectedFormula == "" {
		req.SelectedFormula = e.opts.DefaultFormula
	}
	formula, err := scoring.ResolveFormula(req.SelectedFormula)
	if err != nil {
		return req, invalid(err)
	}
	req.SelectedFormula = formula

	direction, err := ranking.ValidateDirection(req.SortDirection)
	if err != nil {
		return req, invalid(err)
	}

	switch operation {
	case OperationCompare:
		state := e.accountSort(req)
		if err := ranking.ValidateAccountColumn(state.Column); err != nil {
			return req, invalid(err)
		}
	case OperationCampaignTable:
		if req.SortColumn == "" {
			req.SortColumn = ranking.DefaultCampaignSort.Column
		}
		if err := ranking.ValidateCampaignColumn(req.SortColumn); err != nil {
			return req, invalid(err)
		}
		req.SortDirection = direction
	}

	if req.Location == nil {
		req.Location = time.UTC
	}

	return req, nil
}

func (*engine) accountSort(req domain.AggregationRequest) ranking.SortState {
	state := ranking.DefaultAccountSort
	if req.SortColumn != "" {
		state = ranking.ParseAccountSortMode(req.SortColumn)
	}
	if req.SortDirection != "" {
		state.Direction = req.SortDirection
	}
	if state.Direction == "" {
		state.Direction = domain.SortDesc
	}
	return state
}

// prepare normaliza e filtra os registros no escopo da requisição
func (*engine) prepare(raw []domain.RawRecord, labels map[string]string, req domain.AggregationRequest, operation string) ([]domain.PerformanceRecord, []domain.PerformanceRecord, int) {
	start := time.Now()
	normalized := normalizer.Normalize(raw)
	metrics.ObserveStage("normalize", start)

	metrics.RecordsProcessed.WithLabelValues(operation).Add(float64(len(normalized.Records)))
	metrics.RecordsSkipped.WithLabelValues(operation).Add(float64(normalized.Skipped))

	if normalized.Skipped > 0 {
		logrus.WithFields(logrus.Fields{
			"operation": operation,
			"skipped":   normalized.Skipped,
			"total":     len(raw),
		}).Warn("Registros malformados descartados na normalização")
	}

	start = time.Now()
	records := filter.Apply(normalized.Records, filter.FromRequest(req), labels)
	metrics.ObserveStage("filter", start)

	return normalized.Records, records, normalized.Skipped
}

func (e *engine) Series(raw []domain.RawRecord, labels map[string]string, req domain.AggregationRequest) (domain.SeriesReport, error) {
	req, err := e.Validate(req, OperationSeries)
	if err != nil {
		return domain.SeriesReport{}, err
	}

	_, records, skipped := e.prepare(raw, labels, req, OperationSeries)

	dateRange := req.DateRange
	if dateRange.IsZero() {
		dateRange = spanOf(records)
	}

	start := time.Now()
	report, err := series.Build(records, series.Options{
		Granularity:   req.Granularity,
		ViewMode:      req.ViewMode,
		DateRange:     dateRange,
		ChannelFilter: req.ChannelFilter,
		Location:      req.Location,
		EntityLabels:  labels,
	})
	metrics.ObserveStage("series", start)
	if err != nil {
		return domain.SeriesReport{}, invalid(err)
	}

	report.Skipped += skipped

	return report, nil
}

// spanOf devolve o intervalo coberto pelos registros, ou vazio
func spanOf(records []domain.PerformanceRecord) domain.DateRange {
	var span domain.DateRange
	for _, record := range records {
		if record.SentAt.IsZero() {
			continue
		}
		if span.Start.IsZero() || record.SentAt.Before(span.Start) {
			span.Start = record.SentAt
		}
		if span.End.IsZero() || record.SentAt.After(span.End) {
			span.End = record.SentAt
		}
	}
	return span
}

func (e *engine) Compare(raw []domain.RawRecord, labels map[string]string, req domain.AggregationRequest) (domain.ComparisonReport, error) {
	req, err := e.Validate(req, OperationCompare)
	if err != nil {
		return domain.ComparisonReport{}, err
	}

	all, records, skipped := e.prepare(raw, labels, req, OperationCompare)

	start := time.Now()
	rollups := rollup.Rollup(records, labels, e.opts.Workers)
	metrics.ObserveStage("rollup", start)

	start = time.Now()
	benchmarks := benchmark.Compute(rollups, e.opts.Benchmarks)
	metrics.ObserveStage("benchmark", start)
	for _, key := range benchmarks.Fallbacks {
		metrics.BenchmarkFallbacks.WithLabelValues(string(key)).Inc()
	}

	start = time.Now()
	scored, err := scoring.ScoreAll(rollups, benchmarks, req.SelectedFormula, e.opts.Workers)
	metrics.ObserveStage("scoring", start)
	if err != nil {
		return domain.ComparisonReport{}, invalid(err)
	}

	start = time.Now()
	state := e.accountSort(req)
	sorted, err := ranking.SortAccounts(scored, state, req.SelectedFormula, e.opts.Locale)
	metrics.ObserveStage("ranking", start)
	if err != nil {
		return domain.ComparisonReport{}, invalid(err)
	}

	report := domain.ComparisonReport{
		Formula:           req.SelectedFormula,
		Rollups:           rollups,
		Benchmarks:        benchmarks,
		Accounts:          sorted,
		Stats:             rollup.Aggregate(records),
		SortColumn:        state.Column,
		SortDirection:     state.Direction,
		NextSortDirection: state.Toggle(state.Column).Direction,
		Skipped:           skipped,
	}

	if req.ComparisonDateRange != nil && !req.ComparisonDateRange.IsZero() {
		criteria := filter.FromRequest(req)
		criteria.DateRange = *req.ComparisonDateRange
		previous := filter.Apply(all, criteria, labels)

		comparison := rollup.Compare(report.Stats, rollup.Aggregate(previous))
		report.Comparison = &comparison
	}

	return report, nil
}

func (e *engine) TopPerformers(raw []domain.RawRecord, labels map[string]string, req domain.AggregationRequest) (domain.TopPerformersReport, error) {
	req, err := e.Validate(req, OperationTopPerformers)
	if err != nil {
		return domain.TopPerformersReport{}, err
	}

	_, records, skipped := e.prepare(raw, labels, req, OperationTopPerformers)

	opts := ranking.SelectOptions{
		MinVolumeThreshold: req.MinVolumeThreshold,
		Bottom:             req.BottomPerformers,
		Limit:              e.opts.TopLimit,
	}

	start := time.Now()
	campaigns := rollup.Campaigns(records, labels)
	rollups := rollup.Rollup(records, labels, e.opts.Workers)

	report := domain.TopPerformersReport{
		Bottom:             req.BottomPerformers,
		MinVolumeThreshold: req.MinVolumeThreshold,
		Campaigns:          ranking.TopCampaigns(campaigns, opts),
		Accounts:           ranking.TopAccounts(rollups, opts),
		Skipped:            skipped,
	}
	metrics.ObserveStage("top_performers", start)

	return report, nil
}

func (e *engine) CampaignTable(raw []domain.RawRecord, labels map[string]string, req domain.AggregationRequest) (domain.CampaignTable, error) {
	req, err := e.Validate(req, OperationCampaignTable)
	if err != nil {
		return domain.CampaignTable{}, err
	}

	all, records, skipped := e.prepare(raw, labels, req, OperationCampaignTable)

	state := ranking.SortState{Column: req.SortColumn, Direction: req.SortDirection}

	start := time.Now()
	sorted, err := ranking.SortCampaigns(rollup.Campaigns(records, labels), state, e.opts.Locale)
	metrics.ObserveStage("campaign_table", start)
	if err != nil {
		return domain.CampaignTable{}, invalid(err)
	}

	return domain.CampaignTable{
		SortColumn:        state.Column,
		SortDirection:     state.Direction,
		NextSortDirection: state.Toggle(state.Column).Direction,
		Campaigns:         sorted,
		AvailableTags:     filter.AvailableTags(all),
		Skipped:           skipped,
	}, nil
}

func (*engine) Formulas() []domain.FormulaDescriptor {
	return scoring.Descriptors()
}
