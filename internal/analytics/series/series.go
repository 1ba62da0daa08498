// Package series agrupa os envios em períodos para os gráficos de tendência
package series

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/campaign-insights-api/internal/domain"
	"github.com/vfg2006/campaign-insights-api/pkg/utils"
)

var (
	ErrInvalidGranularity = errors.New("invalid granularity")
	ErrInvalidViewMode    = errors.New("invalid view mode")
)

// Métricas expostas nas linhas largas do modo separado
const (
	MetricRecipients     = "recipients"
	MetricDelivered      = "delivered"
	MetricOpens          = "opens"
	MetricClicks         = "clicks"
	MetricConversions    = "conversions"
	MetricRevenue        = "revenue"
	MetricCampaignCount  = "campaignCount"
	MetricOpenRate       = "openRate"
	MetricClickRate      = "clickRate"
	MetricConversionRate = "conversionRate"
)

// Options controla uma construção de série
type Options struct {
	Granularity   domain.Granularity
	ViewMode      domain.ViewMode
	DateRange     domain.DateRange
	ChannelFilter domain.Channel
	Location      *time.Location
	// EntityLabels mapeia o id da conta para o nome exibido
	EntityLabels map[string]string
}

// ValidateGranularity aceita apenas diário, semanal e mensal
func ValidateGranularity(granularity domain.Granularity) error {
	switch granularity {
	case domain.GranularityDaily, domain.GranularityWeekly, domain.GranularityMonthly:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidGranularity, granularity)
	}
}

func ValidateViewMode(mode domain.ViewMode) error {
	switch mode {
	case domain.ViewModeCombined, domain.ViewModeSeparate:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidViewMode, mode)
	}
}

// BucketKey devolve o início do período que contém t no fuso loc.
// A semana começa no domingo.
func BucketKey(t time.Time, granularity domain.Granularity, loc *time.Location) (time.Time, error) {
	civil, err := civilKey(t, granularity, loc)
	if err != nil {
		return time.Time{}, err
	}
	return localKey(civil, loc), nil
}

// civilKey identifica o período pela data civil, representada como meia-noite UTC.
// Em fusos onde o horário de verão começa à meia-noite a meia-noite local não existe,
// então toda a aritmética de períodos é feita sobre essa data.
func civilKey(t time.Time, granularity domain.Granularity, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	local := t.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)

	switch granularity {
	case domain.GranularityDaily:
		return day, nil
	case domain.GranularityWeekly:
		return day.AddDate(0, 0, -int(day.Weekday())), nil
	case domain.GranularityMonthly:
		return utils.FirstDayOfMonth(day), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidGranularity, granularity)
	}
}

// localKey converte a data civil no primeiro instante válido do dia em loc
func localKey(civil time.Time, loc *time.Location) time.Time {
	return utils.StartOfDay(civil.Year(), civil.Month(), civil.Day(), loc)
}

// Label formata a data civil do período para exibição
func Label(key time.Time, granularity domain.Granularity) string {
	civil := time.Date(key.Year(), key.Month(), key.Day(), 0, 0, 0, 0, time.UTC)

	switch granularity {
	case domain.GranularityWeekly:
		return civil.Format("Jan 2") + " - " + civil.AddDate(0, 0, 6).Format("Jan 2")
	case domain.GranularityMonthly:
		return civil.Format("Jan 2006")
	default:
		return civil.Format("Jan 2")
	}
}

// Periods enumera as chaves de todos os períodos do intervalo fechado,
// começando pelo período que contém o início
func Periods(dateRange domain.DateRange, granularity domain.Granularity, loc *time.Location) ([]time.Time, error) {
	civils, err := civilPeriods(dateRange, granularity, loc)
	if err != nil {
		return nil, err
	}

	periods := make([]time.Time, 0, len(civils))
	for _, civil := range civils {
		periods = append(periods, localKey(civil, loc))
	}

	return periods, nil
}

func civilPeriods(dateRange domain.DateRange, granularity domain.Granularity, loc *time.Location) ([]time.Time, error) {
	start, err := civilKey(dateRange.Start, granularity, loc)
	if err != nil {
		return nil, err
	}

	end, err := civilKey(dateRange.End, granularity, loc)
	if err != nil {
		return nil, err
	}

	periods := make([]time.Time, 0)
	for current := start; !current.After(end); current = next(current, granularity) {
		periods = append(periods, current)
	}

	return periods, nil
}

// accumulator guarda as somas brutas; as taxas só são derivadas no final
type accumulator struct {
	metrics domain.BucketMetrics
	revenue decimal.Decimal
}

func (a *accumulator) add(record domain.PerformanceRecord) {
	a.metrics.Recipients += record.Recipients
	a.metrics.Delivered += record.Delivered
	a.metrics.Opens += record.OpensUnique
	a.metrics.Clicks += record.ClicksUnique
	a.metrics.Conversions += record.ConversionUniques
	a.metrics.CampaignCount++
	a.revenue = a.revenue.Add(decimal.NewFromFloat(record.Revenue))
}

func (a *accumulator) bucket(civil time.Time, granularity domain.Granularity, loc *time.Location) domain.TimeBucket {
	metrics := a.metrics
	metrics.Revenue = a.revenue.InexactFloat64()

	return domain.TimeBucket{
		PeriodKey: localKey(civil, loc),
		Label:     Label(civil, granularity),
		Metrics:   metrics,
		Rates:     Rates(metrics),
	}
}

// Rates deriva as taxas a partir das somas do período, nunca da média das taxas
func Rates(metrics domain.BucketMetrics) domain.DerivedRates {
	delivered := float64(metrics.Delivered)

	return domain.DerivedRates{
		OpenRate:       utils.Percentage(float64(metrics.Opens), delivered),
		ClickRate:      utils.Percentage(float64(metrics.Clicks), delivered),
		ConversionRate: utils.Percentage(float64(metrics.Conversions), delivered),
	}
}

// Build monta a série combinada ou separada por conta
func Build(records []domain.PerformanceRecord, opts Options) (domain.SeriesReport, error) {
	if opts.Granularity == "" {
		opts.Granularity = domain.GranularityDaily
	}
	if opts.ViewMode == "" {
		opts.ViewMode = domain.ViewModeCombined
	}

	if err := ValidateGranularity(opts.Granularity); err != nil {
		return domain.SeriesReport{}, err
	}
	if err := ValidateViewMode(opts.ViewMode); err != nil {
		return domain.SeriesReport{}, err
	}

	if opts.ViewMode == domain.ViewModeSeparate {
		return buildSeparate(records, opts)
	}

	return buildCombined(records, opts)
}

func buildCombined(records []domain.PerformanceRecord, opts Options) (domain.SeriesReport, error) {
	report := domain.SeriesReport{
		Granularity: opts.Granularity,
		ViewMode:    domain.ViewModeCombined,
		Combined:    make([]domain.TimeBucket, 0),
	}

	buckets := make(map[time.Time]*accumulator)
	for _, record := range records {
		if !matchesChannel(record, opts.ChannelFilter) {
			continue
		}

		if record.SentAt.IsZero() {
			report.Skipped++
			continue
		}

		key, err := civilKey(record.SentAt, opts.Granularity, opts.Location)
		if err != nil {
			return domain.SeriesReport{}, err
		}

		acc, ok := buckets[key]
		if !ok {
			acc = &accumulator{}
			buckets[key] = acc
		}
		acc.add(record)
	}

	for key, acc := range buckets {
		report.Combined = append(report.Combined, acc.bucket(key, opts.Granularity, opts.Location))
	}

	sort.Slice(report.Combined, func(i, j int) bool {
		return report.Combined[i].PeriodKey.Before(report.Combined[j].PeriodKey)
	})

	return report, nil
}

func buildSeparate(records []domain.PerformanceRecord, opts Options) (domain.SeriesReport, error) {
	periods := make([]time.Time, 0)
	if !opts.DateRange.IsZero() {
		var err error
		periods, err = civilPeriods(opts.DateRange, opts.Granularity, opts.Location)
		if err != nil {
			return domain.SeriesReport{}, err
		}
	}

	report := domain.SeriesReport{
		Granularity:  opts.Granularity,
		ViewMode:     domain.ViewModeSeparate,
		Entities:     make(map[string][]domain.TimeBucket),
		EntityLabels: make(map[string]string),
		Rows:         make([]domain.WideRow, 0, len(periods)),
	}

	index := make(map[time.Time]int, len(periods))
	for i, period := range periods {
		index[period] = i
	}

	entities := make(map[string][]accumulator)
	for _, record := range records {
		if !matchesChannel(record, opts.ChannelFilter) {
			continue
		}

		if record.SentAt.IsZero() {
			report.Skipped++
			continue
		}

		key, err := civilKey(record.SentAt, opts.Granularity, opts.Location)
		if err != nil {
			return domain.SeriesReport{}, err
		}

		accs, ok := entities[record.AccountID]
		if !ok {
			accs = make([]accumulator, len(periods))
			entities[record.AccountID] = accs
		}

		position, inRange := index[key]
		if !inRange {
			continue
		}
		accs[position].add(record)
	}

	entityIDs := make([]string, 0, len(entities))
	for entityID := range entities {
		entityIDs = append(entityIDs, entityID)
	}
	sort.Strings(entityIDs)

	for _, entityID := range entityIDs {
		label := entityID
		if name, ok := opts.EntityLabels[entityID]; ok && name != "" {
			label = name
		}
		report.EntityLabels[entityID] = label

		buckets := make([]domain.TimeBucket, len(periods))
		for i, period := range periods {
			buckets[i] = entities[entityID][i].bucket(period, opts.Granularity, opts.Location)
		}
		report.Entities[entityID] = buckets
	}

	for i, period := range periods {
		row := domain.WideRow{
			PeriodKey: localKey(period, opts.Location),
			Label:     Label(period, opts.Granularity),
			Values:    make(map[string]float64, len(entityIDs)*10),
		}

		for _, entityID := range entityIDs {
			bucket := report.Entities[entityID][i]
			for metric, value := range metricValues(bucket) {
				row.Values[WideKey(entityID, metric)] = value
			}
		}

		report.Rows = append(report.Rows, row)
	}

	return report, nil
}

// WideKey monta a chave <entityId>_<metric> das linhas largas
func WideKey(entityID, metric string) string {
	return entityID + "_" + metric
}

func metricValues(bucket domain.TimeBucket) map[string]float64 {
	return map[string]float64{
		MetricRecipients:     float64(bucket.Metrics.Recipients),
		MetricDelivered:      float64(bucket.Metrics.Delivered),
		MetricOpens:          float64(bucket.Metrics.Opens),
		MetricClicks:         float64(bucket.Metrics.Clicks),
		MetricConversions:    float64(bucket.Metrics.Conversions),
		MetricRevenue:        bucket.Metrics.Revenue,
		MetricCampaignCount:  float64(bucket.Metrics.CampaignCount),
		MetricOpenRate:       bucket.Rates.OpenRate,
		MetricClickRate:      bucket.Rates.ClickRate,
		MetricConversionRate: bucket.Rates.ConversionRate,
	}
}

func matchesChannel(record domain.PerformanceRecord, channel domain.Channel) bool {
	return channel == "" || channel == domain.ChannelAll || record.Channel == channel
}
