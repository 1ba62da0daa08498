// Package ranking seleciona os top/bottom N por métrica e ordena as visões tabulares
package ranking

import (
	"sort"

	"github.com/vfg2006/campaign-insights-api/internal/domain"
	"github.com/vfg2006/campaign-insights-api/pkg/utils"
)

// DefaultLimit é o tamanho do carrossel de top performers
const DefaultLimit = 5

// Métricas do carrossel
const (
	MetricOpenRate            = "openRate"
	MetricClickRate           = "clickRate"
	MetricConversionRate      = "conversionRate"
	MetricRevenuePerRecipient = "revenuePerRecipient"
	MetricEngagement          = "engagement"
)

// TopMetrics lista as métricas do carrossel na ordem de exibição
var TopMetrics = []string{
	MetricOpenRate,
	MetricClickRate,
	MetricConversionRate,
	MetricRevenuePerRecipient,
	MetricEngagement,
}

type SelectOptions struct {
	Metric             string
	MinVolumeThreshold int64
	Bottom             bool
	Limit              int
}

// SelectTop filtra pelo volume mínimo, ordena de forma estável (decrescente, ou
// crescente quando Bottom), pega os primeiros Limit e remove os valores zerados.
// Position é o rank antes da remoção.
func SelectTop[T any](entries []T, value func(T) float64, volume func(T) int64, opts SelectOptions) []domain.TopPerformer[T] {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	type candidate struct {
		entry T
		value float64
	}

	candidates := make([]candidate, 0, len(entries))
	for _, entry := range entries {
		if volume(entry) < opts.MinVolumeThreshold {
			continue
		}
		candidates = append(candidates, candidate{entry: entry, value: value(entry)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if opts.Bottom {
			return candidates[i].value < candidates[j].value
		}
		return candidates[i].value > candidates[j].value
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	selected := make([]domain.TopPerformer[T], 0, len(candidates))
	for i, c := range candidates {
		if c.value == 0 {
			continue
		}

		selected = append(selected, domain.TopPerformer[T]{
			Metric:   opts.Metric,
			Position: i + 1,
			Value:    c.value,
			Entry:    c.entry,
		})
	}

	return selected
}

// CampaignMetric devolve o valor da métrica do carrossel para um envio
func CampaignMetric(metric string) func(domain.CampaignPerformance) float64 {
	switch metric {
	case MetricOpenRate:
		return func(c domain.CampaignPerformance) float64 { return c.OpenRate }
	case MetricClickRate:
		return func(c domain.CampaignPerformance) float64 { return c.ClickRate }
	case MetricConversionRate:
		return func(c domain.CampaignPerformance) float64 { return c.ConversionRate }
	case MetricRevenuePerRecipient:
		return func(c domain.CampaignPerformance) float64 { return c.RevenuePerRecipient }
	case MetricEngagement:
		return func(c domain.CampaignPerformance) float64 { return c.EngagementRate }
	default:
		return nil
	}
}

// AccountMetric devolve o valor da métrica do carrossel para uma conta
func AccountMetric(metric string) func(domain.AccountRollup) float64 {
	switch metric {
	case MetricOpenRate:
		return func(a domain.AccountRollup) float64 { return a.OpenRate }
	case MetricClickRate:
		return func(a domain.AccountRollup) float64 { return a.ClickRate }
	case MetricConversionRate:
		return func(a domain.AccountRollup) float64 { return a.ConversionRate }
	case MetricRevenuePerRecipient:
		return func(a domain.AccountRollup) float64 { return a.RevenuePerRecipient }
	case MetricEngagement:
		return func(a domain.AccountRollup) float64 {
			return utils.Percentage(float64(a.Opens+a.Clicks+a.Conversions), float64(a.Recipients))
		}
	default:
		return nil
	}
}

// TopCampaigns monta o carrossel de envios para todas as métricas
func TopCampaigns(campaigns []domain.CampaignPerformance, opts SelectOptions) map[string][]domain.TopPerformer[domain.CampaignPerformance] {
	volume := func(c domain.CampaignPerformance) int64 { return c.Recipients }

	result := make(map[string][]domain.TopPerformer[domain.CampaignPerformance], len(TopMetrics))
	for _, metric := range TopMetrics {
		opts.Metric = metric
		result[metric] = SelectTop(campaigns, CampaignMetric(metric), volume, opts)
	}
	return result
}

// TopAccounts monta o carrossel de contas para todas as métricas
func TopAccounts(rollups []domain.AccountRollup, opts SelectOptions) map[string][]domain.TopPerformer[domain.AccountRollup] {
	volume := func(a domain.AccountRollup) int64 { return a.Recipients }

	result := make(map[string][]domain.TopPerformer[domain.AccountRollup], len(TopMetrics))
	for _, metric := range TopMetrics {
		opts.Metric = metric
		result[metric] = SelectTop(rollups, AccountMetric(metric), volume, opts)
	}
	return result
}
