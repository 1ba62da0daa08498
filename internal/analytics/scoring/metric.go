package scoring

import "github.com/vfg2006/campaign-insights-api/internal/domain"

// Metric identifica um campo do rollup usado pelas fórmulas
type Metric string

const (
	MetricRecipients            Metric = "recipients"
	MetricOpens                 Metric = "opens"
	MetricClicks                Metric = "clicks"
	MetricConversions           Metric = "conversions"
	MetricRevenue               Metric = "revenue"
	MetricOpenRate              Metric = "openRate"
	MetricClickRate             Metric = "clickRate"
	MetricConversionRate        Metric = "conversionRate"
	MetricClickToOpenRate       Metric = "clickToOpenRate"
	MetricClickToConversionRate Metric = "clickToConversionRate"
	MetricUnsubscribeRate       Metric = "unsubscribeRate"
	MetricRevenuePerRecipient   Metric = "revenuePerRecipient"
	MetricRevenuePerClick       Metric = "revenuePerClick"
	MetricRevenuePerOpen        Metric = "revenuePerOpen"
	MetricRevenuePerCampaign    Metric = "revenuePerCampaign"
	MetricAverageOrderValue     Metric = "averageOrderValue"
	MetricEngagementScore       Metric = "engagementScore"
)

var knownMetrics = map[Metric]struct{}{
	MetricRecipients:            {},
	MetricOpens:                 {},
	MetricClicks:                {},
	MetricConversions:           {},
	MetricRevenue:               {},
	MetricOpenRate:              {},
	MetricClickRate:             {},
	MetricConversionRate:        {},
	MetricClickToOpenRate:       {},
	MetricClickToConversionRate: {},
	MetricUnsubscribeRate:       {},
	MetricRevenuePerRecipient:   {},
	MetricRevenuePerClick:       {},
	MetricRevenuePerOpen:        {},
	MetricRevenuePerCampaign:    {},
	MetricAverageOrderValue:     {},
	MetricEngagementScore:       {},
}

func (m Metric) Known() bool {
	_, ok := knownMetrics[m]
	return ok
}

// Of lê a métrica do rollup; métricas desconhecidas valem 0
func (m Metric) Of(rollup domain.AccountRollup) float64 {
	switch m {
	case MetricRecipients:
		return float64(rollup.Recipients)
	case MetricOpens:
		return float64(rollup.Opens)
	case MetricClicks:
		return float64(rollup.Clicks)
	case MetricConversions:
		return float64(rollup.Conversions)
	case MetricRevenue:
		return rollup.Revenue
	case MetricOpenRate:
		return rollup.OpenRate
	case MetricClickRate:
		return rollup.ClickRate
	case MetricConversionRate:
		return rollup.ConversionRate
	case MetricClickToOpenRate:
		return rollup.ClickToOpenRate
	case MetricClickToConversionRate:
		return rollup.ClickToConversionRate
	case MetricUnsubscribeRate:
		return rollup.UnsubscribeRate
	case MetricRevenuePerRecipient:
		return rollup.RevenuePerRecipient
	case MetricRevenuePerClick:
		return rollup.RevenuePerClick
	case MetricRevenuePerOpen:
		return rollup.RevenuePerOpen
	case MetricRevenuePerCampaign:
		return rollup.RevenuePerCampaign
	case MetricAverageOrderValue:
		return rollup.AverageOrderValue
	case MetricEngagementScore:
		return rollup.EngagementScore
	default:
		return 0
	}
}
