package rollup

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/campaign-insights-api/internal/domain"
	"github.com/vfg2006/campaign-insights-api/pkg/utils"
)

// Aggregate resume todos os registros com taxas ponderadas pelo volume
func Aggregate(records []domain.PerformanceRecord) domain.AggregateStats {
	stats := domain.AggregateStats{
		TotalCampaigns: len(records),
	}

	revenue := decimal.Zero
	for _, record := range records {
		stats.TotalRecipients += record.Recipients
		stats.TotalDelivered += record.Delivered
		stats.TotalOpens += record.OpensUnique
		stats.TotalClicks += record.ClicksUnique
		stats.TotalConversions += record.ConversionUniques
		stats.TotalBounced += record.Bounced
		stats.TotalUnsubscribes += record.Unsubscribes
		revenue = revenue.Add(decimal.NewFromFloat(record.Revenue))
	}
	stats.TotalRevenue = revenue.InexactFloat64()

	delivered := float64(stats.TotalDelivered)
	stats.AvgOpenRate = utils.Percentage(float64(stats.TotalOpens), delivered)
	stats.AvgClickRate = utils.Percentage(float64(stats.TotalClicks), delivered)
	stats.AvgConversionRate = utils.Percentage(float64(stats.TotalConversions), delivered)
	stats.AvgUnsubscribeRate = utils.Percentage(float64(stats.TotalUnsubscribes), delivered)
	stats.AvgBounceRate = utils.Percentage(float64(stats.TotalBounced), float64(stats.TotalRecipients))
	stats.RevenuePerRecipient = utils.SafeDivide(stats.TotalRevenue, float64(stats.TotalRecipients))
	stats.AvgOrderValue = utils.SafeDivide(stats.TotalRevenue, float64(stats.TotalConversions))

	return stats
}

// Compare calcula a variação percentual de cada métrica entre os dois períodos
func Compare(current, previous domain.AggregateStats) domain.PeriodComparison {
	pairs := map[string][2]float64{
		"campaigns":           {float64(current.TotalCampaigns), float64(previous.TotalCampaigns)},
		"recipients":          {float64(current.TotalRecipients), float64(previous.TotalRecipients)},
		"delivered":           {float64(current.TotalDelivered), float64(previous.TotalDelivered)},
		"opens":               {float64(current.TotalOpens), float64(previous.TotalOpens)},
		"clicks":              {float64(current.TotalClicks), float64(previous.TotalClicks)},
		"conversions":         {float64(current.TotalConversions), float64(previous.TotalConversions)},
		"revenue":             {current.TotalRevenue, previous.TotalRevenue},
		"openRate":            {current.AvgOpenRate, previous.AvgOpenRate},
		"clickRate":           {current.AvgClickRate, previous.AvgClickRate},
		"conversionRate":      {current.AvgConversionRate, previous.AvgConversionRate},
		"bounceRate":          {current.AvgBounceRate, previous.AvgBounceRate},
		"unsubscribeRate":     {current.AvgUnsubscribeRate, previous.AvgUnsubscribeRate},
		"revenuePerRecipient": {current.RevenuePerRecipient, previous.RevenuePerRecipient},
		"averageOrderValue":   {current.AvgOrderValue, previous.AvgOrderValue},
	}

	changes := make(map[string]domain.MetricChange, len(pairs))
	for metric, pair := range pairs {
		changes[metric] = domain.MetricChange{
			Current:  pair[0],
			Previous: pair[1],
			Change:   utils.PercentageChange(pair[0], pair[1]),
		}
	}

	return domain.PeriodComparison{
		Current:  current,
		Previous: previous,
		Changes:  changes,
	}
}

// Campaign deriva as taxas individuais de um envio
func Campaign(record domain.PerformanceRecord, accountName string) domain.CampaignPerformance {
	if accountName == "" {
		accountName = record.AccountID
	}

	recipients := float64(record.Recipients)
	delivered := float64(record.Delivered)
	opens := float64(record.OpensUnique)
	clicks := float64(record.ClicksUnique)
	conversions := float64(record.ConversionUniques)

	return domain.CampaignPerformance{
		PerformanceRecord:   record,
		AccountName:         accountName,
		OpenRate:            utils.Percentage(opens, delivered),
		ClickRate:           utils.Percentage(clicks, delivered),
		ConversionRate:      utils.Percentage(conversions, delivered),
		ClickToOpenRate:     utils.Percentage(clicks, opens),
		RevenuePerRecipient: utils.SafeDivide(record.Revenue, recipients),
		EngagementRate:      utils.Percentage(opens+clicks+conversions, recipients),
	}
}

// Campaigns aplica Campaign a todos os registros mantendo a ordem
func Campaigns(records []domain.PerformanceRecord, labels map[string]string) []domain.CampaignPerformance {
	campaigns := make([]domain.CampaignPerformance, 0, len(records))
	for _, record := range records {
		campaigns = append(campaigns, Campaign(record, labels[record.AccountID]))
	}
	return campaigns
}
