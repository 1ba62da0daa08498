// Package rollup agrega os envios por conta e deriva as métricas de cada conta
package rollup

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/campaign-insights-api/internal/domain"
	"github.com/vfg2006/campaign-insights-api/pkg/utils"
)

// DefaultWorkers é usado quando o chamador não informa o tamanho do pool
const DefaultWorkers = 4

// Pesos do engagementScore da conta
const (
	engagementOpenWeight       = 0.30
	engagementClickWeight      = 0.40
	engagementConversionWeight = 0.30
)

type totals struct {
	accountID      string
	campaigns      int
	recipients     int64
	delivered      int64
	opens          int64
	clicks         int64
	conversions    int64
	revenue        decimal.Decimal
	unsubscribes   int64
	bounced        int64
	spamComplaints int64
}

// Rollup agrupa os registros por conta em uma única passada e deriva as métricas
// de cada conta em paralelo. O resultado é ordenado pelo id da conta.
func Rollup(records []domain.PerformanceRecord, labels map[string]string, workers int) []domain.AccountRollup {
	grouped := group(records)

	rollups := make([]domain.AccountRollup, len(grouped))
	if len(grouped) == 0 {
		return rollups
	}

	if workers <= 0 {
		workers = DefaultWorkers
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, workers)

	for i, t := range grouped {
		wg.Add(1)
		go func(i int, t *totals) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			rollups[i] = derive(t, labels[t.accountID])
		}(i, t)
	}

	wg.Wait()

	return rollups
}

func group(records []domain.PerformanceRecord) []*totals {
	byAccount := make(map[string]*totals)
	for _, record := range records {
		t, ok := byAccount[record.AccountID]
		if !ok {
			t = &totals{accountID: record.AccountID}
			byAccount[record.AccountID] = t
		}

		t.campaigns++
		t.recipients += record.Recipients
		t.delivered += record.Delivered
		t.opens += record.OpensUnique
		t.clicks += record.ClicksUnique
		t.conversions += record.ConversionUniques
		t.revenue = t.revenue.Add(decimal.NewFromFloat(record.Revenue))
		t.unsubscribes += record.Unsubscribes
		t.bounced += record.Bounced
		t.spamComplaints += record.SpamComplaints
	}

	grouped := make([]*totals, 0, len(byAccount))
	for _, t := range byAccount {
		grouped = append(grouped, t)
	}

	sort.Slice(grouped, func(i, j int) bool {
		return grouped[i].accountID < grouped[j].accountID
	})

	return grouped
}

func derive(t *totals, accountName string) domain.AccountRollup {
	if accountName == "" {
		accountName = t.accountID
	}

	revenue := t.revenue.InexactFloat64()
	recipients := float64(t.recipients)
	delivered := float64(t.delivered)
	opens := float64(t.opens)
	clicks := float64(t.clicks)
	conversions := float64(t.conversions)

	r := domain.AccountRollup{
		AccountID:      t.accountID,
		AccountName:    accountName,
		Campaigns:      t.campaigns,
		Recipients:     t.recipients,
		Delivered:      t.delivered,
		Opens:          t.opens,
		Clicks:         t.clicks,
		Conversions:    t.conversions,
		Revenue:        revenue,
		Unsubscribes:   t.unsubscribes,
		Bounced:        t.bounced,
		SpamComplaints: t.spamComplaints,

		OpenRate:              utils.Percentage(opens, delivered),
		ClickRate:             utils.Percentage(clicks, delivered),
		ConversionRate:        utils.Percentage(conversions, delivered),
		ClickToOpenRate:       utils.Percentage(clicks, opens),
		ClickToConversionRate: utils.Percentage(conversions, clicks),
		UnsubscribeRate:       utils.Percentage(float64(t.unsubscribes), delivered),
		BounceRate:            utils.Percentage(float64(t.bounced), recipients),
		DeliveryRate:          utils.Percentage(delivered, recipients),

		RevenuePerRecipient: utils.SafeDivide(revenue, recipients),
		RevenuePerClick:     utils.SafeDivide(revenue, clicks),
		RevenuePerOpen:      utils.SafeDivide(revenue, opens),
		RevenuePerCampaign:  utils.SafeDivide(revenue, float64(t.campaigns)),
		AverageOrderValue:   utils.SafeDivide(revenue, conversions),

		NonOpens:       t.delivered - t.opens,
		NonClicks:      t.opens - t.clicks,
		NonConversions: t.clicks - t.conversions,
	}

	r.EngagementScore = r.OpenRate*engagementOpenWeight +
		r.ClickRate*engagementClickWeight +
		r.ConversionRate*engagementConversionWeight

	return r
}
