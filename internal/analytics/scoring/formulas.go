package scoring

import "github.com/vfg2006/campaign-insights-api/internal/domain"

// Cap padrão das parcelas relativas ao benchmark: no máximo 2x a média
const benchmarkCap = 2

// Metas absolutas
const (
	volumeTarget      = 50000
	revenueTarget     = 100000
	conversionsTarget = 1000
	unsubscribeCap    = 5
	listHealthBase    = 50
)

var formulaOrder = []domain.FormulaID{
	domain.FormulaRevenueEfficiency,
	domain.FormulaCustomerValue,
	domain.FormulaEngagementQuality,
	domain.FormulaFullFunnel,
	domain.FormulaListHealth,
	domain.FormulaCampaignROI,
	domain.FormulaRevenuePerOpen,
	domain.FormulaEngagementScore,
	domain.FormulaVolumeEfficiency,
	domain.FormulaRevenueConcentration,
}

func relative(metric Metric, key domain.BenchmarkKey, weight float64) Term {
	return Term{Metric: metric, Benchmark: key, Weight: weight, Cap: benchmarkCap}
}

func absolute(metric Metric, target, weight float64) Term {
	return Term{Metric: metric, Target: target, Weight: weight, Cap: 1}
}

var formulas = map[domain.FormulaID]Formula{
	domain.FormulaRevenueEfficiency: {
		ID: domain.FormulaRevenueEfficiency,
		Terms: []Term{
			relative(MetricRevenuePerRecipient, domain.BenchmarkRevenuePerRecipient, 50),
			relative(MetricRevenuePerClick, domain.BenchmarkRevenuePerClick, 50),
		},
	},
	domain.FormulaCustomerValue: {
		ID: domain.FormulaCustomerValue,
		Terms: []Term{
			relative(MetricAverageOrderValue, domain.BenchmarkAOV, 60),
			relative(MetricConversionRate, domain.BenchmarkConversionRate, 40),
		},
	},
	domain.FormulaEngagementQuality: {
		ID: domain.FormulaEngagementQuality,
		Terms: []Term{
			relative(MetricClickToOpenRate, domain.BenchmarkCTOR, 50),
			relative(MetricClickToConversionRate, domain.BenchmarkClickToConversion, 50),
		},
	},
	domain.FormulaFullFunnel: {
		ID: domain.FormulaFullFunnel,
		Terms: []Term{
			relative(MetricOpenRate, domain.BenchmarkOpenRate, 30),
			relative(MetricClickToOpenRate, domain.BenchmarkCTOR, 35),
			relative(MetricClickToConversionRate, domain.BenchmarkClickToConversion, 35),
		},
	},
	// Única fórmula com base aditiva
	domain.FormulaListHealth: {
		ID:   domain.FormulaListHealth,
		Base: listHealthBase,
		Terms: []Term{
			relative(MetricClickRate, domain.BenchmarkClickRate, 40),
			{Metric: MetricUnsubscribeRate, Weight: 10, Cap: unsubscribeCap, Penalty: true},
		},
	},
	domain.FormulaCampaignROI: {
		ID: domain.FormulaCampaignROI,
		Terms: []Term{
			relative(MetricRevenuePerCampaign, domain.BenchmarkRevenuePerCampaign, 100),
		},
	},
	domain.FormulaRevenuePerOpen: {
		ID: domain.FormulaRevenuePerOpen,
		Terms: []Term{
			relative(MetricRevenuePerOpen, domain.BenchmarkRevenuePerOpen, 50),
			relative(MetricAverageOrderValue, domain.BenchmarkAOV, 50),
		},
	},
	domain.FormulaEngagementScore: {
		ID: domain.FormulaEngagementScore,
		Terms: []Term{
			relative(MetricOpenRate, domain.BenchmarkOpenRate, 30),
			relative(MetricClickRate, domain.BenchmarkClickRate, 40),
			relative(MetricConversionRate, domain.BenchmarkConversionRate, 30),
		},
	},
	domain.FormulaVolumeEfficiency: {
		ID: domain.FormulaVolumeEfficiency,
		Terms: []Term{
			relative(MetricConversionRate, domain.BenchmarkConversionRate, 70),
			absolute(MetricRecipients, volumeTarget, 30),
		},
	},
	domain.FormulaRevenueConcentration: {
		ID: domain.FormulaRevenueConcentration,
		Terms: []Term{
			absolute(MetricRevenue, revenueTarget, 60),
			absolute(MetricConversions, conversionsTarget, 40),
		},
	},
}

var descriptors = map[domain.FormulaID]domain.FormulaDescriptor{
	domain.FormulaRevenueEfficiency: {
		Label:           "Revenue Efficiency ($/Recipient & $/Click)",
		Description:     "Shows how much revenue each recipient and click generates on average.",
		PrimaryMetric:   string(MetricRevenuePerRecipient),
		SecondaryMetric: string(MetricRevenuePerClick),
		Interpretation:  "Higher $/recipient indicates better list quality. Higher $/click shows purchase intent.",
	},
	domain.FormulaCustomerValue: {
		Label:           "Customer Value (AOV & Conv Rate)",
		Description:     "Compares average order value with conversion rates across accounts.",
		PrimaryMetric:   string(MetricAverageOrderValue),
		SecondaryMetric: string(MetricConversionRate),
		Interpretation:  "High AOV with low conversion may indicate pricing issues. Low AOV with high conversion suggests upsell opportunities.",
	},
	domain.FormulaEngagementQuality: {
		Label:           "Engagement Quality (Click/Open & Conv/Click)",
		Description:     "Measures content relevance and purchase readiness of engaged subscribers.",
		PrimaryMetric:   string(MetricClickToOpenRate),
		SecondaryMetric: string(MetricClickToConversionRate),
		Interpretation:  "High click/open with low conv/click indicates landing page issues. Low click/open suggests content problems.",
	},
	domain.FormulaFullFunnel: {
		Label:           "Full Funnel (Opens → Clicks → Conversions)",
		Description:     "Shows the complete email marketing funnel from opens to purchases.",
		PrimaryMetric:   string(MetricOpens),
		SecondaryMetric: string(MetricClicks),
		TertiaryMetric:  string(MetricConversions),
		Interpretation:  "Large drop-offs between stages indicate optimization opportunities at that stage.",
	},
	domain.FormulaListHealth: {
		Label:           "List Health (Engagement vs Unsubscribes)",
		Description:     "Balances engagement quality against list attrition.",
		PrimaryMetric:   string(MetricClickRate),
		SecondaryMetric: string(MetricUnsubscribeRate),
		Interpretation:  "High engagement with high unsubscribes suggests frequency issues. Low engagement with low unsubscribes indicates passive list.",
	},
	domain.FormulaCampaignROI: {
		Label:          "Campaign ROI (Revenue per Campaign)",
		Description:    "Average revenue generated per campaign sent to each account.",
		PrimaryMetric:  string(MetricRevenuePerCampaign),
		Interpretation: "Higher values indicate more effective campaign strategy and targeting. Low values may suggest oversending.",
	},
	domain.FormulaRevenuePerOpen: {
		Label:           "Revenue Quality ($/Open & $/Conversion)",
		Description:     "Measures revenue quality from engaged users and average transaction size.",
		PrimaryMetric:   string(MetricRevenuePerOpen),
		SecondaryMetric: string(MetricAverageOrderValue),
		Interpretation:  "High $/open with low AOV suggests frequent small purchases. Low $/open with high AOV indicates rare but valuable conversions.",
	},
	domain.FormulaEngagementScore: {
		Label:          "Weighted Engagement Score",
		Description:    "Composite score combining open rate (30%), click rate (40%), and conversion rate (30%).",
		PrimaryMetric:  string(MetricEngagementScore),
		Interpretation: "Provides a single metric to compare overall email performance across accounts. Higher scores indicate better overall engagement.",
	},
	domain.FormulaVolumeEfficiency: {
		Label:           "Volume vs Efficiency Balance",
		Description:     "Compares send volume with conversion efficiency to identify over or under-mailing.",
		PrimaryMetric:   string(MetricRecipients),
		SecondaryMetric: string(MetricConversionRate),
		Interpretation:  "High volume with low conversion suggests over-mailing. Low volume with high conversion may indicate opportunity to scale.",
	},
	domain.FormulaRevenueConcentration: {
		Label:           "Revenue & Order Concentration",
		Description:     "Shows which accounts drive the most revenue and order volume.",
		PrimaryMetric:   string(MetricRevenue),
		SecondaryMetric: string(MetricConversions),
		Interpretation:  "Identifies your most valuable accounts. Large revenue with few orders indicates high-value customers.",
	},
}

// Formulas devolve as fórmulas na ordem de exibição
func Formulas() []Formula {
	list := make([]Formula, 0, len(formulaOrder))
	for _, id := range formulaOrder {
		list = append(list, formulas[id])
	}
	return list
}

// Descriptors devolve a descrição de cada fórmula na ordem de exibição
func Descriptors() []domain.FormulaDescriptor {
	list := make([]domain.FormulaDescriptor, 0, len(formulaOrder))
	for _, id := range formulaOrder {
		descriptor := descriptors[id]
		descriptor.ID = id
		list = append(list, descriptor)
	}
	return list
}

// PrimaryMetric devolve a métrica principal da fórmula, usada na ordenação das contas
func PrimaryMetric(id domain.FormulaID) Metric {
	descriptor, ok := descriptors[id]
	if !ok {
		return MetricEngagementScore
	}
	return Metric(descriptor.PrimaryMetric)
}
