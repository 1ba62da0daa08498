package domain

// AccountRollup agrega os envios de uma conta dentro do filtro atual.
// É sempre recalculado a partir dos registros e nunca persistido.
type AccountRollup struct {
	AccountID   string `json:"account_id"`
	AccountName string `json:"account_name"`

	Campaigns      int     `json:"campaigns"`
	Recipients     int64   `json:"recipients"`
	Delivered      int64   `json:"delivered"`
	Opens          int64   `json:"opens"`
	Clicks         int64   `json:"clicks"`
	Conversions    int64   `json:"conversions"`
	Revenue        float64 `json:"revenue"`
	Unsubscribes   int64   `json:"unsubscribes"`
	Bounced        int64   `json:"bounced"`
	SpamComplaints int64   `json:"spam_complaints"`

	OpenRate              float64 `json:"open_rate"`
	ClickRate             float64 `json:"click_rate"`
	ConversionRate        float64 `json:"conversion_rate"`
	ClickToOpenRate       float64 `json:"click_to_open_rate"`
	ClickToConversionRate float64 `json:"click_to_conversion_rate"`
	UnsubscribeRate       float64 `json:"unsubscribe_rate"`
	BounceRate            float64 `json:"bounce_rate"`
	DeliveryRate          float64 `json:"delivery_rate"`

	RevenuePerRecipient float64 `json:"revenue_per_recipient"`
	RevenuePerClick     float64 `json:"revenue_per_click"`
	RevenuePerOpen      float64 `json:"revenue_per_open"`
	RevenuePerCampaign  float64 `json:"revenue_per_campaign"`
	AverageOrderValue   float64 `json:"average_order_value"`

	EngagementScore float64 `json:"engagement_score"`

	// Quedas do funil. Podem ser negativas quando os dados de origem são inconsistentes.
	NonOpens       int64 `json:"non_opens"`
	NonClicks      int64 `json:"non_clicks"`
	NonConversions int64 `json:"non_conversions"`
}

// AggregateStats resume todos os envios filtrados com taxas ponderadas pelo volume
type AggregateStats struct {
	TotalCampaigns      int     `json:"total_campaigns"`
	TotalRecipients     int64   `json:"total_recipients"`
	TotalDelivered      int64   `json:"total_delivered"`
	TotalOpens          int64   `json:"total_opens"`
	TotalClicks         int64   `json:"total_clicks"`
	TotalConversions    int64   `json:"total_conversions"`
	TotalRevenue        float64 `json:"total_revenue"`
	TotalBounced        int64   `json:"total_bounced"`
	TotalUnsubscribes   int64   `json:"total_unsubscribes"`
	AvgOpenRate         float64 `json:"avg_open_rate"`
	AvgClickRate        float64 `json:"avg_click_rate"`
	AvgConversionRate   float64 `json:"avg_conversion_rate"`
	AvgBounceRate       float64 `json:"avg_bounce_rate"`
	AvgUnsubscribeRate  float64 `json:"avg_unsubscribe_rate"`
	RevenuePerRecipient float64 `json:"revenue_per_recipient"`
	AvgOrderValue       float64 `json:"avg_order_value"`
}

type MetricChange struct {
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Change   float64 `json:"change"`
}

// PeriodComparison compara o período selecionado com o período de comparação
type PeriodComparison struct {
	Current  AggregateStats          `json:"current"`
	Previous AggregateStats          `json:"previous"`
	Changes  map[string]MetricChange `json:"changes"`
}
