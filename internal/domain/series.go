package domain

import "time"

type BucketMetrics struct {
	Recipients    int64   `json:"recipients"`
	Delivered     int64   `json:"delivered"`
	Opens         int64   `json:"opens"`
	Clicks        int64   `json:"clicks"`
	Conversions   int64   `json:"conversions"`
	Revenue       float64 `json:"revenue"`
	CampaignCount int     `json:"campaign_count"`
}

type DerivedRates struct {
	OpenRate       float64 `json:"open_rate"`
	ClickRate      float64 `json:"click_rate"`
	ConversionRate float64 `json:"conversion_rate"`
}

type TimeBucket struct {
	PeriodKey time.Time     `json:"period_key"`
	Label     string        `json:"label"`
	Metrics   BucketMetrics `json:"metrics"`
	Rates     DerivedRates  `json:"rates"`
}

// WideRow é uma linha "larga" consumida pela camada de gráficos no modo separado.
// As chaves seguem o formato <entityId>_<metric>.
type WideRow struct {
	PeriodKey time.Time          `json:"period_key"`
	Label     string             `json:"label"`
	Values    map[string]float64 `json:"values"`
}

type SeriesReport struct {
	Granularity  Granularity             `json:"granularity"`
	ViewMode     ViewMode                `json:"view_mode"`
	Combined     []TimeBucket            `json:"combined,omitempty"`
	Entities     map[string][]TimeBucket `json:"entities,omitempty"`
	EntityLabels map[string]string       `json:"entity_labels,omitempty"`
	Rows         []WideRow               `json:"rows,omitempty"`
	Skipped      int                     `json:"skipped"`
}
