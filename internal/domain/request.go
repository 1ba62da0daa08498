package domain

import "time"

type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

type ViewMode string

const (
	ViewModeCombined ViewMode = "combined"
	ViewModeSeparate ViewMode = "separate"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// DefaultMinVolumeThreshold é o mínimo de destinatários para um item entrar no top N
const DefaultMinVolumeThreshold int64 = 10000

type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains inclui os dois extremos do intervalo
func (d DateRange) Contains(t time.Time) bool {
	return !t.Before(d.Start) && !t.After(d.End)
}

func (d DateRange) IsZero() bool {
	return d.Start.IsZero() && d.End.IsZero()
}

// AggregationRequest descreve uma execução do pipeline. É tratada como valor imutável:
// cada requisição gera uma saída nova e independente.
type AggregationRequest struct {
	DateRange           DateRange      `json:"date_range"`
	ComparisonDateRange *DateRange     `json:"comparison_date_range,omitempty"`
	Granularity         Granularity    `json:"granularity"`
	ViewMode            ViewMode       `json:"view_mode"`
	ChannelFilter       Channel        `json:"channel_filter"`
	TagFilter           string         `json:"tag_filter,omitempty"`
	SearchQuery         string         `json:"search_query,omitempty"`
	AccountIDs          []string       `json:"account_ids,omitempty"`
	MinVolumeThreshold  int64          `json:"min_volume_threshold"`
	SelectedFormula     FormulaID      `json:"selected_formula"`
	SortColumn          string         `json:"sort_column,omitempty"`
	SortDirection       SortDirection  `json:"sort_direction,omitempty"`
	BottomPerformers    bool           `json:"bottom_performers"`
	Location            *time.Location `json:"-"`
}
