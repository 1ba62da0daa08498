package domain

// ComparisonReport é a visão de comparação entre contas.
// NextSortDirection é a direção aplicada por um novo clique na mesma coluna.
type ComparisonReport struct {
	Formula           FormulaID         `json:"formula"`
	Rollups           []AccountRollup   `json:"rollups"`
	Benchmarks        BenchmarkSet      `json:"benchmarks"`
	Accounts          []ScoredAccount   `json:"accounts"`
	Stats             AggregateStats    `json:"stats"`
	Comparison        *PeriodComparison `json:"comparison,omitempty"`
	SortColumn        string            `json:"sort_column"`
	SortDirection     SortDirection     `json:"sort_direction"`
	NextSortDirection SortDirection     `json:"next_sort_direction"`
	Skipped           int               `json:"skipped"`
}

// TopPerformer é uma posição do carrossel de top/bottom N.
// Position é o rank (base 1) antes da remoção dos valores zerados.
type TopPerformer[T any] struct {
	Metric   string  `json:"metric"`
	Position int     `json:"position"`
	Value    float64 `json:"value"`
	Entry    T       `json:"entry"`
}

type TopPerformersReport struct {
	Bottom             bool                                           `json:"bottom"`
	MinVolumeThreshold int64                                          `json:"min_volume_threshold"`
	Campaigns          map[string][]TopPerformer[CampaignPerformance] `json:"campaigns"`
	Accounts           map[string][]TopPerformer[AccountRollup]       `json:"accounts"`
	Skipped            int                                            `json:"skipped"`
}

type CampaignTable struct {
	SortColumn        string                `json:"sort_column"`
	SortDirection     SortDirection         `json:"sort_direction"`
	NextSortDirection SortDirection         `json:"next_sort_direction"`
	Campaigns         []CampaignPerformance `json:"campaigns"`
	AvailableTags     []string              `json:"available_tags"`
	Skipped           int                   `json:"skipped"`
}

// EvaluationReport reúne todas as visões calculadas sobre um mesmo lote de registros
type EvaluationReport struct {
	Series        SeriesReport        `json:"series"`
	Comparison    ComparisonReport    `json:"comparison"`
	TopPerformers TopPerformersReport `json:"top_performers"`
	CampaignTable CampaignTable       `json:"campaign_table"`
}
