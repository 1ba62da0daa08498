package domain

type FormulaID string

const (
	FormulaRevenueEfficiency    FormulaID = "revenue-efficiency"
	FormulaCustomerValue        FormulaID = "customer-value"
	FormulaEngagementQuality    FormulaID = "engagement-quality"
	FormulaFullFunnel           FormulaID = "full-funnel"
	FormulaListHealth           FormulaID = "list-health"
	FormulaCampaignROI          FormulaID = "campaign-roi"
	FormulaRevenuePerOpen       FormulaID = "revenue-per-open"
	FormulaEngagementScore      FormulaID = "engagement-score"
	FormulaVolumeEfficiency     FormulaID = "volume-efficiency"
	FormulaRevenueConcentration FormulaID = "revenue-concentration"
)

// DefaultFormula é usada quando a requisição não escolhe uma fórmula
const DefaultFormula = FormulaEngagementScore

// ScoredAccount é criado a cada rodada de pontuação; ordenações geram novas visões
// sem alterar os itens
type ScoredAccount struct {
	AccountRollup
	PerformanceScores map[FormulaID]int `json:"performance_scores"`
	PerformanceScore  int               `json:"performance_score"`
}

// FormulaDescriptor descreve uma fórmula para quem consome a API
type FormulaDescriptor struct {
	ID              FormulaID `json:"id"`
	Label           string    `json:"label"`
	Description     string    `json:"description"`
	PrimaryMetric   string    `json:"primary_metric"`
	SecondaryMetric string    `json:"secondary_metric,omitempty"`
	TertiaryMetric  string    `json:"tertiary_metric,omitempty"`
	Interpretation  string    `json:"interpretation,omitempty"`
}
