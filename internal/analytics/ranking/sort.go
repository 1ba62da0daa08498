package ranking

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/vfg2006/campaign-insights-api/internal/analytics/scoring"
	"github.com/vfg2006/campaign-insights-api/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	ErrUnknownSortColumn    = errors.New("unknown sort column")
	ErrInvalidSortDirection = errors.New("invalid sort direction")
)

// DefaultLocale é usado na comparação de nomes quando nenhum locale é configurado
const DefaultLocale = "en"

// Colunas da tabela de campanhas
const (
	ColumnAccount        = "account"
	ColumnCampaign       = "campaign"
	ColumnSentAt         = "sentAt"
	ColumnRecipients     = "recipients"
	ColumnOpenRate       = "openRate"
	ColumnClickRate      = "clickRate"
	ColumnCTOR           = "ctor"
	ColumnConversionRate = "conversionRate"
	ColumnRevenue        = "revenue"
)

// Colunas da comparação de contas
const (
	ColumnPerformanceScore = "performanceScore"
	ColumnName             = "name"
	ColumnCampaigns        = "campaigns"
	ColumnPrimary          = "primary"
)

// Modos de ordenação herdados do seletor do dashboard
const (
	ModeScoreDesc   = "score-desc"
	ModeScoreAsc    = "score-asc"
	ModeName        = "name"
	ModePrimaryDesc = "primary-desc"
	ModePrimaryAsc  = "primary-asc"
	ModeRevenue     = "revenue"
	ModeCampaigns   = "campaigns"
)

// SortState é o estado de ordenação de uma tabela
type SortState struct {
	Column    string               `json:"column"`
	Direction domain.SortDirection `json:"direction"`
}

// Toggle inverte a direção quando a coluna é a mesma; outra coluna sempre começa decrescente
func (s SortState) Toggle(column string) SortState {
	if s.Column == column {
		if s.Direction == domain.SortAsc {
			return SortState{Column: column, Direction: domain.SortDesc}
		}
		return SortState{Column: column, Direction: domain.SortAsc}
	}

	return SortState{Column: column, Direction: domain.SortDesc}
}

// ValidateDirection aceita vazio (decrescente), asc ou desc
func ValidateDirection(direction domain.SortDirection) (domain.SortDirection, error) {
	switch direction {
	case "":
		return domain.SortDesc, nil
	case domain.SortAsc, domain.SortDesc:
		return direction, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSortDirection, direction)
	}
}

type column[T any] struct {
	text    func(T) string
	numeric func(T) float64
}

// comparator devolve -1, 0 ou 1. Um novo collator é criado a cada ordenação
// porque collate.Collator não pode ser compartilhado entre goroutines.
func (c column[T]) comparator(locale string) func(a, b T) int {
	if c.text != nil {
		collator := newCollator(locale)
		return func(a, b T) int {
			return collator.CompareString(c.text(a), c.text(b))
		}
	}

	return func(a, b T) int {
		va, vb := c.numeric(a), c.numeric(b)
		switch {
		case va < vb:
			return -1
		case va > vb:
			return 1
		default:
			return 0
		}
	}
}

func newCollator(locale string) *collate.Collator {
	if strings.TrimSpace(locale) == "" {
		locale = DefaultLocale
	}

	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}

	return collate.New(tag, collate.IgnoreCase)
}

func sortStable[T any](items []T, compare func(a, b T) int, direction domain.SortDirection) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		if direction == domain.SortAsc {
			return compare(sorted[i], sorted[j]) < 0
		}
		return compare(sorted[i], sorted[j]) > 0
	})

	return sorted
}

var campaignColumns = map[string]column[domain.CampaignPerformance]{
	ColumnAccount:  {text: func(c domain.CampaignPerformance) string { return c.AccountName }},
	ColumnCampaign: {text: func(c domain.CampaignPerformance) string { return c.Name }},
	ColumnSentAt: {numeric: func(c domain.CampaignPerformance) float64 {
		return float64(c.SentAt.UnixMilli())
	}},
	ColumnRecipients:     {numeric: func(c domain.CampaignPerformance) float64 { return float64(c.Recipients) }},
	ColumnOpenRate:       {numeric: func(c domain.CampaignPerformance) float64 { return c.OpenRate }},
	ColumnClickRate:      {numeric: func(c domain.CampaignPerformance) float64 { return c.ClickRate }},
	ColumnCTOR:           {numeric: func(c domain.CampaignPerformance) float64 { return c.ClickToOpenRate }},
	ColumnConversionRate: {numeric: func(c domain.CampaignPerformance) float64 { return c.ConversionRate }},
	ColumnRevenue:        {numeric: func(c domain.CampaignPerformance) float64 { return c.Revenue }},
}

// DefaultCampaignSort é a ordenação inicial da tabela de campanhas
var DefaultCampaignSort = SortState{Column: ColumnSentAt, Direction: domain.SortDesc}

// SortCampaigns devolve uma cópia ordenada dos envios; a entrada não é alterada
func SortCampaigns(campaigns []domain.CampaignPerformance, state SortState, locale string) ([]domain.CampaignPerformance, error) {
	col, ok := campaignColumns[state.Column]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSortColumn, state.Column)
	}

	direction, err := ValidateDirection(state.Direction)
	if err != nil {
		return nil, err
	}

	return sortStable(campaigns, col.comparator(locale), direction), nil
}

// DefaultAccountSort é a ordenação inicial da comparação de contas
var DefaultAccountSort = SortState{Column: ColumnPerformanceScore, Direction: domain.SortDesc}

func accountColumn(name string, formula domain.FormulaID) (column[domain.ScoredAccount], bool) {
	switch name {
	case ColumnPerformanceScore:
		return column[domain.ScoredAccount]{numeric: func(a domain.ScoredAccount) float64 { return float64(a.PerformanceScore) }}, true
	case ColumnName:
		return column[domain.ScoredAccount]{text: func(a domain.ScoredAccount) string { return a.AccountName }}, true
	case ColumnRevenue:
		return column[domain.ScoredAccount]{numeric: func(a domain.ScoredAccount) float64 { return a.Revenue }}, true
	case ColumnCampaigns:
		return column[domain.ScoredAccount]{numeric: func(a domain.ScoredAccount) float64 { return float64(a.Campaigns) }}, true
	case ColumnRecipients:
		return column[domain.ScoredAccount]{numeric: func(a domain.ScoredAccount) float64 { return float64(a.Recipients) }}, true
	case ColumnPrimary:
		metric := scoring.PrimaryMetric(formula)
		return column[domain.ScoredAccount]{numeric: func(a domain.ScoredAccount) float64 { return metric.Of(a.AccountRollup) }}, true
	}

	// Qualquer métrica conhecida do rollup também pode ser usada como coluna
	metric := scoring.Metric(name)
	if !metric.Known() {
		return column[domain.ScoredAccount]{}, false
	}

	return column[domain.ScoredAccount]{numeric: func(a domain.ScoredAccount) float64 { return metric.Of(a.AccountRollup) }}, true
}

// ParseAccountSortMode converte os modos do seletor do dashboard em coluna e direção.
// Valores que não são modos conhecidos são devolvidos como coluna sem direção.
func ParseAccountSortMode(mode string) SortState {
	switch mode {
	case ModeScoreDesc:
		return SortState{Column: ColumnPerformanceScore, Direction: domain.SortDesc}
	case ModeScoreAsc:
		return SortState{Column: ColumnPerformanceScore, Direction: domain.SortAsc}
	case ModeName:
		return SortState{Column: ColumnName, Direction: domain.SortAsc}
	case ModePrimaryDesc:
		return SortState{Column: ColumnPrimary, Direction: domain.SortDesc}
	case ModePrimaryAsc:
		return SortState{Column: ColumnPrimary, Direction: domain.SortAsc}
	case ModeRevenue:
		return SortState{Column: ColumnRevenue, Direction: domain.SortDesc}
	case ModeCampaigns:
		return SortState{Column: ColumnCampaigns, Direction: domain.SortDesc}
	default:
		return SortState{Column: mode}
	}
}

// SortAccounts devolve uma cópia ordenada das contas pontuadas
func SortAccounts(accounts []domain.ScoredAccount, state SortState, formula domain.FormulaID, locale string) ([]domain.ScoredAccount, error) {
	col, ok := accountColumn(state.Column, formula)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSortColumn, state.Column)
	}

	direction, err := ValidateDirection(state.Direction)
	if err != nil {
		return nil, err
	}

	return sortStable(accounts, col.comparator(locale), direction), nil
}

// ValidateCampaignColumn permite validar a requisição antes de processar os dados
func ValidateCampaignColumn(name string) error {
	if _, ok := campaignColumns[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSortColumn, name)
	}
	return nil
}

func ValidateAccountColumn(name string) error {
	if _, ok := accountColumn(name, domain.DefaultFormula); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSortColumn, name)
	}
	return nil
}
