// Package filter restringe os envios ao escopo de uma requisição
package filter

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/vfg2006/campaign-insights-api/internal/domain"
	"github.com/vfg2006/campaign-insights-api/pkg/utils"
)

var ErrInvalidDateRange = errors.New("invalid date range")

// Criteria é o subconjunto da requisição usado na filtragem
type Criteria struct {
	DateRange     domain.DateRange
	ChannelFilter domain.Channel
	TagFilter     string
	SearchQuery   string
	AccountIDs    []string
	Location      *time.Location
}

// FromRequest extrai os critérios de filtragem da requisição
func FromRequest(req domain.AggregationRequest) Criteria {
	return Criteria{
		DateRange:     req.DateRange,
		ChannelFilter: req.ChannelFilter,
		TagFilter:     req.TagFilter,
		SearchQuery:   req.SearchQuery,
		AccountIDs:    req.AccountIDs,
		Location:      req.Location,
	}
}

// ValidateDateRange aceita intervalo vazio (sem filtro de data) ou início <= fim
func ValidateDateRange(dateRange domain.DateRange) error {
	if dateRange.IsZero() {
		return nil
	}

	if dateRange.Start.IsZero() || dateRange.End.IsZero() {
		return fmt.Errorf("%w: início e fim são obrigatórios", ErrInvalidDateRange)
	}

	if dateRange.End.Before(dateRange.Start) {
		return fmt.Errorf("%w: fim anterior ao início", ErrInvalidDateRange)
	}

	return nil
}

// inclusiveRange estende o fim até o último instante do dia no fuso da requisição
func inclusiveRange(dateRange domain.DateRange, loc *time.Location) domain.DateRange {
	if loc == nil {
		loc = time.UTC
	}

	start := dateRange.Start.In(loc)
	end := dateRange.End.In(loc)

	return domain.DateRange{
		Start: utils.StartOfDay(start.Year(), start.Month(), start.Day(), loc),
		End:   utils.EndOfDay(end),
	}
}

// Apply devolve os envios que atendem a todos os critérios, na ordem original
func Apply(records []domain.PerformanceRecord, criteria Criteria, labels map[string]string) []domain.PerformanceRecord {
	var dateRange *domain.DateRange
	if !criteria.DateRange.IsZero() {
		r := inclusiveRange(criteria.DateRange, criteria.Location)
		dateRange = &r
	}

	accounts := make(map[string]struct{}, len(criteria.AccountIDs))
	for _, id := range criteria.AccountIDs {
		if id = strings.TrimSpace(id); id != "" {
			accounts[id] = struct{}{}
		}
	}

	tag := strings.TrimSpace(criteria.TagFilter)
	query := strings.ToLower(strings.TrimSpace(criteria.SearchQuery))

	return lo.Filter(records, func(record domain.PerformanceRecord, _ int) bool {
		if dateRange != nil && !dateRange.Contains(record.SentAt) {
			return false
		}

		if criteria.ChannelFilter != "" && criteria.ChannelFilter != domain.ChannelAll && record.Channel != criteria.ChannelFilter {
			return false
		}

		if len(accounts) > 0 {
			if _, ok := accounts[record.AccountID]; !ok {
				return false
			}
		}

		if tag != "" && !record.HasTag(tag) {
			return false
		}

		if query != "" && !matchesQuery(record, labels[record.AccountID], query) {
			return false
		}

		return true
	})
}

func matchesQuery(record domain.PerformanceRecord, accountName, query string) bool {
	return strings.Contains(strings.ToLower(record.Name), query) ||
		strings.Contains(strings.ToLower(record.Subject), query) ||
		strings.Contains(strings.ToLower(accountName), query)
}

// AvailableTags lista as tags distintas dos envios, ordenadas
func AvailableTags(records []domain.PerformanceRecord) []string {
	tags := lo.Uniq(lo.FlatMap(records, func(record domain.PerformanceRecord, _ int) []string {
		return record.TagNames
	}))
	sort.Strings(tags)

	return tags
}
