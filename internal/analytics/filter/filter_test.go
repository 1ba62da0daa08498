package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-insights-api/internal/domain"
)

func at(d int, hour int) time.Time {
	return time.Date(2024, 1, d, hour, 0, 0, 0, time.UTC)
}

func fixtures() []domain.PerformanceRecord {
	return []domain.PerformanceRecord{
		{ID: "1", AccountID: "A", Name: "Black Friday", Channel: domain.ChannelEmail, SentAt: at(1, 9), TagNames: []string{"promo"}},
		{ID: "2", AccountID: "A", Name: "Newsletter", Subject: "Novidades da semana", Channel: domain.ChannelSMS, SentAt: at(5, 23)},
		{ID: "3", AccountID: "B", Name: "Welcome", Channel: domain.ChannelEmail, SentAt: at(10, 12), TagNames: []string{"flow", "promo"}},
		{ID: "4", AccountID: "C", Name: "Winback", Channel: domain.ChannelPush, SentAt: at(20, 8)},
	}
}

func recordIDs(records []domain.PerformanceRecord) []string {
	result := make([]string, 0, len(records))
	for _, r := range records {
		result = append(result, r.ID)
	}
	return result
}

func TestApply(t *testing.T) {
	labels := map[string]string{"B": "Loja Centro"}

	tests := []struct {
		name     string
		criteria Criteria
		expected []string
	}{
		{
			name:     "sem critérios",
			criteria: Criteria{},
			expected: []string{"1", "2", "3", "4"},
		},
		{
			name:     "intervalo inclui o dia final inteiro",
			criteria: Criteria{DateRange: domain.DateRange{Start: at(1, 0), End: at(5, 0)}},
			expected: []string{"1", "2"},
		},
		{
			name:     "canal",
			criteria: Criteria{ChannelFilter: domain.ChannelEmail},
			expected: []string{"1", "3"},
		},
		{
			name:     "canal all não filtra",
			criteria: Criteria{ChannelFilter: domain.ChannelAll},
			expected: []string{"1", "2", "3", "4"},
		},
		{
			name:     "tag",
			criteria: Criteria{TagFilter: "promo"},
			expected: []string{"1", "3"},
		},
		{
			name:     "contas",
			criteria: Criteria{AccountIDs: []string{"C", " B "}},
			expected: []string{"3", "4"},
		},
		{
			name:     "busca no assunto",
			criteria: Criteria{SearchQuery: "novidades"},
			expected: []string{"2"},
		},
		{
			name:     "busca no nome da conta",
			criteria: Criteria{SearchQuery: "CENTRO"},
			expected: []string{"3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, recordIDs(Apply(fixtures(), tt.criteria, labels)))
		})
	}
}

func TestApply_Location(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)

	// 2024-01-06 01:00 UTC ainda é dia 5 em São Paulo
	records := []domain.PerformanceRecord{{ID: "1", SentAt: time.Date(2024, 1, 6, 1, 0, 0, 0, time.UTC)}}

	criteria := Criteria{
		DateRange: domain.DateRange{Start: time.Date(2024, 1, 5, 0, 0, 0, 0, saoPaulo), End: time.Date(2024, 1, 5, 0, 0, 0, 0, saoPaulo)},
		Location:  saoPaulo,
	}

	assert.Len(t, Apply(records, criteria, nil), 1)
}

func TestValidateDateRange(t *testing.T) {
	assert.NoError(t, ValidateDateRange(domain.DateRange{}))
	assert.NoError(t, ValidateDateRange(domain.DateRange{Start: at(1, 0), End: at(1, 0)}))
	assert.ErrorIs(t, ValidateDateRange(domain.DateRange{Start: at(2, 0), End: at(1, 0)}), ErrInvalidDateRange)
	assert.ErrorIs(t, ValidateDateRange(domain.DateRange{Start: at(2, 0)}), ErrInvalidDateRange)
}

func TestAvailableTags(t *testing.T) {
	assert.Equal(t, []string{"flow", "promo"}, AvailableTags(fixtures()))
	assert.Empty(t, AvailableTags(nil))
}
