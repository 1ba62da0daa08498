// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelPush  Channel = "push"
	ChannelOther Channel = "other"

	// ChannelAll é usado apenas em filtros e significa "sem filtro de canal"
	ChannelAll Channel = "all"
)

// RawRecord representa um registro de performance como entregue pela fonte de dados,
// antes de qualquer validação. Campos numéricos aceitam nil, inteiros, floats,
// json.Number ou strings numéricas.
type RawRecord struct {
	ID                string   `json:"id"`
	AccountID         string   `json:"account_id"`
	Name              string   `json:"name"`
	Subject           string   `json:"subject"`
	Channel           string   `json:"channel"`
	SentAt            any      `json:"sent_at"`
	Recipients        any      `json:"recipients"`
	Delivered         any      `json:"delivered"`
	OpensUnique       any      `json:"opens_unique"`
	ClicksUnique      any      `json:"clicks_unique"`
	ConversionUniques any      `json:"conversion_uniques"`
	Revenue           any      `json:"revenue"`
	Bounced           any      `json:"bounced"`
	Unsubscribes      any      `json:"unsubscribes"`
	SpamComplaints    any      `json:"spam_complaints"`
	TagNames          []string `json:"tag_names"`
}

// PerformanceRecord é o formato canônico de um envio (campanha ou mensagem de flow).
// Nunca é alterado depois de normalizado.
type PerformanceRecord struct {
	ID                string    `json:"id"`
	AccountID         string    `json:"account_id"`
	Name              string    `json:"name"`
	Subject           string    `json:"subject,omitempty"`
	Channel           Channel   `json:"channel"`
	SentAt            time.Time `json:"sent_at"`
	Recipients        int64     `json:"recipients"`
	Delivered         int64     `json:"delivered"`
	OpensUnique       int64     `json:"opens_unique"`
	ClicksUnique      int64     `json:"clicks_unique"`
	ConversionUniques int64     `json:"conversion_uniques"`
	Revenue           float64   `json:"revenue"`
	Bounced           int64     `json:"bounced"`
	Unsubscribes      int64     `json:"unsubscribes"`
	SpamComplaints    int64     `json:"spam_complaints"`
	TagNames          []string  `json:"tag_names"`
}

// HasTag verifica se o registro possui a tag informada
func (r PerformanceRecord) HasTag(tag string) bool {
	for _, t := range r.TagNames {
		if t == tag {
			return true
		}
	}
	return false
}

// CampaignPerformance é um envio com suas taxas individuais, usado na tabela
// de campanhas e no carrossel de top performers
type CampaignPerformance struct {
	PerformanceRecord
	AccountName         string  `json:"account_name"`
	OpenRate            float64 `json:"open_rate"`
	ClickRate           float64 `json:"click_rate"`
	ConversionRate      float64 `json:"conversion_rate"`
	ClickToOpenRate     float64 `json:"click_to_open_rate"`
	RevenuePerRecipient float64 `json:"revenue_per_recipient"`
	EngagementRate      float64 `json:"engagement_rate"`
}
