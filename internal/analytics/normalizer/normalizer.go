// Package normalizer valida os registros brutos e os converte para o formato canônico
package normalizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/campaign-insights-api/internal/domain"
)

var (
	ErrMalformedRecord = errors.New("malformed record")
	ErrMissingAccount  = errors.New("missing account id")
	ErrInvalidSentAt   = errors.New("invalid sent_at")
	ErrNonNumericField = errors.New("non-numeric field")
	ErrNegativeField   = errors.New("negative field")
	ErrCountOverflow   = errors.New("count out of range")
)

var maxCount = decimal.NewFromInt(math.MaxInt64)

// sentAtLayouts são os formatos aceitos quando sent_at chega como texto
var sentAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.DateTime,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// Issue descreve um registro descartado
type Issue struct {
	Index    int    `json:"index"`
	RecordID string `json:"record_id"`
	Reason   string `json:"reason"`
	err      error
}

func (i Issue) Error() string {
	return fmt.Sprintf("registro %d (%s): %s", i.Index, i.RecordID, i.Reason)
}

func (i Issue) Unwrap() error {
	return i.err
}

type Result struct {
	Records []domain.PerformanceRecord
	Skipped int
	Issues  []Issue
}

// Normalize converte todos os registros válidos. Um registro inválido nunca
// interrompe o processamento: ele é descartado e contabilizado em Skipped.
func Normalize(raw []domain.RawRecord) Result {
	result := Result{
		Records: make([]domain.PerformanceRecord, 0, len(raw)),
	}

	for i, r := range raw {
		record, err := NormalizeRecord(r)
		if err != nil {
			result.Skipped++
			result.Issues = append(result.Issues, Issue{
				Index:    i,
				RecordID: r.ID,
				Reason:   err.Error(),
				err:      err,
			})
			continue
		}

		result.Records = append(result.Records, record)
	}

	return result
}

// NormalizeRecord valida um único registro bruto
func NormalizeRecord(r domain.RawRecord) (domain.PerformanceRecord, error) {
	accountID := strings.TrimSpace(r.AccountID)
	if accountID == "" {
		return domain.PerformanceRecord{}, fmt.Errorf("%w: %w", ErrMalformedRecord, ErrMissingAccount)
	}

	sentAt, err := ParseSentAt(r.SentAt)
	if err != nil {
		return domain.PerformanceRecord{}, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}

	record := domain.PerformanceRecord{
		ID:        r.ID,
		AccountID: accountID,
		Name:      strings.TrimSpace(r.Name),
		Subject:   strings.TrimSpace(r.Subject),
		Channel:   CanonicalChannel(r.Channel),
		SentAt:    sentAt,
		TagNames:  normalizeTags(r.TagNames),
	}

	counts := []struct {
		field string
		value any
		dest  *int64
	}{
		{"recipients", r.Recipients, &record.Recipients},
		{"delivered", r.Delivered, &record.Delivered},
		{"opens_unique", r.OpensUnique, &record.OpensUnique},
		{"clicks_unique", r.ClicksUnique, &record.ClicksUnique},
		{"conversion_uniques", r.ConversionUniques, &record.ConversionUniques},
		{"bounced", r.Bounced, &record.Bounced},
		{"unsubscribes", r.Unsubscribes, &record.Unsubscribes},
		{"spam_complaints", r.SpamComplaints, &record.SpamComplaints},
	}

	for _, c := range counts {
		value, err := parseNumber(c.field, c.value)
		if err != nil {
			return domain.PerformanceRecord{}, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
		}
		// IntPart trunca silenciosamente acima de int64
		if value.GreaterThan(maxCount) {
			return domain.PerformanceRecord{}, fmt.Errorf("%w: %w: %s", ErrMalformedRecord, ErrCountOverflow, c.field)
		}
		*c.dest = value.IntPart()
	}

	revenue, err := parseNumber("revenue", r.Revenue)
	if err != nil {
		return domain.PerformanceRecord{}, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	record.Revenue = revenue.InexactFloat64()

	return record, nil
}

// ParseSentAt aceita time.Time, *time.Time, texto nos layouts conhecidos e segundos unix
func ParseSentAt(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, ErrInvalidSentAt
		}
		return v, nil
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, ErrInvalidSentAt
		}
		return *v, nil
	case string:
		text := strings.TrimSpace(v)
		for _, layout := range sentAtLayouts {
			if parsed, err := time.Parse(layout, text); err == nil {
				return parsed, nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidSentAt, v)
	case int64:
		if v <= 0 {
			return time.Time{}, ErrInvalidSentAt
		}
		return time.Unix(v, 0).UTC(), nil
	case int:
		return ParseSentAt(int64(v))
	case float64:
		if math.IsNaN(v) || v <= 0 {
			return time.Time{}, ErrInvalidSentAt
		}
		return time.Unix(int64(v), 0).UTC(), nil
	case json.Number:
		seconds, err := v.Int64()
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidSentAt, v.String())
		}
		return ParseSentAt(seconds)
	default:
		return time.Time{}, ErrInvalidSentAt
	}
}

// CanonicalChannel mapeia os tipos de envio conhecidos para os quatro canais
func CanonicalChannel(channel string) domain.Channel {
	switch strings.ToLower(strings.TrimSpace(channel)) {
	case "email":
		return domain.ChannelEmail
	case "sms":
		return domain.ChannelSMS
	case "push", "mobile_push", "mobile push":
		return domain.ChannelPush
	default:
		return domain.ChannelOther
	}
}

func parseNumber(field string, value any) (decimal.Decimal, error) {
	var (
		number decimal.Decimal
		err    error
	)

	switch v := value.(type) {
	case nil:
		return decimal.Zero, nil
	case int:
		number = decimal.NewFromInt(int64(v))
	case int32:
		number = decimal.NewFromInt32(v)
	case int64:
		number = decimal.NewFromInt(v)
	case uint32:
		number = decimal.NewFromInt(int64(v))
	case uint64:
		if v > math.MaxInt64 {
			return decimal.Zero, fmt.Errorf("%w: %s", ErrNonNumericField, field)
		}
		number = decimal.NewFromInt(int64(v))
	case float32:
		number, err = floatToDecimal(float64(v))
	case float64:
		number, err = floatToDecimal(v)
	case json.Number:
		number, err = decimal.NewFromString(v.String())
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return decimal.Zero, nil
		}
		number, err = decimal.NewFromString(text)
	case decimal.Decimal:
		number = v
	default:
		err = fmt.Errorf("tipo %T não suportado", value)
	}

	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrNonNumericField, field)
	}

	if number.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrNegativeField, field)
	}

	return number, nil
}

func floatToDecimal(v float64) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero, errors.New("valor não finito")
	}
	return decimal.NewFromFloat(v), nil
}

func normalizeTags(tags []string) []string {
	cleaned := lo.FilterMap(tags, func(tag string, _ int) (string, bool) {
		tag = strings.TrimSpace(tag)
		return tag, tag != ""
	})

	cleaned = lo.Uniq(cleaned)
	sort.Strings(cleaned)

	return cleaned
}
