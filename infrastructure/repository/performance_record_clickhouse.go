package repository

import (
	"context"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/campaign-insights-api/internal/domain"
)

type clickHousePerformanceRecordRepository struct {
	conn driver.Conn
}

func NewClickHousePerformanceRecordRepository(conn driver.Conn) PerformanceRecordRepository {
	return &clickHousePerformanceRecordRepository{
		conn: conn,
	}
}

func (r *clickHousePerformanceRecordRepository) ListByPeriod(ctx context.Context, start, end time.Time, accountIDs []string) ([]domain.RawRecord, error) {
	query, args := clickHouseListQuery(start, end, accountIDs)

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query no ClickHouse")
	}
	defer rows.Close()

	records := make([]domain.RawRecord, 0)
	for rows.Next() {
		var (
			record  domain.RawRecord
			sentAt  time.Time
			revenue *decimal.Decimal
			values  [8]*float64
		)

		if err := rows.Scan(
			&record.ID,
			&record.AccountID,
			&record.Name,
			&record.Subject,
			&record.Channel,
			&sentAt,
			&values[0],
			&values[1],
			&values[2],
			&values[3],
			&values[4],
			&revenue,
			&values[5],
			&values[6],
			&values[7],
			&record.TagNames,
		); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear registro de performance")
		}

		record.SentAt = sentAt
		record.Recipients = deref(values[0])
		record.Delivered = deref(values[1])
		record.OpensUnique = deref(values[2])
		record.ClicksUnique = deref(values[3])
		record.ConversionUniques = deref(values[4])
		record.Revenue = deref(revenue)
		record.Bounced = deref(values[5])
		record.Unsubscribes = deref(values[6])
		record.SpamComplaints = deref(values[7])

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return records, nil
}

func clickHouseListQuery(start, end time.Time, accountIDs []string) (string, []any) {
	var (
		where []string
		args  []any
	)

	if !start.IsZero() {
		where = append(where, "sent_at >= ?")
		args = append(args, start)
	}
	if !end.IsZero() {
		where = append(where, "sent_at <= ?")
		args = append(args, end)
	}
	if len(accountIDs) > 0 {
		where = append(where, "account_id IN ?")
		args = append(args, accountIDs)
	}

	var sb strings.Builder
	sb.WriteString(`
		SELECT id, account_id, name, subject, channel, sent_at,
			recipients, delivered, opens_unique, clicks_unique, conversion_uniques,
			revenue, bounced, unsubscribes, spam_complaints, tag_names
		FROM campaign_performance FINAL`)
	if len(where) > 0 {
		sb.WriteString("\n\t\tWHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	sb.WriteString("\n\t\tORDER BY sent_at, id")

	return sb.String(), args
}

// deref devolve nil para colunas Nullable para que o normalizador trate como zero
func deref[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}
