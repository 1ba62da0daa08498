// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/vfg2006/campaign-insights-api/infrastructure/repository PerformanceRecordRepository,AccountRepository,ScoreRankingRepository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/campaign-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-insights-api/internal/domain"
)

const (
	campaignPerformanceTable = "campaign_performance cp"
)

var performanceColumns = []string{
	"cp.id",
	"cp.account_id",
	"cp.name",
	"cp.subject",
	"cp.channel",
	"cp.sent_at",
	"cp.recipients",
	"cp.delivered",
	"cp.opens_unique",
	"cp.clicks_unique",
	"cp.conversion_uniques",
	"cp.revenue",
	"cp.bounced",
	"cp.unsubscribes",
	"cp.spam_complaints",
	"cp.tag_names",
}

// PerformanceRecordRepository entrega os registros brutos de envio. A validação fica
// a cargo do normalizador, então valores ausentes chegam como nil.
type PerformanceRecordRepository interface {
	ListByPeriod(ctx context.Context, start, end time.Time, accountIDs []string) ([]domain.RawRecord, error)
}

type performanceRecordRepository struct {
	conn postgres.Queryer
}

func NewPerformanceRecordRepository(conn postgres.Queryer) PerformanceRecordRepository {
	return &performanceRecordRepository{
		conn: conn,
	}
}

// ListByPeriod busca os envios com sent_at em [start, end]. Um start zero não limita o início
// e um end zero não limita o fim.
func (r *performanceRecordRepository) ListByPeriod(ctx context.Context, start, end time.Time, accountIDs []string) ([]domain.RawRecord, error) {
	query, args, err := listByPeriodQuery(start, end, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make([]domain.RawRecord, 0)
	for rows.Next() {
		record, err := scanRawRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear registro de performance: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

func listByPeriodQuery(start, end time.Time, accountIDs []string) (string, []any, error) {
	builder := squirrel.
		Select(performanceColumns...).
		From(campaignPerformanceTable).
		OrderBy("cp.sent_at ASC", "cp.id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if !start.IsZero() {
		builder = builder.Where(squirrel.GtOrEq{"cp.sent_at": start})
	}
	if !end.IsZero() {
		builder = builder.Where(squirrel.LtOrEq{"cp.sent_at": end})
	}
	if len(accountIDs) > 0 {
		builder = builder.Where(squirrel.Eq{"cp.account_id": accountIDs})
	}

	return builder.ToSql()
}

func scanRawRecord(rows *sql.Rows) (domain.RawRecord, error) {
	var (
		record   domain.RawRecord
		subject  sql.NullString
		channel  sql.NullString
		sentAt   sql.NullTime
		revenue  sql.NullString
		counts   [8]sql.NullInt64
		tagNames pq.StringArray
	)

	err := rows.Scan(
		&record.ID,
		&record.AccountID,
		&record.Name,
		&subject,
		&channel,
		&sentAt,
		&counts[0],
		&counts[1],
		&counts[2],
		&counts[3],
		&counts[4],
		&revenue,
		&counts[5],
		&counts[6],
		&counts[7],
		&tagNames,
	)
	if err != nil {
		return record, err
	}

	record.Subject = subject.String
	record.Channel = channel.String
	if sentAt.Valid {
		record.SentAt = sentAt.Time
	}
	record.Recipients = nullInt(counts[0])
	record.Delivered = nullInt(counts[1])
	record.OpensUnique = nullInt(counts[2])
	record.ClicksUnique = nullInt(counts[3])
	record.ConversionUniques = nullInt(counts[4])
	// NUMERIC chega como texto para não perder precisão antes do decimal
	if revenue.Valid {
		record.Revenue = revenue.String
	}
	record.Bounced = nullInt(counts[5])
	record.Unsubscribes = nullInt(counts[6])
	record.SpamComplaints = nullInt(counts[7])
	record.TagNames = []string(tagNames)

	return record, nil
}

func nullInt(v sql.NullInt64) any {
	if !v.Valid {
		return nil
	}
	return v.Int64
}
