package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/vfg2006/campaign-insights-api/internal/config"
)

// NewConnection abre e valida uma conexão nativa com o ClickHouse
func NewConnection(ctx context.Context, cfg config.ClickHouse) (driver.Conn, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: cfg.Addr,
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		DialTimeout: cfg.Timeout(),
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("erro ao conectar no ClickHouse: %w", err)
	}

	return conn, nil
}

// EnsureSchema cria a tabela de registros de performance se ainda não existir
func EnsureSchema(ctx context.Context, conn driver.Conn) error {
	return conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS campaign_performance (
			id String,
			account_id String,
			name String,
			subject String,
			channel LowCardinality(String),
			sent_at DateTime64(3, 'UTC'),
			recipients Nullable(Float64),
			delivered Nullable(Float64),
			opens_unique Nullable(Float64),
			clicks_unique Nullable(Float64),
			conversion_uniques Nullable(Float64),
			revenue Nullable(Decimal(18, 2)),
			bounced Nullable(Float64),
			unsubscribes Nullable(Float64),
			spam_complaints Nullable(Float64),
			tag_names Array(String)
		) ENGINE = ReplacingMergeTree()
		ORDER BY (account_id, sent_at, id)
	`)
}
