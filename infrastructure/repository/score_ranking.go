package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/campaign-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-insights-api/internal/domain"
)

const (
	scoreRankingTable = "score_ranking sr"
)

var scoreRankingColumns = []string{
	"sr.id",
	"sr.run_id",
	"sr.account_id",
	"sr.month",
	"sr.formula",
	"sr.account_name",
	"sr.score",
	"sr.revenue",
	"sr.recipients",
	"sr.campaigns",
	"sr.position",
	"sr.position_change",
	"sr.previous_position",
	"sr.created_at",
	"sr.updated_at",
}

type ScoreRankingRepository interface {
	GetByAccountID(ctx context.Context, accountID, month string, formula domain.FormulaID) (*domain.ScoreRankingItem, error)
	GetScoreRanking(ctx context.Context, month string, formula domain.FormulaID) (*domain.ScoreRankingResponse, error)
	SaveOrUpdateScoreRanking(ctx context.Context, rankings []*domain.ScoreRankingItem) error
}

type scoreRankingRepository struct {
	conn postgres.Conn
}

func NewScoreRankingRepository(conn postgres.Conn) ScoreRankingRepository {
	return &scoreRankingRepository{
		conn: conn,
	}
}

// GetScoreRanking devolve o ranking do mês (mm-yyyy) ordenado pela posição
func (r *scoreRankingRepository) GetScoreRanking(ctx context.Context, month string, formula domain.FormulaID) (*domain.ScoreRankingResponse, error) {
	sqlQuery, args, err := squirrel.
		Select(scoreRankingColumns...).
		From(scoreRankingTable).
		Where(squirrel.Eq{"sr.month": month, "sr.formula": string(formula)}).
		OrderBy("sr.position ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	rankings := make([]domain.ScoreRankingItem, 0)
	var lastUpdate time.Time

	for rows.Next() {
		item, err := scanScoreRankingItem(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear item do ranking: %w", err)
		}

		rankings = append(rankings, *item)

		if item.UpdatedAt.After(lastUpdate) {
			lastUpdate = item.UpdatedAt
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	if lastUpdate.IsZero() {
		lastUpdate = time.Now()
	}

	return &domain.ScoreRankingResponse{
		Formula:    formula,
		Month:      month,
		Ranking:    rankings,
		LastUpdate: lastUpdate,
	}, nil
}

func (r *scoreRankingRepository) GetByAccountID(ctx context.Context, accountID, month string, formula domain.FormulaID) (*domain.ScoreRankingItem, error) {
	query, args, err := squirrel.
		Select(scoreRankingColumns...).
		From(scoreRankingTable).
		Where(squirrel.Eq{"sr.account_id": accountID, "sr.month": month, "sr.formula": string(formula)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	ranking, err := scanScoreRankingItem(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear ranking: %w", err)
	}
	return ranking, nil
}

func (r *scoreRankingRepository) SaveOrUpdateScoreRanking(ctx context.Context, rankings []*domain.ScoreRankingItem) error {
	if len(rankings) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert("score_ranking").
		Columns(
			"run_id",
			"account_id",
			"month",
			"formula",
			"account_name",
			"score",
			"revenue",
			"recipients",
			"campaigns",
			"position",
			"position_change",
			"previous_position",
		).
		PlaceholderFormat(squirrel.Dollar)

	for _, ranking := range rankings {
		query = query.Values(
			ranking.RunID,
			ranking.AccountID,
			ranking.Month,
			string(ranking.Formula),
			ranking.AccountName,
			ranking.Score,
			ranking.Revenue,
			ranking.Recipients,
			ranking.Campaigns,
			ranking.Position,
			ranking.PositionChange,
			ranking.PreviousPosition,
		)
	}

	query = query.Suffix(`
		ON CONFLICT (account_id, month, formula) DO UPDATE SET
			run_id = EXCLUDED.run_id,
			account_name = EXCLUDED.account_name,
			score = EXCLUDED.score,
			revenue = EXCLUDED.revenue,
			recipients = EXCLUDED.recipients,
			campaigns = EXCLUDED.campaigns,
			position = EXCLUDED.position,
			position_change = EXCLUDED.position_change,
			previous_position = EXCLUDED.previous_position,
			updated_at = CURRENT_TIMESTAMP
	`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	deleteQuery, deleteArgs, err := staleRankingsQuery(rankings)
	if err != nil {
		return fmt.Errorf("erro ao construir query de remoção: %w", err)
	}

	// Contas que saíram do ranking do mês são removidas junto com o upsert
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
			return fmt.Errorf("erro ao remover rankings antigos: %w", err)
		}
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("erro ao executar query de inserção: %w", err)
		}
		return nil
	})
}

// staleRankingsQuery remove as linhas do mês e fórmula do lote cujas contas não estão no lote
func staleRankingsQuery(rankings []*domain.ScoreRankingItem) (string, []any, error) {
	accountIDs := make([]string, 0, len(rankings))
	for _, ranking := range rankings {
		accountIDs = append(accountIDs, ranking.AccountID)
	}

	return squirrel.
		Delete("score_ranking").
		Where(squirrel.Eq{"month": rankings[0].Month, "formula": string(rankings[0].Formula)}).
		Where(squirrel.NotEq{"account_id": accountIDs}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScoreRankingItem(row rowScanner) (*domain.ScoreRankingItem, error) {
	item := &domain.ScoreRankingItem{}
	var formula string

	err := row.Scan(
		&item.ID,
		&item.RunID,
		&item.AccountID,
		&item.Month,
		&formula,
		&item.AccountName,
		&item.Score,
		&item.Revenue,
		&item.Recipients,
		&item.Campaigns,
		&item.Position,
		&item.PositionChange,
		&item.PreviousPosition,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Formula = domain.FormulaID(formula)

	return item, nil
}
