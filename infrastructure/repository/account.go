package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/campaign-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-insights-api/internal/domain"
)

const (
	accountsTable = "accounts a"
)

type AccountRepository interface {
	ListAccounts(ctx context.Context, availableStatus []domain.AccountStatus) ([]*domain.Account, error)
	ListAccountLabels(ctx context.Context) (map[string]string, error)
}

type accountRepository struct {
	conn postgres.Queryer
}

func NewAccountRepository(conn postgres.Queryer) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

func (a *accountRepository) ListAccounts(ctx context.Context, availableStatus []domain.AccountStatus) ([]*domain.Account, error) {
	queryBuilder := squirrel.
		Select("a.id, a.name, a.nickname, a.status").
		From(accountsTable).
		OrderBy("a.id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(availableStatus) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"a.status": availableStatus})
	}

	accountsSQL, accountsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := a.conn.QueryContext(ctx, accountsSQL, accountsArgs...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		acc := &domain.Account{}
		if err := rows.Scan(
			&acc.ID,
			&acc.Name,
			&acc.Nickname,
			&acc.Status,
		); err != nil {
			return nil, fmt.Errorf("erro ao deserializar a conta: %w", err)
		}

		accounts = append(accounts, acc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return accounts, nil
}

// ListAccountLabels devolve id -> nome exibido de todas as contas
func (a *accountRepository) ListAccountLabels(ctx context.Context) (map[string]string, error) {
	accounts, err := a.ListAccounts(ctx, nil)
	if err != nil {
		return nil, err
	}

	labels := make(map[string]string, len(accounts))
	for _, acc := range accounts {
		labels[acc.ID] = acc.Label()
	}

	return labels, nil
}
