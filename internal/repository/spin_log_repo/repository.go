package spin_log_repo

import (
	"context"
	"fmt"
	"reward_wheel/internal/model"
	"reward_wheel/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table         = "spin_log"
	colID         = "id"
	colAccountID  = "account_id"
	colLabel      = "label"
	colCoinsWon   = "coins_won"
	colCreditType = "credit_type"
	colCreatedAt  = "created_at"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewSpinLogRepository(dbc *pgxpool.Pool) repository.SpinLogRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// conn - транзакция из контекста, если она открыта, иначе пул
func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// AppendSpinLog - добавляет запись аудита спина. Записи не изменяются и не удаляются
func (r *repo) AppendSpinLog(ctx context.Context, entry *model.SpinLogEntry) error {
	query := psql.Insert(table).
		Columns(colAccountID, colLabel, colCoinsWon, colCreditType, colCreatedAt).
		Values(entry.AccountID, entry.Label, entry.Coins, string(entry.CreditType), entry.CreatedAt).
		Suffix("RETURNING " + colID)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("append spin log: %w", err)
	}

	return nil
}

// RecentSpinLog - последние спины аккаунта, новые первыми
func (r *repo) RecentSpinLog(ctx context.Context, accountID int, limit int) ([]model.SpinLogEntry, error) {
	query := psql.Select(colID, colAccountID, colLabel, colCoinsWon, colCreditType, colCreatedAt).
		From(table).
		Where(sq.Eq{colAccountID: accountID}).
		OrderBy(colID + " DESC").
		Limit(uint64(limit))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("recent spin log: %w", err)
	}
	defer rows.Close()

	entries := make([]model.SpinLogEntry, 0, limit)
	for rows.Next() {
		var (
			e          model.SpinLogEntry
			creditType string
		)
		if err := rows.Scan(&e.ID, &e.AccountID, &e.Label, &e.Coins, &creditType, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.CreditType = model.CreditType(creditType)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
