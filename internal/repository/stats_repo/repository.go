package stats_repo

import (
	"context"
	"fmt"
	"reward_wheel/internal/model"
	"reward_wheel/internal/repository"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type repo struct {
	dbc      *pgxpool.Pool
	accounts repository.AccountRepository
}

// NewStatsRepository - агрегаты только на чтение, вне транзакций
func NewStatsRepository(dbc *pgxpool.Pool, accounts repository.AccountRepository) repository.StatsRepository {
	return &repo{
		dbc:      dbc,
		accounts: accounts,
	}
}

func (r *repo) Stats(ctx context.Context, top int) (*model.Stats, error) {
	var stats model.Stats

	counters := []struct {
		query sq.SelectBuilder
		dest  any
	}{
		{psql.Select("COUNT(*)").From("accounts"), &stats.Accounts},
		{psql.Select("COUNT(*)").From("spin_log"), &stats.Spins},
		{psql.Select("COALESCE(SUM(coins_won), 0)::bigint").From("spin_log"), &stats.CoinsWon},
		{psql.Select("COUNT(*)").From("referrals"), &stats.Referrals},
	}

	for _, c := range counters {
		sqlStr, args, err := c.query.ToSql()
		if err != nil {
			return nil, err
		}
		if err := r.dbc.QueryRow(ctx, sqlStr, args...).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}

	leaders, err := r.accounts.TopByCoins(ctx, top)
	if err != nil {
		return nil, err
	}
	stats.Top = leaders

	return &stats, nil
}
