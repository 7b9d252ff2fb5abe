package memory

import (
	"context"
	"reward_wheel/internal/model"
	"reward_wheel/internal/repository"
)

type statsRepo struct {
	s        *Store
	accounts repository.AccountRepository
}

func NewStatsRepository(s *Store) repository.StatsRepository {
	return &statsRepo{s: s, accounts: NewAccountRepository(s)}
}

func (r *statsRepo) Stats(ctx context.Context, top int) (*model.Stats, error) {
	r.s.mu.Lock()
	stats := model.Stats{
		Accounts:  len(r.s.accounts),
		Spins:     r.s.spinsTotal,
		CoinsWon:  r.s.coinsWon,
		Referrals: len(r.s.referrals),
	}
	r.s.mu.Unlock()

	leaders, err := r.accounts.TopByCoins(ctx, top)
	if err != nil {
		return nil, err
	}
	stats.Top = leaders

	return &stats, nil
}
