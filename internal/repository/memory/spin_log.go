package memory

import (
	"context"
	"reward_wheel/internal/model"
	"reward_wheel/internal/repository"
)

type spinLogRepo struct {
	s *Store
}

func NewSpinLogRepository(s *Store) repository.SpinLogRepository {
	return &spinLogRepo{s: s}
}

func (r *spinLogRepo) AppendSpinLog(ctx context.Context, entry *model.SpinLogEntry) error {
	unlock, ok := r.s.lockRow(ctx, entry.AccountID)
	defer unlock()
	if !ok {
		return model.ErrAccountNotFound
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextSpinID++
	entry.ID = r.s.nextSpinID
	r.s.spinLog[entry.AccountID] = append(r.s.spinLog[entry.AccountID], *entry)
	r.s.spinsTotal++
	r.s.coinsWon += entry.Coins

	if t := txFrom(ctx); t != nil {
		t.appendSpin(*entry)
	}

	return nil
}

func (r *spinLogRepo) RecentSpinLog(ctx context.Context, accountID int, limit int) ([]model.SpinLogEntry, error) {
	unlock, _ := r.s.lockRow(ctx, accountID)
	defer unlock()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	log := r.s.spinLog[accountID]
	entries := make([]model.SpinLogEntry, 0, min(limit, len(log)))
	for i := len(log) - 1; i >= 0 && len(entries) < limit; i-- {
		entries = append(entries, log[i])
	}

	return entries, nil
}
