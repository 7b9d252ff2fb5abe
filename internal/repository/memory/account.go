package memory

import (
	"context"
	"reward_wheel/internal/model"
	"reward_wheel/internal/repository"
	"sort"
	"sync"
	"time"
)

type accountRepo struct {
	s *Store
}

func NewAccountRepository(s *Store) repository.AccountRepository {
	return &accountRepo{s: s}
}

func (r *accountRepo) CreateAccount(ctx context.Context, account *model.Account) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.byUsername[account.Username]; ok {
		return 0, model.ErrDuplicateUsername
	}
	if _, ok := r.s.byCode[account.ReferralCode]; ok {
		return 0, repository.ErrReferralCodeTaken
	}

	r.s.nextAccountID++
	account.ID = r.s.nextAccountID
	account.CreatedAt = r.s.clock.Now()

	// В транзакции строка создается захваченной и до завершения не видна
	m := &sync.Mutex{}
	r.s.rows[account.ID] = m
	if t := txFrom(ctx); t != nil {
		m.Lock()
		t.hold(account.ID, m)
		t.createAccount(account.ID)
	}

	r.s.accounts[account.ID] = *account
	r.s.byUsername[account.Username] = account.ID
	r.s.byCode[account.ReferralCode] = account.ID

	return account.ID, nil
}

func (r *accountRepo) GetAccount(ctx context.Context, id int) (*model.Account, error) {
	a, ok := r.s.readRow(ctx, id)
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return &a, nil
}

func (r *accountRepo) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	return r.byIndex(ctx, func() (int, bool) {
		id, ok := r.s.byUsername[username]
		return id, ok
	})
}

func (r *accountRepo) GetAccountByReferralCode(ctx context.Context, code string) (*model.Account, error) {
	return r.byIndex(ctx, func() (int, bool) {
		id, ok := r.s.byCode[code]
		return id, ok
	})
}

// byIndex - поиск id по индексу под mu, затем чтение строки под ее блокировкой
func (r *accountRepo) byIndex(ctx context.Context, lookup func() (int, bool)) (*model.Account, error) {
	r.s.mu.Lock()
	id, ok := lookup()
	r.s.mu.Unlock()
	if !ok {
		return nil, model.ErrAccountNotFound
	}

	return r.GetAccount(ctx, id)
}

// update - условное изменение строки: pred проверяется и apply выполняется под одной блокировкой
func (r *accountRepo) update(ctx context.Context, id int, pred func(a *model.Account) bool, apply func(a *model.Account)) (*model.Account, bool) {
	unlock, ok := r.s.lockRow(ctx, id)
	defer unlock()
	if !ok {
		return nil, false
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[id]
	if !ok || !pred(&a) {
		return nil, false
	}

	if t := txFrom(ctx); t != nil {
		t.touchAccount(id, a)
	}
	apply(&a)
	r.s.accounts[id] = a

	return &a, true
}

func (r *accountRepo) ApplyDailyReset(ctx context.Context, id int, prevDate *time.Time, reset model.DailyReset) (*model.Account, bool, error) {
	account, applied := r.update(ctx, id,
		func(a *model.Account) bool {
			if a.LastSpinDate == nil || prevDate == nil {
				return a.LastSpinDate == nil && prevDate == nil
			}
			return model.DateOf(*a.LastSpinDate).Equal(model.DateOf(*prevDate))
		},
		func(a *model.Account) {
			today := model.DateOf(reset.Today)
			a.FreeSpins = max(a.FreeSpins, reset.FreeSpinsBase) + reset.Bonus
			a.RewardedToday = 0
			a.Streak = reset.Streak
			a.LastSpinDate = &today
		},
	)
	return account, applied, nil
}

func (r *accountRepo) ConsumeSpin(ctx context.Context, id int, credit model.CreditType, coins int64) (*model.Account, bool, error) {
	pool := func(a *model.Account) *int {
		if credit == model.CreditBonus {
			return &a.BonusSpins
		}
		return &a.FreeSpins
	}

	account, applied := r.update(ctx, id,
		func(a *model.Account) bool { return *pool(a) > 0 },
		func(a *model.Account) {
			*pool(a)--
			a.Coins += coins
		},
	)
	return account, applied, nil
}

func (r *accountRepo) GrantRewardedSpin(ctx context.Context, id int, maxPerDay int) (*model.Account, bool, error) {
	account, applied := r.update(ctx, id,
		func(a *model.Account) bool { return a.RewardedToday < maxPerDay },
		func(a *model.Account) {
			a.FreeSpins++
			a.RewardedToday++
		},
	)
	return account, applied, nil
}

func (r *accountRepo) AddBonusSpins(ctx context.Context, id int, n int) (*model.Account, error) {
	account, applied := r.update(ctx, id,
		func(*model.Account) bool { return true },
		func(a *model.Account) { a.BonusSpins += n },
	)
	if !applied {
		return nil, model.ErrAccountNotFound
	}
	return account, nil
}

func (r *accountRepo) SetReferredBy(ctx context.Context, inviteeID, inviterID int) (bool, error) {
	_, applied := r.update(ctx, inviteeID,
		func(a *model.Account) bool { return a.ReferredBy == nil && a.ID != inviterID },
		func(a *model.Account) {
			inviter := inviterID
			a.ReferredBy = &inviter
		},
	)
	return applied, nil
}

func (r *accountRepo) LatchReferralReward(ctx context.Context, inviteeID int) (int, bool, error) {
	account, applied := r.update(ctx, inviteeID,
		func(a *model.Account) bool { return a.ReferredBy != nil && !a.ReferralRewarded },
		func(a *model.Account) { a.ReferralRewarded = true },
	)
	if !applied {
		return 0, false, nil
	}
	return *account.ReferredBy, true, nil
}

// TopByCoins - отчетное чтение без блокировок строк
func (r *accountRepo) TopByCoins(_ context.Context, limit int) ([]model.LeaderboardEntry, error) {
	r.s.mu.Lock()
	accounts := make([]model.Account, 0, len(r.s.accounts))
	for _, a := range r.s.accounts {
		accounts = append(accounts, a)
	}
	r.s.mu.Unlock()

	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].Coins != accounts[j].Coins {
			return accounts[i].Coins > accounts[j].Coins
		}
		return accounts[i].ID < accounts[j].ID
	})

	if len(accounts) > limit {
		accounts = accounts[:limit]
	}

	entries := make([]model.LeaderboardEntry, 0, len(accounts))
	for _, a := range accounts {
		entries = append(entries, model.LeaderboardEntry{Username: a.Username, Coins: a.Coins, Streak: a.Streak})
	}
	return entries, nil
}
