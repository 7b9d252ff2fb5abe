package ledger

import (
	"context"
	"reward_wheel/internal/model"
)

// GrantRewardedSpin - +1 бесплатный спин за просмотр рекламы, не больше лимита в день
func (s *serv) GrantRewardedSpin(ctx context.Context, accountID int) (*model.Balances, error) {
	limit := s.economy.MaxRewardedPerDay()

	for attempt := 0; attempt < maxAttempts; attempt++ {
		account, err := s.accountRepo.GetAccount(ctx, accountID)
		if err != nil {
			return nil, err
		}
		if account.RewardedToday >= limit {
			return nil, model.ErrDailyLimitReached
		}

		updated, applied, err := s.accountRepo.GrantRewardedSpin(ctx, accountID, limit)
		if err != nil {
			return nil, err
		}
		if applied {
			balances := updated.Balances()
			return &balances, nil
		}
	}

	return nil, model.ErrConcurrentUpdate
}

// GrantBonusSpins - начисление бонусных спинов после покупки или по рефералу
func (s *serv) GrantBonusSpins(ctx context.Context, accountID int, n int) (*model.Balances, error) {
	if n < 0 {
		return nil, model.ErrInvalidAmount
	}

	updated, err := s.accountRepo.AddBonusSpins(ctx, accountID, n)
	if err != nil {
		return nil, err
	}

	balances := updated.Balances()
	return &balances, nil
}
