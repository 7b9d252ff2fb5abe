package spin

import (
	"context"
	"log"
	"reward_wheel/internal/model"
)

// Spin - сброс дня, списание спина с выигрышем, затем проверка реферала
func (s *serv) Spin(ctx context.Context, accountID int) (*model.SpinResult, error) {
	// 1. Ежедневный сброс
	if _, err := s.ledger.DailyReset(ctx, accountID); err != nil {
		return nil, err
	}

	// 2. Розыгрыш и списание одной транзакцией
	result, err := s.ledger.SettleSpin(ctx, accountID)
	if err != nil {
		return nil, err
	}

	// 3. Спин уже зафиксирован, ошибка реферала не отменяет его.
	// Защелка не сработала - следующий спин попробует снова
	if _, err := s.referral.CheckAndRewardReferral(ctx, accountID); err != nil {
		log.Printf("referral check for account %d failed: %v", accountID, err)
	}

	return result, nil
}

// RewardedSpin - +1 спин за просмотр рекламы
func (s *serv) RewardedSpin(ctx context.Context, accountID int) (*model.Balances, error) {
	if _, err := s.ledger.DailyReset(ctx, accountID); err != nil {
		return nil, err
	}

	return s.ledger.GrantRewardedSpin(ctx, accountID)
}
