package ledger

import (
	"context"
	"errors"
	"log"
	"reward_wheel/internal/model"
)

// SettleSpin - списание спина, выигрыш и запись в лог одной транзакцией.
// Бонусные спины тратятся раньше бесплатных
func (s *serv) SettleSpin(ctx context.Context, accountID int) (*model.SpinResult, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		var res *model.SpinResult

		err := s.txManager.Do(ctx, func(txCtx context.Context) error {
			account, err := s.accountRepo.GetAccount(txCtx, accountID)
			if err != nil {
				return err
			}

			if account.AvailableSpins() <= 0 {
				return model.ErrInsufficientCredits
			}

			prize := s.prizes.Draw()

			credit := model.CreditFree
			if account.BonusSpins > 0 {
				credit = model.CreditBonus
			}

			updated, applied, err := s.accountRepo.ConsumeSpin(txCtx, accountID, credit, prize.Coins)
			if err != nil {
				return err
			}
			if !applied {
				return errConflict
			}

			err = s.spinLogRepo.AppendSpinLog(txCtx, &model.SpinLogEntry{
				AccountID:  accountID,
				Label:      prize.Label,
				Coins:      prize.Coins,
				CreditType: credit,
				CreatedAt:  s.clock.Now(),
			})
			if err != nil {
				return err
			}

			res = &model.SpinResult{
				Prize:      prize,
				CreditType: credit,
				Balances:   updated.Balances(),
			}

			return nil
		})
		if errors.Is(err, errConflict) {
			log.Printf("spin settlement conflict for account %d, attempt %d", accountID, attempt+1)
			continue
		}
		if err != nil {
			return nil, err
		}

		return res, nil
	}

	return nil, model.ErrConcurrentUpdate
}
