package ledger

import (
	"context"
	"log"
	"reward_wheel/internal/model"
	"reward_wheel/internal/service"
	"time"
)

// NextDay вычисляет сброс дня для аккаунта.
// false - сегодня сброс уже был, ничего менять не нужно
func NextDay(account *model.Account, today time.Time, policy service.StreakPolicy, freeSpinsPerDay int) (model.DailyReset, bool) {
	today = model.DateOf(today)
	if model.SameDate(account.LastSpinDate, today) {
		return model.DailyReset{}, false
	}

	// Вчера был сброс - серия продолжается, иначе начинается заново
	streak := 1
	if model.SameDate(account.LastSpinDate, today.AddDate(0, 0, -1)) {
		streak = max(account.Streak, 1) + 1
	}

	return model.DailyReset{
		Today:         today,
		Streak:        streak,
		Bonus:         policy.BonusFor(streak),
		FreeSpinsBase: freeSpinsPerDay,
	}, true
}

// DailyReset - ежедневное восстановление бесплатных спинов и учет серии.
// Условие обновления содержит прочитанную дату, поэтому два конкурентных
// запроса не применят сброс дважды
func (s *serv) DailyReset(ctx context.Context, accountID int) (*model.Account, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		account, err := s.accountRepo.GetAccount(ctx, accountID)
		if err != nil {
			return nil, err
		}

		reset, ok := NextDay(account, s.clock.Now(), s.streak, s.economy.FreeSpinsPerDay())
		if !ok {
			return account, nil
		}

		updated, applied, err := s.accountRepo.ApplyDailyReset(ctx, accountID, account.LastSpinDate, reset)
		if err != nil {
			return nil, err
		}
		if applied {
			return updated, nil
		}

		// Другой запрос уже сделал сброс, перечитываем
		log.Printf("daily reset conflict for account %d, attempt %d", accountID, attempt+1)
	}

	return nil, model.ErrConcurrentUpdate
}
