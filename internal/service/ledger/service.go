package ledger

import (
	"errors"
	"reward_wheel/internal/config"
	"reward_wheel/internal/repository"
	"reward_wheel/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/jonboulle/clockwork"
)

// Сколько раз повторяем операцию, если условное обновление не применилось
const maxAttempts = 5

// errConflict - строка изменилась между чтением и условным обновлением
var errConflict = errors.New("account row changed")

type serv struct {
	accountRepo repository.AccountRepository
	spinLogRepo repository.SpinLogRepository
	prizes      service.PrizeTable
	streak      service.StreakPolicy
	economy     config.EconomyConfig
	txManager   trm.Manager
	clock       clockwork.Clock
}

// NewLedgerService - владелец состояния баланса аккаунтов
func NewLedgerService(
	accountRepo repository.AccountRepository,
	spinLogRepo repository.SpinLogRepository,
	prizes service.PrizeTable,
	streak service.StreakPolicy,
	economy config.EconomyConfig,
	txManager trm.Manager,
	clock clockwork.Clock,
) service.LedgerService {
	return &serv{
		accountRepo: accountRepo,
		spinLogRepo: spinLogRepo,
		prizes:      prizes,
		streak:      streak,
		economy:     economy,
		txManager:   txManager,
		clock:       clock,
	}
}
