package spin

import (
	"reward_wheel/internal/config"
	"reward_wheel/internal/repository"
	"reward_wheel/internal/service"
)

// Сколько последних спинов показываем в обзоре аккаунта
const historyLimit = 15

type serv struct {
	ledger       service.LedgerService
	referral     service.ReferralService
	streak       service.StreakPolicy
	spinLogRepo  repository.SpinLogRepository
	referralRepo repository.ReferralRepository
	httpCfg      config.HTTPConfig
}

func NewSpinService(
	ledger service.LedgerService,
	referral service.ReferralService,
	streak service.StreakPolicy,
	spinLogRepo repository.SpinLogRepository,
	referralRepo repository.ReferralRepository,
	httpCfg config.HTTPConfig,
) service.SpinService {
	return &serv{
		ledger:       ledger,
		referral:     referral,
		streak:       streak,
		spinLogRepo:  spinLogRepo,
		referralRepo: referralRepo,
		httpCfg:      httpCfg,
	}
}
