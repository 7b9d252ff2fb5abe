package auth

import (
	"reward_wheel/internal/config"
	"reward_wheel/internal/repository"
	"reward_wheel/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/jonboulle/clockwork"
)

// Сколько раз генерируем новый реферальный код при коллизии
const referralCodeAttempts = 5

type serv struct {
	txManager   trm.Manager
	accountRepo repository.AccountRepository
	referral    service.ReferralService
	economy     config.EconomyConfig
	jwtConfig   config.JWTConfig
	clock       clockwork.Clock
}

func NewAuthService(
	txManager trm.Manager,
	accountRepo repository.AccountRepository,
	referral service.ReferralService,
	economy config.EconomyConfig,
	jwtConfig config.JWTConfig,
	clock clockwork.Clock,
) service.AuthService {
	return &serv{
		txManager:   txManager,
		accountRepo: accountRepo,
		referral:    referral,
		economy:     economy,
		jwtConfig:   jwtConfig,
		clock:       clock,
	}
}
