package config

import (
	"reward_wheel/internal/model"
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

// EconomyConfig - правила начисления спинов, призовая таблица и пакеты
type EconomyConfig interface {
	FreeSpinsPerDay() int
	MaxRewardedPerDay() int
	ReferralRewardInvitee() int
	ReferralRewardInviter() int
	StreakRewards() map[int]int
	StreakMaxBonus() int
	Prizes() []model.PrizeOutcome
	Packages() []model.SpinPackage
}

type HTTPConfig interface {
	Address() string
	PublicURL() string
}

type StorageConfig interface {
	Driver() string
}

type PGConfig interface {
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
}

type PaymentConfig interface {
	ProviderAvailable() bool
	CheckoutURL() string
	WebhookSecret() string
}

type ReportConfig interface {
	Interval() time.Duration
}
