package service

import (
	"context"
	"reward_wheel/internal/model"
)

// PrizeTable - взвешенная призовая таблица колеса
type PrizeTable interface {
	Draw() model.PrizeOutcome
	Chances() []model.PrizeChance
}

// StreakPolicy - бонусные спины за серию дней подряд
type StreakPolicy interface {
	BonusFor(streakDay int) int
}

// LedgerService - все изменения баланса аккаунта
type LedgerService interface {
	DailyReset(ctx context.Context, accountID int) (*model.Account, error)
	SettleSpin(ctx context.Context, accountID int) (*model.SpinResult, error)
	GrantRewardedSpin(ctx context.Context, accountID int) (*model.Balances, error)
	GrantBonusSpins(ctx context.Context, accountID int, n int) (*model.Balances, error)
}

type ReferralService interface {
	ResolveInviter(ctx context.Context, code string) (*model.Account, error)
	RegisterReferral(ctx context.Context, inviterID, inviteeID int) error
	CheckAndRewardReferral(ctx context.Context, inviteeID int) (rewarded bool, err error)
}

type SpinService interface {
	Spin(ctx context.Context, accountID int) (*model.SpinResult, error)
	RewardedSpin(ctx context.Context, accountID int) (*model.Balances, error)
	Overview(ctx context.Context, accountID int) (*model.AccountOverview, error)
}

type AuthService interface {
	Register(ctx context.Context, username, password, referralCode string) (*model.AuthData, error)
	Login(ctx context.Context, username, password string) (*model.AuthData, error)
}

type CheckoutService interface {
	Packages() []model.SpinPackage
	Checkout(ctx context.Context, accountID int, packageKey string) (*model.CheckoutResult, error)
	Confirm(ctx context.Context, accountID int, packageKey string) (*model.Balances, error)
}

type ReportService interface {
	Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error)
	Stats(ctx context.Context) (*model.Stats, error)
	Prizes() []model.PrizeChance
}
