package repository

import (
	"context"
	"errors"
	"reward_wheel/internal/model"
	"time"
)

var (
	// ErrReferralCodeTaken - сгенерированный реферальный код уже занят, нужно сгенерировать новый
	ErrReferralCodeTaken = errors.New("referral code already taken")
	ErrReferralNotFound  = errors.New("referral not found")
)

// AccountRepository - строка аккаунта является единственным источником правды о балансе.
// Все изменяющие методы - атомарные условные UPDATE: applied=false означает,
// что предусловие не выполнилось и строка не изменилась
type AccountRepository interface {
	CreateAccount(ctx context.Context, account *model.Account) (id int, err error)
	GetAccount(ctx context.Context, id int) (*model.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*model.Account, error)
	GetAccountByReferralCode(ctx context.Context, code string) (*model.Account, error)

	ApplyDailyReset(ctx context.Context, id int, prevDate *time.Time, reset model.DailyReset) (account *model.Account, applied bool, err error)
	ConsumeSpin(ctx context.Context, id int, credit model.CreditType, coins int64) (account *model.Account, applied bool, err error)
	GrantRewardedSpin(ctx context.Context, id int, maxPerDay int) (account *model.Account, applied bool, err error)
	AddBonusSpins(ctx context.Context, id int, n int) (*model.Account, error)

	SetReferredBy(ctx context.Context, inviteeID, inviterID int) (applied bool, err error)
	LatchReferralReward(ctx context.Context, inviteeID int) (inviterID int, applied bool, err error)

	TopByCoins(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
}

type SpinLogRepository interface {
	AppendSpinLog(ctx context.Context, entry *model.SpinLogEntry) error
	RecentSpinLog(ctx context.Context, accountID int, limit int) ([]model.SpinLogEntry, error)
}

type ReferralRepository interface {
	CreateReferral(ctx context.Context, referral *model.Referral) error
	GetReferral(ctx context.Context, inviterID, inviteeID int) (*model.Referral, error)
	MarkReferralRewarded(ctx context.Context, inviterID, inviteeID int) error
	CountReferrals(ctx context.Context, inviterID int) (total int, rewarded int, err error)
}

// StatsRepository - только чтение, для отчетов
type StatsRepository interface {
	Stats(ctx context.Context, top int) (*model.Stats, error)
}
