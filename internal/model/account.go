package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Account - игровой аккаунт пользователя вместе с состоянием экономики
type Account struct {
	ID           int
	Username     string
	PasswordHash string

	Coins         int64
	FreeSpins     int // восстанавливаются ежедневно
	BonusSpins    int // реферал, покупка; не сгорают
	RewardedToday int // сколько спинов за рекламу получено сегодня
	Streak        int
	LastSpinDate  *time.Time

	ReferralCode     string
	ReferredBy       *int
	ReferralRewarded bool

	CreatedAt time.Time
}

// Balances - снимок счетчиков аккаунта
type Balances struct {
	Coins         int64
	FreeSpins     int
	BonusSpins    int
	RewardedToday int
	Streak        int
}

func (a *Account) Balances() Balances {
	return Balances{
		Coins:         a.Coins,
		FreeSpins:     a.FreeSpins,
		BonusSpins:    a.BonusSpins,
		RewardedToday: a.RewardedToday,
		Streak:        a.Streak,
	}
}

// AvailableSpins - сумма бесплатных и бонусных спинов
func (a *Account) AvailableSpins() int {
	return a.FreeSpins + a.BonusSpins
}

type AccountClaims struct {
	jwt.RegisteredClaims
}

// AuthData - результат регистрации или входа
type AuthData struct {
	AccessToken string
	Account     *Account
	// ReferralWarning заполняется, если реферальный код не найден,
	// при этом регистрация проходит успешно
	ReferralWarning error
}

type LeaderboardEntry struct {
	Username string
	Coins    int64
	Streak   int
}

// AccountOverview - данные для главной страницы пользователя
type AccountOverview struct {
	Account          *Account
	StreakBonus      int
	ReferralLink     string
	ReferralCount    int
	ReferralRewarded int
	History          []SpinLogEntry
}
