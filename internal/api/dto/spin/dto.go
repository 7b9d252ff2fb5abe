package spin

type Balances struct {
	Coins         int64 `json:"coins"`
	FreeSpins     int   `json:"free_spins"`
	BonusSpins    int   `json:"bonus_spins"`
	RewardedToday int   `json:"rewarded_today"`
	Streak        int   `json:"streak"`
}

type SpinResponse struct {
	Label      string   `json:"label"`       // Подпись сектора колеса
	CoinsWon   int64    `json:"coins_won"`   // Выигрыш
	CreditType string   `json:"credit_type"` // free или bonus
	Balances   Balances `json:"balances"`
}

type RewardedSpinResponse struct {
	Balances Balances `json:"balances"`
}

type HistoryEntry struct {
	Label      string `json:"label"`
	CoinsWon   int64  `json:"coins_won"`
	CreditType string `json:"credit_type"`
	CreatedAt  string `json:"created_at"` // RFC 3339
}

type AccountResponse struct {
	Username         string         `json:"username"`
	Balances         Balances       `json:"balances"`
	StreakBonus      int            `json:"streak_bonus"` // Бонус за текущий день серии
	ReferralCode     string         `json:"referral_code"`
	ReferralLink     string         `json:"referral_link"`
	ReferralCount    int            `json:"referral_count"`
	ReferralRewarded int            `json:"referral_rewarded"`
	History          []HistoryEntry `json:"history"`
}
