package report

type LeaderboardEntry struct {
	Username string `json:"username"`
	Coins    int64  `json:"coins"`
	Streak   int    `json:"streak"`
}

type PrizeResponse struct {
	Label  string  `json:"label"`
	Coins  int64   `json:"coins"`
	Chance float64 `json:"chance"` // В процентах
}

type StatsResponse struct {
	Accounts  int                `json:"accounts"`
	Spins     int                `json:"spins"`
	CoinsWon  int64              `json:"coins_won"`
	Referrals int                `json:"referrals"`
	Top       []LeaderboardEntry `json:"top"`
}
