package model

// Stats - агрегаты для админки и периодического отчета
type Stats struct {
	Accounts  int
	Spins     int
	CoinsWon  int64
	Referrals int
	Top       []LeaderboardEntry
}
