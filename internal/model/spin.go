package model

import "time"

// CreditType - из какого пула списан спин
type CreditType string

const (
	CreditFree  CreditType = "free"
	CreditBonus CreditType = "bonus"
)

// PrizeOutcome - элемент призовой таблицы колеса
type PrizeOutcome struct {
	Label  string `yaml:"label"`
	Coins  int64  `yaml:"coins"`
	Weight int    `yaml:"weight"`
}

// SpinLogEntry - запись аудита по каждому проведенному спину
type SpinLogEntry struct {
	ID         int
	AccountID  int
	Label      string
	Coins      int64
	CreditType CreditType
	CreatedAt  time.Time
}

type SpinResult struct {
	Prize      PrizeOutcome
	CreditType CreditType
	Balances   Balances
}

// DailyReset - новое состояние дня, которое ledger применяет к аккаунту
type DailyReset struct {
	Today         time.Time
	Streak        int
	Bonus         int
	FreeSpinsBase int
}

// PrizeChance - приз и его вероятность в процентах
type PrizeChance struct {
	Prize  PrizeOutcome
	Chance float64
}
