package report

import (
	"context"
	"reward_wheel/internal/model"
	"reward_wheel/internal/repository"
	"reward_wheel/internal/service"
)

const (
	leaderboardSize = 10
	statsTopSize    = 5
)

type serv struct {
	accountRepo repository.AccountRepository
	statsRepo   repository.StatsRepository
	prizes      service.PrizeTable
}

func NewReportService(accountRepo repository.AccountRepository, statsRepo repository.StatsRepository, prizes service.PrizeTable) service.ReportService {
	return &serv{
		accountRepo: accountRepo,
		statsRepo:   statsRepo,
		prizes:      prizes,
	}
}

// Leaderboard - топ аккаунтов по монетам
func (s *serv) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	return s.accountRepo.TopByCoins(ctx, leaderboardSize)
}

func (s *serv) Stats(ctx context.Context) (*model.Stats, error) {
	return s.statsRepo.Stats(ctx, statsTopSize)
}

// Prizes - каталог призов с шансами в процентах
func (s *serv) Prizes() []model.PrizeChance {
	return s.prizes.Chances()
}
