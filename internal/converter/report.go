package converter

import (
	"reward_wheel/internal/api/dto/report"
	"reward_wheel/internal/model"
)

func ToLeaderboard(entries []model.LeaderboardEntry) []report.LeaderboardEntry {
	result := make([]report.LeaderboardEntry, len(entries))
	for i, e := range entries {
		result[i] = report.LeaderboardEntry{
			Username: e.Username,
			Coins:    e.Coins,
			Streak:   e.Streak,
		}
	}
	return result
}

func ToPrizes(chances []model.PrizeChance) []report.PrizeResponse {
	result := make([]report.PrizeResponse, len(chances))
	for i, c := range chances {
		result[i] = report.PrizeResponse{
			Label:  c.Prize.Label,
			Coins:  c.Prize.Coins,
			Chance: c.Chance,
		}
	}
	return result
}

func ToStatsResponse(s *model.Stats) report.StatsResponse {
	return report.StatsResponse{
		Accounts:  s.Accounts,
		Spins:     s.Spins,
		CoinsWon:  s.CoinsWon,
		Referrals: s.Referrals,
		Top:       ToLeaderboard(s.Top),
	}
}
