package converter

import (
	"reward_wheel/internal/api/dto/spin"
	"reward_wheel/internal/model"
	"time"
)

func ToBalances(b model.Balances) spin.Balances {
	return spin.Balances{
		Coins:         b.Coins,
		FreeSpins:     b.FreeSpins,
		BonusSpins:    b.BonusSpins,
		RewardedToday: b.RewardedToday,
		Streak:        b.Streak,
	}
}

func ToSpinResponse(res *model.SpinResult) spin.SpinResponse {
	return spin.SpinResponse{
		Label:      res.Prize.Label,
		CoinsWon:   res.Prize.Coins,
		CreditType: string(res.CreditType),
		Balances:   ToBalances(res.Balances),
	}
}

func ToAccountResponse(o *model.AccountOverview) spin.AccountResponse {
	return spin.AccountResponse{
		Username:         o.Account.Username,
		Balances:         ToBalances(o.Account.Balances()),
		StreakBonus:      o.StreakBonus,
		ReferralCode:     o.Account.ReferralCode,
		ReferralLink:     o.ReferralLink,
		ReferralCount:    o.ReferralCount,
		ReferralRewarded: o.ReferralRewarded,
		History:          toHistory(o.History),
	}
}

func toHistory(entries []model.SpinLogEntry) []spin.HistoryEntry {
	result := make([]spin.HistoryEntry, len(entries))
	for i, e := range entries {
		result[i] = spin.HistoryEntry{
			Label:      e.Label,
			CoinsWon:   e.Coins,
			CreditType: string(e.CreditType),
			CreatedAt:  e.CreatedAt.UTC().Format(time.RFC3339),
		}
	}
	return result
}
