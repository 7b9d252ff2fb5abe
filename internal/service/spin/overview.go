package spin

import (
	"context"
	"net/url"
	"reward_wheel/internal/model"
	"strings"
)

// Overview - баланс, серия, реферальная ссылка и история спинов
func (s *serv) Overview(ctx context.Context, accountID int) (*model.AccountOverview, error) {
	account, err := s.ledger.DailyReset(ctx, accountID)
	if err != nil {
		return nil, err
	}

	history, err := s.spinLogRepo.RecentSpinLog(ctx, accountID, historyLimit)
	if err != nil {
		return nil, err
	}

	total, rewarded, err := s.referralRepo.CountReferrals(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &model.AccountOverview{
		Account:          account,
		StreakBonus:      s.streak.BonusFor(account.Streak),
		ReferralLink:     referralLink(s.httpCfg.PublicURL(), account.ReferralCode),
		ReferralCount:    total,
		ReferralRewarded: rewarded,
		History:          history,
	}, nil
}

func referralLink(publicURL, code string) string {
	return strings.TrimRight(publicURL, "/") + "/register?ref=" + url.QueryEscape(code)
}
