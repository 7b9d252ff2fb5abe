package referral

import (
	"context"
	"errors"
	"log"
	"reward_wheel/internal/config"
	"reward_wheel/internal/model"
	"reward_wheel/internal/repository"
	"reward_wheel/internal/service"
	"strings"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

type serv struct {
	accountRepo  repository.AccountRepository
	referralRepo repository.ReferralRepository
	ledger       service.LedgerService
	economy      config.EconomyConfig
	txManager    trm.Manager
}

func NewReferralService(
	accountRepo repository.AccountRepository,
	referralRepo repository.ReferralRepository,
	ledger service.LedgerService,
	economy config.EconomyConfig,
	txManager trm.Manager,
) service.ReferralService {
	return &serv{
		accountRepo:  accountRepo,
		referralRepo: referralRepo,
		ledger:       ledger,
		economy:      economy,
		txManager:    txManager,
	}
}

// NormalizeCode - коды хранятся в верхнем регистре
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ResolveInviter - владелец реферального кода
func (s *serv) ResolveInviter(ctx context.Context, code string) (*model.Account, error) {
	code = NormalizeCode(code)
	if len(code) == 0 {
		return nil, model.ErrInvalidReferralCode
	}

	inviter, err := s.accountRepo.GetAccountByReferralCode(ctx, code)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return nil, model.ErrInvalidReferralCode
		}
		return nil, err
	}

	return inviter, nil
}

// RegisterReferral - связь приглашенного с пригласившим. Приглашенный
// может быть привязан только один раз и не может пригласить сам себя
func (s *serv) RegisterReferral(ctx context.Context, inviterID, inviteeID int) error {
	if inviterID == inviteeID {
		return model.ErrInvalidReferralCode
	}

	return s.txManager.Do(ctx, func(ctx context.Context) error {
		applied, err := s.accountRepo.SetReferredBy(ctx, inviteeID, inviterID)
		if err != nil {
			return err
		}
		if !applied {
			return model.ErrInvalidReferralCode
		}

		return s.referralRepo.CreateReferral(ctx, &model.Referral{
			InviterID: inviterID,
			InviteeID: inviteeID,
		})
	})
}

// CheckAndRewardReferral - награда пригласившему после первого спина
// приглашенного. Флаг на строке приглашенного переключается ровно один раз,
// поэтому повторные и конкурентные вызовы ничего не начисляют
func (s *serv) CheckAndRewardReferral(ctx context.Context, inviteeID int) (bool, error) {
	var inviterID int

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var (
			applied bool
			err     error
		)

		inviterID, applied, err = s.accountRepo.LatchReferralReward(ctx, inviteeID)
		if err != nil {
			return err
		}
		if !applied {
			inviterID = 0
			return nil
		}

		_, err = s.ledger.GrantBonusSpins(ctx, inviterID, s.economy.ReferralRewardInviter())
		if err != nil {
			return err
		}

		return s.referralRepo.MarkReferralRewarded(ctx, inviterID, inviteeID)
	})
	if err != nil {
		return false, err
	}
	if inviterID == 0 {
		return false, nil
	}

	log.Printf("referral reward: account %d invited by %d, +%d bonus spins", inviteeID, inviterID, s.economy.ReferralRewardInviter())
	return true, nil
}
