package memory

import (
	"context"
	"fmt"
	"reward_wheel/internal/model"
	"reward_wheel/internal/repository"
)

// referralRepo - приглашения ключуются по приглашенному, строка блокируется вместе с его аккаунтом
type referralRepo struct {
	s *Store
}

func NewReferralRepository(s *Store) repository.ReferralRepository {
	return &referralRepo{s: s}
}

func (r *referralRepo) CreateReferral(ctx context.Context, referral *model.Referral) error {
	unlock, ok := r.s.lockRow(ctx, referral.InviteeID)
	defer unlock()
	if !ok {
		return model.ErrAccountNotFound
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.referrals[referral.InviteeID]; ok {
		return fmt.Errorf("create referral: invitee %d already referred", referral.InviteeID)
	}

	r.s.nextReferral++
	referral.ID = r.s.nextReferral
	referral.CreatedAt = r.s.clock.Now()
	r.s.referrals[referral.InviteeID] = *referral
	r.s.invitees[referral.InviterID] = append(r.s.invitees[referral.InviterID], referral.InviteeID)

	if t := txFrom(ctx); t != nil {
		t.createReferral(referral.InviteeID)
	}

	return nil
}

func (r *referralRepo) GetReferral(ctx context.Context, inviterID, inviteeID int) (*model.Referral, error) {
	unlock, _ := r.s.lockRow(ctx, inviteeID)
	defer unlock()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ref, ok := r.s.referrals[inviteeID]
	if !ok || ref.InviterID != inviterID {
		return nil, repository.ErrReferralNotFound
	}

	return &ref, nil
}

func (r *referralRepo) MarkReferralRewarded(ctx context.Context, inviterID, inviteeID int) error {
	unlock, _ := r.s.lockRow(ctx, inviteeID)
	defer unlock()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ref, ok := r.s.referrals[inviteeID]
	if !ok || ref.InviterID != inviterID {
		return nil
	}

	if t := txFrom(ctx); t != nil {
		t.markReferral(ref)
	}
	ref.Rewarded = true
	r.s.referrals[inviteeID] = ref

	return nil
}

func (r *referralRepo) CountReferrals(_ context.Context, inviterID int) (int, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	invitees := r.s.invitees[inviterID]
	var rewarded int
	for _, id := range invitees {
		if r.s.referrals[id].Rewarded {
			rewarded++
		}
	}

	return len(invitees), rewarded, nil
}
