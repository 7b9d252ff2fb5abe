package referral

import (
	"context"
	"errors"
	"reward_wheel/internal/config/env"
	"reward_wheel/internal/model"
	"reward_wheel/internal/repository"
	"reward_wheel/internal/repository/memory"
	"reward_wheel/internal/service"
	"reward_wheel/internal/service/ledger"
	"reward_wheel/internal/service/prize"
	"reward_wheel/internal/service/streak"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

const testEconomy = `
economy:
  free_spins_per_day: 3
  max_rewarded_per_day: 2
  referral_reward_invitee: 2
  referral_reward_inviter: 3
streak:
  rewards: {2: 1}
  max_bonus: 1
prizes:
  - { label: "200 FC", coins: 200, weight: 1 }
`

type fixture struct {
	accounts  repository.AccountRepository
	referrals repository.ReferralRepository
	referral  service.ReferralService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	economy, err := env.ParseEconomyConfig([]byte(testEconomy))
	if err != nil {
		t.Fatalf("ParseEconomyConfig: %v", err)
	}
	table, err := prize.NewTable(economy.Prizes(), nil)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC))
	store := memory.NewStore(clock)
	txManager := memory.NewTxManager(store)

	f := &fixture{
		accounts:  memory.NewAccountRepository(store),
		referrals: memory.NewReferralRepository(store),
	}
	ledgerServ := ledger.NewLedgerService(
		f.accounts,
		memory.NewSpinLogRepository(store),
		table,
		streak.NewPolicy(economy.StreakRewards(), economy.StreakMaxBonus()),
		economy,
		txManager,
		clock,
	)
	f.referral = NewReferralService(f.accounts, f.referrals, ledgerServ, economy, txManager)

	return f
}

func (f *fixture) create(t *testing.T, username, code string) *model.Account {
	t.Helper()

	a := &model.Account{Username: username, ReferralCode: code, Streak: 1}
	if _, err := f.accounts.CreateAccount(context.Background(), a); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	return a
}

func TestResolveInviterNormalizesCode(t *testing.T) {
	f := newFixture(t)
	inviter := f.create(t, "alice", "ABCD1234")

	got, err := f.referral.ResolveInviter(context.Background(), "  abcd1234 ")
	if err != nil {
		t.Fatalf("ResolveInviter: %v", err)
	}
	if got.ID != inviter.ID {
		t.Errorf("resolved account %d, want %d", got.ID, inviter.ID)
	}

	for _, code := range []string{"", "   ", "NOPE0000"} {
		if _, err := f.referral.ResolveInviter(context.Background(), code); !errors.Is(err, model.ErrInvalidReferralCode) {
			t.Errorf("ResolveInviter(%q) err = %v, want ErrInvalidReferralCode", code, err)
		}
	}
}

func TestRegisterReferralOnlyOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.create(t, "alice", "AAAA")
	bob := f.create(t, "bob", "BBBB")
	carol := f.create(t, "carol", "CCCC")

	if err := f.referral.RegisterReferral(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("RegisterReferral: %v", err)
	}
	if err := f.referral.RegisterReferral(ctx, carol.ID, bob.ID); !errors.Is(err, model.ErrInvalidReferralCode) {
		t.Errorf("second inviter err = %v, want ErrInvalidReferralCode", err)
	}
	if err := f.referral.RegisterReferral(ctx, carol.ID, carol.ID); !errors.Is(err, model.ErrInvalidReferralCode) {
		t.Errorf("self referral err = %v, want ErrInvalidReferralCode", err)
	}

	total, _, err := f.referrals.CountReferrals(ctx, carol.ID)
	if err != nil {
		t.Fatalf("CountReferrals: %v", err)
	}
	if total != 0 {
		t.Errorf("rejected referrals were recorded: %d", total)
	}

	b, err := f.accounts.GetAccount(ctx, bob.ID)
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if b.ReferredBy == nil || *b.ReferredBy != alice.ID {
		t.Errorf("referred by = %v, want %d", b.ReferredBy, alice.ID)
	}
}

func TestCheckAndRewardReferralFiresOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.create(t, "alice", "AAAA")
	bob := f.create(t, "bob", "BBBB")

	if err := f.referral.RegisterReferral(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("RegisterReferral: %v", err)
	}

	rewarded := 0
	for i := 0; i < 10; i++ {
		ok, err := f.referral.CheckAndRewardReferral(ctx, bob.ID)
		if err != nil {
			t.Fatalf("CheckAndRewardReferral: %v", err)
		}
		if ok {
			rewarded++
		}
	}
	if rewarded != 1 {
		t.Errorf("reward fired %d times, want 1", rewarded)
	}

	a, err := f.accounts.GetAccount(ctx, alice.ID)
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if a.BonusSpins != 3 {
		t.Errorf("inviter bonus spins = %d, want 3", a.BonusSpins)
	}

	ref, err := f.referrals.GetReferral(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("GetReferral: %v", err)
	}
	if !ref.Rewarded {
		t.Error("referral record not marked rewarded")
	}
}

func TestCheckAndRewardReferralConcurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.create(t, "alice", "AAAA")
	bob := f.create(t, "bob", "BBBB")

	if err := f.referral.RegisterReferral(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("RegisterReferral: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.referral.CheckAndRewardReferral(ctx, bob.ID); err != nil {
				t.Errorf("CheckAndRewardReferral: %v", err)
			}
		}()
	}
	wg.Wait()

	a, err := f.accounts.GetAccount(ctx, alice.ID)
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if a.BonusSpins != 3 {
		t.Errorf("inviter bonus spins = %d, want exactly one reward of 3", a.BonusSpins)
	}
}

func TestCheckAndRewardReferralWithoutInviter(t *testing.T) {
	f := newFixture(t)
	bob := f.create(t, "bob", "BBBB")

	ok, err := f.referral.CheckAndRewardReferral(context.Background(), bob.ID)
	if err != nil {
		t.Fatalf("CheckAndRewardReferral: %v", err)
	}
	if ok {
		t.Error("reward fired for an account without inviter")
	}
}
