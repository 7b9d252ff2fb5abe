package ledger

import (
	"context"
	"errors"
	"math/rand/v2"
	"reward_wheel/internal/config"
	"reward_wheel/internal/config/env"
	"reward_wheel/internal/model"
	"reward_wheel/internal/repository"
	"reward_wheel/internal/repository/memory"
	"reward_wheel/internal/service"
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
  rewards: {2: 1, 3: 1, 4: 2, 5: 2, 6: 3, 7: 5}
  max_bonus: 5
prizes:
  - { label: "200 FC", coins: 200, weight: 30 }
  - { label: "1K FC", coins: 1000, weight: 20 }
  - { label: "MISS!", coins: 0, weight: 0 }
`

type fixture struct {
	clock    *clockwork.FakeClock
	accounts repository.AccountRepository
	spinLog  repository.SpinLogRepository
	ledger   service.LedgerService
	economy  config.EconomyConfig
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureAt(t, time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC))
}

func newFixtureAt(t *testing.T, now time.Time) *fixture {
	t.Helper()

	economy, err := env.ParseEconomyConfig([]byte(testEconomy))
	if err != nil {
		t.Fatalf("ParseEconomyConfig: %v", err)
	}

	table, err := prize.NewTable(economy.Prizes(), rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	clock := clockwork.NewFakeClockAt(now)
	store := memory.NewStore(clock)

	f := &fixture{
		clock:    clock,
		accounts: memory.NewAccountRepository(store),
		spinLog:  memory.NewSpinLogRepository(store),
		economy:  economy,
	}
	f.ledger = NewLedgerService(
		f.accounts,
		f.spinLog,
		table,
		streak.NewPolicy(economy.StreakRewards(), economy.StreakMaxBonus()),
		economy,
		memory.NewTxManager(store),
		clock,
	)

	return f
}

func (f *fixture) daysAgo(n int) *time.Time {
	d := model.DateOf(f.clock.Now()).AddDate(0, 0, -n)
	return &d
}

func (f *fixture) createAccount(t *testing.T, a model.Account) int {
	t.Helper()

	if a.Username == "" {
		a.Username = "player"
	}
	if a.ReferralCode == "" {
		a.ReferralCode = "CODE" + a.Username
	}
	if a.Streak == 0 {
		a.Streak = 1
	}

	id, err := f.accounts.CreateAccount(context.Background(), &a)
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	return id
}

func (f *fixture) account(t *testing.T, id int) *model.Account {
	t.Helper()

	a, err := f.accounts.GetAccount(context.Background(), id)
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	return a
}

func TestNextDay(t *testing.T) {
	policy := streak.NewPolicy(map[int]int{2: 1, 3: 1, 4: 2, 5: 2, 6: 3, 7: 5}, 5)
	today := time.Date(2024, 5, 10, 23, 59, 0, 0, time.UTC)
	yesterday := time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)
	lastWeek := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		last       *time.Time
		streak     int
		wantReset  bool
		wantStreak int
		wantBonus  int
	}{
		{name: "same day", last: &today, streak: 3, wantReset: false},
		{name: "continuation", last: &yesterday, streak: 4, wantReset: true, wantStreak: 5, wantBonus: 2},
		{name: "continuation past table", last: &yesterday, streak: 9, wantReset: true, wantStreak: 10, wantBonus: 5},
		{name: "break", last: &lastWeek, streak: 6, wantReset: true, wantStreak: 1, wantBonus: 0},
		{name: "never spun", last: nil, streak: 1, wantReset: true, wantStreak: 1, wantBonus: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reset, ok := NextDay(&model.Account{LastSpinDate: tc.last, Streak: tc.streak}, today, policy, 3)
			if ok != tc.wantReset {
				t.Fatalf("reset = %v, want %v", ok, tc.wantReset)
			}
			if !ok {
				return
			}
			if reset.Streak != tc.wantStreak || reset.Bonus != tc.wantBonus {
				t.Errorf("streak/bonus = %d/%d, want %d/%d", reset.Streak, reset.Bonus, tc.wantStreak, tc.wantBonus)
			}
			if reset.FreeSpinsBase != 3 {
				t.Errorf("free spins base = %d, want 3", reset.FreeSpinsBase)
			}
			if !reset.Today.Equal(model.DateOf(today)) {
				t.Errorf("today = %v, want %v", reset.Today, model.DateOf(today))
			}
		})
	}
}

func TestDailyResetContinuationIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.createAccount(t, model.Account{Streak: 4, RewardedToday: 2, LastSpinDate: f.daysAgo(1)})

	first, err := f.ledger.DailyReset(ctx, id)
	if err != nil {
		t.Fatalf("DailyReset: %v", err)
	}
	if first.Streak != 5 || first.FreeSpins != 3+2 || first.RewardedToday != 0 {
		t.Errorf("after reset: streak=%d free=%d rewarded=%d, want 5/5/0", first.Streak, first.FreeSpins, first.RewardedToday)
	}

	second, err := f.ledger.DailyReset(ctx, id)
	if err != nil {
		t.Fatalf("second DailyReset: %v", err)
	}
	if second.Balances() != first.Balances() {
		t.Errorf("second reset changed balances: %+v -> %+v", first.Balances(), second.Balances())
	}
}

func TestDailyResetBreakKeepsUnspentFreeSpins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.createAccount(t, model.Account{Streak: 6, FreeSpins: 7, BonusSpins: 4, LastSpinDate: f.daysAgo(3)})

	a, err := f.ledger.DailyReset(ctx, id)
	if err != nil {
		t.Fatalf("DailyReset: %v", err)
	}
	if a.Streak != 1 {
		t.Errorf("streak = %d, want 1", a.Streak)
	}
	if a.FreeSpins != 7 {
		t.Errorf("free spins = %d, want max(7, 3) + 0", a.FreeSpins)
	}
	if a.BonusSpins != 4 {
		t.Errorf("bonus spins must not reset, got %d", a.BonusSpins)
	}
	if !model.SameDate(a.LastSpinDate, f.clock.Now()) {
		t.Errorf("last spin date = %v, want today", a.LastSpinDate)
	}
}

func TestDailyResetConcurrentAppliesOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.createAccount(t, model.Account{Streak: 1, LastSpinDate: f.daysAgo(1)})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.ledger.DailyReset(ctx, id); err != nil {
				t.Errorf("DailyReset: %v", err)
			}
		}()
	}
	wg.Wait()

	a := f.account(t, id)
	if a.Streak != 2 || a.FreeSpins != 3+1 {
		t.Errorf("streak=%d free=%d, want 2/4", a.Streak, a.FreeSpins)
	}
}

func TestDailyResetUsesUTCDay(t *testing.T) {
	msk := time.FixedZone("MSK", 3*60*60)
	// 01:00 по Москве 11 мая - это еще 10 мая по UTC
	f := newFixtureAt(t, time.Date(2024, 5, 11, 1, 0, 0, 0, msk))
	ctx := context.Background()
	may10 := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	id := f.createAccount(t, model.Account{Streak: 1, FreeSpins: 1, LastSpinDate: &may10})

	a, err := f.ledger.DailyReset(ctx, id)
	if err != nil {
		t.Fatalf("DailyReset: %v", err)
	}
	if a.Streak != 1 || a.FreeSpins != 1 {
		t.Fatalf("reset applied before UTC midnight: streak=%d free=%d", a.Streak, a.FreeSpins)
	}

	f.clock.Advance(2 * time.Hour)

	a, err = f.ledger.DailyReset(ctx, id)
	if err != nil {
		t.Fatalf("DailyReset: %v", err)
	}
	want := time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC)
	if a.Streak != 2 || a.FreeSpins != 3+1 || !a.LastSpinDate.Equal(want) {
		t.Errorf("streak=%d free=%d date=%v, want 2/4/%v", a.Streak, a.FreeSpins, a.LastSpinDate, want)
	}
}

func TestDailyResetNextDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.createAccount(t, model.Account{Streak: 1, FreeSpins: 3, LastSpinDate: f.daysAgo(0)})

	if _, err := f.ledger.DailyReset(ctx, id); err != nil {
		t.Fatalf("DailyReset: %v", err)
	}
	if a := f.account(t, id); a.Streak != 1 || a.FreeSpins != 3 {
		t.Fatalf("same-day reset changed state: streak=%d free=%d", a.Streak, a.FreeSpins)
	}

	f.clock.Advance(24 * time.Hour)

	a, err := f.ledger.DailyReset(ctx, id)
	if err != nil {
		t.Fatalf("DailyReset: %v", err)
	}
	if a.Streak != 2 || a.FreeSpins != 3+1 {
		t.Errorf("next day: streak=%d free=%d, want 2/4", a.Streak, a.FreeSpins)
	}
}

func TestSettleSpinInsufficientCredits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.createAccount(t, model.Account{Coins: 500, LastSpinDate: f.daysAgo(0)})

	_, err := f.ledger.SettleSpin(ctx, id)
	if !errors.Is(err, model.ErrInsufficientCredits) {
		t.Fatalf("err = %v, want ErrInsufficientCredits", err)
	}

	if a := f.account(t, id); a.Coins != 500 || a.FreeSpins != 0 || a.BonusSpins != 0 {
		t.Errorf("state changed on failed spin: %+v", a.Balances())
	}

	history, err := f.spinLog.RecentSpinLog(ctx, id, 10)
	if err != nil {
		t.Fatalf("RecentSpinLog: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("failed spin wrote %d log entries", len(history))
	}
}

func TestSettleSpinConsumesBonusFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.createAccount(t, model.Account{FreeSpins: 3, BonusSpins: 2, LastSpinDate: f.daysAgo(0)})

	want := []model.CreditType{model.CreditBonus, model.CreditBonus, model.CreditFree, model.CreditFree, model.CreditFree}
	var won int64
	for i, credit := range want {
		res, err := f.ledger.SettleSpin(ctx, id)
		if err != nil {
			t.Fatalf("spin %d: %v", i+1, err)
		}
		if res.CreditType != credit {
			t.Errorf("spin %d consumed %s, want %s", i+1, res.CreditType, credit)
		}
		if res.Prize.Label == "MISS!" {
			t.Errorf("spin %d drew a zero-weight prize", i+1)
		}
		won += res.Prize.Coins
		if res.Balances.Coins != won {
			t.Errorf("spin %d: coins = %d, want %d", i+1, res.Balances.Coins, won)
		}
	}

	if _, err := f.ledger.SettleSpin(ctx, id); !errors.Is(err, model.ErrInsufficientCredits) {
		t.Errorf("sixth spin err = %v, want ErrInsufficientCredits", err)
	}

	history, err := f.spinLog.RecentSpinLog(ctx, id, 15)
	if err != nil {
		t.Fatalf("RecentSpinLog: %v", err)
	}
	if len(history) != len(want) {
		t.Fatalf("log has %d entries, want %d", len(history), len(want))
	}

	var logged int64
	for _, e := range history {
		logged += e.Coins
	}
	if logged != won {
		t.Errorf("logged coins %d, balance coins %d", logged, won)
	}
	// Новые записи первыми
	if history[0].CreditType != model.CreditFree || history[len(history)-1].CreditType != model.CreditBonus {
		t.Errorf("unexpected history order: %+v", history)
	}
}

func TestSettleSpinConcurrentNoDoubleSpend(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.createAccount(t, model.Account{FreeSpins: 6, BonusSpins: 4, LastSpinDate: f.daysAgo(0)})

	const workers = 25
	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		ok, rejected int
		won          int64
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := f.ledger.SettleSpin(ctx, id)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
				won += res.Prize.Coins
			case errors.Is(err, model.ErrInsufficientCredits):
				rejected++
			default:
				t.Errorf("SettleSpin: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != 10 || rejected != workers-10 {
		t.Errorf("settled %d, rejected %d, want 10/%d", ok, rejected, workers-10)
	}

	a := f.account(t, id)
	if a.FreeSpins != 0 || a.BonusSpins != 0 {
		t.Errorf("credits left: free=%d bonus=%d", a.FreeSpins, a.BonusSpins)
	}
	if a.Coins != won {
		t.Errorf("coins = %d, want %d", a.Coins, won)
	}
}

func TestGrantRewardedSpinDailyLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.createAccount(t, model.Account{FreeSpins: 1, LastSpinDate: f.daysAgo(0)})

	for i := 1; i <= f.economy.MaxRewardedPerDay(); i++ {
		b, err := f.ledger.GrantRewardedSpin(ctx, id)
		if err != nil {
			t.Fatalf("grant %d: %v", i, err)
		}
		if b.FreeSpins != 1+i || b.RewardedToday != i {
			t.Errorf("grant %d: free=%d rewarded=%d", i, b.FreeSpins, b.RewardedToday)
		}
	}

	_, err := f.ledger.GrantRewardedSpin(ctx, id)
	if !errors.Is(err, model.ErrDailyLimitReached) {
		t.Fatalf("err = %v, want ErrDailyLimitReached", err)
	}
	if a := f.account(t, id); a.FreeSpins != 3 || a.RewardedToday != 2 {
		t.Errorf("state changed on rejected grant: free=%d rewarded=%d", a.FreeSpins, a.RewardedToday)
	}
}

func TestGrantRewardedSpinConcurrentRespectsLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.createAccount(t, model.Account{LastSpinDate: f.daysAgo(0)})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.ledger.GrantRewardedSpin(ctx, id)
			if err != nil && !errors.Is(err, model.ErrDailyLimitReached) {
				t.Errorf("GrantRewardedSpin: %v", err)
			}
		}()
	}
	wg.Wait()

	if a := f.account(t, id); a.RewardedToday != 2 || a.FreeSpins != 2 {
		t.Errorf("rewarded=%d free=%d, want 2/2", a.RewardedToday, a.FreeSpins)
	}
}

func TestGrantBonusSpins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.createAccount(t, model.Account{BonusSpins: 1, LastSpinDate: f.daysAgo(0)})

	b, err := f.ledger.GrantBonusSpins(ctx, id, 10)
	if err != nil {
		t.Fatalf("GrantBonusSpins: %v", err)
	}
	if b.BonusSpins != 11 {
		t.Errorf("bonus spins = %d, want 11", b.BonusSpins)
	}

	if _, err := f.ledger.GrantBonusSpins(ctx, id, 0); err != nil {
		t.Errorf("zero grant: %v", err)
	}
	if _, err := f.ledger.GrantBonusSpins(ctx, id, -1); !errors.Is(err, model.ErrInvalidAmount) {
		t.Errorf("negative grant err = %v, want ErrInvalidAmount", err)
	}
	if _, err := f.ledger.GrantBonusSpins(ctx, 999, 1); !errors.Is(err, model.ErrAccountNotFound) {
		t.Errorf("unknown account err = %v, want ErrAccountNotFound", err)
	}
}
