package report

import (
	"context"
	"errors"
	"log"
	"reward_wheel/internal/service"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
)

// StartReporter - периодически пишет в лог агрегаты экономики.
// Планировщик нужно остановить через Shutdown
func StartReporter(ctx context.Context, reports service.ReportService, interval time.Duration, clock clockwork.Clock) (gocron.Scheduler, error) {
	if interval <= 0 {
		return nil, errors.New("report interval must be positive")
	}

	sched, err := gocron.NewScheduler(gocron.WithClock(clock))
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			logSnapshot(ctx, reports)
		}),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, err
	}

	sched.Start()
	return sched, nil
}

func logSnapshot(ctx context.Context, reports service.ReportService) {
	stats, err := reports.Stats(ctx)
	if err != nil {
		log.Printf("[Reporter] stats error: %v", err)
		return
	}

	leader := "-"
	if len(stats.Top) > 0 {
		leader = stats.Top[0].Username
	}

	log.Printf("[Reporter] accounts=%d spins=%d coins_won=%d referrals=%d leader=%s",
		stats.Accounts, stats.Spins, stats.CoinsWon, stats.Referrals, leader)
}
