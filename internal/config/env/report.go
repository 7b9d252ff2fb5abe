package env

import (
	"os"
	"reward_wheel/internal/config"
	"time"
)

const (
	reportIntervalEnvName = "REPORT_INTERVAL"

	defaultReportInterval = 10 * time.Minute
)

type reportConfig struct {
	interval time.Duration
}

func NewReportConfig() (config.ReportConfig, error) {
	interval := defaultReportInterval
	if raw := os.Getenv(reportIntervalEnvName); len(raw) > 0 {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, err
		}
		interval = parsed
	}

	return &reportConfig{interval: interval}, nil
}

func (cfg *reportConfig) Interval() time.Duration {
	return cfg.interval
}
