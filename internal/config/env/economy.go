package env

import (
	"errors"
	"fmt"
	"os"
	"reward_wheel/internal/config"
	"reward_wheel/internal/model"
	"sort"

	"gopkg.in/yaml.v3"
)

const economyConfigEnvName = "ECONOMY_CONFIG"

type economyFile struct {
	Economy struct {
		FreeSpinsPerDay       int `yaml:"free_spins_per_day"`
		MaxRewardedPerDay     int `yaml:"max_rewarded_per_day"`
		ReferralRewardInvitee int `yaml:"referral_reward_invitee"`
		ReferralRewardInviter int `yaml:"referral_reward_inviter"`
	} `yaml:"economy"`
	Streak struct {
		Rewards  map[int]int `yaml:"rewards"`
		MaxBonus int         `yaml:"max_bonus"`
	} `yaml:"streak"`
	Prizes   []model.PrizeOutcome `yaml:"prizes"`
	Packages []model.SpinPackage  `yaml:"packages"`
}

type economyConfig struct {
	file economyFile
}

// EconomyConfigPath - путь к YAML из окружения, по умолчанию config.yaml
func EconomyConfigPath() string {
	path := os.Getenv(economyConfigEnvName)
	if len(path) == 0 {
		return "config.yaml"
	}
	return path
}

// NewEconomyConfigFromYAML читает и валидирует конфиг экономики
func NewEconomyConfigFromYAML(path string) (config.EconomyConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read economy config: %w", err)
	}

	return ParseEconomyConfig(data)
}

func ParseEconomyConfig(data []byte) (config.EconomyConfig, error) {
	var file economyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse economy config: %w", err)
	}

	if err := validateEconomy(&file); err != nil {
		return nil, err
	}

	return &economyConfig{file: file}, nil
}

func validateEconomy(f *economyFile) error {
	e := f.Economy
	if e.FreeSpinsPerDay < 0 || e.MaxRewardedPerDay < 0 || e.ReferralRewardInvitee < 0 || e.ReferralRewardInviter < 0 {
		return errors.New("economy constants must not be negative")
	}

	if f.Streak.MaxBonus < 0 {
		return errors.New("streak max bonus must not be negative")
	}
	days := make([]int, 0, len(f.Streak.Rewards))
	for day, bonus := range f.Streak.Rewards {
		if day < 1 || bonus < 0 {
			return fmt.Errorf("invalid streak reward %d: %d", day, bonus)
		}
		days = append(days, day)
	}

	// Бонус не убывает от дня к дню таблицы, после последнего дня держится потолок
	sort.Ints(days)
	prev := 0
	for _, day := range days {
		bonus := f.Streak.Rewards[day]
		if bonus < prev {
			return fmt.Errorf("streak reward decreases on day %d: %d < %d", day, bonus, prev)
		}
		prev = bonus
	}
	if f.Streak.MaxBonus < prev {
		return fmt.Errorf("streak max bonus %d is below the last table reward %d", f.Streak.MaxBonus, prev)
	}

	// Хотя бы один приз должен быть достижим
	total := 0
	for _, p := range f.Prizes {
		if p.Weight < 0 || p.Coins < 0 {
			return fmt.Errorf("invalid prize %q", p.Label)
		}
		total += p.Weight
	}
	if total == 0 {
		return errors.New("prize table has no reachable outcome")
	}

	seen := make(map[string]struct{}, len(f.Packages))
	for _, p := range f.Packages {
		if len(p.Key) == 0 || p.Spins <= 0 || p.Price < 0 {
			return fmt.Errorf("invalid spin package %q", p.Key)
		}
		if _, ok := seen[p.Key]; ok {
			return fmt.Errorf("duplicate spin package %q", p.Key)
		}
		seen[p.Key] = struct{}{}
	}

	return nil
}

func (c *economyConfig) FreeSpinsPerDay() int {
	return c.file.Economy.FreeSpinsPerDay
}

func (c *economyConfig) MaxRewardedPerDay() int {
	return c.file.Economy.MaxRewardedPerDay
}

func (c *economyConfig) ReferralRewardInvitee() int {
	return c.file.Economy.ReferralRewardInvitee
}

func (c *economyConfig) ReferralRewardInviter() int {
	return c.file.Economy.ReferralRewardInviter
}

func (c *economyConfig) StreakRewards() map[int]int {
	rewards := make(map[int]int, len(c.file.Streak.Rewards))
	for k, v := range c.file.Streak.Rewards {
		rewards[k] = v
	}
	return rewards
}

func (c *economyConfig) StreakMaxBonus() int {
	return c.file.Streak.MaxBonus
}

func (c *economyConfig) Prizes() []model.PrizeOutcome {
	return append([]model.PrizeOutcome(nil), c.file.Prizes...)
}

func (c *economyConfig) Packages() []model.SpinPackage {
	return append([]model.SpinPackage(nil), c.file.Packages...)
}
