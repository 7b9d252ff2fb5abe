package streak

import "reward_wheel/internal/service"

type policy struct {
	rewards map[int]int
	maxKey  int
	ceiling int
}

// NewPolicy - таблица бонусов по дням серии. После максимального дня
// из таблицы всегда выдается ceiling, дни без записи в таблице дают 0
func NewPolicy(rewards map[int]int, ceiling int) service.StreakPolicy {
	p := &policy{
		rewards: make(map[int]int, len(rewards)),
		maxKey:  1,
		ceiling: ceiling,
	}

	for day, bonus := range rewards {
		p.rewards[day] = bonus
		if day > p.maxKey {
			p.maxKey = day
		}
	}

	return p
}

func (p *policy) BonusFor(streakDay int) int {
	if bonus, ok := p.rewards[streakDay]; ok {
		return bonus
	}
	if streakDay > p.maxKey {
		return p.ceiling
	}
	return 0
}
