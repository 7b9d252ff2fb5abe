package prize

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"reward_wheel/internal/model"
	"reward_wheel/internal/service"
	"sort"
	"sync"
)

// Source - источник случайности. Подходит *rand.Rand из math/rand/v2
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n)
}

type table struct {
	outcomes   []model.PrizeOutcome
	cumulative []int
	total      int

	mu  sync.Mutex
	src Source
}

// NewTable строит распределение один раз при старте.
// Пустая таблица или таблица из одних нулевых весов - ошибка конфигурации
func NewTable(outcomes []model.PrizeOutcome, src Source) (service.PrizeTable, error) {
	if len(outcomes) == 0 {
		return nil, errors.New("prize table is empty")
	}

	if src == nil {
		src = globalSource{}
	}

	t := &table{
		outcomes:   append([]model.PrizeOutcome(nil), outcomes...),
		cumulative: make([]int, len(outcomes)),
		src:        src,
	}

	for i, o := range outcomes {
		if o.Weight < 0 {
			return nil, fmt.Errorf("prize %q has negative weight", o.Label)
		}
		t.total += o.Weight
		t.cumulative[i] = t.total
	}

	if t.total == 0 {
		return nil, errors.New("prize table has no reachable outcome")
	}

	return t, nil
}

// Draw - выбор приза пропорционально весу. Призы с весом 0 недостижимы
func (t *table) Draw() model.PrizeOutcome {
	t.mu.Lock()
	n := t.src.IntN(t.total)
	t.mu.Unlock()

	// Первый индекс, где накопленный вес превышает n
	i := sort.SearchInts(t.cumulative, n+1)
	return t.outcomes[i]
}

// Chances - вероятность каждого приза в процентах, до сотых
func (t *table) Chances() []model.PrizeChance {
	chances := make([]model.PrizeChance, len(t.outcomes))
	for i, o := range t.outcomes {
		chance := float64(o.Weight) / float64(t.total) * 100
		chances[i] = model.PrizeChance{
			Prize:  o,
			Chance: math.Round(chance*100) / 100,
		}
	}
	return chances
}
