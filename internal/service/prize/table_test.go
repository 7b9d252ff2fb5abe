package prize

import (
	"math"
	"math/rand/v2"
	"reward_wheel/internal/model"
	"testing"
)

func testOutcomes() []model.PrizeOutcome {
	return []model.PrizeOutcome{
		{Label: "200 FC", Coins: 200, Weight: 30},
		{Label: "500 FC", Coins: 500, Weight: 25},
		{Label: "1K FC", Coins: 1000, Weight: 20},
		{Label: "2K FC", Coins: 2000, Weight: 12},
		{Label: "5K FC", Coins: 5000, Weight: 8},
		{Label: "10K FC", Coins: 10000, Weight: 4},
		{Label: "50K FC", Coins: 50000, Weight: 1},
		{Label: "MISS!", Coins: 0, Weight: 0},
	}
}

func TestNewTableRejectsInvalidCatalog(t *testing.T) {
	cases := []struct {
		name     string
		outcomes []model.PrizeOutcome
	}{
		{name: "empty", outcomes: nil},
		{name: "all zero", outcomes: []model.PrizeOutcome{{Label: "a"}, {Label: "b"}}},
		{name: "negative weight", outcomes: []model.PrizeOutcome{{Label: "a", Weight: 5}, {Label: "b", Weight: -1}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewTable(tc.outcomes, nil); err == nil {
				t.Errorf("expected error for %s catalog", tc.name)
			}
		})
	}
}

func TestDrawDistribution(t *testing.T) {
	outcomes := testOutcomes()
	table, err := NewTable(outcomes, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	const draws = 100_000
	counts := make(map[string]int, len(outcomes))
	for i := 0; i < draws; i++ {
		counts[table.Draw().Label]++
	}

	if counts["MISS!"] != 0 {
		t.Errorf("zero-weight outcome drawn %d times", counts["MISS!"])
	}

	total := 0
	for _, o := range outcomes {
		total += o.Weight
	}
	for _, o := range outcomes {
		want := float64(o.Weight) / float64(total)
		got := float64(counts[o.Label]) / draws
		if math.Abs(got-want) > 0.01 {
			t.Errorf("%s: frequency %.4f, want %.4f ± 0.01", o.Label, got, want)
		}
	}
}

func TestDrawReproducibleWithSeed(t *testing.T) {
	a, err := NewTable(testOutcomes(), rand.New(rand.NewPCG(7, 7)))
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	b, err := NewTable(testOutcomes(), rand.New(rand.NewPCG(7, 7)))
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	for i := 0; i < 1000; i++ {
		if x, y := a.Draw(), b.Draw(); x != y {
			t.Fatalf("draw %d differs: %v vs %v", i, x, y)
		}
	}
}

func TestChances(t *testing.T) {
	table, err := NewTable([]model.PrizeOutcome{
		{Label: "a", Coins: 1, Weight: 1},
		{Label: "b", Coins: 2, Weight: 2},
		{Label: "miss", Coins: 0, Weight: 0},
	}, nil)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	chances := table.Chances()
	want := []float64{33.33, 66.67, 0}
	for i, c := range chances {
		if c.Chance != want[i] {
			t.Errorf("%s: chance %v, want %v", c.Prize.Label, c.Chance, want[i])
		}
	}
}
