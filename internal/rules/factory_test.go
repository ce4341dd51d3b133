package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rand"

	"svw.info/rulerush/internal/config"
	"svw.info/rulerush/internal/domain"
	"svw.info/rulerush/internal/solver"
)

func newFactory(seed uint64) *Factory {
	return NewFactory(config.Default().Rules, rand.New(seed), nil)
}

func TestNegationRateConverges(t *testing.T) {
	f := newFactory(2024)
	negated := 0
	const n = 1000
	for i := 0; i < n; i++ {
		if f.Generate(5).Negated {
			negated++
		}
	}
	rate := float64(negated) / n
	assert.InDelta(t, 0.4, rate, 0.06, "negation rate %.3f", rate)
}

func TestNoNegationBelowMinLevel(t *testing.T) {
	f := newFactory(1)
	for i := 0; i < 500; i++ {
		assert.False(t, f.Generate(1).Negated)
	}
}

func TestCategoriesAndThresholds(t *testing.T) {
	f := newFactory(99)
	cats := map[domain.Category]int{}
	conds := map[domain.Condition]int{}
	for i := 0; i < 3000; i++ {
		r := f.Generate(1)
		cats[r.Predicate.Category]++
		if r.Predicate.Category != domain.CategoryNumber {
			continue
		}
		conds[r.Predicate.Condition]++
		switch r.Predicate.Condition {
		case domain.GreaterThan:
			assert.GreaterOrEqual(t, r.Predicate.Threshold, 1)
			assert.LessOrEqual(t, r.Predicate.Threshold, 5)
		case domain.LessThan:
			assert.GreaterOrEqual(t, r.Predicate.Threshold, 5)
			assert.LessOrEqual(t, r.Predicate.Threshold, 9)
		}
	}
	assert.Len(t, cats, 3)
	assert.Len(t, conds, 4)
	for c, n := range cats {
		assert.InDelta(t, 1000, n, 150, "category %s drawn %d times", c, n)
	}
}

func TestRefreshKeepsSemantics(t *testing.T) {
	f := newFactory(5)
	all, _ := solver.New().Partition(nil)
	for i := 0; i < 200; i++ {
		r := f.Generate(4)
		before := *r
		want := make([]bool, len(all))
		for j, o := range all {
			want[j] = r.Check(o)
		}
		for k := 0; k < 5; k++ {
			f.Refresh(r, 4)
			require.Equal(t, before.ID, r.ID)
			require.Equal(t, before.Predicate, r.Predicate)
			require.Equal(t, before.Negated, r.Negated)
			require.NotEmpty(t, r.Description)
		}
		for j, o := range all {
			require.Equal(t, want[j], r.Check(o), "refresh changed %s on %+v", r.ID, o)
		}
	}
}

func TestRefreshRebuildsNegatedText(t *testing.T) {
	f := newFactory(11)
	r := domain.NewRule(domain.Predicate{Category: domain.CategoryColor, Color: domain.Green}, true, "NOT NOT stale")
	for i := 0; i < 50; i++ {
		f.Refresh(r, 3)
		assert.Contains(t, r.Description, "GREEN")
		assert.NotContains(t, r.Description, "stale")
	}
}

func TestSameSeedSameRules(t *testing.T) {
	a, b := newFactory(77), newFactory(77)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Generate(3), b.Generate(3))
	}
}

func TestNegationLaw(t *testing.T) {
	f := newFactory(8)
	all, _ := solver.New().Partition(nil)
	for i := 0; i < 100; i++ {
		r := f.Generate(5)
		n := domain.Negate(r)
		for _, o := range all {
			assert.Equal(t, !r.Check(o), n.Check(o))
		}
	}
}
