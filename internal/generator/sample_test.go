package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rand"

	"svw.info/rulerush/internal/config"
	"svw.info/rulerush/internal/domain"
	"svw.info/rulerush/internal/rules"
	"svw.info/rulerush/internal/solver"
)

func newPool(seed uint64) *Pool {
	return NewPool(config.Default().Generator, rand.New(seed))
}

func color(c domain.Color, negated bool) *domain.Rule {
	return domain.NewRule(domain.Predicate{Category: domain.CategoryColor, Color: c}, negated, "")
}

func number(c domain.Condition, v int, negated bool) *domain.Rule {
	return domain.NewRule(domain.Predicate{Category: domain.CategoryNumber, Condition: c, Threshold: v}, negated, "")
}

// requireRound checks the pool post-condition: exactly one valid object.
func requireRound(t *testing.T, objs []domain.GameObject, count int, rs []*domain.Rule) domain.GameObject {
	t.Helper()
	require.Len(t, objs, count)
	var valid []domain.GameObject
	ids := map[string]bool{}
	for _, o := range objs {
		require.False(t, ids[o.ID], "duplicate id %s", o.ID)
		ids[o.ID] = true
		require.GreaterOrEqual(t, o.Number, 1)
		require.LessOrEqual(t, o.Number, 9)
		if domain.SatisfiesAll(rs, o) {
			valid = append(valid, o)
		}
	}
	require.Len(t, valid, 1, "exactly one object must satisfy every rule")
	return valid[0]
}

func TestRedScenario(t *testing.T) {
	g := newPool(1)
	rs := []*domain.Rule{color(domain.Red, false)}
	objs, st, err := g.Generate(context.Background(), 5, rs)
	require.NoError(t, err)
	v := requireRound(t, objs, 5, rs)
	assert.Equal(t, domain.Red, v.Color)
	reds := 0
	for _, o := range objs {
		if o.Color == domain.Red {
			reds++
		}
	}
	assert.Equal(t, 1, reds)
	assert.GreaterOrEqual(t, st.Attempts, 5)
}

func TestEvenAndNotAboveThree(t *testing.T) {
	g := newPool(2)
	rs := []*domain.Rule{number(domain.Even, 0, false), number(domain.GreaterThan, 3, true)}
	for i := 0; i < 50; i++ {
		objs, _, err := g.Generate(context.Background(), 8, rs)
		require.NoError(t, err)
		v := requireRound(t, objs, 8, rs)
		assert.Equal(t, 2, v.Number)
	}
}

func TestSingleObjectRound(t *testing.T) {
	g := newPool(3)
	rs := []*domain.Rule{color(domain.Blue, false), number(domain.Odd, 0, false)}
	objs, _, err := g.Generate(context.Background(), 1, rs)
	require.NoError(t, err)
	requireRound(t, objs, 1, rs)
	assert.Equal(t, "o1", objs[0].ID)
}

func TestEmptyRules(t *testing.T) {
	g := newPool(4)
	objs, _, err := g.Generate(context.Background(), 1, nil)
	require.NoError(t, err)
	require.Len(t, objs, 1)

	// every object is valid, so no distractor can exist
	_, _, err = g.Generate(context.Background(), 3, nil)
	var ge *GenerationError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, StageDistractor, ge.Stage)
	assert.Equal(t, 0, ge.Slot)
	assert.ErrorIs(t, err, ErrGenerationFailure)
}

func TestUnsatisfiableFailsValidStage(t *testing.T) {
	g := newPool(5)
	rs := []*domain.Rule{number(domain.Even, 0, false), number(domain.Odd, 0, false)}
	objs, st, err := g.Generate(context.Background(), 5, rs)
	assert.Nil(t, objs)
	var ge *GenerationError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, StageValid, ge.Stage)
	assert.Equal(t, 500, st.Attempts)
}

func TestTautologyFailsDistractorStage(t *testing.T) {
	g := newPool(6)
	rs := []*domain.Rule{number(domain.GreaterThan, 9, true)}
	_, _, err := g.Generate(context.Background(), 4, rs)
	assert.True(t, errors.Is(err, ErrGenerationFailure))
}

func TestInvalidCount(t *testing.T) {
	_, _, err := newPool(7).Generate(context.Background(), 0, nil)
	assert.ErrorIs(t, err, ErrInvalidCount)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := newPool(8).Generate(ctx, 5, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnswerPositionIsUniform(t *testing.T) {
	g := newPool(9)
	rs := []*domain.Rule{color(domain.Green, false)}
	const count, runs = 5, 5000
	var hits [count]int
	for i := 0; i < runs; i++ {
		objs, _, err := g.Generate(context.Background(), count, rs)
		require.NoError(t, err)
		for pos, o := range objs {
			if rs[0].Check(o) {
				hits[pos]++
			}
		}
	}
	for pos, n := range hits {
		assert.InDelta(t, runs/count, n, 120, "position %d chosen %d times", pos, n)
	}
}

func TestGeneratedRuleStacks(t *testing.T) {
	// random stacks from the factory either generate a correct pool or fail
	// with ErrGenerationFailure; never a short list
	f := rules.NewFactory(config.Default().Rules, rand.New(10), nil)
	g := newPool(10)
	for i := 0; i < 300; i++ {
		var rs []*domain.Rule
		for k := 0; k <= i%4; k++ {
			rs = append(rs, f.Generate(5))
		}
		count := 5 + i%16
		objs, _, err := g.Generate(context.Background(), count, rs)
		if err != nil {
			require.ErrorIs(t, err, ErrGenerationFailure)
			require.Nil(t, objs)
			continue
		}
		requireRound(t, objs, count, rs)
	}
}

func TestDrawSingleSolution(t *testing.T) {
	g := newPool(9)
	// red, square, even and > 7 leaves only the red square 8
	rs := []*domain.Rule{
		color(domain.Red, false),
		domain.NewRule(domain.Predicate{Category: domain.CategoryShape, Shape: domain.Square}, false, ""),
		number(domain.Even, 0, false),
		number(domain.GreaterThan, 7, false),
	}
	valid, rest := solver.New().Partition(rs)
	require.Len(t, valid, 1)

	for i := 0; i < 50; i++ {
		objs, err := g.Draw(17, valid, rest)
		require.NoError(t, err)
		v := requireRound(t, objs, 17, rs)
		assert.Equal(t, domain.GameObject{ID: v.ID, Color: domain.Red, Shape: domain.Square, Number: 8}, v)
	}
}

func TestDrawRejectsEmptyCandidates(t *testing.T) {
	g := newPool(3)
	obj := domain.GameObject{Color: domain.Blue, Shape: domain.Circle, Number: 4}

	_, err := g.Draw(3, nil, []domain.GameObject{obj})
	var ge *GenerationError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, StageValid, ge.Stage)

	_, err = g.Draw(3, []domain.GameObject{obj}, nil)
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, StageDistractor, ge.Stage)

	objs, err := g.Draw(1, []domain.GameObject{obj}, nil)
	require.NoError(t, err)
	assert.Equal(t, "o1", objs[0].ID)

	_, err = g.Draw(0, []domain.GameObject{obj}, nil)
	assert.ErrorIs(t, err, ErrInvalidCount)
}
