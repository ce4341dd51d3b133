package generator

import (
	"context"
	"strconv"
	"time"

	"svw.info/rulerush/internal/domain"
	"svw.info/rulerush/internal/ports"
)

// Generate returns count objects of which exactly one satisfies every rule.
// It fails with a *GenerationError rather than returning a short pool.
func (g *Pool) Generate(ctx context.Context, count int, rules []*domain.Rule) ([]domain.GameObject, ports.Stats, error) {
	start := time.Now()
	if count < 1 {
		return nil, ports.Stats{}, ErrInvalidCount
	}
	attempts := 0
	stats := func() ports.Stats { return ports.Stats{Attempts: attempts, Duration: time.Since(start)} }

	out := make([]domain.GameObject, 0, count)

	// 1) the answer
	found := false
	for i := 0; i < g.cfg.ValidAttempts; i++ {
		if err := ctx.Err(); err != nil {
			return nil, stats(), err
		}
		attempts++
		o := g.randomObject()
		if domain.SatisfiesAll(rules, o) {
			out = append(out, o)
			found = true
			break
		}
	}
	if !found {
		return nil, stats(), &GenerationError{Stage: StageValid, Attempts: g.cfg.ValidAttempts}
	}

	// 2) distractors, each failing at least one rule
	for slot := 0; slot < count-1; slot++ {
		found = false
		for i := 0; i < g.cfg.DistractorAttempts; i++ {
			if err := ctx.Err(); err != nil {
				return nil, stats(), err
			}
			attempts++
			o := g.randomObject()
			if !domain.SatisfiesAll(rules, o) {
				out = append(out, o)
				found = true
				break
			}
		}
		if !found {
			return nil, stats(), &GenerationError{Stage: StageDistractor, Slot: slot, Attempts: g.cfg.DistractorAttempts}
		}
	}

	return g.arrange(out), stats(), nil
}

// Draw builds a pool from candidate sets instead of sampling: the answer is
// picked from valid, each distractor from rest.
func (g *Pool) Draw(count int, valid, rest []domain.GameObject) ([]domain.GameObject, error) {
	if count < 1 {
		return nil, ErrInvalidCount
	}
	if len(valid) == 0 {
		return nil, &GenerationError{Stage: StageValid}
	}
	if count > 1 && len(rest) == 0 {
		return nil, &GenerationError{Stage: StageDistractor}
	}
	out := make([]domain.GameObject, 0, count)
	out = append(out, valid[g.rng.Intn(len(valid))])
	for len(out) < count {
		out = append(out, rest[g.rng.Intn(len(rest))])
	}
	return g.arrange(out), nil
}

// arrange shuffles the pool into presentation order and numbers the ids.
func (g *Pool) arrange(out []domain.GameObject) []domain.GameObject {
	g.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	for i := range out {
		out[i].ID = "o" + strconv.Itoa(i+1)
	}
	return out
}

func (g *Pool) randomObject() domain.GameObject {
	return domain.GameObject{
		Color:  domain.Colors[g.rng.Intn(len(domain.Colors))],
		Shape:  domain.Shapes[g.rng.Intn(len(domain.Shapes))],
		Number: domain.MinNumber + g.rng.Intn(domain.MaxNumber-domain.MinNumber+1),
	}
}
