package rules

import (
	"pgregory.net/rand"

	"svw.info/rulerush/internal/config"
	"svw.info/rulerush/internal/domain"
	"svw.info/rulerush/internal/phrasing"
)

// Factory draws random rules. It is not safe for concurrent use.
type Factory struct {
	cfg    config.Rules
	rng    *rand.Rand
	phrase *phrasing.Phrasebook
}

// NewFactory wires a factory around a seeded generator.
func NewFactory(cfg config.Rules, rng *rand.Rand, pb *phrasing.Phrasebook) *Factory {
	if pb == nil {
		pb = phrasing.Default()
	}
	return &Factory{cfg: cfg, rng: rng, phrase: pb}
}

// Generate draws a rule for the given difficulty level.
func (f *Factory) Generate(level int) *domain.Rule {
	p := f.predicate()
	negated := level >= f.cfg.NegationMinLevel && f.rng.Float64() < f.cfg.NegationProbability
	return domain.NewRule(p, negated, f.phrase.Render(f.rng, p, negated))
}

// Refresh re-rolls the description of r from its parameters. Wording does not
// depend on the level.
func (f *Factory) Refresh(r *domain.Rule, _ int) {
	r.Description = f.phrase.Render(f.rng, r.Predicate, r.Negated)
}

func (f *Factory) predicate() domain.Predicate {
	cat := domain.Categories[f.rng.Intn(len(domain.Categories))]
	switch cat {
	case domain.CategoryColor:
		return domain.Predicate{Category: cat, Color: domain.Colors[f.rng.Intn(len(domain.Colors))]}
	case domain.CategoryShape:
		return domain.Predicate{Category: cat, Shape: domain.Shapes[f.rng.Intn(len(domain.Shapes))]}
	}
	p := domain.Predicate{Category: domain.CategoryNumber, Condition: domain.Conditions[f.rng.Intn(len(domain.Conditions))]}
	switch p.Condition {
	case domain.GreaterThan:
		p.Threshold = f.between(f.cfg.GreaterThanMin, f.cfg.GreaterThanMax)
	case domain.LessThan:
		p.Threshold = f.between(f.cfg.LessThanMin, f.cfg.LessThanMax)
	}
	return p
}

// between draws uniformly from [lo, hi].
func (f *Factory) between(lo, hi int) int {
	return lo + f.rng.Intn(hi-lo+1)
}
