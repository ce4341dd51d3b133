package ports

import (
	"context"
	"time"

	"svw.info/rulerush/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Attempts int
	Duration time.Duration
}

// RuleFactory produces random rules and re-rolls their wording.
type RuleFactory interface {
	Generate(level int) *domain.Rule
	Refresh(r *domain.Rule, level int)
}

// ObjectGenerator builds a round pool with exactly one object satisfying rules.
// Generate samples within a budget; Draw picks from candidate sets already
// known to pass (valid) and fail (rest) the rules.
type ObjectGenerator interface {
	Generate(ctx context.Context, count int, rules []*domain.Rule) ([]domain.GameObject, Stats, error)
	Draw(count int, valid, rest []domain.GameObject) ([]domain.GameObject, error)
}

// Solver answers satisfiability questions over the whole attribute domain.
type Solver interface {
	Satisfiable(rules []*domain.Rule) bool
	Tautology(rules []*domain.Rule) bool
	Partition(rules []*domain.Rule) (valid, rest []domain.GameObject)
}

// Validator checks the round post-condition.
type Validator interface {
	Validate(ctx context.Context, objects []domain.GameObject, rules []*domain.Rule) (ok bool, valid []string, err error)
}

// Hinter names the object a player should pick.
type Hinter interface {
	Hint(ctx context.Context, objects []domain.GameObject, rules []*domain.Rule) (domain.Hint, bool, error)
}
