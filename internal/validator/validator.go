package validator

import (
	"context"

	"svw.info/rulerush/internal/domain"
)

type RoundValidator struct{}

func New() *RoundValidator { return &RoundValidator{} }

// Validate reports whether exactly one object satisfies every rule and
// returns the ids of all objects that do.
func (v *RoundValidator) Validate(ctx context.Context, objects []domain.GameObject, rules []*domain.Rule) (bool, []string, error) {
	if err := ctx.Err(); err != nil {
		return false, nil, err
	}
	valid := make([]string, 0, 1)
	seen := make(map[string]bool, len(objects))
	for _, o := range objects {
		if seen[o.ID] {
			// duplicate ids make selection ambiguous
			return false, valid, nil
		}
		seen[o.ID] = true
		if domain.SatisfiesAll(rules, o) {
			valid = append(valid, o.ID)
		}
	}
	return len(valid) == 1, valid, nil
}

// Annotate marks each object with whether it satisfies every rule.
func Annotate(objects []domain.GameObject, rules []*domain.Rule) []domain.ObjectStatus {
	out := make([]domain.ObjectStatus, len(objects))
	for i, o := range objects {
		out[i] = domain.ObjectStatus{GameObject: o, Valid: domain.SatisfiesAll(rules, o)}
	}
	return out
}
