package hint

import (
	"context"
	"fmt"

	"svw.info/rulerush/internal/domain"
)

// Reveal implements a Hinter that points at the object satisfying every rule.
type Reveal struct{}

func NewReveal() *Reveal { return &Reveal{} }

// Hint returns the first object that passes every rule.
func (h *Reveal) Hint(ctx context.Context, objects []domain.GameObject, rules []*domain.Rule) (domain.Hint, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Hint{}, false, err
	}
	for _, o := range objects {
		if domain.SatisfiesAll(rules, o) {
			msg := fmt.Sprintf("Pick the %s %s showing %d", o.Color, o.Shape, o.Number)
			return domain.Hint{Message: msg, ObjectID: o.ID}, true, nil
		}
	}
	return domain.Hint{}, false, nil
}
