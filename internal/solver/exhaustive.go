package solver

import (
	"svw.info/rulerush/internal/domain"
)

// Exhaustive evaluates rule sets against every object of the attribute domain.
// The domain is 6 colors x 3 shapes x 9 numbers, small enough to walk fully.
type Exhaustive struct {
	domain []domain.GameObject
}

func New() *Exhaustive {
	all := make([]domain.GameObject, 0, domain.DomainSize)
	for _, c := range domain.Colors {
		for _, s := range domain.Shapes {
			for n := domain.MinNumber; n <= domain.MaxNumber; n++ {
				all = append(all, domain.GameObject{Color: c, Shape: s, Number: n})
			}
		}
	}
	return &Exhaustive{domain: all}
}

// Satisfiable reports whether at least one object passes every rule.
func (s *Exhaustive) Satisfiable(rules []*domain.Rule) bool {
	for _, o := range s.domain {
		if domain.SatisfiesAll(rules, o) {
			return true
		}
	}
	return false
}

// Partition splits the domain into objects that pass every rule and objects
// that fail at least one, both in domain order. The objects carry no id.
func (s *Exhaustive) Partition(rules []*domain.Rule) (valid, rest []domain.GameObject) {
	for _, o := range s.domain {
		if domain.SatisfiesAll(rules, o) {
			valid = append(valid, o)
		} else {
			rest = append(rest, o)
		}
	}
	return valid, rest
}

// Tautology reports whether every object passes, leaving no room for distractors.
func (s *Exhaustive) Tautology(rules []*domain.Rule) bool {
	for _, o := range s.domain {
		if !domain.SatisfiesAll(rules, o) {
			return false
		}
	}
	return true
}
