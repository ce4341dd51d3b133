// Package phrasing renders rule parameters as varied player-facing text.
package phrasing

import (
	"fmt"
	"strings"

	"pgregory.net/rand"

	"svw.info/rulerush/internal/domain"
)

type template func(val string) string

// Phrasebook holds the phrasing pools per rule kind.
type Phrasebook struct {
	color, shape, even, odd []template
	gt, lt                  []func(n int) string
	negation                []template
}

// Default returns the built-in English phrasebook.
func Default() *Phrasebook {
	return &Phrasebook{
		color: []template{
			func(v string) string { return "Color is " + v },
			func(v string) string { return "Find something " + v },
			func(v string) string { return "Pick a " + v + " one" },
			func(v string) string { return "Target: " + v },
			func(v string) string { return "Remember: " + v },
			func(v string) string { return "Must be " + v },
		},
		shape: []template{
			func(v string) string { return "Shape is " + v },
			func(v string) string { return "Find a " + v },
			func(v string) string { return "Pick the " + v + "s" },
			func(v string) string { return "Target: " + v },
			func(v string) string { return "Object is a " + v },
			func(v string) string { return "Must be a " + v },
		},
		even: []template{
			func(string) string { return "Number is EVEN" },
			func(string) string { return "Pick an EVEN number" },
			func(string) string { return "Find an EVEN value" },
			func(string) string { return "Target: EVEN" },
		},
		odd: []template{
			func(string) string { return "Number is ODD" },
			func(string) string { return "Pick an ODD number" },
			func(string) string { return "Find an ODD value" },
			func(string) string { return "Target: ODD" },
		},
		gt: []func(int) string{
			func(n int) string { return fmt.Sprintf("Number > %d", n) },
			func(n int) string { return fmt.Sprintf("Greater than %d", n) },
			func(n int) string { return fmt.Sprintf("Find a number above %d", n) },
			func(n int) string { return fmt.Sprintf("At least %d", n+1) },
		},
		lt: []func(int) string{
			func(n int) string { return fmt.Sprintf("Number < %d", n) },
			func(n int) string { return fmt.Sprintf("Less than %d", n) },
			func(n int) string { return fmt.Sprintf("Find a number below %d", n) },
			func(n int) string { return fmt.Sprintf("At most %d", n-1) },
		},
		negation: []template{
			func(d string) string { return "NOT " + d },
			func(d string) string { return "DON'T pick: " + d },
			func(d string) string { return "AVOID " + d },
			func(d string) string { return "Except " + d },
		},
	}
}

// Describe renders p with a phrasing picked uniformly from its pool.
func (b *Phrasebook) Describe(rng *rand.Rand, p domain.Predicate) string {
	switch p.Category {
	case domain.CategoryColor:
		return pick(rng, b.color)(strings.ToUpper(p.Color.String()))
	case domain.CategoryShape:
		return pick(rng, b.shape)(strings.ToUpper(p.Shape.String()))
	case domain.CategoryNumber:
		switch p.Condition {
		case domain.Even:
			return pick(rng, b.even)("")
		case domain.Odd:
			return pick(rng, b.odd)("")
		case domain.GreaterThan:
			return pick(rng, b.gt)(p.Threshold)
		case domain.LessThan:
			return pick(rng, b.lt)(p.Threshold)
		}
	}
	return p.Key()
}

// Negate wraps an inner phrasing in a negation template.
func (b *Phrasebook) Negate(rng *rand.Rand, inner string) string {
	return pick(rng, b.negation)(inner)
}

// Render describes a full rule; negated rules get a fresh inner phrasing.
func (b *Phrasebook) Render(rng *rand.Rand, p domain.Predicate, negated bool) string {
	d := b.Describe(rng, p)
	if negated {
		return b.Negate(rng, d)
	}
	return d
}

func pick[T any](rng *rand.Rand, pool []T) T {
	return pool[rng.Intn(len(pool))]
}
