package domain

import (
	"fmt"
	"strings"
)

// Color is one of the six object colors.
type Color uint8

const (
	Red Color = iota
	Blue
	Green
	Yellow
	Purple
	Cyan
)

// Colors lists every color in domain order.
var Colors = [...]Color{Red, Blue, Green, Yellow, Purple, Cyan}

var colorNames = [...]string{"red", "blue", "green", "yellow", "purple", "cyan"}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "unknown"
}

// Shape is one of the three object shapes.
type Shape uint8

const (
	Circle Shape = iota
	Square
	Triangle
)

// Shapes lists every shape in domain order.
var Shapes = [...]Shape{Circle, Square, Triangle}

var shapeNames = [...]string{"circle", "square", "triangle"}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "unknown"
}

// Number bounds for game objects (inclusive).
const (
	MinNumber = 1
	MaxNumber = 9
)

// DomainSize is the number of distinct attribute combinations.
const DomainSize = len(Colors) * len(Shapes) * (MaxNumber - MinNumber + 1)

// Category selects which attribute an atomic rule inspects.
type Category uint8

const (
	CategoryColor Category = iota
	CategoryShape
	CategoryNumber
)

// Categories lists the categories a rule factory picks from.
var Categories = [...]Category{CategoryColor, CategoryShape, CategoryNumber}

func (c Category) String() string {
	switch c {
	case CategoryColor:
		return "color"
	case CategoryShape:
		return "shape"
	case CategoryNumber:
		return "number"
	default:
		return "unknown"
	}
}

// Condition is the comparison of a number rule.
type Condition uint8

const (
	Even Condition = iota
	Odd
	GreaterThan
	LessThan
)

// Conditions lists the number conditions a rule factory picks from.
var Conditions = [...]Condition{Even, Odd, GreaterThan, LessThan}

func (c Condition) String() string {
	switch c {
	case Even:
		return "even"
	case Odd:
		return "odd"
	case GreaterThan:
		return "gt"
	case LessThan:
		return "lt"
	default:
		return "unknown"
	}
}

// Phase is the round controller state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRoundActive
	PhaseRoundResolving
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRoundActive:
		return "active"
	case PhaseRoundResolving:
		return "resolving"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// MarshalText renders the phase name in JSON payloads.
func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Feedback signals the outcome of a player event.
type Feedback string

const (
	FeedbackSuccess Feedback = "success"
	FeedbackMistake Feedback = "mistake"
	FeedbackTimeout Feedback = "timeout"
)

// Distraction is a bit set of visual noise effects applied to the grid.
type Distraction uint8

const (
	DistractionPulse Distraction = 1 << iota
	DistractionJitter
	DistractionSpin
)

// DistractionFor mirrors the level thresholds of the web client.
func DistractionFor(level int) Distraction {
	var d Distraction
	if level >= 3 {
		d |= DistractionPulse
	}
	if level >= 6 {
		d |= DistractionSpin
	} else if level >= 4 {
		d |= DistractionJitter
	}
	return d
}

// Classes returns the CSS class names for the set effects.
func (d Distraction) Classes() []string {
	var out []string
	if d&DistractionPulse != 0 {
		out = append(out, "distraction-pulse")
	}
	if d&DistractionJitter != 0 {
		out = append(out, "distraction-jitter")
	}
	if d&DistractionSpin != 0 {
		out = append(out, "distraction-spin")
	}
	return out
}

func (d Distraction) String() string {
	if d == 0 {
		return "none"
	}
	return strings.Join(d.Classes(), ",")
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (s Shape) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c Condition) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Color) UnmarshalText(b []byte) error {
	for i, n := range colorNames {
		if n == string(b) {
			*c = Color(i)
			return nil
		}
	}
	return fmt.Errorf("unknown color %q", b)
}

func (s *Shape) UnmarshalText(b []byte) error {
	for i, n := range shapeNames {
		if n == string(b) {
			*s = Shape(i)
			return nil
		}
	}
	return fmt.Errorf("unknown shape %q", b)
}

func (p *Phase) UnmarshalText(b []byte) error {
	for _, q := range []Phase{PhaseIdle, PhaseRoundActive, PhaseRoundResolving, PhaseGameOver} {
		if q.String() == string(b) {
			*p = q
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", b)
}
