package domain

import (
	"fmt"
	"time"
)

// GameObject is one selectable tile of a round.
type GameObject struct {
	ID     string `json:"id"`
	Color  Color  `json:"color"`
	Shape  Shape  `json:"shape"`
	Number int    `json:"number"`
}

// Predicate holds the semantic parameters of an atomic rule.
// Only the fields relevant to Category are meaningful.
type Predicate struct {
	Category  Category  `json:"category"`
	Color     Color     `json:"color,omitempty"`
	Shape     Shape     `json:"shape,omitempty"`
	Condition Condition `json:"condition,omitempty"`
	Threshold int       `json:"threshold,omitempty"`
}

// Match reports whether o satisfies the predicate.
func (p Predicate) Match(o GameObject) bool {
	switch p.Category {
	case CategoryColor:
		return o.Color == p.Color
	case CategoryShape:
		return o.Shape == p.Shape
	case CategoryNumber:
		switch p.Condition {
		case Even:
			return o.Number%2 == 0
		case Odd:
			return o.Number%2 != 0
		case GreaterThan:
			return o.Number > p.Threshold
		case LessThan:
			return o.Number < p.Threshold
		}
	}
	return false
}

// Key is the stable identifier of the predicate.
func (p Predicate) Key() string {
	switch p.Category {
	case CategoryColor:
		return "color_" + p.Color.String()
	case CategoryShape:
		return "shape_" + p.Shape.String()
	case CategoryNumber:
		switch p.Condition {
		case GreaterThan, LessThan:
			return fmt.Sprintf("num_%s_%d", p.Condition, p.Threshold)
		default:
			return "num_" + p.Condition.String()
		}
	}
	return "unknown"
}

// Rule is an atomic predicate, optionally negated, with its rendered text.
// Negated rules keep the inner predicate so their text can be rebuilt from
// parameters rather than from a previous rendering.
type Rule struct {
	ID          string    `json:"id"`
	Predicate   Predicate `json:"predicate"`
	Negated     bool      `json:"negated,omitempty"`
	Description string    `json:"description"`
}

// NewRule builds a rule with a stable id derived from its parameters.
func NewRule(p Predicate, negated bool, description string) *Rule {
	return &Rule{ID: ruleID(p, negated), Predicate: p, Negated: negated, Description: description}
}

func ruleID(p Predicate, negated bool) string {
	if negated {
		return "not_" + p.Key()
	}
	return p.Key()
}

// Check reports whether o satisfies the rule. It depends only on o.
func (r *Rule) Check(o GameObject) bool {
	return r.Predicate.Match(o) != r.Negated
}

// Negate returns the complement of r. The description is left empty for the
// caller to render.
func Negate(r *Rule) *Rule {
	return NewRule(r.Predicate, !r.Negated, "")
}

// SatisfiesAll reports whether o passes every rule; true for an empty set.
func SatisfiesAll(rules []*Rule, o GameObject) bool {
	for _, r := range rules {
		if !r.Check(o) {
			return false
		}
	}
	return true
}

// ObjectStatus pairs an object with its satisfaction of the active rules.
type ObjectStatus struct {
	GameObject
	Valid bool `json:"valid,omitempty"`
}

// RuleView is the player-facing rendering of a rule.
type RuleView struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// HUD is the heads-up display state.
type HUD struct {
	Level       int  `json:"level"`
	Mistakes    int  `json:"mistakes"`
	MaxMistakes int  `json:"maxMistakes"`
	Score       int  `json:"score"`
	Warning     bool `json:"warning,omitempty"`
}

// TimerView reports countdown progress.
type TimerView struct {
	RemainingMs int64 `json:"remainingMs"`
	TotalMs     int64 `json:"totalMs"`
	Critical    bool  `json:"critical,omitempty"`
}

// NewTimerView converts a countdown; critical under 30% remaining.
func NewTimerView(remaining, total time.Duration) TimerView {
	if remaining < 0 {
		remaining = 0
	}
	return TimerView{
		RemainingMs: remaining.Milliseconds(),
		TotalMs:     total.Milliseconds(),
		Critical:    total > 0 && remaining*10 < total*3,
	}
}

// Summary is shown when the game ends.
type Summary struct {
	Level int `json:"level"`
	Score int `json:"score"`
}

// Hint describes the valid object for the debug overlay.
type Hint struct {
	Message  string `json:"message,omitempty"`
	ObjectID string `json:"objectId,omitempty"`
}

// Snapshot is the full observable state of a game session.
type Snapshot struct {
	Phase       Phase          `json:"phase"`
	HUD         HUD            `json:"hud"`
	Rules       []RuleView     `json:"rules"`
	Objects     []ObjectStatus `json:"objects"`
	Timer       TimerView      `json:"timer"`
	Token       uint64         `json:"token"`
	Debug       bool           `json:"debug,omitempty"`
	Distraction []string       `json:"distraction,omitempty"`
}
