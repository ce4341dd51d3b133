package game

import (
	"context"
	"errors"
	"fmt"

	"svw.info/rulerush/internal/domain"
	"svw.info/rulerush/internal/generator"
)

// maxRedraws bounds how often a new round replaces a rolled back rule.
const maxRedraws = 3

type regenPath string

const (
	pathRound   regenPath = "round"
	pathPenalty regenPath = "penalty"
)

func (c *Controller) nextRound(ctx context.Context) error {
	for _, r := range c.rules {
		c.deps.Rules.Refresh(r, c.level)
	}
	c.addRule()
	if err := c.regenerate(ctx, pathRound); err != nil {
		return c.abort(err)
	}
	c.beginRound()
	return nil
}

func (c *Controller) succeed(ctx context.Context) error {
	c.deps.Renderer.Feedback(domain.FeedbackSuccess)
	c.deps.Metrics.Round(string(OutcomeCorrect))
	c.score += c.cfg.ScorePerLevel * c.level
	c.level++
	return c.nextRound(ctx)
}

// fail handles a wrong pick or a timeout: one mistake, then either game over
// or a penalty rule and a fresh pool at the same level.
func (c *Controller) fail(ctx context.Context, kind domain.Feedback) error {
	c.mistakes++
	c.deps.Renderer.Feedback(kind)
	c.deps.Metrics.Round(string(kind))
	c.deps.Renderer.UpdateHUD(c.hud())

	if c.mistakes >= c.cfg.MaxMistakes {
		c.endGame()
		return nil
	}
	c.addRule()
	c.deps.Renderer.RenderRules(c.ruleViews())
	if err := c.regenerate(ctx, pathPenalty); err != nil {
		return c.abort(err)
	}
	c.beginRound()
	return nil
}

func (c *Controller) addRule() {
	r := c.deps.Rules.Generate(c.level)
	c.rules = append(c.rules, r)
	c.pending = append(c.pending, r.ID)
	c.deps.Metrics.Rule(r.Predicate.Category.String(), r.Negated)
}

// rollback drops the most recently added rule.
func (c *Controller) rollback(path regenPath) {
	last := len(c.rules) - 1
	dropped := c.rules[last]
	c.rules = c.rules[:last]
	c.pending = c.pending[:len(c.pending)-1]
	c.deps.Metrics.Rollback(string(path))
	c.log.Debug("rolled back rule", "rule", dropped.ID, "path", path, "level", c.level, "remaining", len(c.rules))
}

// regenerate fills the pool for the current level. A rule set gets
// 1+GenerationRetries sampling tries; after that its newest pending rule is
// dropped. On the round path a rule set left with nothing pending gets a
// replacement rule, at most maxRedraws times. A feasible set with nothing
// pending already produced a round, so its pool is drawn from the solver's
// partition instead of ending the game on sampling luck.
func (c *Controller) regenerate(ctx context.Context, path regenPath) error {
	count := ObjectCount(c.cfg, c.level)
	tries := 1 + c.cfg.GenerationRetries
	redraws := 0
	for {
		feasible := c.feasible(count)
		if feasible {
			for i := 0; i < tries; i++ {
				objs, st, err := c.deps.Objects.Generate(ctx, count, c.rules)
				if err == nil {
					return c.accept(ctx, objs, st.Attempts)
				}
				var ge *generator.GenerationError
				if !errors.As(err, &ge) {
					return err
				}
				c.deps.Metrics.GenerationFailure(string(ge.Stage))
			}
		}

		switch {
		case len(c.pending) > 0:
			c.rollback(path)
		case path == pathRound && redraws < maxRedraws:
			redraws++
			c.addRule()
		case feasible:
			return c.draw(ctx, count)
		default:
			return fmt.Errorf("%w: level %d with %d rules", ErrRoundUnavailable, c.level, len(c.rules))
		}
	}
}

// draw builds the pool from the solver's partition of the domain.
func (c *Controller) draw(ctx context.Context, count int) error {
	valid, rest := c.deps.Solver.Partition(c.rules)
	objs, err := c.deps.Objects.Draw(count, valid, rest)
	if err != nil {
		return err
	}
	c.log.Debug("pool drawn from partition", "level", c.level, "rules", len(c.rules), "solutions", len(valid))
	return c.accept(ctx, objs, 0)
}

// feasible asks the solver whether sampling can succeed at all: some object
// must pass every rule, and for more than one object some must fail.
func (c *Controller) feasible(count int) bool {
	if !c.deps.Solver.Satisfiable(c.rules) || (count > 1 && c.deps.Solver.Tautology(c.rules)) {
		c.deps.Metrics.GenerationFailure("unsatisfiable")
		return false
	}
	return true
}

func (c *Controller) accept(ctx context.Context, objs []domain.GameObject, attempts int) error {
	ok, valid, err := c.deps.Validator.Validate(ctx, objs, c.rules)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("inconsistent round: %d valid objects", len(valid))
	}
	c.objects = objs
	c.pending = c.pending[:0]
	if attempts > 0 {
		c.deps.Metrics.Generated(attempts)
	}
	return nil
}

func (c *Controller) beginRound() {
	c.timer.arm(RoundDuration(c.cfg, c.level))
	c.phase = domain.PhaseRoundActive

	r := c.deps.Renderer
	r.UpdateHUD(c.hud())
	r.RenderRules(c.ruleViews())
	c.renderGrid()
	r.UpdateTimer(domain.NewTimerView(c.timer.remaining, c.timer.total))
}

func (c *Controller) endGame() {
	c.timer.disarm()
	c.phase = domain.PhaseGameOver
	c.deps.Metrics.GameOver(c.level)
	c.deps.Renderer.GameOver(domain.Summary{Level: c.level, Score: c.score})
}

// abort ends the game when a round cannot be set up, so no half-built round
// stays reachable.
func (c *Controller) abort(err error) error {
	c.log.Warn("round setup failed", "level", c.level, "rules", len(c.rules), "err", err)
	c.endGame()
	return err
}
