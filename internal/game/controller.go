package game

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"svw.info/rulerush/internal/config"
	"svw.info/rulerush/internal/domain"
	"svw.info/rulerush/internal/observability"
	"svw.info/rulerush/internal/ports"
	"svw.info/rulerush/internal/validator"
)

var (
	// ErrNotActive is returned for player events outside an active round.
	ErrNotActive = errors.New("no active round")
	// ErrRoundUnavailable is returned when rollback could not recover a round.
	ErrRoundUnavailable = errors.New("round could not be generated")
)

// Outcome classifies the effect of a player event.
type Outcome string

const (
	OutcomeNone    Outcome = ""
	OutcomeIgnored Outcome = "ignored"
	OutcomeCorrect Outcome = "correct"
	OutcomeMistake Outcome = "mistake"
	OutcomeTimeout Outcome = "timeout"
)

// Deps are the collaborators of a Controller. Renderer, Metrics and Logger
// are optional.
type Deps struct {
	Rules     ports.RuleFactory
	Objects   ports.ObjectGenerator
	Solver    ports.Solver
	Validator ports.Validator
	Renderer  ports.Renderer
	Metrics   *observability.Metrics
	Logger    *slog.Logger
}

// Controller runs one game: rule accumulation, rounds, mistakes and the
// countdown. It is not safe for concurrent use.
type Controller struct {
	cfg  config.Game
	deps Deps
	log  *slog.Logger

	phase    domain.Phase
	level    int
	score    int
	mistakes int
	rules    []*domain.Rule
	// pending holds ids of rules added since the last successful generation,
	// newest last. They are always the tail of rules.
	pending []string
	objects []domain.GameObject
	debug   bool
	timer   countdown
}

func New(cfg config.Game, deps Deps) *Controller {
	if deps.Renderer == nil {
		deps.Renderer = ports.NopRenderer{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Controller{cfg: cfg, deps: deps, log: deps.Logger, phase: domain.PhaseIdle}
}

// Start resets the session and begins level 1.
func (c *Controller) Start(ctx context.Context) error {
	c.timer.disarm()
	c.phase = domain.PhaseRoundResolving
	c.level = 1
	c.score = 0
	c.mistakes = 0
	c.rules = nil
	c.pending = nil
	c.objects = nil
	c.deps.Metrics.GameStarted()
	return c.nextRound(ctx)
}

// Select resolves the round with the object the player picked.
// Unknown ids count as a wrong pick.
func (c *Controller) Select(ctx context.Context, objectID string) (Outcome, error) {
	if c.phase != domain.PhaseRoundActive {
		return OutcomeIgnored, ErrNotActive
	}
	c.timer.disarm()
	c.phase = domain.PhaseRoundResolving

	for _, o := range c.objects {
		if o.ID == objectID && domain.SatisfiesAll(c.rules, o) {
			return OutcomeCorrect, c.succeed(ctx)
		}
	}
	return OutcomeMistake, c.fail(ctx, domain.FeedbackMistake)
}

// Tick advances the countdown of the round identified by token. Ticks for a
// superseded round, or outside an active round, are ignored.
func (c *Controller) Tick(ctx context.Context, token uint64, dt time.Duration) (Outcome, error) {
	if c.phase != domain.PhaseRoundActive || !c.timer.accepts(token) {
		return OutcomeIgnored, nil
	}
	expired := c.timer.advance(dt)
	c.deps.Renderer.UpdateTimer(domain.NewTimerView(c.timer.remaining, c.timer.total))
	if !expired {
		return OutcomeNone, nil
	}
	c.timer.disarm()
	c.phase = domain.PhaseRoundResolving
	return OutcomeTimeout, c.fail(ctx, domain.FeedbackTimeout)
}

// SetDebug toggles the overlay marking objects that satisfy every rule.
func (c *Controller) SetDebug(on bool) {
	c.debug = on
	if len(c.objects) > 0 {
		c.renderGrid()
	}
}

// Quit returns to the menu, abandoning the current round.
func (c *Controller) Quit() {
	c.timer.disarm()
	c.phase = domain.PhaseIdle
}

// Phase returns the current state.
func (c *Controller) Phase() domain.Phase { return c.phase }

// Token identifies the armed countdown for Tick.
func (c *Controller) Token() uint64 { return c.timer.token }

// Debug reports whether the overlay is on.
func (c *Controller) Debug() bool { return c.debug }

// Round returns the current objects and active rules.
func (c *Controller) Round() ([]domain.GameObject, []*domain.Rule) {
	return c.objects, c.rules
}

// Snapshot captures the observable state.
func (c *Controller) Snapshot() domain.Snapshot {
	s := domain.Snapshot{
		Phase:       c.phase,
		HUD:         c.hud(),
		Rules:       c.ruleViews(),
		Objects:     c.statuses(),
		Token:       c.timer.token,
		Debug:       c.debug,
		Distraction: domain.DistractionFor(c.level).Classes(),
	}
	if c.timer.armed {
		s.Timer = domain.NewTimerView(c.timer.remaining, c.timer.total)
	}
	return s
}

func (c *Controller) hud() domain.HUD {
	return domain.HUD{
		Level:       c.level,
		Mistakes:    c.mistakes,
		MaxMistakes: c.cfg.MaxMistakes,
		Score:       c.score,
		Warning:     c.cfg.MaxMistakes > 1 && c.mistakes >= c.cfg.MaxMistakes-1,
	}
}

func (c *Controller) ruleViews() []domain.RuleView {
	out := make([]domain.RuleView, len(c.rules))
	for i, r := range c.rules {
		out[i] = domain.RuleView{ID: r.ID, Description: r.Description}
	}
	return out
}

// statuses hides satisfaction unless the overlay is on.
func (c *Controller) statuses() []domain.ObjectStatus {
	if c.debug {
		return validator.Annotate(c.objects, c.rules)
	}
	out := make([]domain.ObjectStatus, len(c.objects))
	for i, o := range c.objects {
		out[i] = domain.ObjectStatus{GameObject: o}
	}
	return out
}

func (c *Controller) renderGrid() {
	c.deps.Renderer.RenderGrid(c.statuses(), domain.DistractionFor(c.level))
}
