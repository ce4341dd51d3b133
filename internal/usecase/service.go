package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"pgregory.net/rand"

	"svw.info/rulerush/internal/config"
	"svw.info/rulerush/internal/domain"
	"svw.info/rulerush/internal/game"
	"svw.info/rulerush/internal/generator"
	"svw.info/rulerush/internal/infrastructure/storage"
	"svw.info/rulerush/internal/observability"
	"svw.info/rulerush/internal/phrasing"
	"svw.info/rulerush/internal/ports"
	"svw.info/rulerush/internal/rules"
	"svw.info/rulerush/internal/solver"
	"svw.info/rulerush/internal/validator"
)

// SessionStore holds live sessions.
type SessionStore interface {
	Save(ctx context.Context, id string, s *Session) error
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]string, error)
	Len() int
}

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrDebugDisabled   = errors.New("debug overlay is off")
	errNotConfigured   = errors.New("usecase dependency not configured")
)

type Service struct {
	Config  config.Config
	Store   SessionStore
	Hinter  ports.Hinter
	Metrics *observability.Metrics
	Logger  *slog.Logger

	solver    *solver.Exhaustive
	validator *validator.RoundValidator
	phrases   *phrasing.Phrasebook
}

func NewService(cfg config.Config, st SessionStore, h ports.Hinter, m *observability.Metrics, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		Config:    cfg,
		Store:     st,
		Hinter:    h,
		Metrics:   m,
		Logger:    logger,
		solver:    solver.New(),
		validator: validator.New(),
		phrases:   phrasing.Default(),
	}
}

// StartOptions configure a new session. A zero Seed picks the configured
// seed, or a random one.
type StartOptions struct {
	Seed  uint64
	Debug bool
}

// Create opens a session and starts its first round.
func (u *Service) Create(ctx context.Context, opts StartOptions) (*Session, domain.Snapshot, error) {
	if u.Store == nil {
		return nil, domain.Snapshot{}, errNotConfigured
	}
	seed := opts.Seed
	if seed == 0 {
		seed = u.Config.Server.Seed
	}
	if seed == 0 {
		seed = rand.Uint64()
	}
	s := u.newSession(seed)

	s.mu.Lock()
	s.game.SetDebug(opts.Debug)
	err := s.game.Start(context.WithoutCancel(ctx))
	snap := s.game.Snapshot()
	s.mu.Unlock()
	if err != nil {
		return nil, snap, err
	}

	if err := u.Store.Save(ctx, s.ID, s); err != nil {
		return nil, snap, err
	}
	u.Metrics.SessionsActive(u.Store.Len())
	u.Logger.Info("session started", "session", s.ID, "seed", seed)
	return s, snap, nil
}

func (u *Service) newSession(seed uint64) *Session {
	rng := rand.New(seed)
	relay := &Relay{}
	id := uuid.New().String()
	ctrl := game.New(u.Config.Game, game.Deps{
		Rules:     rules.NewFactory(u.Config.Rules, rng, u.phrases),
		Objects:   generator.NewPool(u.Config.Generator, rng),
		Solver:    u.solver,
		Validator: u.validator,
		Renderer:  relay,
		Metrics:   u.Metrics,
		Logger:    u.Logger.With("session", id),
	})
	return &Session{ID: id, Seed: seed, game: ctrl, relay: relay}
}

func (u *Service) session(ctx context.Context, id string) (*Session, error) {
	if u.Store == nil {
		return nil, errNotConfigured
	}
	s, err := u.Store.Load(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, err
}

// with runs fn on the session's controller under its lock and returns the
// resulting snapshot.
func (u *Service) with(ctx context.Context, id string, fn func(ctx context.Context, g *game.Controller) error) (domain.Snapshot, error) {
	s, err := u.session(ctx, id)
	if err != nil {
		return domain.Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	err = fn(context.WithoutCancel(ctx), s.game)
	return s.game.Snapshot(), err
}

func (u *Service) Select(ctx context.Context, id, objectID string) (game.Outcome, domain.Snapshot, error) {
	var out game.Outcome
	snap, err := u.with(ctx, id, func(ctx context.Context, g *game.Controller) error {
		var err error
		out, err = g.Select(ctx, objectID)
		return err
	})
	return out, snap, err
}

// Tick advances the countdown identified by token by dt.
func (u *Service) Tick(ctx context.Context, id string, token uint64, dt time.Duration) (game.Outcome, domain.Snapshot, error) {
	var out game.Outcome
	snap, err := u.with(ctx, id, func(ctx context.Context, g *game.Controller) error {
		var err error
		out, err = g.Tick(ctx, token, dt)
		return err
	})
	return out, snap, err
}

func (u *Service) SetDebug(ctx context.Context, id string, on bool) (domain.Snapshot, error) {
	return u.with(ctx, id, func(_ context.Context, g *game.Controller) error {
		g.SetDebug(on)
		return nil
	})
}

// Restart begins a new game in the same session.
func (u *Service) Restart(ctx context.Context, id string) (domain.Snapshot, error) {
	return u.with(ctx, id, func(ctx context.Context, g *game.Controller) error {
		return g.Start(ctx)
	})
}

// Quit returns the session to the menu.
func (u *Service) Quit(ctx context.Context, id string) (domain.Snapshot, error) {
	return u.with(ctx, id, func(_ context.Context, g *game.Controller) error {
		g.Quit()
		return nil
	})
}

func (u *Service) State(ctx context.Context, id string) (domain.Snapshot, error) {
	return u.with(ctx, id, func(context.Context, *game.Controller) error { return nil })
}

// Hint reveals the answer of the current round; only with the overlay on.
func (u *Service) Hint(ctx context.Context, id string) (domain.Hint, bool, error) {
	if u.Hinter == nil {
		return domain.Hint{}, false, errNotConfigured
	}
	var (
		h     domain.Hint
		found bool
	)
	_, err := u.with(ctx, id, func(ctx context.Context, g *game.Controller) error {
		if !g.Debug() {
			return ErrDebugDisabled
		}
		objs, rs := g.Round()
		var err error
		h, found, err = u.Hinter.Hint(ctx, objs, rs)
		return err
	})
	return h, found, err
}

// Attach routes render notifications of a session to r until detach is called.
func (u *Service) Attach(ctx context.Context, id string, r ports.Renderer) (detach func(), err error) {
	s, err := u.session(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.relay.Attach(r), nil
}

// Close ends and forgets a session.
func (u *Service) Close(ctx context.Context, id string) error {
	if u.Store == nil {
		return errNotConfigured
	}
	if err := u.Store.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
		}
		return err
	}
	u.Metrics.SessionsActive(u.Store.Len())
	return nil
}

// Token returns the countdown token of the session's current round, and
// whether a round is active.
func (u *Service) Token(ctx context.Context, id string) (uint64, bool, error) {
	s, err := u.session(ctx, id)
	if err != nil {
		return 0, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Token(), s.game.Phase() == domain.PhaseRoundActive, nil
}

// Shutdown ends every live session, oldest first.
func (u *Service) Shutdown(ctx context.Context) error {
	if u.Store == nil {
		return errNotConfigured
	}
	ids, err := u.Store.List(ctx)
	if err != nil {
		return err
	}
	var errs []error
	for _, id := range ids {
		if err := u.Close(ctx, id); err != nil && !errors.Is(err, ErrSessionNotFound) {
			errs = append(errs, err)
		}
	}
	u.Logger.Info("sessions closed", "count", len(ids))
	return errors.Join(errs...)
}
