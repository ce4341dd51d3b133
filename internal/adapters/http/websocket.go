package httpadapter

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"svw.info/rulerush/internal/domain"
	"svw.info/rulerush/internal/game"
	"svw.info/rulerush/internal/usecase"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// wsRequest is a player event sent by the client.
type wsRequest struct {
	Type     string `json:"type"`
	ObjectID string `json:"objectId,omitempty"`
	Enabled  bool   `json:"enabled,omitempty"`
	Seed     uint64 `json:"seed,omitempty"`
	Debug    bool   `json:"debug,omitempty"`
}

// wsEvent is pushed to the client. Type selects which fields are set.
type wsEvent struct {
	Type        string                `json:"type"`
	Session     string                `json:"session,omitempty"`
	Rules       []domain.RuleView     `json:"rules,omitempty"`
	Objects     []domain.ObjectStatus `json:"objects,omitempty"`
	Distraction []string              `json:"distraction,omitempty"`
	HUD         *domain.HUD           `json:"hud,omitempty"`
	Timer       *domain.TimerView     `json:"timer,omitempty"`
	Feedback    domain.Feedback       `json:"feedback,omitempty"`
	Summary     *domain.Summary       `json:"summary,omitempty"`
	State       *domain.Snapshot      `json:"state,omitempty"`
	Error       string                `json:"error,omitempty"`
}

// wsConn renders a session onto one websocket connection.
type wsConn struct {
	conn *websocket.Conn
	wmu  sync.Mutex

	mu      sync.Mutex
	session string
	detach  func()
}

func (c *wsConn) send(ev wsEvent) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(ev)
}

func (c *wsConn) RenderRules(rules []domain.RuleView) {
	_ = c.send(wsEvent{Type: "rules", Rules: rules})
}

func (c *wsConn) RenderGrid(objects []domain.ObjectStatus, d domain.Distraction) {
	_ = c.send(wsEvent{Type: "grid", Objects: objects, Distraction: d.Classes()})
}

func (c *wsConn) UpdateHUD(hud domain.HUD) { _ = c.send(wsEvent{Type: "hud", HUD: &hud}) }

func (c *wsConn) UpdateTimer(t domain.TimerView) { _ = c.send(wsEvent{Type: "timer", Timer: &t}) }

func (c *wsConn) Feedback(kind domain.Feedback) {
	_ = c.send(wsEvent{Type: "feedback", Feedback: kind})
}

func (c *wsConn) GameOver(summary domain.Summary) {
	_ = c.send(wsEvent{Type: "gameover", Summary: &summary})
}

func (c *wsConn) current() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// bind switches the connection to session id.
func (c *wsConn) bind(id string, detach func()) {
	c.mu.Lock()
	old := c.detach
	c.session, c.detach = id, detach
	c.mu.Unlock()
	if old != nil {
		old()
	}
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Logger.Warn("websocket upgrade", "err", err)
		return
	}
	defer ws.Close()

	c := &wsConn{conn: ws}
	defer c.bind("", nil)

	if id := strings.TrimSpace(r.URL.Query().Get("session")); id != "" {
		if err := h.join(r.Context(), c, id); err != nil {
			_ = c.send(wsEvent{Type: "error", Error: err.Error()})
			return
		}
	}

	cfg := h.UC.Config
	limiter := rate.NewLimiter(rate.Limit(cfg.Server.EventsPerSecond), cfg.Server.EventBurst)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		<-ctx.Done()
		// unblocks ReadJSON once the ticker fails
		return ws.Close()
	})
	g.Go(func() error { return h.readLoop(ctx, c, limiter) })
	g.Go(func() error { return h.tickLoop(ctx, c, cfg.Game.TickInterval) })

	if err := g.Wait(); err != nil && !isClosed(err) {
		h.Logger.Debug("websocket closed", "err", err)
	}
}

func isClosed(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, net.ErrClosed) ||
		websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway)
}

func (h *Handler) join(ctx context.Context, c *wsConn, id string) error {
	snap, err := h.UC.State(ctx, id)
	if err != nil {
		return err
	}
	detach, err := h.UC.Attach(ctx, id, c)
	if err != nil {
		return err
	}
	c.bind(id, detach)
	return c.send(wsEvent{Type: "state", Session: id, State: &snap})
}

func (h *Handler) readLoop(ctx context.Context, c *wsConn, limiter *rate.Limiter) error {
	for {
		var req wsRequest
		if err := c.conn.ReadJSON(&req); err != nil {
			return err
		}
		if !limiter.Allow() {
			if err := c.send(wsEvent{Type: "error", Error: "too many events"}); err != nil {
				return err
			}
			continue
		}
		if err := h.dispatch(ctx, c, req); err != nil {
			if sendErr := c.send(wsEvent{Type: "error", Error: err.Error()}); sendErr != nil {
				return sendErr
			}
		}
	}
}

// dispatch applies one client event. Errors are reported to the client and
// do not end the connection.
func (h *Handler) dispatch(ctx context.Context, c *wsConn, req wsRequest) error {
	id := c.current()
	if req.Type != "start" && id == "" {
		return usecase.ErrSessionNotFound
	}
	var err error
	switch req.Type {
	case "start":
		if id != "" {
			_, err = h.UC.Restart(ctx, id)
			return err
		}
		var s *usecase.Session
		s, _, err = h.UC.Create(ctx, usecase.StartOptions{Seed: req.Seed, Debug: req.Debug})
		if err != nil {
			return err
		}
		return h.join(ctx, c, s.ID)
	case "select":
		_, _, err = h.UC.Select(ctx, id, req.ObjectID)
		if errors.Is(err, game.ErrNotActive) {
			return nil
		}
	case "debug":
		_, err = h.UC.SetDebug(ctx, id, req.Enabled)
	case "restart":
		_, err = h.UC.Restart(ctx, id)
	case "quit":
		var snap domain.Snapshot
		snap, err = h.UC.Quit(ctx, id)
		if err == nil {
			err = c.send(wsEvent{Type: "state", Session: id, State: &snap})
		}
	default:
		err = errors.New("unknown event type " + req.Type)
	}
	return err
}

// tickLoop advances the session's countdown at a fixed interval. The token is
// read before each tick so a round replaced in between ignores it.
func (h *Handler) tickLoop(ctx context.Context, c *wsConn, every time.Duration) error {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
		id := c.current()
		if id == "" {
			continue
		}
		token, active, err := h.UC.Token(ctx, id)
		if err != nil {
			return err
		}
		if !active {
			continue
		}
		if _, _, err := h.UC.Tick(ctx, id, token, every); err != nil && !errors.Is(err, game.ErrRoundUnavailable) {
			return err
		}
	}
}
