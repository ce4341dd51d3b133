package usecase

import (
	"sync"

	"svw.info/rulerush/internal/domain"
	"svw.info/rulerush/internal/game"
	"svw.info/rulerush/internal/ports"
)

// Session is one player's game. All controller access goes through mu.
type Session struct {
	ID   string
	Seed uint64

	mu    sync.Mutex
	game  *game.Controller
	relay *Relay
}

// Close abandons the game and detaches any renderer. Safe to call twice.
func (s *Session) Close() {
	s.mu.Lock()
	s.game.Quit()
	s.mu.Unlock()
	s.relay.Attach(nil)
}

// EvictSession is the store eviction hook.
func EvictSession(_ string, s *Session) { s.Close() }

// Relay forwards render notifications to whichever sink is attached.
type Relay struct {
	mu   sync.Mutex
	sink ports.Renderer
}

// Attach replaces the sink and returns a func restoring no sink, as long as
// no other sink replaced it in between.
func (r *Relay) Attach(sink ports.Renderer) (detach func()) {
	r.mu.Lock()
	r.sink = sink
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		if r.sink == sink {
			r.sink = nil
		}
		r.mu.Unlock()
	}
}

func (r *Relay) current() ports.Renderer {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sink == nil {
		return ports.NopRenderer{}
	}
	return r.sink
}

func (r *Relay) RenderRules(rules []domain.RuleView) { r.current().RenderRules(rules) }

func (r *Relay) RenderGrid(objects []domain.ObjectStatus, d domain.Distraction) {
	r.current().RenderGrid(objects, d)
}

func (r *Relay) UpdateHUD(hud domain.HUD) { r.current().UpdateHUD(hud) }
func (r *Relay) UpdateTimer(t domain.TimerView) { r.current().UpdateTimer(t) }
func (r *Relay) Feedback(kind domain.Feedback) { r.current().Feedback(kind) }
func (r *Relay) GameOver(summary domain.Summary) { r.current().GameOver(summary) }
