package ports

//go:generate mockgen -source renderer.go -destination renderer_mock.go -package ports

import "svw.info/rulerush/internal/domain"

// Renderer receives everything a display surface needs to draw a game.
type Renderer interface {
	RenderRules(rules []domain.RuleView)
	RenderGrid(objects []domain.ObjectStatus, distraction domain.Distraction)
	UpdateHUD(hud domain.HUD)
	UpdateTimer(timer domain.TimerView)
	Feedback(kind domain.Feedback)
	GameOver(summary domain.Summary)
}

// NopRenderer discards every notification.
type NopRenderer struct{}

func (NopRenderer) RenderRules([]domain.RuleView) {}
func (NopRenderer) RenderGrid([]domain.ObjectStatus, domain.Distraction) {}
func (NopRenderer) UpdateHUD(domain.HUD) {}
func (NopRenderer) UpdateTimer(domain.TimerView) {}
func (NopRenderer) Feedback(domain.Feedback) {}
func (NopRenderer) GameOver(domain.Summary) {}
