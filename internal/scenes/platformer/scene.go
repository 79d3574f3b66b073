// Package platformer implements a walking-and-jumping sandbox.
// The player is pushed by forces, jumps with an impulse while grounded and
// slows down through ground friction. Landing hard on spikes costs health.
package platformer

import (
	"fmt"

	"github.com/vovakirdan/tui-physics/internal/core"
	"github.com/vovakirdan/tui-physics/internal/entity"
	"github.com/vovakirdan/tui-physics/internal/physics"
	"github.com/vovakirdan/tui-physics/internal/registry"
	"github.com/vovakirdan/tui-physics/internal/scenes"
)

const (
	PlayerChar = '●'
	LedgeChar  = '▀'
	MaxHealth  = 3
)

// Scene is the platformer sandbox.
type Scene struct {
	scenes.Base
	player *entity.Sprite
}

// New creates a platformer scene with default configuration.
func New() *Scene {
	return &Scene{Base: scenes.NewBase()}
}

// ID returns the unique identifier for this scene.
func (s *Scene) ID() string {
	return "platformer"
}

// Title returns the display name for this scene.
func (s *Scene) Title() string {
	return "Platformer"
}

// Reset builds the level: boundary walls, three ledges and a spike strip.
func (s *Scene) Reset(cfg core.RuntimeConfig) {
	s.Begin(cfg)
	s.Boundary()

	w, h := s.Width, s.Height
	cw, ch := s.Viewport.CellW, s.Viewport.CellH

	for i, l := range []core.Rect{
		core.NewRect(w*0.20, h-5*ch, w*0.20, ch),
		core.NewRect(w*0.48, h-9*ch, w*0.20, ch),
		core.NewRect(w*0.72, h-13*ch, w*0.15, ch),
	} {
		if l.Y <= ch {
			continue // screen too short for this ledge
		}
		ledge := s.AddWall(fmt.Sprintf("ledge-%d", i+1), l)
		ledge.Glyph = LedgeChar
		ledge.Color = core.ColorGreen
	}
	s.AddHazard("spikes", core.NewRect(w*0.45, h-2*ch, 3*cw, ch))

	body := s.Cfg.NewBody()
	body.BounceEnabled = false
	s.player = s.Level.Add(&entity.Sprite{
		Name:     "player",
		Rect:     core.NewRect(2*cw, h-2*ch, cw, ch),
		Glyph:    PlayerChar,
		Color:    core.ColorBrightYellow,
		Body:     body,
		Collider: &entity.Collider{Solid: true},
		Health:   entity.NewHealth(MaxHealth),
	})
	s.Track(s.player)
}

// Step advances the scene by one tick.
func (s *Scene) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		s.Reset(s.Runtime)
		return s.Result()
	}
	if in.Has(core.ActionPause) {
		s.TogglePause()
	}
	if s.Paused() || s.State().Done {
		return s.Result()
	}

	cfg := s.Cfg.Scenes.Platformer
	body := s.player.Body

	if in.Has(core.ActionLeft) && body.Velocity.X > -cfg.MaxWalkSpeed {
		body.ApplyForce(physics.Vec2{X: -cfg.WalkForce})
	}
	if in.Has(core.ActionRight) && body.Velocity.X < cfg.MaxWalkSpeed {
		body.ApplyForce(physics.Vec2{X: cfg.WalkForce})
	}
	if in.Has(core.ActionJump) && body.Grounded() {
		body.ApplyImpulse(physics.Vec2{Y: -cfg.JumpImpulse})
	}

	s.Advance()

	if !s.player.Alive() {
		s.Finish()
	}
	return s.Result()
}

// Render draws the level and the player status.
func (s *Scene) Render(dst *core.Screen) {
	status := "airborne"
	if s.player.Body.Grounded() {
		status = "grounded"
	}
	v := s.player.Body.Velocity
	s.Draw(dst, fmt.Sprintf("hp=%d v=(%.1f,%.1f) %s", s.player.Health.Current, v.X, v.Y, status))

	if s.State().Done {
		scenes.DrawMessage(dst, "OUCH", "Press R to restart")
	}
}

// Player returns the player sprite.
func (s *Scene) Player() *entity.Sprite {
	return s.player
}

func init() {
	registry.Register("platformer", func() registry.Scene {
		return New()
	})
}
