// Package bouncer implements a box of balls with different restitution.
// Balls bounce off the walls and each other; a kick sends them all flying.
package bouncer

import (
	"fmt"

	"github.com/vovakirdan/tui-physics/internal/core"
	"github.com/vovakirdan/tui-physics/internal/entity"
	"github.com/vovakirdan/tui-physics/internal/physics"
	"github.com/vovakirdan/tui-physics/internal/registry"
	"github.com/vovakirdan/tui-physics/internal/scenes"
)

const BallChar = 'o'

var ballColors = []core.Color{
	core.ColorBrightCyan,
	core.ColorBrightMagenta,
	core.ColorBrightGreen,
	core.ColorOrange,
	core.ColorBrightBlue,
	core.ColorYellow,
}

// Scene is the bouncing-ball box.
type Scene struct {
	scenes.Base
	balls []*entity.Sprite
	kicks int
}

// New creates a bouncer scene with default configuration.
func New() *Scene {
	return &Scene{Base: scenes.NewBase()}
}

// ID returns the unique identifier for this scene.
func (s *Scene) ID() string {
	return "bouncer"
}

// Title returns the display name for this scene.
func (s *Scene) Title() string {
	return "Bouncing Balls"
}

// Reset places the balls in a row below the ceiling. Restitution values
// are cycled from the configuration.
func (s *Scene) Reset(cfg core.RuntimeConfig) {
	s.Begin(cfg)
	s.Boundary()
	s.balls = s.balls[:0]
	s.kicks = 0

	bc := s.Cfg.Scenes.Bouncer
	cw, ch := s.Viewport.CellW, s.Viewport.CellH
	inner := s.Width - 2*cw
	spacing := inner / float64(bc.Balls+1)

	for i := 0; i < bc.Balls; i++ {
		body := s.Cfg.NewBody()
		body.BounceEnabled = true
		body.SetRestitution(bc.Restitutions[i%len(bc.Restitutions)])
		// Small horizontal spread so the balls interact.
		body.Velocity = physics.Vec2{X: s.Rng.Float64()*4 - 2}

		ball := s.Level.Add(&entity.Sprite{
			Name:     fmt.Sprintf("ball-%d", i+1),
			Rect:     core.NewRect(cw+spacing*float64(i+1)-cw/2, 2*ch, cw, ch),
			Glyph:    BallChar,
			Color:    ballColors[i%len(ballColors)],
			Body:     body,
			Collider: &entity.Collider{Solid: true},
		})
		s.balls = append(s.balls, ball)
	}
	if len(s.balls) > 0 {
		s.Track(s.balls[0])
	}
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
	if s.Paused() {
		return s.Result()
	}

	j := s.Cfg.Scenes.Bouncer.KickImpulse
	switch {
	case in.Has(core.ActionJump):
		s.kick(func() physics.Vec2 {
			return physics.Vec2{X: (s.Rng.Float64()*2 - 1) * j / 2, Y: -j}
		})
	case in.Has(core.ActionLeft):
		s.kick(func() physics.Vec2 { return physics.Vec2{X: -j} })
	case in.Has(core.ActionRight):
		s.kick(func() physics.Vec2 { return physics.Vec2{X: j} })
	}

	s.Advance()
	return s.Result()
}

func (s *Scene) kick(impulse func() physics.Vec2) {
	s.kicks++
	for _, b := range s.balls {
		b.Body.ApplyImpulse(impulse())
	}
}

// Render draws the box, the balls and their restitution values.
func (s *Scene) Render(dst *core.Screen) {
	hud := fmt.Sprintf("kicks=%d", s.kicks)
	for _, b := range s.balls {
		hud += fmt.Sprintf(" e=%.1f", b.Body.Restitution())
	}
	s.Draw(dst, hud)
}

// Balls returns the ball sprites.
func (s *Scene) Balls() []*entity.Sprite {
	return s.balls
}

func init() {
	registry.Register("bouncer", func() registry.Scene {
		return New()
	})
}
