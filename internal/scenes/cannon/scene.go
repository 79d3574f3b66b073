// Package cannon fires a very fast projectile at a one-pixel wall.
// The projectile covers hundreds of pixels per tick and must still stop
// at the wall every time.
package cannon

import (
	"fmt"

	"github.com/vovakirdan/tui-physics/internal/core"
	"github.com/vovakirdan/tui-physics/internal/entity"
	"github.com/vovakirdan/tui-physics/internal/physics"
	"github.com/vovakirdan/tui-physics/internal/registry"
	"github.com/vovakirdan/tui-physics/internal/scenes"
)

const (
	ShellChar  = '*'
	TargetChar = '|'
	ShellSize  = 10.0 // pixels
)

// Scene is the cannon range.
type Scene struct {
	scenes.Base
	shell  *entity.Sprite
	target *entity.Sprite
	shots  int
	hits   int
	breach int // ticks on which the shell ended past the wall
}

// New creates a cannon scene with default configuration.
func New() *Scene {
	return &Scene{Base: scenes.NewBase()}
}

// ID returns the unique identifier for this scene.
func (s *Scene) ID() string {
	return "cannon"
}

// Title returns the display name for this scene.
func (s *Scene) Title() string {
	return "Cannon vs Thin Wall"
}

// Reset builds the range and fires the first shot.
func (s *Scene) Reset(cfg core.RuntimeConfig) {
	s.Begin(cfg)
	s.Boundary()
	s.shots, s.hits, s.breach = 0, 0, 0

	ch := s.Viewport.CellH
	s.target = s.Level.Add(&entity.Sprite{
		Name:     "target",
		Rect:     core.NewRect(s.Width*0.75, ch, s.Cfg.Scenes.Cannon.WallWidth, s.Height-2*ch),
		Glyph:    TargetChar,
		Color:    core.ColorBrightRed,
		Collider: &entity.Collider{Solid: true},
	})

	body := s.Cfg.NewBody()
	body.BounceEnabled = true
	s.shell = s.Level.Add(&entity.Sprite{
		Name:  "shell",
		Glyph: ShellChar,
		Color: core.ColorBrightYellow,
		Body:  body,
	})
	s.Track(s.shell)
	s.fire()
}

// fire puts the shell at the muzzle with full speed towards the wall.
func (s *Scene) fire() {
	cw, ch := s.Viewport.CellW, s.Viewport.CellH
	muzzleY := s.Height - 2*ch - ShellSize
	s.shell.Rect = core.NewRect(cw+1, muzzleY, ShellSize, ShellSize)
	s.shell.Body.Reset()
	s.shell.Body.Velocity = physics.Vec2{X: s.Cfg.Scenes.Cannon.MuzzleSpeed}
	s.shots++
}

// Step advances the scene by one tick. Jump fires a new shot.
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

	if in.Has(core.ActionJump) {
		s.fire()
	}

	for _, out := range s.Advance() {
		if out.Sprite != s.shell {
			continue
		}
		for _, h := range out.Hits {
			if h == s.target {
				s.hits++
				s.Logger.Debug("shell hit target", "shot", s.shots, "impact", out.Impact)
			}
		}
	}

	if s.shell.Rect.X >= s.target.Rect.Right() {
		s.breach++
		s.Logger.Error("shell passed through the wall", "rect", s.shell.Rect)
	}
	return s.Result()
}

// Render draws the range and the hit counters.
func (s *Scene) Render(dst *core.Screen) {
	s.Draw(dst, fmt.Sprintf("muzzle=%.0fm/s shots=%d hits=%d breaches=%d",
		s.Cfg.Scenes.Cannon.MuzzleSpeed, s.shots, s.hits, s.breach))
}

// Shell returns the projectile sprite.
func (s *Scene) Shell() *entity.Sprite {
	return s.shell
}

// Target returns the thin wall.
func (s *Scene) Target() *entity.Sprite {
	return s.target
}

// Breaches returns how many ticks ended with the shell past the wall.
func (s *Scene) Breaches() int {
	return s.breach
}

func init() {
	registry.Register("cannon", func() registry.Scene {
		return New()
	})
}
