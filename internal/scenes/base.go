// Package scenes holds the machinery shared by the sandbox scenes: engine
// and level ownership, boundary walls, counters and the HUD. Each scene
// lives in its own subpackage and registers itself with the registry.
package scenes

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-physics/internal/config"
	"github.com/vovakirdan/tui-physics/internal/core"
	"github.com/vovakirdan/tui-physics/internal/entity"
	"github.com/vovakirdan/tui-physics/internal/physics"
)

// Visual characters shared by scenes.
const (
	WallChar   = '█'
	HazardChar = '▲'
)

// Base carries the state every scene needs. Scenes embed it.
type Base struct {
	Cfg      config.PhysboxConfig
	Logger   *log.Logger
	Engine   *physics.Engine
	Level    *entity.Level
	Viewport core.Viewport
	Runtime  core.RuntimeConfig
	Rng      *rand.Rand

	// World extent in pixels.
	Width, Height float64

	tracked *entity.Sprite
	state   core.SceneState
}

// NewBase creates a base with the default configuration.
func NewBase() Base {
	b := Base{}
	b.Tune(config.Default(), nil)
	return b
}

// Tune replaces the configuration and rebuilds the engine. Out-of-range
// values are normalized.
func (b *Base) Tune(cfg config.PhysboxConfig, logger *log.Logger) {
	if logger == nil {
		logger = log.Default()
	}
	for _, change := range cfg.Normalize() {
		logger.Debug("config adjusted", "change", change)
	}
	b.Cfg = cfg
	b.Logger = logger
	b.Engine = physics.NewEngine(cfg.Engine(), logger)
	b.Viewport = cfg.Viewport()
}

// Begin clears the level and counters for a new run.
func (b *Base) Begin(rc core.RuntimeConfig) {
	if b.Engine == nil {
		b.Tune(config.Default(), b.Logger)
	}
	if rc.ScreenW <= 0 || rc.ScreenH <= 0 {
		def := core.DefaultConfig()
		rc.ScreenW, rc.ScreenH = def.ScreenW, def.ScreenH
	}

	b.Runtime = rc
	b.Rng = rand.New(rand.NewSource(rc.Seed))
	b.Width, b.Height = b.Viewport.WorldSize(rc.ScreenW, rc.ScreenH)
	b.Level = entity.NewLevel()
	b.Level.ImpactSpeed = b.Cfg.Hazard.ImpactSpeed
	b.Level.HazardDamage = b.Cfg.Hazard.Damage
	b.tracked = nil
	b.state = core.SceneState{}
}

// Boundary adds solid walls one cell thick around the world.
func (b *Base) Boundary() {
	cw, ch := b.Viewport.CellW, b.Viewport.CellH
	b.AddWall("ceiling", core.NewRect(0, 0, b.Width, ch))
	b.AddWall("floor", core.NewRect(0, b.Height-ch, b.Width, ch))
	b.AddWall("left", core.NewRect(0, ch, cw, b.Height-2*ch))
	b.AddWall("right", core.NewRect(b.Width-cw, ch, cw, b.Height-2*ch))
}

// AddWall adds a static solid sprite.
func (b *Base) AddWall(name string, r core.Rect) *entity.Sprite {
	return b.Level.Add(&entity.Sprite{
		Name:     name,
		Rect:     r,
		Glyph:    WallChar,
		Color:    core.ColorGray,
		Collider: &entity.Collider{Solid: true},
	})
}

// AddHazard adds a static solid sprite that damages on hard impact.
func (b *Base) AddHazard(name string, r core.Rect) *entity.Sprite {
	return b.Level.Add(&entity.Sprite{
		Name:     name,
		Rect:     r,
		Glyph:    HazardChar,
		Color:    core.ColorRed,
		Collider: &entity.Collider{Solid: true, Hazard: true},
	})
}

// Track selects the sprite whose grounded ticks are counted.
func (b *Base) Track(s *entity.Sprite) {
	b.tracked = s
}

// TogglePause flips the paused flag and reports the new value.
func (b *Base) TogglePause() bool {
	b.state.Paused = !b.state.Paused
	return b.state.Paused
}

// Paused reports whether the scene is paused.
func (b *Base) Paused() bool {
	return b.state.Paused
}

// Finish marks the run as done.
func (b *Base) Finish() {
	b.state.Done = true
}

// Advance runs one engine tick over the level and folds the outcomes into
// the counters. Declined ticks are logged and skipped.
func (b *Base) Advance() []entity.Outcome {
	outcomes, err := b.Level.Update(b.Engine, b.Runtime.Dt())
	if err != nil {
		b.Logger.Warn("tick declined", "err", err, "tick", b.state.Ticks)
	}

	b.state.Ticks++
	for _, out := range outcomes {
		for side, n := range out.Sides {
			b.state.Contacts += n
			switch side {
			case physics.SideTop:
				b.state.Top += n
			case physics.SideBottom:
				b.state.Bottom += n
			case physics.SideLeft:
				b.state.Left += n
			case physics.SideRight:
				b.state.Right += n
			}
		}
		if out.Sprite == b.tracked && out.Result.Grounded {
			b.state.GroundedTicks++
		}
		if speed := out.Result.Velocity.Length(); speed > b.state.MaxSpeed {
			b.state.MaxSpeed = speed
		}
		if out.Damage > 0 {
			b.Logger.Debug("hazard damage", "sprite", out.Sprite.Name, "damage", out.Damage, "impact", out.Impact)
		}
	}
	return outcomes
}

// State returns the run counters.
func (b *Base) State() core.SceneState {
	return b.state
}

// Result wraps the current state in a step result.
func (b *Base) Result() core.StepResult {
	return core.StepResult{State: b.state}
}

// Draw renders the level followed by the HUD line.
func (b *Base) Draw(dst *core.Screen, hud string) {
	dst.Clear()
	b.Level.Draw(dst, b.Viewport)

	line := fmt.Sprintf(" t=%.1fs contacts=%d %s ", float64(b.state.Ticks)*b.Runtime.Dt(), b.state.Contacts, hud)
	dst.DrawTextColored(1, 0, line, core.ColorBrightWhite)

	if b.state.Paused {
		DrawMessage(dst, "PAUSED", "Press P to resume")
	}
}

// DrawMessage draws a message box in the center of the screen.
func DrawMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.FillCells(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, core.ColorBrightWhite)

	dst.DrawText(boxX+(boxW-len([]rune(title)))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}
