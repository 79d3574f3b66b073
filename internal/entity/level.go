package entity

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-physics/internal/core"
	"github.com/vovakirdan/tui-physics/internal/physics"
)

// Default hazard tuning.
const (
	DefaultImpactSpeed  = 3.0 // m/s
	DefaultHazardDamage = 1
)

// Outcome is what happened to one moving sprite during a level update.
type Outcome struct {
	Sprite *Sprite
	Result physics.TickResult
	Damage int       // Health lost to hazards this tick
	Hits   []*Sprite // Sprites touched, in contact order
	Impact float64   // Speed before the tick, m/s
	Sides  map[physics.Side]int
}

// Level owns the sprites of a scene.
type Level struct {
	Sprites      []*Sprite
	ImpactSpeed  float64 // Minimum pre-tick speed for hazard damage, m/s
	HazardDamage int
}

// NewLevel creates an empty level with default hazard tuning.
func NewLevel() *Level {
	return &Level{
		ImpactSpeed:  DefaultImpactSpeed,
		HazardDamage: DefaultHazardDamage,
	}
}

// Add appends a sprite and returns it.
func (l *Level) Add(s *Sprite) *Sprite {
	l.Sprites = append(l.Sprites, s)
	return s
}

// Find returns the first sprite with the given name, or nil.
func (l *Level) Find(name string) *Sprite {
	for _, s := range l.Sprites {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Obstacles gathers the solid sprites other than exclude. The second
// return value maps each obstacle index back to its sprite.
func (l *Level) Obstacles(exclude *Sprite) ([]physics.Obstacle, []*Sprite) {
	obstacles := make([]physics.Obstacle, 0, len(l.Sprites))
	owners := make([]*Sprite, 0, len(l.Sprites))
	for _, s := range l.Sprites {
		if s == exclude || !s.Solid() {
			continue
		}
		obstacles = append(obstacles, s.Obstacle())
		owners = append(owners, s)
	}
	return obstacles, owners
}

// Update advances every moving sprite by dt seconds, in insertion order.
// Each body sees the others at their already-updated positions. Hazard
// damage is applied from the returned contacts once the body's tick is
// done. A declined tick leaves that sprite untouched; its error is joined
// into the returned error and the remaining sprites still update.
func (l *Level) Update(e *physics.Engine, dt float64) ([]Outcome, error) {
	var errs []error
	outcomes := make([]Outcome, 0, len(l.Sprites))

	for _, s := range l.Sprites {
		if !s.Moving() || !s.Alive() {
			continue
		}

		obstacles, owners := l.Obstacles(s)
		impact := s.Body.Speed()

		res, err := e.Advance(s.Body, s.Rect, dt, obstacles)
		if err != nil {
			errs = append(errs, fmt.Errorf("entity: %s: %w", s.Name, err))
			continue
		}
		s.Rect = res.Rect

		out := Outcome{
			Sprite: s,
			Result: res,
			Impact: impact,
			Sides:  make(map[physics.Side]int, 4),
		}
		for _, c := range res.Contacts {
			out.Sides[c.Side]++
			if c.Obstacle >= 0 && c.Obstacle < len(owners) {
				out.Hits = append(out.Hits, owners[c.Obstacle])
			}
		}
		out.Damage = l.applyHazards(s, out.Hits, impact)
		outcomes = append(outcomes, out)
	}

	return outcomes, errors.Join(errs...)
}

// applyHazards damages s once per tick if it struck a hazard fast enough.
func (l *Level) applyHazards(s *Sprite, hits []*Sprite, impact float64) int {
	if s.Health == nil || impact < l.ImpactSpeed {
		return 0
	}
	for _, h := range hits {
		if h.Collider != nil && h.Collider.Hazard {
			before := s.Health.Current
			s.Health.Damage(l.HazardDamage)
			return before - s.Health.Current
		}
	}
	return 0
}

// Draw renders every living sprite through the viewport.
func (l *Level) Draw(dst *core.Screen, v core.Viewport) {
	for _, s := range l.Sprites {
		if !s.Alive() {
			continue
		}
		glyph := s.Glyph
		if glyph == 0 {
			glyph = '#'
		}
		v.Draw(dst, s.Rect, glyph, s.Color)
	}
}
