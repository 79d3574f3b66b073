// Package entity composes scene objects from optional capabilities.
// A sprite may carry a rigid body, a collider and health; the level
// gathers colliders into obstacle lists and advances bodies through the
// physics engine, applying gameplay side effects after each tick.
package entity

import (
	"github.com/vovakirdan/tui-physics/internal/core"
	"github.com/vovakirdan/tui-physics/internal/physics"
)

// Collider marks a sprite as something bodies collide with.
type Collider struct {
	Solid  bool // Blocks moving bodies
	Hazard bool // Damages bodies that hit it hard enough; only effective when Solid
}

// Health tracks hit points.
type Health struct {
	Current int
	Max     int
}

// NewHealth creates full health. Non-positive max becomes 1.
func NewHealth(max int) *Health {
	if max < 1 {
		max = 1
	}
	return &Health{Current: max, Max: max}
}

// Damage subtracts n (ignored if negative) and returns the remaining points.
func (h *Health) Damage(n int) int {
	if n > 0 {
		h.Current = core.Max(h.Current-n, 0)
	}
	return h.Current
}

// Alive reports whether any health remains.
func (h *Health) Alive() bool {
	return h.Current > 0
}

// Restore refills health to its maximum.
func (h *Health) Restore() {
	h.Current = h.Max
}

// Sprite is a named, drawable rectangle with optional capabilities.
type Sprite struct {
	Name     string
	Rect     core.Rect
	Glyph    rune
	Color    core.Color
	Body     *physics.RigidBody
	Collider *Collider
	Health   *Health
}

// Moving reports whether the sprite is simulated.
func (s *Sprite) Moving() bool {
	return s.Body != nil
}

// Solid reports whether the sprite blocks bodies.
func (s *Sprite) Solid() bool {
	return s.Collider != nil && s.Collider.Solid
}

// Obstacle returns the sprite as a physics obstacle tagged with its name.
func (s *Sprite) Obstacle() physics.Obstacle {
	return physics.Obstacle{Rect: s.Rect, Tag: s.Name}
}

// Alive reports whether the sprite has health left. Sprites without a
// health capability are always alive.
func (s *Sprite) Alive() bool {
	return s.Health == nil || s.Health.Alive()
}
