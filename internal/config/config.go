// Package config provides YAML-based configuration loading for the physics
// sandbox: unit scale, resolver tuning, body defaults, rendering and
// per-scene parameters.
package config

import (
	"github.com/vovakirdan/tui-physics/internal/core"
	"github.com/vovakirdan/tui-physics/internal/physics"
)

// PhysboxConfig contains all sandbox configuration.
type PhysboxConfig struct {
	Units    UnitsConfig    `yaml:"units"`
	Resolver ResolverConfig `yaml:"resolver"`
	Body     BodyConfig     `yaml:"body"`
	Hazard   HazardConfig   `yaml:"hazard"`
	Render   RenderConfig   `yaml:"render"`
	Scenes   ScenesConfig   `yaml:"scenes"`
}

// UnitsConfig defines the world scale.
type UnitsConfig struct {
	PixelsPerMeter float64 `yaml:"pixels_per_meter"`
}

// ResolverConfig tunes collision resolution.
type ResolverConfig struct {
	MaxSteps      int     `yaml:"max_steps"`
	GroundEpsilon float64 `yaml:"ground_epsilon"` // m/s
}

// BodyConfig holds the defaults for newly created bodies.
type BodyConfig struct {
	Mass           float64 `yaml:"mass"`            // kg
	Gravity        float64 `yaml:"gravity"`         // m/s², positive is down
	Restitution    float64 `yaml:"restitution"`     // 0..1
	GroundFriction float64 `yaml:"ground_friction"` // 1/s, 0..1
	Bounce         bool    `yaml:"bounce"`
}

// HazardConfig defines damage dealt by hazard colliders.
type HazardConfig struct {
	ImpactSpeed float64 `yaml:"impact_speed"` // m/s
	Damage      int     `yaml:"damage"`
}

// RenderConfig maps pixels onto terminal cells.
type RenderConfig struct {
	CellWidth  float64 `yaml:"cell_width"`  // pixels per column
	CellHeight float64 `yaml:"cell_height"` // pixels per row
}

// ScenesConfig groups per-scene tuning.
type ScenesConfig struct {
	Platformer PlatformerConfig `yaml:"platformer"`
	Bouncer    BouncerConfig    `yaml:"bouncer"`
	Cannon     CannonConfig     `yaml:"cannon"`
}

// PlatformerConfig tunes the walking character.
type PlatformerConfig struct {
	WalkForce    float64 `yaml:"walk_force"`     // N
	JumpImpulse  float64 `yaml:"jump_impulse"`   // N·s, upward
	MaxWalkSpeed float64 `yaml:"max_walk_speed"` // m/s
}

// BouncerConfig tunes the ball box.
type BouncerConfig struct {
	Balls        int       `yaml:"balls"`
	KickImpulse  float64   `yaml:"kick_impulse"` // N·s
	Restitutions []float64 `yaml:"restitutions"` // cycled across balls
}

// CannonConfig tunes the projectile scene.
type CannonConfig struct {
	MuzzleSpeed float64 `yaml:"muzzle_speed"` // m/s
	WallWidth   float64 `yaml:"wall_width"`   // pixels
}

// Engine returns the physics engine settings.
func (c PhysboxConfig) Engine() physics.Config {
	return physics.Config{
		PixelsPerMeter: c.Units.PixelsPerMeter,
		MaxSteps:       c.Resolver.MaxSteps,
		GroundEpsilon:  c.Resolver.GroundEpsilon,
	}
}

// Viewport returns the pixel-to-cell projection.
func (c PhysboxConfig) Viewport() core.Viewport {
	return core.NewViewport(c.Render.CellWidth, c.Render.CellHeight)
}

// NewBody creates a body with the configured defaults.
func (c PhysboxConfig) NewBody() *physics.RigidBody {
	b := physics.NewRigidBody(c.Body.Mass)
	b.Gravity = c.Body.Gravity
	b.BounceEnabled = c.Body.Bounce
	b.SetRestitution(c.Body.Restitution)
	b.SetGroundFriction(c.Body.GroundFriction)
	return b
}
