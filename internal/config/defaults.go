package config

import (
	_ "embed"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-physics/internal/physics"
)

//go:embed defaults/physbox.yaml
var defaultPhysboxYAML []byte

// Default returns the hardcoded sandbox configuration.
func Default() PhysboxConfig {
	return PhysboxConfig{
		Units: UnitsConfig{
			PixelsPerMeter: physics.DefaultPixelsPerMeter,
		},
		Resolver: ResolverConfig{
			MaxSteps:      physics.DefaultMaxSteps,
			GroundEpsilon: physics.DefaultGroundEpsilon,
		},
		Body: BodyConfig{
			Mass:           1.0,
			Gravity:        physics.DefaultGravity,
			Restitution:    physics.DefaultRestitution,
			GroundFriction: physics.DefaultGroundFriction,
			Bounce:         false,
		},
		Hazard: HazardConfig{
			ImpactSpeed: 3.0,
			Damage:      1,
		},
		Render: RenderConfig{
			CellWidth:  10,
			CellHeight: 20,
		},
		Scenes: ScenesConfig{
			Platformer: PlatformerConfig{
				WalkForce:    120,
				JumpImpulse:  7,
				MaxWalkSpeed: 6,
			},
			Bouncer: BouncerConfig{
				Balls:        4,
				KickImpulse:  8,
				Restitutions: []float64{0.9, 0.7, 0.5, 0.3},
			},
			Cannon: CannonConfig{
				MuzzleSpeed: 400,
				WallWidth:   1,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultPhysboxYAML
}

// Normalize replaces out-of-range values with defaults and clamps the
// rest. It returns a description of every change so callers can warn.
func (c *PhysboxConfig) Normalize() []string {
	def := Default()
	var changes []string

	positive := func(name string, v *float64, fallback float64) {
		if !(*v > 0) || math.IsInf(*v, 0) {
			changes = append(changes, fmt.Sprintf("%s %v out of range, using %v", name, *v, fallback))
			*v = fallback
		}
	}
	unit := func(name string, v *float64, fallback float64) {
		switch {
		case math.IsNaN(*v):
			changes = append(changes, fmt.Sprintf("%s is NaN, using %v", name, fallback))
			*v = fallback
		case *v < 0:
			changes = append(changes, fmt.Sprintf("%s %v clamped to 0", name, *v))
			*v = 0
		case *v > 1:
			changes = append(changes, fmt.Sprintf("%s %v clamped to 1", name, *v))
			*v = 1
		}
	}

	positive("units.pixels_per_meter", &c.Units.PixelsPerMeter, def.Units.PixelsPerMeter)
	if c.Resolver.MaxSteps < 1 {
		changes = append(changes, fmt.Sprintf("resolver.max_steps %d out of range, using %d", c.Resolver.MaxSteps, def.Resolver.MaxSteps))
		c.Resolver.MaxSteps = def.Resolver.MaxSteps
	}
	if !(c.Resolver.GroundEpsilon >= 0) || math.IsInf(c.Resolver.GroundEpsilon, 0) {
		changes = append(changes, fmt.Sprintf("resolver.ground_epsilon %v out of range, using %v", c.Resolver.GroundEpsilon, def.Resolver.GroundEpsilon))
		c.Resolver.GroundEpsilon = def.Resolver.GroundEpsilon
	}

	positive("body.mass", &c.Body.Mass, def.Body.Mass)
	if math.IsNaN(c.Body.Gravity) || math.IsInf(c.Body.Gravity, 0) {
		changes = append(changes, fmt.Sprintf("body.gravity %v out of range, using %v", c.Body.Gravity, def.Body.Gravity))
		c.Body.Gravity = def.Body.Gravity
	}
	unit("body.restitution", &c.Body.Restitution, def.Body.Restitution)
	unit("body.ground_friction", &c.Body.GroundFriction, def.Body.GroundFriction)

	if !(c.Hazard.ImpactSpeed >= 0) {
		changes = append(changes, fmt.Sprintf("hazard.impact_speed %v out of range, using %v", c.Hazard.ImpactSpeed, def.Hazard.ImpactSpeed))
		c.Hazard.ImpactSpeed = def.Hazard.ImpactSpeed
	}
	if c.Hazard.Damage < 0 {
		changes = append(changes, fmt.Sprintf("hazard.damage %d clamped to 0", c.Hazard.Damage))
		c.Hazard.Damage = 0
	}

	positive("render.cell_width", &c.Render.CellWidth, def.Render.CellWidth)
	positive("render.cell_height", &c.Render.CellHeight, def.Render.CellHeight)

	p := &c.Scenes.Platformer
	positive("scenes.platformer.walk_force", &p.WalkForce, def.Scenes.Platformer.WalkForce)
	positive("scenes.platformer.jump_impulse", &p.JumpImpulse, def.Scenes.Platformer.JumpImpulse)
	positive("scenes.platformer.max_walk_speed", &p.MaxWalkSpeed, def.Scenes.Platformer.MaxWalkSpeed)

	b := &c.Scenes.Bouncer
	if b.Balls < 1 || b.Balls > 16 {
		changes = append(changes, fmt.Sprintf("scenes.bouncer.balls %d out of range, using %d", b.Balls, def.Scenes.Bouncer.Balls))
		b.Balls = def.Scenes.Bouncer.Balls
	}
	positive("scenes.bouncer.kick_impulse", &b.KickImpulse, def.Scenes.Bouncer.KickImpulse)
	if len(b.Restitutions) == 0 {
		changes = append(changes, "scenes.bouncer.restitutions empty, using defaults")
		b.Restitutions = append([]float64(nil), def.Scenes.Bouncer.Restitutions...)
	}
	for i := range b.Restitutions {
		unit(fmt.Sprintf("scenes.bouncer.restitutions[%d]", i), &b.Restitutions[i], def.Body.Restitution)
	}

	positive("scenes.cannon.muzzle_speed", &c.Scenes.Cannon.MuzzleSpeed, def.Scenes.Cannon.MuzzleSpeed)
	positive("scenes.cannon.wall_width", &c.Scenes.Cannon.WallWidth, def.Scenes.Cannon.WallWidth)

	return changes
}
