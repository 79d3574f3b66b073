package physics

// Body defaults.
const (
	MinMass               = 0.001 // kg; smaller or invalid masses clamp here
	DefaultGravity        = 9.8   // m/s²
	DefaultRestitution    = 0.5
	DefaultGroundFriction = 0.8
)

// RigidBody is the simulation state of a single entity.
//
// A body is owned by exactly one entity and is mutated only by that
// entity's tick: the integrator updates velocity, the response policy
// updates velocity and the grounded flag. It is not safe for concurrent use.
type RigidBody struct {
	Velocity      Vec2    // meters/second
	Acceleration  Vec2    // meters/second², recomputed every tick
	Gravity       float64 // meters/second² along +Y, per body
	BounceEnabled bool    // reflect on contact instead of stopping

	mass        float64
	force       Vec2
	restitution float64
	friction    float64
	grounded    bool
}

// NewRigidBody creates a body with the given mass and default gravity,
// restitution and ground friction. Bouncing starts disabled.
func NewRigidBody(mass float64) *RigidBody {
	b := &RigidBody{
		Gravity:     DefaultGravity,
		restitution: DefaultRestitution,
		friction:    DefaultGroundFriction,
	}
	b.SetMass(mass)
	return b
}

// Mass returns the body mass in kilograms, never below MinMass.
func (b *RigidBody) Mass() float64 {
	if !(b.mass >= MinMass) {
		return MinMass
	}
	return b.mass
}

// SetMass sets the mass, clamping non-positive or NaN values to MinMass.
// Returns the mass actually stored.
func (b *RigidBody) SetMass(mass float64) float64 {
	if !(mass >= MinMass) {
		mass = MinMass
	}
	b.mass = mass
	return mass
}

// Restitution returns the bounce energy retention in [0, 1].
func (b *RigidBody) Restitution() float64 {
	return b.restitution
}

// SetRestitution sets restitution clamped to [0, 1].
func (b *RigidBody) SetRestitution(r float64) float64 {
	b.restitution = clampUnit(r)
	return b.restitution
}

// GroundFriction returns the fraction of horizontal velocity removed per
// second while grounded.
func (b *RigidBody) GroundFriction() float64 {
	return b.friction
}

// SetGroundFriction sets ground friction clamped to [0, 1].
func (b *RigidBody) SetGroundFriction(f float64) float64 {
	b.friction = clampUnit(f)
	return b.friction
}

// Grounded reports whether the last resolved tick left the body resting
// on a supporting surface.
func (b *RigidBody) Grounded() bool {
	return b.grounded
}

// Force returns the force accumulated since the last integration.
func (b *RigidBody) Force() Vec2 {
	return b.force
}

// Speed returns the magnitude of the velocity in meters/second.
func (b *RigidBody) Speed() float64 {
	return b.Velocity.Length()
}

// Reset zeroes velocity, acceleration, accumulated force and the grounded
// flag. Mass and material settings are kept.
func (b *RigidBody) Reset() {
	b.Velocity = Vec2{}
	b.Acceleration = Vec2{}
	b.force = Vec2{}
	b.grounded = false
}

func clampUnit(v float64) float64 {
	if !(v >= 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
