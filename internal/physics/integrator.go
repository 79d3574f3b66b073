package physics

// ApplyForce adds f (Newtons) to the force accumulator. Forces accumulate
// without bounds until the next integration consumes them.
func (b *RigidBody) ApplyForce(f Vec2) {
	b.force = b.force.Add(f)
}

// ApplyImpulse changes velocity immediately by j/mass (j in N·s).
// Used for jumps and kicks.
func (b *RigidBody) ApplyImpulse(j Vec2) {
	b.Velocity = b.Velocity.Add(j.Scale(1 / b.Mass()))
}

// Integrate advances velocity by one semi-implicit Euler step and returns
// the tentative displacement in pixels.
//
// Acceleration comes from the start-of-tick forces plus gravity; the
// displacement uses the updated velocity. While grounded, horizontal
// velocity is damped by ground friction, never past zero. The force
// accumulator is cleared. A non-positive dt changes nothing.
func (b *RigidBody) Integrate(dt float64, units Units) Vec2 {
	if !(dt > 0) {
		return Vec2{}
	}

	b.Acceleration = b.force.Scale(1 / b.Mass()).Add(Vec2{Y: b.Gravity})
	b.Velocity = b.Velocity.Add(b.Acceleration.Scale(dt))

	if b.grounded {
		b.Velocity.X *= frictionFactor(b.friction, dt)
	}

	b.force = Vec2{}
	return units.VecToPixels(b.Velocity.Scale(dt))
}

// frictionFactor is the fraction of horizontal velocity kept after dt
// seconds of ground contact.
func frictionFactor(friction, dt float64) float64 {
	f := 1 - friction*dt
	if f < 0 {
		return 0
	}
	return f
}
