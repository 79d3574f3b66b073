package physics

// Respond applies the bounce policy for one contact.
//
// The velocity component along the contact normal is reflected and scaled
// by restitution when bouncing is enabled, or zeroed otherwise. Only motion
// into the surface is affected; a body already moving away keeps its
// velocity. The tangential component is untouched. A bottom contact marks
// the body grounded until the ground detector runs at the end of the tick.
//
// A bottom bounce whose rebound speed is within restSpeed (m/s) is a
// resting contact: the vertical velocity is zeroed instead of reflected,
// so gravity alone never lifts a body off the floor.
func Respond(b *RigidBody, c Contact, restSpeed float64) {
	switch c.Side {
	case SideBottom:
		if b.Velocity.Y > 0 {
			b.Velocity.Y = b.normalResponse(b.Velocity.Y)
			if -b.Velocity.Y <= restSpeed {
				b.Velocity.Y = 0
			}
		}
		b.grounded = true
	case SideTop:
		if b.Velocity.Y < 0 {
			b.Velocity.Y = b.normalResponse(b.Velocity.Y)
		}
	case SideRight:
		if b.Velocity.X > 0 {
			b.Velocity.X = b.normalResponse(b.Velocity.X)
		}
	case SideLeft:
		if b.Velocity.X < 0 {
			b.Velocity.X = b.normalResponse(b.Velocity.X)
		}
	}
}

func (b *RigidBody) normalResponse(v float64) float64 {
	if !b.BounceEnabled {
		return 0
	}
	return -v * b.restitution
}
