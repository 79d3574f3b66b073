package physics

import "math"

// DefaultGroundEpsilon is the vertical speed (m/s) below which a body
// touching the ground counts as resting rather than bouncing.
const DefaultGroundEpsilon = 0.25

// GroundDetector derives the grounded flag from a tick's contacts.
type GroundDetector struct {
	Epsilon float64
}

func (g GroundDetector) epsilon() float64 {
	if !(g.Epsilon >= 0) {
		return DefaultGroundEpsilon
	}
	return g.Epsilon
}

// Detect sets and returns the body's grounded flag: true only if a bottom
// contact happened this tick and the post-response vertical speed is
// within epsilon.
func (g GroundDetector) Detect(b *RigidBody, contacts []Contact) bool {
	b.grounded = hasSide(contacts, SideBottom) && math.Abs(b.Velocity.Y) <= g.epsilon()
	return b.grounded
}

func hasSide(contacts []Contact, side Side) bool {
	for _, c := range contacts {
		if c.Side == side {
			return true
		}
	}
	return false
}
