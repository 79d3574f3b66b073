package physics

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-physics/internal/core"
)

// DefaultMaxSteps is the number of sub-steps a tick's displacement is split into.
const DefaultMaxSteps = 8

// Side identifies which side of the moving body touched an obstacle.
type Side int

const (
	SideNone Side = iota
	SideTop
	SideBottom
	SideLeft
	SideRight
)

// String returns a human-readable name for the side.
func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// Axis is a world axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Axis returns the axis along which a contact on this side pushes.
func (s Side) Axis() Axis {
	if s == SideLeft || s == SideRight {
		return AxisX
	}
	return AxisY
}

// Obstacle is a static axis-aligned rectangle in pixel space. Obstacles are
// supplied fresh on every call and never retained.
type Obstacle struct {
	Rect core.Rect
	Tag  string // Caller-defined reference, copied into contacts
}

// Contact is a single collision event produced during one tick.
type Contact struct {
	Side        Side
	Obstacle    int       // Index into the obstacle slice passed to the tick
	Tag         string    // Obstacle tag
	Rect        core.Rect // Obstacle rectangle at the time of contact
	Penetration float64   // Pixels the unresolved move would have intruded
}

// Resolution is the outcome of one sweep.
type Resolution struct {
	Rect      core.Rect
	Contacts  []Contact
	Steps     int  // Sub-steps actually executed
	Exhausted bool // Overlap remained after the last sub-step
}

// Resolver sweeps a moving rectangle against static obstacles in discrete
// sub-steps, clamping motion at the first boundary met on each axis.
type Resolver struct {
	MaxSteps  int
	Units     Units
	RestSpeed float64 // bottom rebounds at or below this speed (m/s) come to rest
	Logger    *log.Logger
}

func (r Resolver) steps() int {
	if r.MaxSteps < 1 {
		return DefaultMaxSteps
	}
	return r.MaxSteps
}

func (r Resolver) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}

// Resolve moves rect by delta (pixels) against obstacles.
//
// The displacement is split into MaxSteps equal parts; each part moves the
// horizontal axis first, then the vertical one. When an axis move reaches an
// obstacle the rectangle is placed flush with its boundary, the contact is
// recorded, the response policy updates the body's velocity and that axis's
// remaining per-step displacement is re-derived from the new velocity over
// dt/MaxSteps. A body already overlapping an obstacle is pushed out along
// the axis of least penetration before the first move.
//
// Resolution never runs more than MaxSteps sub-steps; leftover overlap is
// accepted and pushed out on a later tick.
func (r Resolver) Resolve(body *RigidBody, rect core.Rect, delta Vec2, dt float64, obstacles []Obstacle) Resolution {
	res := Resolution{Rect: rect}

	if rect.Empty() {
		r.logger().Debug("body rect has no area, skipping collision", "rect", rect)
		res.Rect = rect.Translate(delta.X, delta.Y)
		return res
	}

	s := sweep{
		body:      body,
		rect:      rect,
		obstacles: obstacles,
		solid:     r.solidObstacles(obstacles),
		restSpeed: r.RestSpeed,
	}

	s.pushOut()

	n := r.steps()
	step := delta.Scale(1 / float64(n))
	stepDt := dt / float64(n)

	for i := 0; i < n; i++ {
		if step.IsZero() {
			break
		}
		res.Steps++

		if step.X != 0 && s.move(AxisX, step.X) {
			step.X = r.Units.ToPixels(body.Velocity.X) * stepDt
		}
		if step.Y != 0 && s.move(AxisY, step.Y) {
			step.Y = r.Units.ToPixels(body.Velocity.Y) * stepDt
		}
	}

	res.Rect = s.rect
	res.Contacts = s.contacts
	if s.overlapping() {
		res.Exhausted = true
		r.logger().Debug("sub-steps exhausted with overlap remaining",
			"steps", res.Steps, "rect", s.rect)
	}
	return res
}

// solidObstacles returns the indices of obstacles with area.
func (r Resolver) solidObstacles(obstacles []Obstacle) []int {
	solid := make([]int, 0, len(obstacles))
	for i, o := range obstacles {
		if o.Rect.Empty() {
			r.logger().Debug("obstacle has no area, skipping", "index", i, "tag", o.Tag)
			continue
		}
		solid = append(solid, i)
	}
	return solid
}

// sweep is the mutable state of a single Resolve call.
type sweep struct {
	body      *RigidBody
	rect      core.Rect
	obstacles []Obstacle
	solid     []int
	contacts  []Contact
	restSpeed float64
}

// move advances the rectangle along one axis and reports whether it hit
// an obstacle.
func (s *sweep) move(axis Axis, amount float64) bool {
	from := s.rect
	to := translateAxis(from, axis, amount)
	swept := from.Union(to)

	hit := -1
	nearest := math.Inf(1)
	for _, i := range s.solid {
		o := s.obstacles[i].Rect
		if !swept.Intersects(o) || from.Intersects(o) {
			// Pre-existing overlap is left to the push-out pass.
			continue
		}
		if d := gap(from, o, axis, amount); d < nearest {
			nearest = d
			hit = i
		}
	}

	if hit < 0 {
		s.rect = to
		return false
	}

	o := s.obstacles[hit].Rect
	side := classify(axis, from, o, amount)
	s.rect = flush(from, o, side)
	s.record(hit, side, math.Abs(amount)-nearest)
	return true
}

// pushOut separates the body from obstacles it already overlaps, smallest
// correction first, preferring the vertical axis on equal penetration.
func (s *sweep) pushOut() {
	for range s.solid {
		best := -1
		bestDepth := math.Inf(1)
		var bestAxis Axis

		for _, i := range s.solid {
			o := s.obstacles[i].Rect
			if !s.rect.Intersects(o) {
				continue
			}
			depth, axis := leastPenetration(s.rect, o)
			if depth < bestDepth {
				best, bestDepth, bestAxis = i, depth, axis
			}
		}
		if best < 0 {
			return
		}

		o := s.obstacles[best].Rect
		side := classify(bestAxis, s.rect, o, 0)
		s.rect = flush(s.rect, o, side)
		s.record(best, side, bestDepth)
	}
}

func (s *sweep) record(index int, side Side, penetration float64) {
	c := Contact{
		Side:        side,
		Obstacle:    index,
		Tag:         s.obstacles[index].Tag,
		Rect:        s.obstacles[index].Rect,
		Penetration: penetration,
	}
	s.contacts = append(s.contacts, c)
	Respond(s.body, c, s.restSpeed)
}

func (s *sweep) overlapping() bool {
	for _, i := range s.solid {
		if s.rect.Intersects(s.obstacles[i].Rect) {
			return true
		}
	}
	return false
}

// classify decides the body side touching o along axis by comparing centers.
// Exact ties fall back to the direction of travel, then to bottom/right.
func classify(axis Axis, body, o core.Rect, dir float64) Side {
	bx, by := body.Center()
	ox, oy := o.Center()

	if axis == AxisX {
		switch {
		case bx < ox:
			return SideRight
		case bx > ox:
			return SideLeft
		case dir < 0:
			return SideLeft
		default:
			return SideRight
		}
	}

	switch {
	case by < oy:
		return SideBottom
	case by > oy:
		return SideTop
	case dir < 0:
		return SideTop
	default:
		return SideBottom
	}
}

// flush places body against the boundary of o on the given side.
func flush(body, o core.Rect, side Side) core.Rect {
	switch side {
	case SideRight:
		body.X = o.X - body.W
	case SideLeft:
		body.X = o.Right()
	case SideBottom:
		body.Y = o.Y - body.H
	case SideTop:
		body.Y = o.Bottom()
	}
	return body
}

// gap is the distance body can travel along axis in direction dir before
// touching o.
func gap(body, o core.Rect, axis Axis, dir float64) float64 {
	if axis == AxisX {
		if dir > 0 {
			return o.X - body.Right()
		}
		return body.X - o.Right()
	}
	if dir > 0 {
		return o.Y - body.Bottom()
	}
	return body.Y - o.Bottom()
}

// leastPenetration returns the smallest correction that separates two
// overlapping rectangles and the axis it applies to. Ties go vertical.
func leastPenetration(body, o core.Rect) (float64, Axis) {
	px := math.Min(body.Right()-o.X, o.Right()-body.X)
	py := math.Min(body.Bottom()-o.Y, o.Bottom()-body.Y)
	if py <= px {
		return py, AxisY
	}
	return px, AxisX
}

func translateAxis(r core.Rect, axis Axis, amount float64) core.Rect {
	if axis == AxisX {
		return r.Translate(amount, 0)
	}
	return r.Translate(0, amount)
}
