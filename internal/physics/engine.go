package physics

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-physics/internal/core"
)

// ErrMalformedInput is returned when a tick is declined because its input
// cannot be simulated (nil body, non-finite numbers).
var ErrMalformedInput = errors.New("physics: malformed input")

// Config holds engine tuning.
type Config struct {
	PixelsPerMeter float64
	MaxSteps       int
	GroundEpsilon  float64
}

// DefaultConfig returns the default engine tuning.
func DefaultConfig() Config {
	return Config{
		PixelsPerMeter: DefaultPixelsPerMeter,
		MaxSteps:       DefaultMaxSteps,
		GroundEpsilon:  DefaultGroundEpsilon,
	}
}

// TickResult is what the owning entity sees after a tick.
type TickResult struct {
	Rect      core.Rect
	Velocity  Vec2
	Grounded  bool
	Contacts  []Contact
	Steps     int
	Exhausted bool
}

// Engine runs one integration-and-resolution pass per Advance call.
//
// It keeps no per-body state, so one Engine may serve many bodies. Advance
// runs to completion on the caller's goroutine; bodies must not be shared
// between goroutines.
type Engine struct {
	units    Units
	resolver Resolver
	ground   GroundDetector
	logger   *log.Logger
}

// NewEngine creates an engine. Out-of-range settings are replaced with
// defaults. A nil logger uses the charmbracelet/log default logger.
func NewEngine(cfg Config, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.MaxSteps < 1 {
		logger.Warn("max steps must be positive, using default", "max_steps", cfg.MaxSteps)
		cfg.MaxSteps = DefaultMaxSteps
	}
	if !(cfg.GroundEpsilon >= 0) {
		logger.Warn("ground epsilon must be non-negative, using default", "ground_epsilon", cfg.GroundEpsilon)
		cfg.GroundEpsilon = DefaultGroundEpsilon
	}

	units := NewUnits(cfg.PixelsPerMeter)
	return &Engine{
		units: units,
		resolver: Resolver{
			MaxSteps:  cfg.MaxSteps,
			Units:     units,
			RestSpeed: cfg.GroundEpsilon,
			Logger:    logger,
		},
		ground: GroundDetector{Epsilon: cfg.GroundEpsilon},
		logger: logger,
	}
}

// Units returns the engine's unit converter.
func (e *Engine) Units() Units {
	return e.units
}

// MaxSteps returns the sub-step bound per tick.
func (e *Engine) MaxSteps() int {
	return e.resolver.MaxSteps
}

// Advance simulates body, occupying rect, for dt seconds against obstacles.
//
// dt == 0 is a no-op; negative dt is clamped to 0. Malformed input declines
// the tick: the returned result mirrors the unchanged input and the error
// wraps ErrMalformedInput.
func (e *Engine) Advance(body *RigidBody, rect core.Rect, dt float64, obstacles []Obstacle) (TickResult, error) {
	if body == nil {
		return TickResult{Rect: rect}, fmt.Errorf("%w: nil body", ErrMalformedInput)
	}

	result := TickResult{
		Rect:     rect,
		Velocity: body.Velocity,
		Grounded: body.Grounded(),
	}

	if err := validate(body, rect, dt, obstacles); err != nil {
		e.logger.Warn("declining tick", "err", err)
		return result, err
	}

	if dt < 0 {
		e.logger.Debug("negative dt clamped to zero", "dt", dt)
		dt = 0
	}
	if dt == 0 {
		return result, nil
	}

	delta := body.Integrate(dt, e.units)
	res := e.resolver.Resolve(body, rect, delta, dt, obstacles)
	grounded := e.ground.Detect(body, res.Contacts)

	return TickResult{
		Rect:      res.Rect,
		Velocity:  body.Velocity,
		Grounded:  grounded,
		Contacts:  res.Contacts,
		Steps:     res.Steps,
		Exhausted: res.Exhausted,
	}, nil
}

func validate(body *RigidBody, rect core.Rect, dt float64, obstacles []Obstacle) error {
	if !finite(dt) {
		return fmt.Errorf("%w: dt %v", ErrMalformedInput, dt)
	}
	if !rect.Finite() {
		return fmt.Errorf("%w: body rect %+v", ErrMalformedInput, rect)
	}
	if !body.Velocity.Finite() || !body.force.Finite() || !finite(body.Gravity) {
		return fmt.Errorf("%w: body state is not finite", ErrMalformedInput)
	}
	for i, o := range obstacles {
		if !o.Rect.Finite() {
			return fmt.Errorf("%w: obstacle %d (%q) rect %+v", ErrMalformedInput, i, o.Tag, o.Rect)
		}
	}
	return nil
}
