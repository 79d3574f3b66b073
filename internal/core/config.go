package core

// RuntimeConfig contains configuration passed to scenes at initialization.
// Scenes use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic scenes
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Dt returns the fixed simulation step in seconds for this tick rate.
func (c RuntimeConfig) Dt() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// SceneState represents the current state of a scene.
// Returned by Scene.State() to communicate status to the platform.
type SceneState struct {
	Ticks         int     // Simulation ticks advanced so far
	Contacts      int     // Total contacts recorded
	Top           int     // Contacts on the top side of a body
	Bottom        int     // Contacts on the bottom side of a body
	Left          int     // Contacts on the left side of a body
	Right         int     // Contacts on the right side of a body
	GroundedTicks int     // Ticks on which the tracked body was grounded
	MaxSpeed      float64 // Highest body speed seen, meters/second
	Paused        bool    // Whether the scene is paused
	Done          bool    // Whether the scene has finished
}

// StepResult is returned by Scene.Step() after each simulation tick.
type StepResult struct {
	State SceneState
}
