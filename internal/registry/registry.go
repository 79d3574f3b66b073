// Package registry provides a global registry for scene factories.
// Scenes register themselves in init() functions, allowing the platform
// to discover and instantiate scenes without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-physics/internal/config"
	"github.com/vovakirdan/tui-physics/internal/core"
)

// Scene is the interface every sandbox scene implements.
// Scenes contain pure simulation logic with no Bubble Tea dependency;
// the platform handles input mapping, timing, and rendering.
type Scene interface {
	// ID returns a unique identifier (e.g., "platformer").
	// Used for CLI commands and run storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the scene.
	// The RuntimeConfig provides screen dimensions, tick rate and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick of 1/TickRate seconds.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current scene into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current scene counters.
	State() core.SceneState
}

// Tunable is implemented by scenes that accept sandbox configuration.
// Tune is called before the first Reset.
type Tunable interface {
	Tune(cfg config.PhysboxConfig, logger *log.Logger)
}

// SceneInfo contains metadata about a registered scene.
type SceneInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a scene.
type Factory func() Scene

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a scene factory to the registry.
// Typically called from a scene's init() function.
// Panics if a scene with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: scene %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered scenes, sorted by ID.
func List() []SceneInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SceneInfo, 0, len(factories))
	for id := range factories {
		result = append(result, SceneInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new scene by its ID.
// Returns an error if the scene ID is not registered.
func Create(id string) (Scene, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown scene %q", id)
	}

	return f(), nil
}

// CreateTuned instantiates a scene and passes it the configuration if it
// is Tunable.
func CreateTuned(id string, cfg config.PhysboxConfig, logger *log.Logger) (Scene, error) {
	s, err := Create(id)
	if err != nil {
		return nil, err
	}
	if t, ok := s.(Tunable); ok {
		t.Tune(cfg, logger)
	}
	return s, nil
}

// Exists checks if a scene with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
