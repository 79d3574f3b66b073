package config

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded config does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("embedded config differs from Default():\n%+v\n%+v", cfg, Default())
	}
	if changes := cfg.Normalize(); len(changes) != 0 {
		t.Errorf("defaults should need no normalization, got %v", changes)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := `
units:
  pixels_per_meter: 32
body:
  bounce: true
scenes:
  bouncer:
    restitutions: [1.0]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Units.PixelsPerMeter != 32 {
		t.Errorf("PixelsPerMeter = %v, expected 32", cfg.Units.PixelsPerMeter)
	}
	if !cfg.Body.Bounce {
		t.Error("bounce should be enabled")
	}
	if !reflect.DeepEqual(cfg.Scenes.Bouncer.Restitutions, []float64{1.0}) {
		t.Errorf("Restitutions = %v, expected [1]", cfg.Scenes.Bouncer.Restitutions)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Resolver.MaxSteps != Default().Resolver.MaxSteps {
		t.Errorf("MaxSteps = %d, expected default", cfg.Resolver.MaxSteps)
	}
	if cfg.Engine().PixelsPerMeter != 32 {
		t.Error("Engine() should carry the unit scale")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("units: [not, a, map"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	cfg, err := Load(bad)
	if err == nil {
		t.Error("expected error for malformed YAML")
	}
	if cfg.Units.PixelsPerMeter != Default().Units.PixelsPerMeter {
		t.Error("failed load should still return defaults")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PhysboxConfig)
		check  func(PhysboxConfig) bool
	}{
		{
			"zero scale",
			func(c *PhysboxConfig) { c.Units.PixelsPerMeter = 0 },
			func(c PhysboxConfig) bool { return c.Units.PixelsPerMeter == 50 },
		},
		{
			"zero max steps",
			func(c *PhysboxConfig) { c.Resolver.MaxSteps = 0 },
			func(c PhysboxConfig) bool { return c.Resolver.MaxSteps == 8 },
		},
		{
			"negative mass",
			func(c *PhysboxConfig) { c.Body.Mass = -1 },
			func(c PhysboxConfig) bool { return c.Body.Mass == 1 },
		},
		{
			"restitution above one",
			func(c *PhysboxConfig) { c.Body.Restitution = 1.5 },
			func(c PhysboxConfig) bool { return c.Body.Restitution == 1 },
		},
		{
			"negative friction",
			func(c *PhysboxConfig) { c.Body.GroundFriction = -0.5 },
			func(c PhysboxConfig) bool { return c.Body.GroundFriction == 0 },
		},
		{
			"NaN gravity",
			func(c *PhysboxConfig) { c.Body.Gravity = math.NaN() },
			func(c PhysboxConfig) bool { return c.Body.Gravity == 9.8 },
		},
		{
			"too many balls",
			func(c *PhysboxConfig) { c.Scenes.Bouncer.Balls = 100 },
			func(c PhysboxConfig) bool { return c.Scenes.Bouncer.Balls == 4 },
		},
		{
			"bad restitution in list",
			func(c *PhysboxConfig) { c.Scenes.Bouncer.Restitutions = []float64{2} },
			func(c PhysboxConfig) bool { return c.Scenes.Bouncer.Restitutions[0] == 1 },
		},
		{
			"zero cell size",
			func(c *PhysboxConfig) { c.Render.CellHeight = 0 },
			func(c PhysboxConfig) bool { return c.Render.CellHeight == 20 },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			changes := cfg.Normalize()
			if len(changes) != 1 {
				t.Errorf("expected exactly one change, got %v", changes)
			}
			if !tc.check(cfg) {
				t.Errorf("value not normalized: %+v", cfg)
			}
		})
	}
}

func TestNormalizeReportsFieldNames(t *testing.T) {
	cfg := Default()
	cfg.Resolver.GroundEpsilon = -1
	changes := cfg.Normalize()
	if len(changes) != 1 || !strings.Contains(changes[0], "resolver.ground_epsilon") {
		t.Errorf("unexpected changes: %v", changes)
	}
}

func TestNewBodyUsesDefaults(t *testing.T) {
	cfg := Default()
	cfg.Body.Bounce = true
	cfg.Body.Restitution = 0.25

	b := cfg.NewBody()
	if !b.BounceEnabled || b.Restitution() != 0.25 || b.Gravity != 9.8 {
		t.Errorf("unexpected body: bounce=%v restitution=%v gravity=%v", b.BounceEnabled, b.Restitution(), b.Gravity)
	}
	if v := cfg.Viewport(); v.CellW != 10 || v.CellH != 20 {
		t.Errorf("unexpected viewport: %+v", v)
	}
}
