package bouncer

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-physics/internal/config"
	"github.com/vovakirdan/tui-physics/internal/core"
)

func newScene(t *testing.T, mutate func(*config.PhysboxConfig)) *Scene {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	s := New()
	s.Tune(cfg, log.New(io.Discard))
	s.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7})
	return s
}

func step(s *Scene, actions ...core.Action) {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	s.Step(in)
}

func TestBallsStayInsideBox(t *testing.T) {
	s := newScene(t, nil)
	cw, ch := s.Viewport.CellW, s.Viewport.CellH

	for i := 0; i < 600; i++ {
		if i%90 == 0 {
			step(s, core.ActionJump)
		} else {
			step(s)
		}
		for _, b := range s.Balls() {
			r := b.Rect
			if r.X < cw || r.Right() > s.Width-cw || r.Y < ch || r.Bottom() > s.Height-ch {
				t.Fatalf("tick %d: %s escaped the box: %+v", i, b.Name, r)
			}
		}
	}
	if s.State().Contacts == 0 {
		t.Error("balls should have touched something")
	}
}

func TestRestitutionCycled(t *testing.T) {
	s := newScene(t, func(c *config.PhysboxConfig) {
		c.Scenes.Bouncer.Balls = 5
		c.Scenes.Bouncer.Restitutions = []float64{1, 0.2}
	})

	want := []float64{1, 0.2, 1, 0.2, 1}
	if len(s.Balls()) != len(want) {
		t.Fatalf("expected %d balls, got %d", len(want), len(s.Balls()))
	}
	for i, b := range s.Balls() {
		if b.Body.Restitution() != want[i] {
			t.Errorf("%s restitution = %v, expected %v", b.Name, b.Body.Restitution(), want[i])
		}
		if !b.Body.BounceEnabled {
			t.Errorf("%s should bounce", b.Name)
		}
	}
}

func TestLowRestitutionSettlesFirst(t *testing.T) {
	s := newScene(t, func(c *config.PhysboxConfig) {
		c.Scenes.Bouncer.Balls = 2
		c.Scenes.Bouncer.Restitutions = []float64{0.9, 0.1}
	})
	for _, b := range s.Balls() {
		b.Body.Velocity.X = 0
	}

	livelyUp := false
	for i := 0; i < 240; i++ {
		step(s)
		if i >= 100 && s.Balls()[0].Body.Velocity.Y < 0 {
			livelyUp = true
		}
	}

	if dull := s.Balls()[1]; !dull.Body.Grounded() {
		t.Errorf("low restitution ball should be resting, v=%+v", dull.Body.Velocity)
	}
	if !livelyUp {
		t.Error("high restitution ball should rebound off the floor")
	}
}

func TestKickLaunchesBalls(t *testing.T) {
	s := newScene(t, func(c *config.PhysboxConfig) {
		c.Scenes.Bouncer.Restitutions = []float64{0.2}
	})
	for i := 0; i < 300; i++ {
		step(s)
	}

	step(s, core.ActionJump)
	for _, b := range s.Balls() {
		if b.Body.Velocity.Y >= 0 {
			t.Errorf("%s should move up after a kick, v=%+v", b.Name, b.Body.Velocity)
		}
	}
	if s.kicks != 1 {
		t.Errorf("kicks = %d, expected 1", s.kicks)
	}
}

func TestSeedDeterminism(t *testing.T) {
	run := func() []core.Rect {
		s := newScene(t, nil)
		for i := 0; i < 200; i++ {
			if i == 50 {
				step(s, core.ActionJump)
			} else {
				step(s)
			}
		}
		var rects []core.Rect
		for _, b := range s.Balls() {
			rects = append(rects, b.Rect)
		}
		return rects
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("ball %d diverged: %+v vs %+v", i, a[i], b[i])
		}
	}
}
