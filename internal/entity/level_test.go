package entity

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-physics/internal/core"
	"github.com/vovakirdan/tui-physics/internal/physics"
)

func newEngine() *physics.Engine {
	return physics.NewEngine(physics.DefaultConfig(), log.New(io.Discard))
}

func newFloor(hazard bool) *Sprite {
	return &Sprite{
		Name:     "floor",
		Rect:     core.NewRect(0, 100, 200, 20),
		Collider: &Collider{Solid: true, Hazard: hazard},
	}
}

func newBall(name string, x, y float64) *Sprite {
	return &Sprite{
		Name:     name,
		Rect:     core.NewRect(x, y, 10, 10),
		Body:     physics.NewRigidBody(1),
		Collider: &Collider{Solid: true},
		Health:   NewHealth(3),
	}
}

func TestObstaclesExcludeMover(t *testing.T) {
	l := NewLevel()
	floor := l.Add(newFloor(false))
	a := l.Add(newBall("a", 10, 10))
	b := l.Add(newBall("b", 50, 10))
	l.Add(&Sprite{Name: "decor", Rect: core.NewRect(0, 0, 5, 5)})

	obstacles, owners := l.Obstacles(a)
	if len(obstacles) != 2 {
		t.Fatalf("expected 2 obstacles, got %d", len(obstacles))
	}
	if owners[0] != floor || owners[1] != b {
		t.Errorf("unexpected owners: %v, %v", owners[0].Name, owners[1].Name)
	}
	for _, o := range obstacles {
		if o.Tag == "a" || o.Tag == "decor" {
			t.Errorf("obstacle %q should be excluded", o.Tag)
		}
	}
}

func TestUpdateMovesBodiesAndReportsHits(t *testing.T) {
	l := NewLevel()
	floor := l.Add(newFloor(false))
	ball := l.Add(newBall("ball", 50, 90))

	outcomes, err := l.Update(newEngine(), 1.0/60.0)
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if len(outcomes) != 1 {
		t.Fatalf("expected 1 outcome, got %d", len(outcomes))
	}

	out := outcomes[0]
	if out.Sprite != ball {
		t.Error("outcome should reference the moving sprite")
	}
	if len(out.Hits) != 1 || out.Hits[0] != floor {
		t.Errorf("expected a hit on the floor, got %v", out.Hits)
	}
	if out.Sides[physics.SideBottom] != 1 {
		t.Errorf("expected one bottom contact, got %v", out.Sides)
	}
	if !out.Result.Grounded || ball.Rect.Y != 90 {
		t.Errorf("ball should rest on the floor: grounded=%v rect=%+v", out.Result.Grounded, ball.Rect)
	}
	if floor.Rect != core.NewRect(0, 100, 200, 20) {
		t.Error("static sprite should not move")
	}
}

func TestHazardDamageAppliedAfterTick(t *testing.T) {
	tests := []struct {
		name       string
		hazard     bool
		startY     float64
		speed      float64
		wantDamage int
	}{
		{"hard hit on hazard", true, 89, 5, 1},
		{"soft landing on hazard", true, 90, 0.5, 0},
		{"hard hit on plain floor", false, 89, 5, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLevel()
			l.Add(newFloor(tc.hazard))
			ball := l.Add(newBall("ball", 50, tc.startY))
			ball.Body.Velocity = physics.Vec2{Y: tc.speed}

			outcomes, err := l.Update(newEngine(), 1.0/60.0)
			if err != nil {
				t.Fatalf("Update() failed: %v", err)
			}
			if len(outcomes[0].Hits) == 0 {
				t.Fatal("expected the ball to reach the floor")
			}
			if outcomes[0].Damage != tc.wantDamage {
				t.Errorf("Damage = %d, expected %d", outcomes[0].Damage, tc.wantDamage)
			}
			if ball.Health.Current != 3-tc.wantDamage {
				t.Errorf("Health = %d, expected %d", ball.Health.Current, 3-tc.wantDamage)
			}
		})
	}
}

func TestDeadSpritesAreSkipped(t *testing.T) {
	l := NewLevel()
	l.Add(newFloor(true))
	ball := l.Add(newBall("ball", 50, 20))
	ball.Health.Damage(10)

	outcomes, err := l.Update(newEngine(), 1.0/60.0)
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if len(outcomes) != 0 {
		t.Errorf("dead sprite should not update, got %d outcomes", len(outcomes))
	}
	if ball.Rect.Y != 20 {
		t.Error("dead sprite moved")
	}
}

func TestDeclinedTickDoesNotStopOthers(t *testing.T) {
	l := NewLevel()
	l.Add(newFloor(false))
	bad := l.Add(newBall("bad", 10, 10))
	bad.Body.Velocity = physics.Vec2{X: math.NaN()}
	good := l.Add(newBall("good", 100, 10))

	outcomes, err := l.Update(newEngine(), 1.0/60.0)
	if !errors.Is(err, physics.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
	if len(outcomes) != 1 || outcomes[0].Sprite != good {
		t.Fatalf("expected only the good sprite to update, got %d outcomes", len(outcomes))
	}
	if bad.Rect.Y != 10 {
		t.Error("declined sprite should not move")
	}
	if good.Rect.Y <= 10 {
		t.Error("good sprite should fall")
	}
}

func TestHealth(t *testing.T) {
	h := NewHealth(0)
	if h.Max != 1 || h.Current != 1 {
		t.Errorf("NewHealth(0) = %+v, expected 1/1", h)
	}

	h = NewHealth(3)
	h.Damage(-5)
	if h.Current != 3 {
		t.Error("negative damage should be ignored")
	}
	if h.Damage(5) != 0 || h.Alive() {
		t.Error("health should floor at 0 and report dead")
	}
	h.Restore()
	if h.Current != 3 {
		t.Error("Restore should refill health")
	}
}

func TestLevelDraw(t *testing.T) {
	l := NewLevel()
	l.Add(&Sprite{Name: "block", Rect: core.NewRect(0, 0, 20, 20), Glyph: '@'})
	dead := l.Add(newBall("ghost", 40, 0))
	dead.Glyph = 'x'
	dead.Health.Damage(3)

	scr := core.NewScreen(10, 5)
	l.Draw(scr, core.NewViewport(10, 20))

	if scr.Get(0, 0) != '@' || scr.Get(1, 0) != '@' {
		t.Errorf("block not drawn: %q", scr.Row(0))
	}
	if scr.Get(4, 0) == 'x' {
		t.Error("dead sprite should not be drawn")
	}
	if l.Find("block") == nil || l.Find("missing") != nil {
		t.Error("Find returned the wrong sprite")
	}
}
