package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-physics/internal/config"
	"github.com/vovakirdan/tui-physics/internal/core"
	"github.com/vovakirdan/tui-physics/internal/registry"
	"github.com/vovakirdan/tui-physics/internal/storage"
)

const stubID = "tui-stub"

type stubScene struct {
	state  core.SceneState
	resets int
	last   core.InputFrame
}

func (s *stubScene) ID() string    { return stubID }
func (s *stubScene) Title() string { return "Stub" }

func (s *stubScene) Reset(core.RuntimeConfig) {
	s.resets++
	s.state = core.SceneState{}
}

func (s *stubScene) Step(in core.InputFrame) core.StepResult {
	s.last = in.Clone()
	s.state.Ticks++
	s.state.Contacts += 2
	s.state.Bottom += 2
	return core.StepResult{State: s.state}
}

func (s *stubScene) Render(dst *core.Screen) { dst.DrawText(0, 0, "stub") }
func (s *stubScene) State() core.SceneState  { return s.state }

func init() {
	registry.Register(stubID, func() registry.Scene { return &stubScene{} })
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key    string
		action core.Action
		quit   bool
	}{
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"a", core.ActionLeft, false},
		{"l", core.ActionRight, false},
		{" ", core.ActionJump, false},
		{"p", core.ActionPause, false},
		{"r", core.ActionRestart, false},
		{"esc", core.ActionBack, false},
		{"enter", core.ActionConfirm, false},
		{"x", core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			action, quit := km.MapKey(keyMsg(tt.key))
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.key, action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := map[string]MenuAction{
		"k":     MenuActionUp,
		"j":     MenuActionDown,
		"enter": MenuActionSelect,
		"tab":   MenuActionRuns,
		"esc":   MenuActionBack,
		"q":     MenuActionQuit,
		"x":     MenuActionNone,
	}
	for k, want := range tests {
		if got := km.MapKeyToMenuAction(keyMsg(k)); got != want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", k, got, want)
		}
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawTextColored(0, 0, "abc", core.ColorCyan)
	s.DrawText(0, 1, "xy")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen produced %d lines, want 2", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 5 {
			t.Errorf("line %d width = %d, want 5", i, w)
		}
	}
	if !strings.Contains(lines[0], "abc") || !strings.Contains(lines[1], "xy") {
		t.Errorf("RenderScreen lost text: %q", out)
	}
}

func TestModelTicksAndSavesOnQuit(t *testing.T) {
	store := openStore(t)
	scene := &stubScene{}
	cfg := core.RuntimeConfig{ScreenW: 20, ScreenH: 5, TickRate: 60, Seed: 1}

	var m tea.Model = NewModel(scene, store, cfg, quietLogger())
	m.Init()
	if scene.resets != 1 {
		t.Fatalf("Init should reset the scene once, got %d", scene.resets)
	}

	m, _ = m.Update(keyMsg("d"))
	m, _ = m.Update(TickMsg{})
	if !scene.last.Has(core.ActionRight) {
		t.Error("pressed key should reach the next step")
	}
	m, _ = m.Update(TickMsg{})
	if scene.last.Has(core.ActionRight) {
		t.Error("input frame should be cleared after a step")
	}
	if got := m.(Model).State().Ticks; got != 2 {
		t.Errorf("Ticks = %d, want 2", got)
	}
	if !strings.Contains(m.View(), "stub") {
		t.Error("View should render the scene")
	}

	m, cmd := m.Update(keyMsg("q"))
	if cmd == nil || !m.(Model).IsQuitting() {
		t.Fatal("q should quit")
	}

	runs, err := store.RecentRuns(stubID, 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	if runs[0].Ticks != 2 || runs[0].Contacts != 4 || runs[0].Bottom != 4 {
		t.Errorf("saved run = %+v", runs[0])
	}
}

func TestModelSkipsEmptyRuns(t *testing.T) {
	store := openStore(t)
	var m tea.Model = NewModel(&stubScene{}, store, core.DefaultConfig(), quietLogger())
	m.Init()
	m.Update(keyMsg("q"))

	runs, err := store.RecentRuns(stubID, 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("a run with no ticks should not be saved, got %d", len(runs))
	}
}

func TestModelBack(t *testing.T) {
	t.Run("standalone quits", func(t *testing.T) {
		var m tea.Model = NewModel(&stubScene{}, nil, core.DefaultConfig(), quietLogger())
		m, _ = m.Update(keyMsg("esc"))
		if !m.(Model).IsQuitting() {
			t.Error("back should quit a standalone model")
		}
	})

	t.Run("embedded returns to menu", func(t *testing.T) {
		var m tea.Model = NewModel(&stubScene{}, nil, core.DefaultConfig(), quietLogger()).Embedded()
		m, _ = m.Update(keyMsg("esc"))
		got := m.(Model)
		if got.IsQuitting() || !got.BackToMenu() {
			t.Errorf("quitting=%v back=%v, want false true", got.IsQuitting(), got.BackToMenu())
		}
	})
}

func TestModelResizeResets(t *testing.T) {
	store := openStore(t)
	scene := &stubScene{}
	var m tea.Model = NewModel(scene, store, core.RuntimeConfig{ScreenW: 20, ScreenH: 5, TickRate: 60}, quietLogger())
	m.Init()
	m, _ = m.Update(TickMsg{})

	m, _ = m.Update(tea.WindowSizeMsg{Width: 20, Height: 5})
	if scene.resets != 1 {
		t.Errorf("same size should not reset, resets = %d", scene.resets)
	}

	m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if scene.resets != 2 {
		t.Errorf("new size should reset, resets = %d", scene.resets)
	}
	runs, _ := store.RecentRuns(stubID, 10)
	if len(runs) != 1 {
		t.Errorf("resize should record the run so far, got %d runs", len(runs))
	}
}

func TestRunBoardWithoutStore(t *testing.T) {
	m := NewRunBoardModel(nil, 100, 30)
	if m.Selected() == "" {
		t.Fatal("run board should select a scene")
	}
	if !strings.Contains(m.View(), "No runs recorded") {
		t.Error("empty board should say so")
	}

	next, _ := m.Update(keyMsg("esc"))
	if !next.(RunBoardModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestRunBoardLoadsRuns(t *testing.T) {
	store := openStore(t)
	for range 3 {
		if _, err := store.SaveRun(stubID, core.SceneState{Ticks: 10, Contacts: 1}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	m := NewRunBoardModel(store, 100, 30)
	for m.Selected() != stubID {
		next, _ := m.Update(keyMsg("tab"))
		m = next.(RunBoardModel)
	}
	if len(m.Runs()) != 3 {
		t.Errorf("got %d runs, want 3", len(m.Runs()))
	}
	if !strings.Contains(m.View(), "Runs: 3") {
		t.Error("stats line should count runs")
	}
}

func TestSessionFlow(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
	var m tea.Model = NewSessionModel(nil, cfg, config.Default(), quietLogger())

	// Move the cursor onto the stub scene.
	for i := 0; i < len(registry.List()); i++ {
		if registry.List()[i].ID == stubID {
			break
		}
		m, _ = m.Update(keyMsg("j"))
	}

	m, cmd := m.Update(keyMsg("enter"))
	if cmd == nil || m.(SessionModel).view != viewScene {
		t.Fatal("enter should start the scene")
	}
	if !strings.Contains(m.View(), "stub") {
		t.Error("session should show the scene")
	}

	m, _ = m.Update(keyMsg("esc"))
	if m.(SessionModel).view != viewMenu {
		t.Fatal("back should return to the menu")
	}

	m, _ = m.Update(keyMsg("tab"))
	if m.(SessionModel).view != viewRuns {
		t.Fatal("tab should open the run board")
	}
	m, _ = m.Update(keyMsg("b"))
	if m.(SessionModel).view != viewMenu {
		t.Fatal("back should leave the run board")
	}

	m, cmd = m.Update(keyMsg("q"))
	if cmd == nil || !m.(SessionModel).Quitting() {
		t.Error("q should end the session")
	}
}
