package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-physics/internal/core"
	"github.com/vovakirdan/tui-physics/internal/registry"
	"github.com/vovakirdan/tui-physics/internal/storage"
)

// Model is the Bubble Tea model that runs one scene at a fixed tick rate.
// Each tick advances the scene by 1/TickRate seconds.
type Model struct {
	scene      registry.Scene
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	keyMapper  *KeyMapper
	state      core.SceneState
	embedded   bool // Back returns to a parent menu instead of quitting
	quitting   bool
	backToMenu bool
}

// NewModel creates a model for the given scene. The scene is reset in Init.
func NewModel(scene registry.Scene, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}

	return Model{
		scene:      scene,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Embedded makes Back return to the parent menu.
func (m Model) Embedded() Model {
	m.embedded = true
	return m
}

// Init resets the scene and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.scene.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if m.quitting || m.backToMenu {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.saveRun()
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.saveRun()
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionRestart:
		m.saveRun()
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize rebuilds the scene for the new terminal size. The run so
// far is recorded first.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if msg.Width == m.config.ScreenW && msg.Height == m.config.ScreenH {
		return m, nil
	}

	m.saveRun()
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.scene.Reset(m.config)
	m.state = m.scene.State()
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.scene.Step(m.inputFrame)
	m.state = result.State
	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveRun records the current run if anything was simulated.
func (m *Model) saveRun() {
	st := m.scene.State()
	if m.store == nil || st.Ticks == 0 {
		return
	}
	id, err := m.store.SaveRun(m.scene.ID(), st)
	if err != nil {
		m.logger.Warn("could not save run", "scene", m.scene.ID(), "err", err)
		return
	}
	m.logger.Debug("run saved", "id", id, "scene", m.scene.ID(), "ticks", st.Ticks, "contacts", st.Contacts)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.scene.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".physbox", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.scene.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.scene.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the scene counters as of the last tick.
func (m Model) State() core.SceneState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single scene.
func Run(scene registry.Scene, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(scene, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
