package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-physics/internal/registry"
	"github.com/vovakirdan/tui-physics/internal/storage"
)

const (
	minWidthForSidebar = 90
	sidebarWidth       = 22
	maxRuns            = 100
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1)
	boardBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardEmptyStyle = boardDimStyle.Italic(true).Padding(2, 4)
)

// RunBoardKeyMap defines the key bindings for the run board.
type RunBoardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextScene key.Binding
	PrevScene key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunBoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextScene, k.PrevScene, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RunBoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextScene, k.PrevScene},
		{k.Back, k.Quit},
	}
}

// DefaultRunBoardKeyMap returns default key bindings.
func DefaultRunBoardKeyMap() RunBoardKeyMap {
	return RunBoardKeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		NextScene: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next scene")),
		PrevScene: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev scene")),
		Back:      key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// RunBoardModel lists recorded runs and aggregate stats per scene.
type RunBoardModel struct {
	scenes      []registry.SceneInfo
	cursor      int
	store       *storage.Store
	runs        []storage.Run
	stats       *storage.SceneStats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        RunBoardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewRunBoardModel creates a run board sized to the terminal.
func NewRunBoardModel(store *storage.Store, width, height int) RunBoardModel {
	h := help.New()
	h.Width = width

	m := RunBoardModel{
		scenes:      registry.List(),
		store:       store,
		keys:        DefaultRunBoardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *RunBoardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Run", Width: 6},
		{Title: "Ticks", Width: 7},
		{Title: "Hits", Width: 6},
		{Title: "T/B/L/R", Width: 14},
		{Title: "Ground", Width: 7},
		{Title: "Vmax", Width: 7},
		{Title: "Date", Width: 13},
	}

	height := m.height - 12
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches runs and stats for the selected scene.
func (m *RunBoardModel) load() {
	m.runs, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil && len(m.scenes) > 0 {
		id := m.scenes[m.cursor].ID
		m.runs, m.loadErr = m.store.RecentRuns(id, maxRuns)
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.SceneStats(id)
		}
	}
	m.updateRows()
}

func (m *RunBoardModel) updateRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", r.ID),
			fmt.Sprintf("%d", r.Ticks),
			fmt.Sprintf("%d", r.Contacts),
			fmt.Sprintf("%d/%d/%d/%d", r.Top, r.Bottom, r.Left, r.Right),
			fmt.Sprintf("%d", r.GroundedTicks),
			fmt.Sprintf("%.1f", r.MaxSpeed),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the run board.
func (m RunBoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the run board.
func (m RunBoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextScene):
			if len(m.scenes) > 0 {
				m.cursor = (m.cursor + 1) % len(m.scenes)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevScene):
			if len(m.scenes) > 0 {
				m.cursor = (m.cursor - 1 + len(m.scenes)) % len(m.scenes)
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the run board.
func (m RunBoardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "RUNS"
	if len(m.scenes) > 0 {
		title = fmt.Sprintf("RUNS - %s", m.scenes[m.cursor].Title)
	}
	b.WriteString(boardTitleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	body := boardBoxStyle.Render(m.renderStats() + "\n\n" + m.renderTable())
	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", body))
	} else {
		b.WriteString(centerText(m.renderTabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(body)
	}

	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m RunBoardModel) renderSidebar() string {
	var sb strings.Builder
	sb.WriteString("Scenes\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	for i, s := range m.scenes {
		line := "  " + s.Title
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + s.Title)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return boardBoxStyle.Width(sidebarWidth).Render(sb.String())
}

func (m RunBoardModel) renderTabs() string {
	if len(m.scenes) == 0 {
		return ""
	}
	return fmt.Sprintf("< %s >", m.scenes[m.cursor].Title)
}

func (m RunBoardModel) renderStats() string {
	if m.loadErr != nil {
		return boardDimStyle.Render("Could not load runs: " + m.loadErr.Error())
	}
	if m.stats == nil || m.stats.Runs == 0 {
		return boardDimStyle.Render("No runs recorded")
	}
	return fmt.Sprintf("Runs: %d  Ticks: %d  Contacts: %d  Avg: %.1f  Vmax: %.1f m/s",
		m.stats.Runs, m.stats.TotalTicks, m.stats.TotalContacts, m.stats.AvgContacts, m.stats.MaxSpeed)
}

func (m RunBoardModel) renderTable() string {
	if len(m.runs) == 0 {
		return boardEmptyStyle.Render("Nothing here yet.\nRun a scene to record one!")
	}
	return m.table.View()
}

// Selected returns the ID of the scene currently shown.
func (m RunBoardModel) Selected() string {
	if len(m.scenes) == 0 {
		return ""
	}
	return m.scenes[m.cursor].ID
}

// Runs returns the runs loaded for the current scene.
func (m RunBoardModel) Runs() []storage.Run {
	return m.runs
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RunBoardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RunBoardModel) IsQuitting() bool {
	return m.quitting
}

// RunRunBoard shows the run board.
// Returns true if user wants to go back to menu, false if quitting.
func RunRunBoard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewRunBoardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(RunBoardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
