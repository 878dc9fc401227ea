package tui

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ringshot/internal/registry"
	"github.com/vovakirdan/ringshot/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 90 // Minimum width to show mode list sidebar
	sidebarWidth       = 24 // Width of mode list sidebar
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.PrevMode, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMode, k.PrevMode},
		{k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// runColumns are the table columns shared by the interactive and static views.
func runColumns() []table.Column {
	return []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Kills", Width: 6},
		{Title: "Survived", Width: 9},
		{Title: "Shots", Width: 6},
		{Title: "Dropped", Width: 8},
		{Title: "Date", Width: 13},
	}
}

// runRows converts stored runs to table rows.
func runRows(entries []storage.RunEntry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", e.Kills),
			fmt.Sprintf("%.1fs", e.Survived),
			fmt.Sprintf("%d", e.ShotsFired),
			fmt.Sprintf("%d", e.ShotsDropped+e.SpawnsDropped),
			e.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// RenderRunsTable renders runs as a static table, for non-interactive output.
func RenderRunsTable(title string, entries []storage.RunEntry) string {
	if len(entries) == 0 {
		return fmt.Sprintf("%s\nNo runs recorded yet.\n", title)
	}

	t := table.New(
		table.WithColumns(runColumns()),
		table.WithRows(runRows(entries)),
		table.WithHeight(len(entries)+1),
		table.WithFocused(false),
	)
	s := table.DefaultStyles()
	s.Selected = lipgloss.NewStyle()
	s.Header = s.Header.Bold(true)
	t.SetStyles(s)

	return title + "\n" + t.View() + "\n"
}

// RenderModeStatsTable renders one summary row per played mode, sorted by mode.
func RenderModeStatsTable(stats map[string]*storage.ModeStats) string {
	if len(stats) == 0 {
		return "No runs recorded yet.\n"
	}

	rows := make([]table.Row, 0, len(stats))
	for _, mode := range slices.Sorted(maps.Keys(stats)) {
		st := stats[mode]
		rows = append(rows, table.Row{
			mode,
			fmt.Sprintf("%d", st.Runs),
			fmt.Sprintf("%d", st.BestKills),
			fmt.Sprintf("%.1f", st.AvgKills),
			fmt.Sprintf("%.1fs", st.LongestSurvival),
			st.LastPlayed.Format("Jan 02 15:04"),
		})
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Mode", Width: 18},
			{Title: "Runs", Width: 5},
			{Title: "Best", Width: 5},
			{Title: "Avg", Width: 6},
			{Title: "Longest", Width: 9},
			{Title: "Last played", Width: 13},
		}),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
		table.WithFocused(false),
	)
	s := table.DefaultStyles()
	s.Selected = lipgloss.NewStyle()
	s.Header = s.Header.Bold(true)
	t.SetStyles(s)

	return t.View() + "\n"
}

// ScoreboardModel is the Bubble Tea model for browsing the run history.
type ScoreboardModel struct {
	modes       []registry.GameInfo
	modeCursor  int
	store       *storage.Store
	limit       int
	runs        []storage.RunEntry
	stats       *storage.ModeStats
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewScoreboardModel creates a new scoreboard model starting at mode.
func NewScoreboardModel(store *storage.Store, mode string, limit, width, height int) ScoreboardModel {
	modes := registry.List()

	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		modes:       modes,
		store:       store,
		limit:       limit,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	for i, g := range modes {
		if g.ID == mode {
			m.modeCursor = i
		}
	}

	m.table = m.createTable()
	if len(m.modes) > 0 {
		m.loadRuns(m.modes[m.modeCursor].ID)
	}

	return m
}

// createTable creates a new table sized to the window.
func (m *ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(runColumns()),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)), // Leave room for header, stats, help and margins
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

// loadRuns loads runs and aggregate stats for a mode.
func (m *ScoreboardModel) loadRuns(mode string) {
	m.runs, m.stats = nil, nil
	if m.store != nil {
		if runs, err := m.store.TopRuns(mode, m.limit); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.GetModeStats(mode); err == nil {
			m.stats = stats
		}
	}
	m.table.SetRows(runRows(m.runs))
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextMode):
			if len(m.modes) > 0 {
				m.modeCursor = (m.modeCursor + 1) % len(m.modes)
				m.loadRuns(m.modes[m.modeCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevMode):
			if len(m.modes) > 0 {
				m.modeCursor = (m.modeCursor - 1 + len(m.modes)) % len(m.modes)
				m.loadRuns(m.modes[m.modeCursor].ID)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.table.SetRows(runRows(m.runs))
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages (including scrolling) to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "RUN HISTORY"
	if len(m.modes) > 0 {
		title = fmt.Sprintf("RUN HISTORY - %s", m.modes[m.modeCursor].Title)
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, titleStyle.Render(title)))
	b.WriteString("\n\n")

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", panel))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, panel))
	}

	b.WriteString("\n")
	b.WriteString(m.renderStats())
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar lists modes with the selected one highlighted.
func (m ScoreboardModel) renderSidebar() string {
	var sidebar strings.Builder
	sidebar.WriteString("Modes\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, g := range m.modes {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.modeCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + g.Title))
		sidebar.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1).
		Render(sidebar.String())
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.runs) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render("No runs recorded yet.\nSurvive a round to set a record!")
	}
	return m.table.View()
}

// renderStats summarises the selected mode.
func (m ScoreboardModel) renderStats() string {
	if m.stats == nil || m.stats.Runs == 0 {
		return ""
	}
	return footerStyle.Render(fmt.Sprintf("Runs: %d  Best: %d  Avg: %.1f  Longest: %.1fs  Last: %s",
		m.stats.Runs, m.stats.BestKills, m.stats.AvgKills, m.stats.LongestSurvival,
		m.stats.LastPlayed.Format("Jan 02 15:04")))
}

// RunScoreboard runs the interactive scoreboard.
func RunScoreboard(store *storage.Store, mode string, limit, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(store, mode, limit, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
