package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ringshot/internal/core"
	"github.com/vovakirdan/ringshot/internal/registry"
	"github.com/vovakirdan/ringshot/internal/storage"
)

// footerHeight is the number of rows reserved below the game for help.
const footerHeight = 1

// viewporter is implemented by games that can map screen cells back to world
// coordinates, so the mouse can aim.
type viewporter interface {
	Viewport(screenW, screenH int) core.Viewport
}

// runReporter is implemented by games that produce finished-run records.
type runReporter interface {
	TakeRun() (core.Run, bool)
}

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	help       help.Model

	mouseDown bool      // left button held
	latched   bool      // fire toggled from the keyboard
	lastTick  time.Time // zero until the first tick
	best      int       // most kills in a stored run of this mode

	quitting bool
}

// NewModel creates a new Bubble Tea model for the given game.
// store and logger may be nil.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.ShowAll = false

	best := 0
	if store != nil {
		var err error
		if best, err = store.HighScore(game.ID()); err != nil {
			logger.Warn("could not read high score", "err", err)
		}
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(0, cfg.ScreenH-footerHeight)),
		store:      store,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       h,
		best:       best,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys()

	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if action, _ := m.keyMapper.MapKey(msg); action == core.ActionFire {
		m.latched = !m.latched
	}
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleMouse aims at the cell under the cursor and tracks the left button.
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	m.inputFrame.Pointer = m.pointerAt(msg.X, msg.Y)

	if msg.Button == tea.MouseButtonLeft {
		switch msg.Action {
		case tea.MouseActionPress:
			m.mouseDown = true
		case tea.MouseActionRelease:
			m.mouseDown = false
		}
	} else if msg.Action == tea.MouseActionRelease {
		// Some terminals report releases without a button.
		m.mouseDown = false
	}
	return m
}

// pointerAt converts a terminal cell to world units.
func (m Model) pointerAt(col, row int) core.Vec2 {
	if vp, ok := m.game.(viewporter); ok {
		return vp.Viewport(m.screen.Width(), m.screen.Height()).ToWorld(col, row)
	}
	return core.V(float64(col), float64(row))
}

// handleResize only resizes the buffer; the world is independent of the
// terminal size so the round keeps going.
func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(0, msg.Height-footerHeight))
	m.help.Width = msg.Width
	return m
}

// handleTick measures the frame delta and advances the game.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := m.config.FrameTime()
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick).Seconds()
	}
	m.lastTick = now

	m.inputFrame.Dt = dt
	m.inputFrame.SetHeld(core.ActionFire, m.mouseDown || m.latched)

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.saveRun()

	// Clear edge-triggered input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveRun persists a finished run, once, and raises the best score.
func (m *Model) saveRun() {
	rr, ok := m.game.(runReporter)
	if !ok {
		return
	}
	run, ok := rr.TakeRun()
	if !ok || m.store == nil {
		return
	}
	if _, err := m.store.SaveRun(run); err != nil {
		// Best-effort save, game continues regardless
		m.logger.Warn("could not save run", "err", err)
		return
	}
	m.best = max(m.best, run.Kills)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".ringshot", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	footer := m.help.View(m.keyMapper.Keys())
	if m.store != nil {
		footer = fmt.Sprintf("Best: %d • %s", m.best, footer)
	}
	return RenderScreen(m.screen) + "\n" + footerStyle.Render(footer)
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Aim follows the cursor without a button held
	)

	_, err := p.Run()
	return err
}
