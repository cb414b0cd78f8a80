package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/counterflow/internal/config"
	"github.com/vovakirdan/counterflow/internal/core"
	"github.com/vovakirdan/counterflow/internal/games/counterflow"
)

// holdWindow is how long a steering key counts as held after its last
// press. Terminals only report presses, so auto-repeat keeps it alive.
const holdWindow = 150 * time.Millisecond

// Model is the Bubble Tea model for a Counter Flow session.
type Model struct {
	game   *counterflow.Game
	cfg    config.Config
	rc     core.RuntimeConfig
	logger *log.Logger

	screen *core.Screen
	world  core.Rect
	width  int
	height int

	keys      KeyMap
	help      help.Model
	board     table.Model
	boardOpen bool

	input    core.InputFrame
	held     map[core.Key]time.Duration
	last     time.Time
	state    core.GameState
	quitting bool
}

// NewModel creates a Bubble Tea model around game. The game is reset with
// rc; a zero seed is replaced with the current time.
func NewModel(game *counterflow.Game, cfg config.Config, rc core.RuntimeConfig, logger *log.Logger) Model {
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	game.Reset(rc)

	h := help.New()
	h.Width = rc.ScreenW

	return Model{
		game:   game,
		cfg:    cfg,
		rc:     rc,
		logger: logger,
		screen: core.NewScreen(rc.ScreenW, max(rc.ScreenH-1, 1)),
		world:  core.NewRect(0, 0, cfg.Screen.Width, cfg.Screen.Height),
		width:  rc.ScreenW,
		height: rc.ScreenH,
		keys:   DefaultKeyMap(),
		help:   h,
		input:  core.NewInputFrame(),
		held:   make(map[core.Key]time.Duration),
		state:  game.State(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.cfg.Timing.ModalFPS)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if ev, ok := MapMouse(msg, m.viewport()); ok {
			m.input.Push(ev)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

func (m Model) viewport() viewport {
	return newViewport(m.world, m.screen.Width(), m.screen.Height())
}

// handleKey queues key input for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	var cmd tea.Cmd
	if m.boardOpen && (key.Matches(msg, m.keys.Up) || key.Matches(msg, m.keys.Down)) {
		m.board, cmd = m.board.Update(msg)
	}

	if k, ok := m.keys.Steering(msg); ok && m.state.Playing {
		m.held[k] = holdWindow
	}
	for _, ev := range MapKey(msg) {
		m.input.Push(ev)
	}
	return m, cmd
}

// handleResize processes window resize events. The simulation keeps its
// world size; only the cell grid changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	m.rc.ScreenW, m.rc.ScreenH = msg.Width, msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 1))
	m.help.Width = msg.Width
	if m.boardOpen {
		m.board = newBoardTable(EntriesFromRows(m.game.Frame().Rows), m.height, true)
	}
	return m, nil
}

// handleTick runs one simulation step with the input gathered since the
// last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := frameTime(m.last, now)
	m.last = now
	m.input.Elapsed = dt

	decay := max(dt, time.Second/time.Duration(max(m.rc.TickRate, 1)))
	for k, left := range m.held {
		m.input.Hold(k)
		if left -= decay; left <= 0 {
			delete(m.held, k)
		} else {
			m.held[k] = left
		}
	}

	result := m.game.Step(m.input)
	m.state = result.State
	m.input.Clear()

	if m.state.Terminated {
		m.quitting = true
		return m, tea.Quit
	}
	if !m.state.Playing {
		clear(m.held)
	}

	if m.game.Mode() == counterflow.ModeLeaderboard {
		if !m.boardOpen {
			m.board = newBoardTable(EntriesFromRows(m.game.Frame().Rows), m.height, true)
			m.boardOpen = true
		}
	} else {
		m.boardOpen = false
	}

	rate := m.rc.TickRate
	if m.state.Modal() {
		rate = m.cfg.Timing.ModalFPS
	}
	return m, tickCmd(rate)
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	DrawFrame(m.screen, m.game.Frame())

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path, err := xdg.StateFile(filepath.Join("counterflow", "screenshots", name))
	if err != nil {
		m.logger.Warn("screenshot directory unavailable", "err", err)
		return
	}
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot not saved", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	f := m.game.Frame()
	helpLine := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Render(m.help.View(m.keys.For(f.Mode)))

	if m.boardOpen && f.Mode == counterflow.ModeLeaderboard {
		return boardView(m.board, len(f.Rows) == 0, m.width, helpLine)
	}

	DrawFrame(m.screen, f)
	return RenderScreen(m.screen) + "\n" + helpLine
}

// Run starts the Bubble Tea program around game and blocks until it exits.
func Run(game *counterflow.Game, cfg config.Config, rc core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, cfg, rc, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
