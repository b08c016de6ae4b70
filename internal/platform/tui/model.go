package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ghostgrid/internal/core"
	"github.com/vovakirdan/ghostgrid/internal/storage"
)

// Options configures a game model.
type Options struct {
	Store  *storage.Store // Nil disables run persistence
	Logger *log.Logger    // Nil discards output
	Player string         // Recorded with saved runs
	Preset string         // Difficulty preset recorded with saved runs

	// Clipboard enables ctrl+y to copy the result summary. Disabled for
	// SSH sessions, where the clipboard would be the server's.
	Clipboard bool

	// ScreenshotDir is where ctrl+s writes screenshots.
	// Empty means ~/.ghostgrid/screenshots.
	ScreenshotDir string

	// Embedded models run inside a parent model: leaving the game sets
	// BackToMenu instead of quitting the program.
	Embedded bool
}

// statusSeconds is how long a status message stays on screen.
const statusSeconds = 2

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       Game
	screen     *core.Screen
	opts       Options
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	runSaved   bool // Whether the run has been saved for the current game over
	lastRun    *storage.RunResult

	status      string
	statusTicks int
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Player == "" {
		opts.Player = storage.LocalPlayer
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
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

	case tea.WindowSizeMsg:
		// The board layout is computed at render time, so a resize keeps
		// the puzzle state.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "err", err)
			m.setStatus("Screenshot failed")
		} else {
			m.setStatus("Saved " + path)
		}
		return m, nil
	case "ctrl+y":
		m.copyResult()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionBack {
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if !m.opts.Embedded {
				return m, tea.Quit
			}
		}
		return m, nil
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	switch {
	case !m.gameState.GameOver:
		m.runSaved = false
	case !m.runSaved:
		m.saveRun()
		m.runSaved = true
	}

	m.inputFrame.Clear()

	if m.statusTicks > 0 {
		m.statusTicks--
		if m.statusTicks == 0 {
			m.status = ""
		}
	}

	return m, tickCmd(m.config.TickRate)
}

// saveRun records the finished run, best effort.
func (m *Model) saveRun() {
	rep, ok := m.game.(Reporter)
	if !ok || m.opts.Store == nil {
		return
	}

	r := rep.Result()
	saved, err := m.opts.Store.SaveRun(storage.RunResult{
		LevelID:   r.LevelID,
		Player:    m.opts.Player,
		Preset:    m.opts.Preset,
		Won:       r.Won,
		Score:     r.Score,
		Moves:     r.Moves,
		Turns:     r.Turns,
		Shapes:    r.Shapes,
		Completed: r.Completed,
		MoveLimit: r.MoveLimit,
	})
	if err != nil {
		m.logger.Warn("could not save run", "level", r.LevelID, "err", err)
		return
	}
	m.lastRun = &saved
	m.logger.Debug("run saved", "run", saved.RunID, "level", saved.LevelID, "won", saved.Won)
}

// copyResult puts the result summary on the system clipboard.
func (m *Model) copyResult() {
	rep, ok := m.game.(Reporter)
	if !ok || !m.opts.Clipboard {
		return
	}
	if err := clipboard.WriteAll(rep.Result().Summary()); err != nil {
		m.logger.Warn("clipboard unavailable", "err", err)
		m.setStatus("Clipboard unavailable")
		return
	}
	m.setStatus("Result copied to clipboard")
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusTicks = statusSeconds * m.config.TickRate
}

// saveScreenshot saves the current screen to a file and returns its path.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("screenshot: %w", err)
		}
		dir = filepath.Join(home, ".ghostgrid", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.status != "" {
		m.screen.DrawTextWithColor(1, m.screen.Height()-1, m.status, core.ColorBrightYellow)
	}

	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// LastRun returns the most recently saved run, or nil.
func (m Model) LastRun() *storage.RunResult {
	return m.lastRun
}

// RunResult holds the outcome of running a game program.
type RunResult struct {
	BackToMenu bool
	Config     core.RuntimeConfig
}

// Run starts a Bubble Tea program for the game and blocks until it exits.
func Run(game Game, cfg core.RuntimeConfig, opts Options) (RunResult, error) {
	opts.Embedded = false
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return RunResult{Config: cfg}, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return RunResult{Config: cfg}, nil
	}
	return RunResult{BackToMenu: m.BackToMenu(), Config: m.config}, nil
}
