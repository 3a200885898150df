package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/flow2048/internal/core"
	"github.com/vovakirdan/flow2048/internal/registry"
	"github.com/vovakirdan/flow2048/internal/storage"
)

// resizer is implemented by games that can follow the terminal size
// without restarting.
type resizer interface {
	Resize(w, h int)
}

// controller is implemented by games that describe their own keys.
type controller interface {
	Controls() string
}

// Model is the Bubble Tea model for one running game. The last terminal
// row is a status bar, the game gets the rest.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	width      int
	sessionID  string
	savedMoves int // Move number of the last recorded board, -1 before any
	best       int
	quitting   bool
	backToMenu bool
	standalone bool // Back quits the program instead of returning to a menu
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a Bubble Tea model for the given game. store and logger
// may be nil.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 0)),
		store:      store,
		logger:     logger,
		config:     cfg,
		keys:       NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		width:      cfg.ScreenW,
		sessionID:  uuid.NewString(),
		savedMoves: -1,
		standalone: true,
	}
	if store != nil {
		if best, err := store.HighScore(game.ID()); err == nil {
			m.best = best
		}
	}
	return m
}

// SessionID identifies the current game in the state history.
func (m Model) SessionID() string {
	return m.sessionID
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	return tickCmd(m.config.TickRate)
}

// gameConfig is the runtime config minus the status bar row.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = max(cfg.ScreenH-1, 0)
	return cfg
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
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

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone, core.ActionConfirm:
	case core.ActionBack:
		if !m.gameState.GameOver && !m.gameState.Paused {
			m.inputFrame.Set(core.ActionPause)
			break
		}
		m.backToMenu = true
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.width = msg.Width

	cfg := m.gameConfig()
	m.screen.Resize(cfg.ScreenW, cfg.ScreenH)

	if r, ok := m.game.(resizer); ok {
		r.Resize(cfg.ScreenW, cfg.ScreenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(cfg)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.gameConfig())
		m.gameState = m.game.State()
		m.sessionID = uuid.NewString()
		m.savedMoves = -1
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	m.recordState()

	if m.gameState.GameOver && !m.scoreSaved && m.gameState.Score > 0 {
		m.saveScore()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordState appends the board to the state history whenever the move
// count changes. An undo rewrites history from the restored move on.
func (m *Model) recordState() {
	a, ok := m.game.(registry.Assisted)
	if !ok || m.store == nil || m.gameState.Moves == m.savedMoves {
		return
	}

	err := m.store.SaveState(storage.StateEntry{
		SessionID: m.sessionID,
		Move:      m.gameState.Moves,
		Board:     a.BoardCode(),
		Score:     m.gameState.Score,
	})
	if err != nil {
		m.logger.Warn("could not record board", "session", m.sessionID, "error", err)
	}
	m.savedMoves = m.gameState.Moves
}

func (m *Model) saveScore() {
	score := m.gameState.Score
	if score > m.best {
		m.best = score
	}
	if m.store == nil {
		return
	}

	maxTile := 0
	if a, ok := m.game.(registry.Assisted); ok {
		maxTile = a.FlatBoard().MaxTile()
	}
	if _, err := m.store.SaveScore(m.game.ID(), score, maxTile); err != nil {
		m.logger.Warn("could not save score", "game", m.game.ID(), "error", err)
		return
	}
	m.logger.Debug("score saved", "game", m.game.ID(), "score", score, "max_tile", maxTile)
}

// saveScreenshot saves the current screen, plus the board code when the
// game has one, under ~/.flow2048/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".flow2048", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	var b strings.Builder
	b.WriteString(m.screen.String())
	if a, ok := m.game.(registry.Assisted); ok {
		fmt.Fprintf(&b, "\nboard: %s\n", a.BoardCode())
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
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
	if m.config.ScreenH < 2 {
		return RenderScreen(m.screen)
	}
	return RenderScreen(m.screen) + "\n" + statusBar(m.width, m.game.Title(), m.statusText())
}

func (m Model) statusText() string {
	parts := []string{fmt.Sprintf("Best: %d", m.best)}
	if m.gameState.Auto {
		parts = append(parts, "solver playing")
	}
	if c, ok := m.game.(controller); ok {
		parts = append(parts, c.Controls())
	}
	return strings.Join(parts, " | ")
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
