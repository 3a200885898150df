package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flow2048/internal/core"
	"github.com/vovakirdan/flow2048/internal/games/t2048"
)

// GameMode is the kind of 2048 game picked in the menu.
type GameMode int

const (
	ModeCampaign GameMode = iota
	ModeEndless
)

// Selection holds the user's choice from the menu.
type Selection struct {
	Mode  GameMode
	Level int  // 0 = start from beginning, 1-10 = specific campaign level
	Watch bool // Start with the solver playing
}

// NewGame builds the selected game. opts are applied after the selection's
// own options.
func (s Selection) NewGame(opts ...t2048.Option) *t2048.Game {
	var own []t2048.Option
	if s.Watch {
		own = append(own, t2048.WithAutoplay())
	}
	if s.Mode == ModeEndless {
		return t2048.NewEndless(append(own, opts...)...)
	}
	if s.Level > 0 {
		own = append(own, t2048.WithStartLevel(s.Level))
	}
	return t2048.New(append(own, opts...)...)
}

type menuEntry int

const (
	entryCampaign menuEntry = iota
	entryEndless
	entryWatch
	entryLevels
	entryScores
)

var menuEntries = []string{
	entryCampaign: fmt.Sprintf("Campaign (%d levels)", t2048.LevelCount()),
	entryEndless:  "Endless Mode",
	entryWatch:    "Watch the Solver",
	entryLevels:   "Select Level...",
	entryScores:   "High Scores",
}

// MenuModel lets users choose a game mode and starting level.
type MenuModel struct {
	cursor         int
	levelCursor    int
	inLevelSelect  bool
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	selected       *Selection
	openScoreboard bool
	quitting       bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "tab" && !m.inLevelSelect {
		m.openScoreboard = true
		return m, tea.Quit
	}

	action := m.keyMapper.MapKeyToMenuAction(msg)
	if m.inLevelSelect {
		return m.handleLevelSelectKey(action)
	}
	return m.handleModeSelectKey(action)
}

func (m MenuModel) handleModeSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(menuEntries)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		switch menuEntry(m.cursor) {
		case entryCampaign:
			m.selected = &Selection{Mode: ModeCampaign}
			return m, tea.Quit
		case entryEndless:
			m.selected = &Selection{Mode: ModeEndless}
			return m, tea.Quit
		case entryWatch:
			m.selected = &Selection{Mode: ModeEndless, Watch: true}
			return m, tea.Quit
		case entryLevels:
			m.inLevelSelect = true
			m.levelCursor = 0
		case entryScores:
			m.openScoreboard = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m MenuModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < t2048.LevelCount()-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.selected = &Selection{Mode: ModeCampaign, Level: m.levelCursor + 1}
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

// View renders the mode or level list.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")

	if m.inLevelSelect {
		b.WriteString(centerText("SELECT LEVEL", m.width))
		b.WriteString("\n\n")
		writeList(&b, t2048.LevelLabels(), m.levelCursor, m.width)
	} else {
		b.WriteString(centerText("2 0 4 8", m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText("Select game mode:", m.width))
		b.WriteString("\n\n")
		writeList(&b, menuEntries, m.cursor, m.width)
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Tab: Scores  |  Esc: Back  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

func writeList(b *strings.Builder, items []string, cursor, width int) {
	for i, item := range items {
		prefix := "  "
		if i == cursor {
			prefix = "> "
		}
		b.WriteString(centerText(prefix+item, width))
		b.WriteString("\n")
	}
}

// Selected returns the selection, or nil if none was made.
func (m MenuModel) Selected() *Selection {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Selection       *Selection
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.Selection = m.Selected()
	default:
		result.Quit = true
	}
	return result, nil
}
