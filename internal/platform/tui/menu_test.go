package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flow2048/internal/registry"
	"github.com/vovakirdan/flow2048/internal/storage"
)

func menuSend(m MenuModel, msgs ...tea.Msg) MenuModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(MenuModel)
	}
	return m
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

func TestMenuSelectsModes(t *testing.T) {
	m := menuSend(NewMenuModel(testConfig()), keyEnter)
	if sel := m.Selected(); sel == nil || sel.Mode != ModeCampaign || sel.Level != 0 {
		t.Errorf("first entry = %+v, want campaign from level 1", sel)
	}

	m = menuSend(NewMenuModel(testConfig()), keyDown, keyDown, keyEnter)
	sel := m.Selected()
	if sel == nil || sel.Mode != ModeEndless || !sel.Watch {
		t.Fatalf("third entry = %+v, want endless with the solver playing", sel)
	}
	game := sel.NewGame()
	game.Reset(testConfig())
	if !game.Auto() {
		t.Error("a watch game should start in autoplay")
	}
	if game.ID() != "2048_endless" {
		t.Errorf("ID = %q, want 2048_endless", game.ID())
	}
}

func TestMenuLevelSelect(t *testing.T) {
	m := menuSend(NewMenuModel(testConfig()), keyDown, keyDown, keyDown, keyEnter)
	if !m.inLevelSelect {
		t.Fatal("fourth entry should open the level list")
	}
	if !strings.Contains(m.View(), "SELECT LEVEL") {
		t.Error("level list view is missing its title")
	}

	back := menuSend(m, keyEsc)
	if back.inLevelSelect || back.IsQuitting() {
		t.Error("esc in the level list should return to the modes")
	}

	m = menuSend(m, keyDown, keyEnter)
	sel := m.Selected()
	if sel == nil || sel.Mode != ModeCampaign || sel.Level != 2 {
		t.Fatalf("selection = %+v, want campaign level 2", sel)
	}
	game := sel.NewGame()
	game.Reset(testConfig())
	if game.Snapshot().Level != 2 {
		t.Errorf("game starts at level %d, want 2", game.Snapshot().Level)
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	if m := menuSend(NewMenuModel(testConfig()), keyTab); !m.WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}
	if m := menuSend(NewMenuModel(testConfig()), keyEsc); !m.IsQuitting() {
		t.Error("esc on the mode list should quit")
	}

	resized := menuSend(NewMenuModel(testConfig()), tea.WindowSizeMsg{Width: 120, Height: 40})
	if got := resized.Config(); got.ScreenW != 120 || got.ScreenH != 40 {
		t.Errorf("Config() = %dx%d after resize", got.ScreenW, got.ScreenH)
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q, want %q", got, "  ab")
	}
	if got := centerText("▶ ok", 6); got != " ▶ ok" {
		t.Errorf("centerText counts runes, got %q", got)
	}
	if got := centerText("toolong", 3); got != "toolong" {
		t.Errorf("centerText = %q", got)
	}
}

func TestScoreboardTabs(t *testing.T) {
	store := openStore(t)
	for _, score := range []int{100, 300, 200} {
		if _, err := store.SaveScore("2048", score, 64); err != nil {
			t.Fatalf("SaveScore: %v", err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	if len(m.tabs) != len(registry.List())+1 {
		t.Fatalf("tabs = %d, want every mode plus solver runs", len(m.tabs))
	}
	if m.current().ID != "2048" {
		t.Fatalf("first tab = %q", m.current().ID)
	}
	if len(m.rows) != 3 || m.rows[0][1] != "300" {
		t.Errorf("rows = %v, want the best score first", m.rows)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if m.current().ID != solverRunsTab {
		t.Errorf("shift+tab from the first tab should wrap to %q, got %q", solverRunsTab, m.current().ID)
	}
	if !strings.Contains(m.View(), "No solver runs yet") {
		t.Error("empty runs tab should say so")
	}

	err := store.SaveRun(storage.Run{ID: "run-one-abcdef", Games: 4, MeanScore: 1500, BestScore: 3000, BestTile: 256}, nil)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	m.load()
	if len(m.rows) != 1 || m.rows[0][0] != "run-one-" {
		t.Errorf("run rows = %v", m.rows)
	}

	next, _ = m.Update(keyEsc)
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestSessionFlow(t *testing.T) {
	var m tea.Model = NewSessionModel(nil, testConfig(), nil)

	m, cmd := m.Update(keyEnter)
	s := m.(SessionModel)
	if s.screen != screenGame || cmd == nil {
		t.Fatal("selecting a mode should start a game")
	}
	if s.game.standalone {
		t.Error("session games return to the menu")
	}

	m, _ = m.Update(keyEsc)
	m, _ = m.Update(tick())
	m, _ = m.Update(keyEsc)
	s = m.(SessionModel)
	if s.screen != screenMenu || s.quitting {
		t.Fatalf("leaving a paused game should show the menu, screen = %v", s.screen)
	}

	m, _ = m.Update(keyTab)
	if m.(SessionModel).screen != screenScores {
		t.Fatal("tab should show the scoreboard")
	}
	m, _ = m.Update(keyEsc)
	if m.(SessionModel).screen != screenMenu {
		t.Error("esc on the scoreboard should return to the menu")
	}

	m, cmd = m.Update(runeKey("q"))
	if !m.(SessionModel).quitting || cmd == nil {
		t.Error("q should end the session")
	}
}
