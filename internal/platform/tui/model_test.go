package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flow2048/internal/core"
	"github.com/vovakirdan/flow2048/internal/games/t2048"
	"github.com/vovakirdan/flow2048/internal/storage"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 5}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func tick() tea.Msg {
	return TickMsg(time.Now())
}

func TestModelRecordsHistory(t *testing.T) {
	store := openStore(t)
	m := NewModel(t2048.NewEndless(), store, testConfig(), nil)
	m.Init()

	m = send(m, tick())
	history, err := store.History(m.SessionID())
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 || history[0].Move != 0 {
		t.Fatalf("history after the first tick = %+v, want the opening board", history)
	}

	m = send(m, runeKey("n"), tick())
	history, _ = store.History(m.SessionID())
	if len(history) != 2 {
		t.Fatalf("len(history) = %d after a solver step, want 2", len(history))
	}
	if history[0].Board == history[1].Board {
		t.Error("the solver step should change the recorded board")
	}

	m = send(m, runeKey("u"), tick())
	history, _ = store.History(m.SessionID())
	if len(history) != 1 {
		t.Errorf("len(history) = %d after undo, want 1", len(history))
	}
}

func TestModelBackPausesFirst(t *testing.T) {
	m := NewModel(t2048.NewEndless(), nil, testConfig(), nil)
	m.Init()

	m = send(m, tea.KeyMsg{Type: tea.KeyEsc}, tick())
	if !m.gameState.Paused {
		t.Fatal("esc during play should pause")
	}
	if m.BackToMenu() {
		t.Fatal("the first esc should not leave the game")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if !m.BackToMenu() || !m.IsQuitting() || cmd == nil {
		t.Error("esc while paused should leave a standalone game")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(t2048.NewEndless(), nil, testConfig(), nil)
	next, cmd := m.Update(runeKey("q"))
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if next.(Model).View() != "" {
		t.Error("a quitting model renders nothing")
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	m := NewModel(t2048.NewEndless(), nil, testConfig(), nil)
	m.Init()
	m = send(m, runeKey("n"), tick())
	if m.gameState.Moves != 1 {
		t.Fatalf("moves = %d, want 1", m.gameState.Moves)
	}

	m = send(m, tea.WindowSizeMsg{Width: 100, Height: 30}, tick())
	if m.gameState.Moves != 1 {
		t.Error("resizing should not restart the game")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 29 {
		t.Errorf("screen = %dx%d, want 100x29", m.screen.Width(), m.screen.Height())
	}
}

func TestModelView(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveScore("2048_endless", 4321, 256); err != nil {
		t.Fatalf("SaveScore: %v", err)
	}

	m := NewModel(t2048.NewEndless(), store, testConfig(), nil)
	m.Init()
	m = send(m, tick())

	out := m.View()
	for _, want := range []string{"Score: 0", "Best: 4321"} {
		if !strings.Contains(out, want) {
			t.Errorf("view is missing %q", want)
		}
	}
	if lines := strings.Count(out, "\n") + 1; lines != 25 {
		t.Errorf("view has %d lines, want 25", lines)
	}
}
