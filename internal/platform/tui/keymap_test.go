package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flow2048/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{runeKey("w"), core.ActionUp},
		{runeKey("a"), core.ActionLeft},
		{runeKey("s"), core.ActionDown},
		{runeKey("d"), core.ActionRight},
		{runeKey("h"), core.ActionHint},
		{runeKey("n"), core.ActionStep},
		{runeKey("A"), core.ActionAuto},
		{tea.KeyMsg{Type: tea.KeyTab}, core.ActionAuto},
		{runeKey("u"), core.ActionUndo},
		{runeKey("p"), core.ActionPause},
		{runeKey("r"), core.ActionRestart},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{runeKey("x"), core.ActionNone},
	}

	for _, tt := range tests {
		got, quit := km.MapKey(tt.msg)
		if got != tt.want || quit {
			t.Errorf("MapKey(%q) = %v, %v, want %v, false", tt.msg.String(), got, quit, tt.want)
		}
	}

	for _, msg := range []tea.KeyMsg{runeKey("q"), {Type: tea.KeyCtrlC}} {
		if _, quit := km.MapKey(msg); !quit {
			t.Errorf("MapKey(%q) should request quit", msg.String())
		}
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runeKey("h"), &frame) {
		t.Error("h is not a quit key")
	}
	if !frame.Has(core.ActionHint) {
		t.Error("frame should carry the hint action")
	}

	frame.Clear()
	if !km.MapKeyToFrame(runeKey("q"), &frame) {
		t.Error("q should request quit")
	}
	if !frame.Empty() {
		t.Error("quit should not be stored in the frame")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeySpace}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey("q"), MenuActionQuit},
		{runeKey("z"), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}
