package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionUp) || !f.Empty() {
		t.Fatal("zero frame should be empty")
	}

	f.Set(ActionHint)
	if !f.Has(ActionHint) || f.Empty() {
		t.Error("Set should mark the action")
	}

	clone := f.Clone()
	f.Clear()
	if f.Has(ActionHint) {
		t.Error("Clear should drop actions")
	}
	if !clone.Has(ActionHint) {
		t.Error("Clone should not share state with the original")
	}

	g := NewInputFrame(ActionLeft, ActionUndo)
	if !g.Has(ActionLeft) || !g.Has(ActionUndo) || g.Has(ActionRight) {
		t.Errorf("NewInputFrame actions = %v", g.Actions)
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a    Action
		want string
	}{
		{ActionNone, "None"},
		{ActionLeft, "Left"},
		{ActionHint, "Hint"},
		{ActionAuto, "Auto"},
		{ActionUndo, "Undo"},
		{Action(99), "Unknown"},
	}
	for _, tc := range tests {
		if got := tc.a.String(); got != tc.want {
			t.Errorf("%d.String() = %q, expected %q", tc.a, got, tc.want)
		}
	}
}
