package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(20, 6)

	if s.Width() != 20 || s.Height() != 6 {
		t.Fatalf("size = %dx%d, expected 20x6", s.Width(), s.Height())
	}
	for y := range s.Height() {
		for x := range s.Width() {
			if c := s.GetCell(x, y); c != blankCell {
				t.Errorf("new screen cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	s.SetColor(1, 1, '#', ColorOrange)
	if c := s.GetCell(1, 1); c.Rune != '#' || c.Color != ColorOrange {
		t.Errorf("GetCell(1, 1) = %+v", c)
	}

	// Out of bounds writes are dropped and reads are blank.
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.SetColor(0, 100, 'A', ColorRed)
	if s.Get(-1, 0) != ' ' || s.GetCell(0, 100) != blankCell {
		t.Error("out of bounds reads should be blank")
	}
}

func TestScreenClearDropsColor(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawTextColor(0, 0, "ABCD", ColorRed)
	s.Clear()
	if s.GetCell(2, 0) != blankCell {
		t.Errorf("after Clear cell = %+v", s.GetCell(2, 0))
	}
}

func TestScreenDrawText(t *testing.T) {
	tests := []struct {
		name string
		x    int
		text string
		want string
	}{
		{"plain", 2, "Hello", "  Hello             "},
		{"clipped right", 18, "Hello", "                  He"},
		{"clipped left", -2, "Hello", "llo                 "},
		{"multibyte", 0, "▲ up", "▲ up                "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(20, 1)
			s.DrawText(tc.x, 0, tc.text)
			if got := s.Row(0); got != tc.want {
				t.Errorf("Row(0) = %q, expected %q", got, tc.want)
			}
		})
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 3)
	s.DrawTextCentered(1, "Hi")
	if s.Get(9, 1) != 'H' || s.Get(10, 1) != 'i' {
		t.Errorf("DrawTextCentered row = %q", s.Row(1))
	}
}

func TestScreenDrawRectAndBox(t *testing.T) {
	s := NewScreen(8, 6)
	s.DrawRect(NewRect(1, 1, 2, 2), '#')
	if s.Get(1, 1) != '#' || s.Get(2, 2) != '#' || s.Get(3, 3) != ' ' {
		t.Errorf("DrawRect output:\n%s", s)
	}

	s.Clear()
	s.DrawBox(NewRect(0, 0, 5, 4))
	want := "┌───┐   \n│   │   \n│   │   \n└───┘   \n        \n        "
	if got := s.String(); got != want {
		t.Errorf("DrawBox output:\n%s\nexpected:\n%s", got, want)
	}
}

func TestScreenLines(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawHLine(2, 2, 5, '-')
	s.DrawVLine(3, 4, 4, '|')
	s.DrawHLine(0, 0, -3, 'x')

	for x := 2; x < 7; x++ {
		if s.Get(x, 2) != '-' {
			t.Errorf("DrawHLine: expected '-' at (%d, 2), got %q", x, s.Get(x, 2))
		}
	}
	for y := 4; y < 8; y++ {
		if s.Get(3, y) != '|' {
			t.Errorf("DrawVLine: expected '|' at (3, %d), got %q", y, s.Get(3, y))
		}
	}
	if s.Get(0, 0) != ' ' {
		t.Error("negative length should draw nothing")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawTextColor(0, 0, "Hello", ColorGreen)

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("content should be preserved, row 0 = %q", s.Row(0))
	}
	if s.GetCell(0, 0).Color != ColorGreen {
		t.Error("colors should be preserved")
	}

	s.Resize(15, 8)
	if !strings.HasPrefix(s.Row(0), "Hello") || len(s.Row(7)) != 15 {
		t.Errorf("unexpected rows after enlarging: %q / %q", s.Row(0), s.Row(7))
	}
	if s.Row(-1) != strings.Repeat(" ", 15) {
		t.Error("out of bounds row should be spaces")
	}
}
