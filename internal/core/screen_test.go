package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
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

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenSetWithColor(t *testing.T) {
	s := NewScreen(10, 3)
	s.SetWithColor(2, 1, '@', ColorBrightYellow)

	cell := s.GetCell(2, 1)
	if cell.Rune != '@' || cell.Color != ColorBrightYellow {
		t.Errorf("GetCell(2, 1) = %+v, expected '@' in bright yellow", cell)
	}

	// Plain Set resets the color
	s.Set(2, 1, '.')
	if s.GetCell(2, 1).Color != ColorDefault {
		t.Error("Set should store the default color")
	}

	if c := s.GetCell(50, 50); c.Rune != ' ' || c.Color != ColorDefault {
		t.Errorf("out of bounds GetCell = %+v, expected blank cell", c)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			s.SetWithColor(x, y, 'X', ColorRed)
		}
	}

	s.Clear()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			c := s.GetCell(x, y)
			if c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("After Clear, expected blank at (%d, %d), got %+v", x, y, c)
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello")

	for i, ch := range "Hello" {
		if s.Get(2+i, 1) != ch {
			t.Errorf("DrawText: expected %q at (%d, 1), got %q", ch, 2+i, s.Get(2+i, 1))
		}
	}

	// Only "He" fits
	s.DrawText(18, 0, "Hello")
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}
}

func TestScreenDrawTextColorRunes(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextColor(0, 0, "🌽x", ColorYellow)

	if s.Get(0, 0) != '🌽' {
		t.Errorf("expected corn rune at 0, got %q", s.Get(0, 0))
	}
	if s.Get(1, 0) != 'x' {
		t.Errorf("multi-byte runes should take one cell, got %q at 1", s.Get(1, 0))
	}
	if s.GetCell(1, 0).Color != ColorYellow {
		t.Error("DrawTextColor should color every rune")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi")

	x := (20 - 2) / 2
	if s.Get(x, 2) != 'H' || s.Get(x+1, 2) != 'i' {
		t.Errorf("DrawTextCentered failed, text not at expected position")
	}
}

func TestScreenDrawRectAndBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(NewRect(2, 2, 3, 3), '#')

	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			if s.Get(x, y) != '#' {
				t.Errorf("DrawRect: expected '#' at (%d, %d)", x, y)
			}
		}
	}
	if s.Get(5, 5) != ' ' {
		t.Error("DrawRect drew outside its area")
	}

	s.Clear()
	s.DrawBox(NewRect(0, 0, 4, 3))
	if s.Row(0) != "┌──┐      " {
		t.Errorf("box top = %q", s.Row(0))
	}
	if s.Row(1) != "│  │      " {
		t.Errorf("box middle = %q", s.Row(1))
	}
	if s.Row(2) != "└──┘      " {
		t.Errorf("box bottom = %q", s.Row(2))
	}
}

func TestScreenResizePreservesContent(t *testing.T) {
	s := NewScreen(5, 5)
	s.SetWithColor(1, 1, 'A', ColorGreen)
	s.Set(4, 4, 'B')

	s.Resize(3, 3)
	if s.Width() != 3 || s.Height() != 3 {
		t.Fatalf("Resize: got %dx%d, expected 3x3", s.Width(), s.Height())
	}
	if c := s.GetCell(1, 1); c.Rune != 'A' || c.Color != ColorGreen {
		t.Errorf("Resize lost content: %+v", c)
	}

	s.Resize(6, 6)
	if s.Get(5, 5) != ' ' {
		t.Error("grown area should be blank")
	}
	if s.Get(1, 1) != 'A' {
		t.Error("Resize lost content when growing")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "abc")
	s.DrawText(0, 1, "de")

	lines := strings.Split(s.String(), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "abc" || lines[1] != "de " {
		t.Errorf("String() = %q", s.String())
	}
	if s.Row(-1) != "   " {
		t.Error("out of range Row should be blank")
	}
}

func TestInputFrameOrder(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionRight)
	f.Set(ActionUp)
	f.Set(ActionRight)

	got := f.Ordered()
	if len(got) != 2 || got[0] != ActionRight || got[1] != ActionUp {
		t.Errorf("Ordered() = %v, expected [Right Up]", got)
	}

	f.Clear()
	if f.Has(ActionUp) || len(f.Ordered()) != 0 {
		t.Error("Clear should drop all actions")
	}
}
