package render

import (
	"testing"

	"github.com/lixenwraith/ascii-donut/constants"
	"github.com/lixenwraith/ascii-donut/terminal"
	"github.com/lixenwraith/ascii-donut/torus"
)

// recordingTerminal keeps the last flushed grid and cursor state
type recordingTerminal struct {
	cells   []terminal.Cell
	width   int
	height  int
	flushes int
	clears  int
	cursorX int
	cursorY int
	visible bool
	blink   bool
	termW   int
	termH   int
	done    chan struct{}
}

func (r *recordingTerminal) Init() error             { return nil }
func (r *recordingTerminal) Fini()                   {}
func (r *recordingTerminal) Size() (int, int)        { return r.termW, r.termH }
func (r *recordingTerminal) Clear()                  { r.clears++ }
func (r *recordingTerminal) SetCursorVisible(v bool) { r.visible = v }
func (r *recordingTerminal) SetCursorBlink(b bool)   { r.blink = b }
func (r *recordingTerminal) Done() <-chan struct{}   { return r.done }
func (r *recordingTerminal) MoveCursor(x, y int)     { r.cursorX, r.cursorY = x, y }
func (r *recordingTerminal) Flush(cells []terminal.Cell, width, height int) {
	r.cells = append(r.cells[:0], cells...)
	r.width = width
	r.height = height
	r.flushes++
}

func TestScreenPresent(t *testing.T) {
	term := &recordingTerminal{cursorX: 9, cursorY: 9, visible: true, blink: true, termW: 80, termH: 40}
	screen := NewScreen(term)

	tor := torus.New(constants.MajorRadius, constants.MinorRadius)
	tor.Rotate(constants.InitialTiltA, constants.InitialTiltB)
	frame := tor.Render()

	screen.Present(frame)

	if term.flushes != 1 {
		t.Fatalf("Expected 1 flush, got %d", term.flushes)
	}
	if term.width != constants.ScreenWidth || term.height != constants.ScreenHeight {
		t.Errorf("Expected %dx%d grid, got %dx%d",
			constants.ScreenWidth, constants.ScreenHeight, term.width, term.height)
	}
	if term.cursorX != 0 || term.cursorY != 0 {
		t.Errorf("Expected cursor at home, got (%d,%d)", term.cursorX, term.cursorY)
	}

	for y := 0; y < constants.ScreenHeight; y++ {
		for x := 0; x < constants.ScreenWidth; x++ {
			want := rune(frame.At(x, y))
			if got := term.cells[y*constants.ScreenWidth+x].Rune; got != want {
				t.Fatalf("cell (%d,%d): Expected %q, got %q", x, y, want, got)
			}
		}
	}
}

func TestScreenPresentBlank(t *testing.T) {
	term := &recordingTerminal{}
	screen := NewScreen(term)

	var frame torus.Frame
	for y := range frame {
		for x := range frame[y] {
			frame[y][x] = ' '
		}
	}
	screen.Present(frame)

	for i, c := range term.cells {
		if c.Rune != ' ' {
			t.Fatalf("Expected blank cell %d, got %q", i, c.Rune)
		}
	}
}

func TestScreenPresentHidesCursor(t *testing.T) {
	term := &recordingTerminal{visible: true, blink: true, termW: 80, termH: 40}
	screen := NewScreen(term)

	var frame torus.Frame
	screen.Present(frame)

	if term.visible {
		t.Error("Expected cursor hidden while presenting")
	}
	if term.blink {
		t.Error("Expected cursor blink off while presenting")
	}
}

func TestScreenPresentClearsOnResize(t *testing.T) {
	term := &recordingTerminal{termW: 80, termH: 40}
	screen := NewScreen(term)

	var frame torus.Frame
	screen.Present(frame)
	screen.Present(frame)
	if term.clears != 0 {
		t.Fatalf("Expected no clear at a stable size, got %d", term.clears)
	}

	term.termW, term.termH = 120, 50
	screen.Present(frame)
	screen.Present(frame)
	if term.clears != 1 {
		t.Errorf("Expected exactly one clear after resize, got %d", term.clears)
	}
	if term.flushes != 4 {
		t.Errorf("Expected 4 flushes, got %d", term.flushes)
	}
}
