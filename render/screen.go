package render

import (
	"github.com/lixenwraith/ascii-donut/constants"
	"github.com/lixenwraith/ascii-donut/terminal"
	"github.com/lixenwraith/ascii-donut/torus"
)

// Screen presents shaded frames on a terminal
type Screen struct {
	term terminal.Terminal
	buf  *RenderBuffer

	// Terminal size at the previous frame
	termW int
	termH int
}

// NewScreen creates a presenter sized to the donut grid
func NewScreen(term terminal.Terminal) *Screen {
	return &Screen{
		term: term,
		buf:  NewRenderBuffer(constants.ScreenWidth, constants.ScreenHeight),
	}
}

// Present hides the cursor, homes it and draws the frame from the top-left corner
// A changed terminal size blanks the screen first so no stale glyphs survive
func (s *Screen) Present(frame torus.Frame) {
	if w, h := s.term.Size(); w != s.termW || h != s.termH {
		if s.termW != 0 || s.termH != 0 {
			s.term.Clear()
		}
		s.termW, s.termH = w, h
	}

	for y := range frame {
		for x, c := range frame[y] {
			s.buf.Set(x, y, rune(c))
		}
	}

	s.term.SetCursorVisible(false)
	s.term.SetCursorBlink(false)
	s.term.MoveCursor(0, 0)
	s.buf.FlushToTerminal(s.term)
}
