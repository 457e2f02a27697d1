package render

import (
	"github.com/lixenwraith/ascii-donut/terminal"
)

// RenderBuffer is a cell grid backed by terminal.Cell array
// Uses []terminal.Cell directly to allow zero-copy export
type RenderBuffer struct {
	cells  []terminal.Cell
	width  int
	height int
}

// NewRenderBuffer creates a buffer with the specified dimensions
func NewRenderBuffer(width, height int) *RenderBuffer {
	return &RenderBuffer{
		cells:  make([]terminal.Cell, width*height),
		width:  width,
		height: height,
	}
}

// inBounds returns true if in buffer bounds
func (b *RenderBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Set writes a rune at (x, y); out-of-bounds writes are dropped
func (b *RenderBuffer) Set(x, y int, r rune) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x].Rune = r
}

// FlushToTerminal writes render buffer to terminal
func (b *RenderBuffer) FlushToTerminal(term terminal.Terminal) {
	term.Flush(b.cells, b.width, b.height)
}
