package terminal

import (
	"bufio"
	"io"
)

// outputBuffer manages double-buffered terminal output with diffing
type outputBuffer struct {
	front  []Cell
	width  int
	height int
	writer *bufio.Writer

	cursorX     int
	cursorY     int
	cursorValid bool
}

// newOutputBuffer creates a new output buffer
func newOutputBuffer(w io.Writer) *outputBuffer {
	return &outputBuffer{
		writer: bufio.NewWriterSize(w, 16384), // one 80x40 frame plus cursor jumps
	}
}

// resize updates buffer dimensions, invalidating everything previously drawn
func (o *outputBuffer) resize(width, height int) {
	size := width * height
	if cap(o.front) < size {
		o.front = make([]Cell, size)
	} else {
		o.front = o.front[:size]
	}
	o.width = width
	o.height = height
	o.forceFullRedraw()
}

// flush writes the visible part of cells to the terminal, diffing against the front buffer
func (o *outputBuffer) flush(cells []Cell, width, height, visibleW, visibleH int) {
	if width != o.width || height != o.height {
		o.resize(width, height)
	}

	if len(cells) < width*height {
		return
	}

	w := o.writer

	for y := 0; y < visibleH; y++ {
		rowStart := y * width
		x := 0

		for x < visibleW {
			idx := rowStart + x
			if cells[idx] == o.front[idx] {
				x++
				continue
			}

			// Position cursor once for this dirty region
			if !o.cursorValid || x != o.cursorX || y != o.cursorY {
				if o.cursorValid && y == o.cursorY && x > o.cursorX {
					writeCursorForward(w, x-o.cursorX)
				} else {
					writeCursorPos(w, x, y)
				}
				o.cursorX = x
				o.cursorY = y
				o.cursorValid = true
			}

			// Write all contiguous dirty cells
			for x < visibleW {
				cidx := rowStart + x
				c := cells[cidx]
				if c == o.front[cidx] {
					break
				}

				r := c.Rune
				if r == 0 {
					r = ' '
				}
				if r < 0x80 {
					w.WriteByte(byte(r))
				} else {
					w.WriteRune(r)
				}

				o.front[cidx] = c
				o.cursorX++
				x++
			}
		}
	}

	w.Flush()
}

// moveCursor writes an absolute cursor position and records it
func (o *outputBuffer) moveCursor(x, y int) {
	writeCursorPos(o.writer, x, y)
	o.cursorX = x
	o.cursorY = y
	o.cursorValid = true
}

// forceFullRedraw clears front buffer to force complete redraw
func (o *outputBuffer) forceFullRedraw() {
	for i := range o.front {
		o.front[i] = Cell{Rune: 0}
	}
	o.cursorValid = false
}

// clear erases the screen and forgets what was drawn
func (o *outputBuffer) clear() {
	w := o.writer
	w.Write(csiSGR0)
	w.Write(csiClear)
	w.Flush()

	o.forceFullRedraw()
}
