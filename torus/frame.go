package torus

import "strings"

// Frame is one shaded screen, row-major, space-padded
type Frame [height][width]byte

// ramp maps normalised luminance to glyphs, brightest first; thresholds are exclusive
var ramp = [...]struct {
	threshold float64
	glyph     byte
}{
	{0.95, '@'},
	{0.9, '$'},
	{0.8, '#'},
	{0.7, '*'},
	{0.6, '!'},
	{0.5, '='},
	{0.4, ';'},
	{0.3, '~'},
	{0.2, ':'},
	{0.1, ','},
}

// darkest is used for anything at or below the last threshold
const darkest = '.'

// Glyph maps normalised luminance l to its ramp character
func Glyph(l float64) byte {
	for _, step := range ramp {
		if l > step.threshold {
			return step.glyph
		}
	}
	return darkest
}

// Glyphs returns every character a frame can contain, blank included
func Glyphs() string {
	var sb strings.Builder
	sb.WriteByte(' ')
	sb.WriteByte(darkest)
	for i := len(ramp) - 1; i >= 0; i-- {
		sb.WriteByte(ramp[i].glyph)
	}
	return sb.String()
}

func (f *Frame) clear() {
	for y := range f {
		for x := range f[y] {
			f[y][x] = ' '
		}
	}
}

// At returns the glyph at a cell
func (f Frame) At(x, y int) byte {
	return f[y][x]
}

// Blank reports whether the frame has no visible glyph
func (f Frame) Blank() bool {
	for y := range f {
		for _, c := range f[y] {
			if c != ' ' {
				return false
			}
		}
	}
	return true
}

// Lines returns one string per row, each exactly the screen width
func (f Frame) Lines() []string {
	lines := make([]string, len(f))
	for y := range f {
		lines[y] = string(f[y][:])
	}
	return lines
}

// String joins the rows with newlines
func (f Frame) String() string {
	return strings.Join(f.Lines(), "\n")
}
