package torus

import (
	"math"
	"strings"
	"testing"

	"github.com/golang/geo/r3"

	"github.com/lixenwraith/ascii-donut/constants"
)

// cell returns the pixel a point projects to, ok=false when discarded
func cell(p r3.Vector) (x, y int, ok bool) {
	d := p.Z + constants.ViewerDistance
	if d == 0 || p.Z == 0 {
		return 0, 0, false
	}
	fx := math.Floor(width*p.X/d + constants.CenterX)
	fy := math.Floor(height*p.Y/d + constants.CenterY)
	if !(fx >= 0 && fx < width && fy >= 0 && fy < height) {
		return 0, 0, false
	}
	return int(fx), int(fy), true
}

// TestProject_MaxCloseness verifies each occupied cell holds the nearest point's closeness
func TestProject_MaxCloseness(t *testing.T) {
	tor := New(5, 2)
	tor.Rotate(1.0, 0.0)
	tor.Rotate(0.2, -0.1)

	tor.Clear()
	tor.Project()

	var want [height][width]float64
	for _, p := range tor.Points() {
		x, y, ok := cell(p)
		if !ok {
			continue
		}
		if c := math.Abs(1 / p.Z); c > want[y][x] {
			want[y][x] = c
		}
	}

	occupied := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if tor.Closeness(x, y) != want[y][x] {
				t.Fatalf("Cell (%d,%d): expected closeness %v, got %v", x, y, want[y][x], tor.Closeness(x, y))
			}
			if want[y][x] != 0 {
				occupied++
			}
		}
	}
	if occupied == 0 {
		t.Error("Expected at least one occupied cell")
	}
}

// TestProject_TieFirstWins verifies equal closeness keeps the first point processed
func TestProject_TieFirstWins(t *testing.T) {
	first := r3.Vector{X: 0, Y: 0.1, Z: 5}
	second := r3.Vector{X: 0, Y: 0.2, Z: 5}

	x1, y1, _ := cell(first)
	x2, y2, _ := cell(second)
	if x1 != x2 || y1 != y2 {
		t.Fatalf("Test points must share a pixel: (%d,%d) vs (%d,%d)", x1, y1, x2, y2)
	}

	tests := []struct {
		name   string
		points []r3.Vector
		want   float64
	}{
		{name: "FirstThenSecond", points: []r3.Vector{first, second}, want: -100*0.1 + 4*5},
		{name: "SecondThenFirst", points: []r3.Vector{second, first}, want: -100*0.2 + 4*5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tor := &Torus{points: tt.points}
			tor.Project()
			if got := tor.Luminance(x1, y1); got != tt.want {
				t.Errorf("Expected luminance %v, got %v", tt.want, got)
			}
		})
	}
}

// TestProject_NearerWins verifies a strictly closer later point takes the pixel
func TestProject_NearerWins(t *testing.T) {
	far := r3.Vector{X: 0, Y: 0, Z: 5}
	near := r3.Vector{X: 0, Y: 0, Z: 4}

	tor := &Torus{points: []r3.Vector{far, near}}
	maxLum := tor.Project()

	x, y, _ := cell(near)
	if got := tor.Closeness(x, y); got != 0.25 {
		t.Errorf("Expected closeness 0.25, got %v", got)
	}
	if got := tor.Luminance(x, y); got != 16 {
		t.Errorf("Expected luminance 16, got %v", got)
	}
	if maxLum != 20 {
		t.Errorf("Expected running max 20 from the first winner, got %v", maxLum)
	}
}

// TestProject_Discards verifies degenerate and off-screen points never touch the buffers
func TestProject_Discards(t *testing.T) {
	tests := []struct {
		name string
		p    r3.Vector
	}{
		{name: "AtViewer", p: r3.Vector{X: 1, Y: 1, Z: -constants.ViewerDistance}},
		{name: "ZeroDepth", p: r3.Vector{X: 0, Y: 0, Z: 0}},
		{name: "OffRight", p: r3.Vector{X: 100, Y: 0, Z: 1}},
		{name: "OffLeft", p: r3.Vector{X: -100, Y: 0, Z: 1}},
		{name: "OffBottom", p: r3.Vector{X: 0, Y: 100, Z: 1}},
		{name: "OffTop", p: r3.Vector{X: 0, Y: -100, Z: 1}},
		{name: "NearViewer", p: r3.Vector{X: 1, Y: 1, Z: -constants.ViewerDistance + 1e-9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tor := &Torus{points: []r3.Vector{tt.p}}
			if maxLum := tor.Project(); maxLum != 0 {
				t.Errorf("Expected max luminance 0, got %v", maxLum)
			}
			for y := 0; y < height; y++ {
				for x := 0; x < width; x++ {
					if tor.Closeness(x, y) != 0 {
						t.Fatalf("Unexpected write at (%d,%d)", x, y)
					}
				}
			}
		})
	}
}

// TestProject_FreshMaxPerFrame verifies the peak is not carried between frames
func TestProject_FreshMaxPerFrame(t *testing.T) {
	bright := r3.Vector{X: 0, Y: -1, Z: 5}
	dim := r3.Vector{X: 0, Y: 0.1, Z: 5}

	tor := &Torus{points: []r3.Vector{bright}}
	tor.Clear()
	if got := tor.Project(); got != 120 {
		t.Fatalf("Expected first frame max 120, got %v", got)
	}

	tor.points[0] = dim
	tor.Clear()
	if got := tor.Project(); got != 10 {
		t.Errorf("Expected second frame max 10, got %v", got)
	}
}

func TestClear(t *testing.T) {
	tor := New(5, 2)
	tor.Project()
	tor.Clear()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if tor.Closeness(x, y) != 0 {
				t.Fatalf("Expected cleared projection at (%d,%d)", x, y)
			}
		}
	}
}

// TestShade_Boundaries verifies strict thresholds through the buffers
func TestShade_Boundaries(t *testing.T) {
	tests := []struct {
		lum  float64
		want byte
	}{
		{lum: 0.951, want: '@'},
		{lum: 0.95, want: '$'},
		{lum: 0.5, want: ';'},
		{lum: 0.0, want: '.'},
		{lum: -3, want: '.'},
	}

	tor := &Torus{}
	for i, tt := range tests {
		tor.projection[0][i] = 1
		tor.luminance[0][i] = tt.lum
	}

	f := tor.Shade(1.0)
	for i, tt := range tests {
		if got := f.At(i, 0); got != tt.want {
			t.Errorf("Luminance %v: expected %q, got %q", tt.lum, tt.want, got)
		}
	}
	if got := f.At(len(tests), 0); got != ' ' {
		t.Errorf("Expected empty cell to be a space, got %q", got)
	}
}

// TestShade_ZeroMax verifies a frame without positive luminance renders blank
func TestShade_ZeroMax(t *testing.T) {
	tor := &Torus{}
	tor.projection[3][3] = 1
	tor.luminance[3][3] = -5

	if f := tor.Shade(0); !f.Blank() {
		t.Error("Expected blank frame for zero max luminance")
	}

	degenerate := New(0, 0)
	if f := degenerate.Render(); !f.Blank() {
		t.Errorf("Expected blank frame for degenerate radii, got:\n%s", f)
	}
}

// TestRender_EndToEnd renders the default donut once after the initial tilt
func TestRender_EndToEnd(t *testing.T) {
	tor := New(5.0, 2.0)
	tor.Rotate(1.0, 0.0)

	f := tor.Render()

	if f.Blank() {
		t.Fatal("Expected at least one visible glyph")
	}

	lines := f.Lines()
	if len(lines) != 40 {
		t.Fatalf("Expected 40 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if len(line) != 80 {
			t.Errorf("Line %d: expected 80 characters, got %d", i, len(line))
		}
	}

	allowed := " .,:~;=!*#$@"
	for _, r := range f.String() {
		if r == '\n' {
			continue
		}
		if !strings.ContainsRune(allowed, r) {
			t.Fatalf("Unexpected glyph %q in frame", r)
		}
	}
}
