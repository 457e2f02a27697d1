package torus

import (
	"fmt"
	"math"
	"strings"

	"github.com/golang/geo/r3"

	"github.com/lixenwraith/ascii-donut/constants"
)

const (
	width  = constants.ScreenWidth
	height = constants.ScreenHeight
)

// Torus owns the surface point cloud and the per-pixel buffers it is rendered into
type Torus struct {
	points []r3.Vector

	// projection holds closeness (|1/z|) of the nearest point per pixel, zero = empty
	projection [height][width]float64
	// luminance is only meaningful where projection is non-zero
	luminance [height][width]float64
}

// New samples the torus surface with major radius R and minor radius r.
// Points are emitted outer-angle-major, inner-angle-minor.
func New(major, minor float64) *Torus {
	t := &Torus{
		points: make([]r3.Vector, 0, PointCount()),
	}

	for phi := 0.0; phi < 2*math.Pi; phi += constants.OuterStep {
		cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)

		for theta := 0.0; theta < 2*math.Pi; theta += constants.InnerStep {
			// Distance from the torus axis to this point of the tube circle
			ring := major + minor*math.Cos(theta)

			t.points = append(t.points, r3.Vector{
				X: ring * cosPhi,
				Y: minor * math.Sin(theta),
				Z: -ring * sinPhi,
			})
		}
	}

	return t
}

// PointCount returns the number of points New produces, independent of the radii
func PointCount() int {
	return steps(constants.OuterStep) * steps(constants.InnerStep)
}

// steps counts iterations of an accumulated [0, 2pi) sweep, matching New exactly
func steps(step float64) int {
	n := 0
	for a := 0.0; a < 2*math.Pi; a += step {
		n++
	}
	return n
}

// Len returns the number of points in the cloud
func (t *Torus) Len() int {
	return len(t.points)
}

// Points returns the backing point slice; callers must not retain it across frames
func (t *Torus) Points() []r3.Vector {
	return t.points
}

// Closeness returns the projection buffer value at a cell, 0 outside the grid
func (t *Torus) Closeness(x, y int) float64 {
	if !inGrid(x, y) {
		return 0
	}
	return t.projection[y][x]
}

// Luminance returns the raw luminance stored at a cell, 0 outside the grid
func (t *Torus) Luminance(x, y int) float64 {
	if !inGrid(x, y) {
		return 0
	}
	return t.luminance[y][x]
}

func inGrid(x, y int) bool {
	return x >= 0 && x < width && y >= 0 && y < height
}

// String dumps the cloud, one "(x , y , z)" per line with two decimals
func (t *Torus) String() string {
	var sb strings.Builder
	sb.WriteString("[\n")
	for i, p := range t.points {
		if i != 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "(%.2f , %.2f , %.2f)\n", p.X, p.Y, p.Z)
	}
	sb.WriteString("]\n")
	return sb.String()
}
