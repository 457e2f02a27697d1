package torus

import (
	"math"

	"github.com/lixenwraith/ascii-donut/constants"
)

// Clear resets the projection buffer; luminance is left stale and ignored where projection is zero
func (t *Torus) Clear() {
	for y := range t.projection {
		for x := range t.projection[y] {
			t.projection[y][x] = 0
		}
	}
}

// Project maps every point onto the grid, keeping the closest point per pixel.
// Returns the highest luminance among winning points this frame, 0 if none exceeded zero.
func (t *Torus) Project() float64 {
	maxLum := 0.0

	for _, p := range t.points {
		depth := p.Z + constants.ViewerDistance
		if depth == 0 {
			continue
		}

		fx := math.Floor(width*p.X/depth + constants.CenterX)
		fy := math.Floor(height*p.Y/depth + constants.CenterY)

		// Float bounds check first: huge or NaN coordinates must not reach int conversion
		if !(fx >= 0 && fx < width && fy >= 0 && fy < height) {
			continue
		}

		// Closeness is undefined on the z = 0 plane
		if p.Z == 0 {
			continue
		}

		sx, sy := int(fx), int(fy)
		closeness := math.Abs(1 / p.Z)

		// Strictly greater: the first point at equal closeness keeps the pixel
		if closeness > t.projection[sy][sx] {
			t.projection[sy][sx] = closeness

			lum := constants.LumWeightY*p.Y + constants.LumWeightZ*p.Z
			t.luminance[sy][sx] = lum
			if lum > maxLum {
				maxLum = lum
			}
		}
	}

	return maxLum
}

// Shade converts the buffers into glyphs normalised by maxLum.
// A non-positive maxLum yields a blank frame.
func (t *Torus) Shade(maxLum float64) Frame {
	var f Frame
	f.clear()

	if maxLum <= 0 {
		return f
	}

	for y := range t.projection {
		for x, closeness := range t.projection[y] {
			if closeness == 0 {
				continue
			}
			f[y][x] = Glyph(t.luminance[y][x] / maxLum)
		}
	}

	return f
}

// Render runs one full clear, project and shade pass
func (t *Torus) Render() Frame {
	t.Clear()
	maxLum := t.Project()
	return t.Shade(maxLum)
}
