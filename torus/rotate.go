package torus

import (
	"math"

	"github.com/golang/geo/r3"
)

// rotation caches the trigonometry of one (a, b) pair
type rotation struct {
	cosA, sinA float64
	cosB, sinB float64
}

func newRotation(a, b float64) rotation {
	return rotation{
		cosA: math.Cos(a),
		sinA: math.Sin(a),
		cosB: math.Cos(b),
		sinB: math.Sin(b),
	}
}

// apply mixes y/z by a, then x with the a-rotated y by b.
// Do not fold into a generic Euler matrix; successive calls are not additive in (a, b).
func (r rotation) apply(p r3.Vector) r3.Vector {
	yz := p.Y*r.cosA - p.Z*r.sinA

	return r3.Vector{
		X: p.X*r.cosB - r.sinB*yz,
		Y: p.X*r.sinB + r.cosB*yz,
		Z: p.Y*r.sinA + p.Z*r.cosA,
	}
}

// RotatePoint returns p rotated by angles a and b
func RotatePoint(p r3.Vector, a, b float64) r3.Vector {
	return newRotation(a, b).apply(p)
}

// Rotate applies the (a, b) rotation to every point, writing back into the same slot
func (t *Torus) Rotate(a, b float64) {
	r := newRotation(a, b)
	for i := range t.points {
		t.points[i] = r.apply(t.points[i])
	}
}
