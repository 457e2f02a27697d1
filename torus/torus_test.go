package torus

import (
	"math"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// TestNew_PointCount verifies the cloud size is fixed by the angular steps alone
func TestNew_PointCount(t *testing.T) {
	if PointCount() != 90*315 {
		t.Fatalf("Expected %d points, got %d", 90*315, PointCount())
	}

	tests := []struct {
		name         string
		major, minor float64
	}{
		{name: "Default", major: 5, minor: 2},
		{name: "Thin", major: 10, minor: 0.5},
		{name: "Degenerate", major: 0, minor: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tor := New(tt.major, tt.minor)
			if tor.Len() != PointCount() {
				t.Errorf("Expected %d points, got %d", PointCount(), tor.Len())
			}
		})
	}
}

// TestNew_Deterministic verifies two generations yield identical clouds in identical order
func TestNew_Deterministic(t *testing.T) {
	a := New(5, 2)
	b := New(5, 2)

	if diff := cmp.Diff(a.Points(), b.Points()); diff != "" {
		t.Errorf("Clouds differ (-a +b):\n%s", diff)
	}
}

// TestNew_Order verifies outer-angle-major, inner-angle-minor emission
func TestNew_Order(t *testing.T) {
	const major, minor = 5.0, 2.0
	tor := New(major, minor)
	pts := tor.Points()
	inner := steps(0.02)

	// phi = 0, theta = 0: outermost point on the +x axis
	want0 := r3.Vector{X: major + minor, Y: 0, Z: 0}
	// phi = 0, theta = 0.02: second point still on the phi = 0 ring
	want1 := r3.Vector{X: major + minor*math.Cos(0.02), Y: minor * math.Sin(0.02), Z: 0}
	// first point of the second ring: phi = 0.07, theta = 0
	wantRing := r3.Vector{X: (major + minor) * math.Cos(0.07), Y: 0, Z: -(major + minor) * math.Sin(0.07)}

	opt := cmpopts.EquateApprox(0, 1e-12)
	if diff := cmp.Diff(want0, pts[0], opt); diff != "" {
		t.Errorf("Point 0 mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want1, pts[1], opt); diff != "" {
		t.Errorf("Point 1 mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantRing, pts[inner], opt); diff != "" {
		t.Errorf("Point %d mismatch (-want +got):\n%s", inner, diff)
	}
}

// TestNew_OnSurface verifies every point satisfies the implicit torus equation
func TestNew_OnSurface(t *testing.T) {
	const major, minor = 5.0, 2.0
	tor := New(major, minor)

	for i, p := range tor.Points() {
		// (sqrt(x^2 + z^2) - R)^2 + y^2 = r^2
		q := math.Hypot(p.X, p.Z) - major
		got := q*q + p.Y*p.Y
		if math.Abs(got-minor*minor) > 1e-9 {
			t.Fatalf("Point %d %v off surface: %v != %v", i, p, got, minor*minor)
		}
	}
}

// TestNew_BuffersZeroed verifies fresh buffers are empty
func TestNew_BuffersZeroed(t *testing.T) {
	tor := New(5, 2)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if tor.Closeness(x, y) != 0 || tor.Luminance(x, y) != 0 {
				t.Fatalf("Expected zeroed buffers at (%d,%d)", x, y)
			}
		}
	}
}

func TestString(t *testing.T) {
	tor := &Torus{points: []r3.Vector{{X: 1, Y: 2, Z: 3}, {X: -0.25, Y: 0, Z: 7.5}}}

	want := "[\n(1.00 , 2.00 , 3.00)\n (-0.25 , 0.00 , 7.50)\n]\n"
	if got := tor.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	if lines := strings.Count(New(5, 2).String(), "\n"); lines != PointCount()+2 {
		t.Errorf("Expected %d lines in dump, got %d", PointCount()+2, lines)
	}
}
