package constants

// Screen is a fixed character grid; it does not follow the terminal size
const (
	ScreenWidth  = 80
	ScreenHeight = 40

	// CenterX and CenterY are the projection origin in cell coordinates
	CenterX = ScreenWidth / 2
	CenterY = ScreenHeight / 2
)

// Projection
const (
	// ViewerDistance is added to z before the perspective divide
	ViewerDistance = 20.0
)

// Torus sampling and default shape
const (
	// OuterStep is the angular step around the donut hole (phi)
	OuterStep = 0.07

	// InnerStep is the angular step around the tube (theta)
	InnerStep = 0.02

	// MajorRadius is the distance from the torus center to the tube center
	MajorRadius = 5.0

	// MinorRadius is the tube radius
	MinorRadius = 2.0
)

// Luminance heuristic weights: lum = LumWeightY*y + LumWeightZ*z
const (
	LumWeightY = -100.0
	LumWeightZ = 4.0
)
