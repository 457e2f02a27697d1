package constants

import "time"

// Render Loop Timing
const (
	// FrameInterval is the pause between two rendered frames (~16 FPS)
	FrameInterval = 60 * time.Millisecond

	// SteerPeriod is the number of frames between spin rate re-draws
	SteerPeriod = 200

	// SteerRange bounds the spin rates, drawn uniformly from [-SteerRange, SteerRange)
	SteerRange = 0.3
)

// Initial tilt applied once before the first frame so the donut is seen from above
const (
	InitialTiltA = 1.0
	InitialTiltB = 0.0
)
