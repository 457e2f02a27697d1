// Package torus models a donut as a point cloud and renders it to a fixed
// character grid.
//
// The pipeline per frame is:
//   - Rotate: rigid two-axis rotation of every point, in place
//   - Project: perspective projection with a per-pixel closeness test
//   - Shade: luminance normalisation and mapping onto a glyph ramp
//
// A Torus is not safe for concurrent use; the render loop owns it.
package torus
