// Package physics implements the rigid-body core: force integration,
// sub-stepped collision resolution against axis-aligned obstacles,
// bounce response and ground detection.
//
// Physical quantities (mass, velocity, force, gravity) are SI units.
// Only geometry is expressed in pixels, and every crossing between the
// two goes through Units.
package physics

import "math"

// DefaultPixelsPerMeter is the render scale used when none is configured.
const DefaultPixelsPerMeter = 50.0

// Units converts between world meters and render pixels.
// The zero value uses DefaultPixelsPerMeter.
type Units struct {
	PixelsPerMeter float64
}

// NewUnits returns a converter for the given scale. Non-positive or
// non-finite scales fall back to DefaultPixelsPerMeter.
func NewUnits(pixelsPerMeter float64) Units {
	return Units{PixelsPerMeter: validScale(pixelsPerMeter)}
}

func validScale(ppm float64) float64 {
	if !(ppm > 0) || math.IsInf(ppm, 0) {
		return DefaultPixelsPerMeter
	}
	return ppm
}

// Scale returns the effective pixels-per-meter factor.
func (u Units) Scale() float64 {
	return validScale(u.PixelsPerMeter)
}

// ToPixels converts meters to pixels.
func (u Units) ToPixels(meters float64) float64 {
	return meters * u.Scale()
}

// ToMeters converts pixels to meters.
func (u Units) ToMeters(pixels float64) float64 {
	return pixels / u.Scale()
}

// VecToPixels converts a vector in meters to pixels.
func (u Units) VecToPixels(v Vec2) Vec2 {
	return v.Scale(u.Scale())
}

// ToPixels converts meters to pixels at the default scale.
func ToPixels(meters float64) float64 {
	return meters * DefaultPixelsPerMeter
}

// ToMeters converts pixels to meters at the default scale.
func ToMeters(pixels float64) float64 {
	return pixels / DefaultPixelsPerMeter
}
