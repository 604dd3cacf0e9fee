package common

import "math"

const (
	BaseWidth  = 320
	BaseHeight = 480

	// EarthGravity is the gravity magnitude in m/s² applied per unit of
	// accelerometer reading.
	EarthGravity = 9.81
)

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
