// Package aspect classifies the angular relationship between pairs of chart
// bodies. It holds the geometry primitives, the orb table and the calculator
// that turns a set of positions into a sorted aspect list.
package aspect

import "math"

// AngularDistance returns the unsigned shortest separation of two longitudes
// in [0, 180]. Inputs are expected in [0, 360).
func AngularDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Deviation returns how far the separation of a and b is from k's ideal angle.
func Deviation(a, b float64, k Kind) float64 {
	return math.Abs(AngularDistance(a, b) - k.Angle())
}

//Personal.AI order the ending
