package aspect

import (
	"math"
	"strconv"
	"strings"
)

// NoOrb is the sentinel returned for descriptors without a readable orb.
const NoOrb = 999.0

// ParseOrb extracts the orb from a descriptor rendered by Aspect.Describe,
// e.g. "Sun Opposition Moon (orb: 1.2°)". Malformed input yields NoOrb.
func ParseOrb(descriptor string) float64 {
	_, rest, ok := strings.Cut(descriptor, "orb:")
	if !ok {
		return NoOrb
	}
	rest = strings.TrimSpace(rest)
	rest = strings.TrimSuffix(rest, ")")
	rest = strings.TrimSuffix(rest, "°")
	v, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return NoOrb
	}
	return v
}

//Personal.AI order the ending
