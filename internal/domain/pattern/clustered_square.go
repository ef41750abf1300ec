package pattern

import (
	"github.com/turtacn/AstroAspect-Intelligence/internal/domain/aspect"
	"github.com/turtacn/AstroAspect-Intelligence/pkg/types/chart"
)

// DetectClusteredSquares pairs disjoint clusters (every internal distance
// within ClusterOrb) joined by at least two squares.
func DetectClusteredSquares(ps chart.Positions, calc *aspect.Calculator, cfg Config) []Pattern {
	groups := clusters(ps, cfg)
	var out []Pattern
	for i := 0; i < len(groups); i++ {
		for j := i + 1; j < len(groups); j++ {
			ga, gb := groups[i], groups[j]
			if overlaps(ga, gb) {
				continue
			}
			var squares []aspect.Aspect
			for _, a := range ga {
				for _, b := range gb {
					if sq, ok := calc.Check(ps, a, b, aspect.Square); ok {
						squares = append(squares, sq)
					}
				}
			}
			if len(squares) < 2 {
				continue
			}
			bodies := make([]chart.BodyID, 0, len(ga)+len(gb))
			bodies = append(bodies, ga...)
			bodies = append(bodies, gb...)
			out = append(out, score(Pattern{
				Type:        ClusteredSquare,
				Bodies:      bodies,
				Aspects:     squares,
				GroupA:      ga,
				GroupB:      gb,
				SquareCount: len(squares),
			}, cfg))
		}
	}
	return out
}

// clusters returns the maximal tight groups, largest sizes first.
func clusters(ps chart.Positions, cfg Config) [][]chart.BodyID {
	bodies := ps.Present(chart.Roster())
	maxSize := cfg.MaxClusterSize
	if maxSize > len(bodies) {
		maxSize = len(bodies)
	}
	var groups [][]chart.BodyID
	for size := maxSize; size >= 2; size-- {
		combinations(len(bodies), size, func(idx []int) {
			group := pick(bodies, idx)
			if !tight(ps, group, cfg.ClusterOrb) {
				return
			}
			for _, g := range groups {
				if subset(group, g) {
					return
				}
			}
			kept := groups[:0]
			for _, g := range groups {
				if !subset(g, group) {
					kept = append(kept, g)
				}
			}
			groups = append(kept, group)
		})
	}
	return groups
}

func tight(ps chart.Positions, group []chart.BodyID, orb float64) bool {
	for i := 0; i < len(group); i++ {
		for j := i + 1; j < len(group); j++ {
			if aspect.AngularDistance(ps[group[i]].Longitude, ps[group[j]].Longitude) > orb {
				return false
			}
		}
	}
	return true
}

// subset reports whether every member of a is in b.
func subset(a, b []chart.BodyID) bool {
	for _, x := range a {
		found := false
		for _, y := range b {
			if x == y {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func overlaps(a, b []chart.BodyID) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

//Personal.AI order the ending
