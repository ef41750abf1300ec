package pattern

import (
	"github.com/turtacn/AstroAspect-Intelligence/internal/domain/aspect"
	"github.com/turtacn/AstroAspect-Intelligence/pkg/types/chart"
)

// DetectGrandTrines reports every unordered triple whose three pairs are trine
// and whose signs share one element.
func DetectGrandTrines(ps chart.Positions, calc *aspect.Calculator, cfg Config) []Pattern {
	bodies := ps.Present(chart.Roster())
	var out []Pattern
	combinations(len(bodies), 3, func(idx []int) {
		a, b, c := bodies[idx[0]], bodies[idx[1]], bodies[idx[2]]
		asps, ok := checkAll(ps, calc,
			req(a, b, aspect.Trine),
			req(a, c, aspect.Trine),
			req(b, c, aspect.Trine),
		)
		if !ok || !sameElement(ps, a, b, c) {
			return
		}
		out = append(out, score(Pattern{
			Type:    GrandTrine,
			Bodies:  []chart.BodyID{a, b, c},
			Aspects: asps,
		}, cfg))
	})
	return out
}

func sameElement(ps chart.Positions, bodies ...chart.BodyID) bool {
	if len(bodies) == 0 {
		return false
	}
	first := ps[bodies[0]].Sign.Element()
	for _, b := range bodies[1:] {
		if ps[b].Sign.Element() != first {
			return false
		}
	}
	return true
}

//Personal.AI order the ending
