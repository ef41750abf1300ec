package pattern

import (
	"github.com/turtacn/AstroAspect-Intelligence/internal/domain/aspect"
	"github.com/turtacn/AstroAspect-Intelligence/pkg/types/chart"
)

// DetectGrandSquares reports 4-body sets where, classifying each of the six
// pairs as opposition or square, exactly two oppositions and two squares
// appear and the oppositions share no body.
func DetectGrandSquares(ps chart.Positions, calc *aspect.Calculator, cfg Config) []Pattern {
	bodies := ps.Present(chart.Roster())
	var out []Pattern
	combinations(len(bodies), 4, func(idx []int) {
		combo := pick(bodies, idx)
		var asps, opps []aspect.Aspect
		squares := 0
		for i := 0; i < 4; i++ {
			for j := i + 1; j < 4; j++ {
				a, ok := calc.BetweenAny(ps, combo[i], combo[j], aspect.Opposition, aspect.Square)
				if !ok {
					continue
				}
				asps = append(asps, a)
				if a.Kind == aspect.Opposition {
					opps = append(opps, a)
				} else {
					squares++
				}
			}
		}
		if len(opps) != 2 || squares != 2 {
			return
		}
		if opps[0].Involves(opps[1].Body1) || opps[0].Involves(opps[1].Body2) {
			return
		}
		out = append(out, score(Pattern{
			Type:    GrandSquare,
			Bodies:  combo,
			Aspects: asps,
		}, cfg))
	})
	return out
}

//Personal.AI order the ending
