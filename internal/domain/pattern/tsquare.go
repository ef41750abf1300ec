package pattern

import (
	"github.com/turtacn/AstroAspect-Intelligence/internal/domain/aspect"
	"github.com/turtacn/AstroAspect-Intelligence/pkg/types/chart"
)

// DetectTSquares reports every ordered triple where A opposes B and C squares
// both. Each T-Square appears twice (A and B swapped) until selection.
func DetectTSquares(ps chart.Positions, calc *aspect.Calculator, cfg Config) []Pattern {
	var out []Pattern
	permutations3(ps.Present(chart.Roster()), func(a, b, c chart.BodyID) {
		asps, ok := checkAll(ps, calc,
			req(a, b, aspect.Opposition),
			req(a, c, aspect.Square),
			req(b, c, aspect.Square),
		)
		if !ok {
			return
		}
		out = append(out, score(Pattern{
			Type:    TSquare,
			Bodies:  []chart.BodyID{a, b, c},
			Aspects: asps,
		}, cfg))
	})
	return out
}

//Personal.AI order the ending
