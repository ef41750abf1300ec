package pattern

import (
	"github.com/turtacn/AstroAspect-Intelligence/internal/domain/aspect"
	"github.com/turtacn/AstroAspect-Intelligence/pkg/types/chart"
)

// DetectYods reports every ordered triple of planets (chart angles excluded)
// where A sextiles B and C is quincunx to both.
func DetectYods(ps chart.Positions, calc *aspect.Calculator, cfg Config) []Pattern {
	var out []Pattern
	permutations3(ps.Present(chart.PlanetRoster()), func(a, b, c chart.BodyID) {
		asps, ok := checkAll(ps, calc,
			req(a, b, aspect.Sextile),
			req(a, c, aspect.Quincunx),
			req(b, c, aspect.Quincunx),
		)
		if !ok {
			return
		}
		out = append(out, score(Pattern{
			Type:    Yod,
			Bodies:  []chart.BodyID{a, b, c},
			Aspects: asps,
		}, cfg))
	})
	return out
}

//Personal.AI order the ending
