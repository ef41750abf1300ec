package pattern

import (
	"github.com/turtacn/AstroAspect-Intelligence/internal/domain/aspect"
	"github.com/turtacn/AstroAspect-Intelligence/pkg/types/chart"
)

// DetectKites extends each grand trine with a fourth body that opposes one
// vertex and sextiles the other two. The first opposed vertex, in trine
// order, is the apex partner.
func DetectKites(ps chart.Positions, calc *aspect.Calculator, cfg Config) []Pattern {
	var out []Pattern
	for _, gt := range DetectGrandTrines(ps, calc, cfg) {
		for _, fourth := range ps.Present(chart.Roster()) {
			if gt.Contains(fourth) {
				continue
			}

			var (
				opp      aspect.Aspect
				opposite chart.BodyID
			)
			for _, v := range gt.Bodies {
				if a, ok := calc.Check(ps, fourth, v, aspect.Opposition); ok {
					opp, opposite = a, v
					break
				}
			}
			if opposite == "" {
				continue
			}

			sextiles := make([]aspect.Aspect, 0, 2)
			for _, v := range gt.Bodies {
				if v == opposite {
					continue
				}
				if a, ok := calc.Check(ps, fourth, v, aspect.Sextile); ok {
					sextiles = append(sextiles, a)
				}
			}
			if len(sextiles) != 2 {
				continue
			}

			asps := make([]aspect.Aspect, 0, 6)
			asps = append(asps, gt.Aspects...)
			asps = append(asps, opp)
			asps = append(asps, sextiles...)
			out = append(out, score(Pattern{
				Type:    Kite,
				Bodies:  append(append([]chart.BodyID{}, gt.Bodies...), fourth),
				Aspects: asps,
			}, cfg))
		}
	}
	return out
}

//Personal.AI order the ending
