package pattern

import (
	"github.com/turtacn/AstroAspect-Intelligence/internal/domain/aspect"
	"github.com/turtacn/AstroAspect-Intelligence/pkg/types/chart"
)

// DetectCradles reports every 4-body set with an opposing pair whose other two
// members each trine one end and sextile the other, in either arrangement.
// A set can be reported once per opposing pair that qualifies.
func DetectCradles(ps chart.Positions, calc *aspect.Calculator, cfg Config) []Pattern {
	bodies := ps.Present(chart.Roster())
	var out []Pattern
	combinations(len(bodies), 4, func(idx []int) {
		combo := pick(bodies, idx)
		for i := 0; i < 4; i++ {
			for j := i + 1; j < 4; j++ {
				p1, p2 := combo[i], combo[j]
				opp, ok := calc.Check(ps, p1, p2, aspect.Opposition)
				if !ok {
					continue
				}
				others := make([]chart.BodyID, 0, 2)
				for k := 0; k < 4; k++ {
					if k != i && k != j {
						others = append(others, combo[k])
					}
				}
				o3, o4 := others[0], others[1]

				asps, ok := checkAll(ps, calc,
					req(o3, p1, aspect.Trine),
					req(o3, p2, aspect.Sextile),
					req(o4, p1, aspect.Sextile),
					req(o4, p2, aspect.Trine),
				)
				if !ok {
					asps, ok = checkAll(ps, calc,
						req(o3, p1, aspect.Sextile),
						req(o3, p2, aspect.Trine),
						req(o4, p1, aspect.Trine),
						req(o4, p2, aspect.Sextile),
					)
				}
				if !ok {
					continue
				}
				out = append(out, score(Pattern{
					Type:    Cradle,
					Bodies:  []chart.BodyID{p1, p2, o3, o4},
					Aspects: append([]aspect.Aspect{opp}, asps...),
				}, cfg))
			}
		}
	})
	return out
}

//Personal.AI order the ending
