package pattern

import (
	"github.com/turtacn/AstroAspect-Intelligence/internal/domain/aspect"
	"github.com/turtacn/AstroAspect-Intelligence/pkg/types/chart"
)

// minHubPartners is the number of major aspects a target needs to be a hub.
const minHubPartners = 2

// DetectHubs reports every body that forms a major aspect with at least two
// others. The target is listed first, followed by its partners in roster order.
func DetectHubs(ps chart.Positions, calc *aspect.Calculator, cfg Config) []Pattern {
	bodies := ps.Present(chart.Roster())
	majors := aspect.MajorKinds()
	var out []Pattern
	for _, target := range bodies {
		var asps []aspect.Aspect
		for _, other := range bodies {
			if other == target {
				continue
			}
			if a, ok := calc.BetweenAny(ps, target, other, majors...); ok {
				asps = append(asps, a)
			}
		}
		if len(asps) < minHubPartners {
			continue
		}
		members := make([]chart.BodyID, 0, len(asps)+1)
		members = append(members, target)
		for _, a := range asps {
			members = append(members, a.Body2)
		}
		out = append(out, score(Pattern{
			Type:    Hub,
			Bodies:  members,
			Aspects: asps,
			Target:  target,
		}, cfg))
	}
	return out
}

//Personal.AI order the ending
