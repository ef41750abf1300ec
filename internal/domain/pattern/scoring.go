package pattern

import (
	"github.com/turtacn/AstroAspect-Intelligence/internal/domain/aspect"
	"github.com/turtacn/AstroAspect-Intelligence/pkg/types/chart"
)

// NoOrb is the average orb assigned to a pattern without supporting aspects.
const NoOrb = aspect.NoOrb

func defaultWeights() map[chart.BodyID]float64 {
	return map[chart.BodyID]float64{
		chart.Ascendant: 10,
		chart.MC:        10,
		chart.Sun:       8,
		chart.Moon:      8,
		chart.Mercury:   5,
		chart.Venus:     5,
		chart.Mars:      5,
		chart.Jupiter:   3,
		chart.Saturn:    3,
		chart.Neptune:   2.2,
		chart.Pluto:     2.1,
		chart.Uranus:    2.0,
		chart.NorthNode: 1,
		chart.SouthNode: 1,
	}
}

// Importance is the mean weight of the participating bodies.
func Importance(bodies []chart.BodyID, cfg Config) float64 {
	if len(bodies) == 0 {
		return 0
	}
	total := 0.0
	for _, b := range bodies {
		total += cfg.Weight(b)
	}
	return total / float64(len(bodies))
}

// AverageOrb is the mean orb of the supporting aspects, NoOrb when there are none.
func AverageOrb(p Pattern) float64 {
	if len(p.Aspects) == 0 {
		return NoOrb
	}
	sum := 0.0
	for _, a := range p.Aspects {
		sum += a.Orb
	}
	return sum / float64(len(p.Aspects))
}

// CompositeScore is importance minus OrbPenalty times average orb.
func CompositeScore(importance, avgOrb float64, cfg Config) float64 {
	return importance - cfg.OrbPenalty*avgOrb
}

// score fills the derived metrics of p.
func score(p Pattern, cfg Config) Pattern {
	p.AvgOrb = AverageOrb(p)
	p.Importance = Importance(p.Bodies, cfg)
	p.Score = CompositeScore(p.Importance, p.AvgOrb, cfg)
	return p
}

//Personal.AI order the ending
