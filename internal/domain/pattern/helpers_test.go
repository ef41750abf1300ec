package pattern

import (
	"github.com/turtacn/AstroAspect-Intelligence/internal/domain/aspect"
	"github.com/turtacn/AstroAspect-Intelligence/pkg/types/chart"
)

func at(lons map[chart.BodyID]float64) chart.Positions {
	ps := make(chart.Positions, len(lons))
	for b, l := range lons {
		ps[b] = chart.NewPosition(l)
	}
	return ps
}

func newTestEngine() *Engine {
	return NewEngine(aspect.NewCalculator(aspect.DefaultConfig()), DefaultConfig())
}

func keys(ps []Pattern) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Key()
	}
	return out
}

func synthetic(score, avgOrb float64, bodies ...chart.BodyID) Pattern {
	return Pattern{Bodies: bodies, Score: score, AvgOrb: avgOrb}
}

//Personal.AI order the ending
