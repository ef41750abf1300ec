package pattern

import (
	"github.com/turtacn/AstroAspect-Intelligence/internal/domain/aspect"
	"github.com/turtacn/AstroAspect-Intelligence/pkg/types/chart"
)

// Detector finds raw candidates of one pattern type.
type Detector func(ps chart.Positions, calc *aspect.Calculator, cfg Config) []Pattern

// Detectors maps each type to its detector.
var Detectors = map[Type]Detector{
	TSquare:         DetectTSquares,
	GrandTrine:      DetectGrandTrines,
	GrandSquare:     DetectGrandSquares,
	Kite:            DetectKites,
	Cradle:          DetectCradles,
	Yod:             DetectYods,
	Stellium:        DetectStelliums,
	ClusteredSquare: DetectClusteredSquares,
	Hub:             DetectHubs,
}

// checkAll evaluates each (a, b, kind) requirement and returns the aspects
// when every one holds.
func checkAll(ps chart.Positions, calc *aspect.Calculator, reqs ...requirement) ([]aspect.Aspect, bool) {
	out := make([]aspect.Aspect, 0, len(reqs))
	for _, r := range reqs {
		a, ok := calc.Check(ps, r.a, r.b, r.kind)
		if !ok {
			return nil, false
		}
		out = append(out, a)
	}
	return out, true
}

type requirement struct {
	a, b chart.BodyID
	kind aspect.Kind
}

func req(a, b chart.BodyID, kind aspect.Kind) requirement {
	return requirement{a: a, b: b, kind: kind}
}

//Personal.AI order the ending
