package analysis

import (
	"math"
	"sort"

	"github.com/turtacn/AstroAspect-Intelligence/pkg/types/chart"
)

// ToPositions converts caller input into engine positions. Entries that name
// an unknown body, a body outside the analysed roster, or carry a missing or
// non-finite longitude are returned as skipped instead of failing the chart.
// When two names resolve to the same body the lexically first one wins.
// An unparseable sign falls back to the sign derived from the longitude.
func ToPositions(in map[string]PositionInput) (chart.Positions, []SkippedBody) {
	names := make([]string, 0, len(in))
	for name := range in {
		names = append(names, name)
	}
	sort.Strings(names)

	ps := make(chart.Positions, len(in))
	var skipped []SkippedBody
	for _, name := range names {
		pi := in[name]
		id, ok := chart.ParseBodyID(name)
		switch {
		case !ok:
			skipped = append(skipped, SkippedBody{Body: name, Reason: ReasonUnknownBody})
			continue
		case chart.RosterIndex(id) < 0:
			skipped = append(skipped, SkippedBody{Body: name, Reason: ReasonNotAnalysed})
			continue
		case pi.Longitude == nil:
			skipped = append(skipped, SkippedBody{Body: name, Reason: ReasonMissing})
			continue
		case math.IsNaN(*pi.Longitude) || math.IsInf(*pi.Longitude, 0):
			skipped = append(skipped, SkippedBody{Body: name, Reason: ReasonNonFinite})
			continue
		case ps.Has(id):
			skipped = append(skipped, SkippedBody{Body: name, Reason: ReasonDuplicate})
			continue
		}
		ps[id] = toPosition(pi)
	}
	return ps, skipped
}

func toPosition(pi PositionInput) chart.Position {
	pos := chart.NewPosition(*pi.Longitude)
	if pi.Sign == "" {
		return pos
	}
	sign, ok := chart.ParseSign(pi.Sign)
	if !ok {
		return pos
	}
	pos.Sign = sign
	if pi.SignDegree != nil && !math.IsNaN(*pi.SignDegree) && !math.IsInf(*pi.SignDegree, 0) {
		pos.SignDegree = *pi.SignDegree
	}
	return pos
}

//Personal.AI order the ending
