package pattern

import (
	"sort"

	"github.com/turtacn/AstroAspect-Intelligence/internal/domain/aspect"
	"github.com/turtacn/AstroAspect-Intelligence/pkg/types/chart"
)

// DetectStelliums reports each connected component of the conjunction graph
// (edge when two bodies lie within ConjunctionOrb) that has at least
// MinStelliumSize members and one personal body. Members are ordered by
// longitude.
func DetectStelliums(ps chart.Positions, _ *aspect.Calculator, cfg Config) []Pattern {
	bodies := ps.Present(chart.Roster())
	adj := make(map[chart.BodyID][]chart.BodyID, len(bodies))
	for _, a := range bodies {
		for _, b := range bodies {
			if a != b && aspect.AngularDistance(ps[a].Longitude, ps[b].Longitude) <= cfg.ConjunctionOrb {
				adj[a] = append(adj[a], b)
			}
		}
	}

	visited := make(map[chart.BodyID]bool, len(bodies))
	var out []Pattern
	for _, start := range bodies {
		if visited[start] {
			continue
		}
		component := walk(start, adj, visited)
		if len(component) < cfg.MinStelliumSize || !hasPersonal(component) {
			continue
		}
		sort.SliceStable(component, func(i, j int) bool {
			return ps[component[i]].Longitude < ps[component[j]].Longitude
		})
		out = append(out, score(Pattern{
			Type:    Stellium,
			Bodies:  component,
			Aspects: conjunctions(ps, component, cfg.ConjunctionOrb),
		}, cfg))
	}
	return out
}

// walk collects the component containing start with an explicit stack.
func walk(start chart.BodyID, adj map[chart.BodyID][]chart.BodyID, visited map[chart.BodyID]bool) []chart.BodyID {
	var component []chart.BodyID
	stack := []chart.BodyID{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		component = append(component, cur)
		for _, n := range adj[cur] {
			if !visited[n] {
				stack = append(stack, n)
			}
		}
	}
	return component
}

func hasPersonal(bodies []chart.BodyID) bool {
	for _, b := range bodies {
		if b.IsPersonal() {
			return true
		}
	}
	return false
}

// conjunctions lists the graph edges inside a component as aspects.
func conjunctions(ps chart.Positions, bodies []chart.BodyID, orb float64) []aspect.Aspect {
	var out []aspect.Aspect
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			d := aspect.AngularDistance(ps[bodies[i]].Longitude, ps[bodies[j]].Longitude)
			if d > orb {
				continue
			}
			out = append(out, aspect.Aspect{
				Body1:    bodies[i],
				Body2:    bodies[j],
				Kind:     aspect.Conjunction,
				Distance: d,
				Orb:      d,
				Source:   aspect.SourceManual,
			})
		}
	}
	return out
}

//Personal.AI order the ending
