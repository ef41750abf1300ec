// Package pattern detects multi-body configurations (T-Squares, Grand Trines,
// Yods and the rest) over a chart's positions and resolves overlapping
// candidates into the final pattern list.
//
// Every detector is a pure function of the positions, the aspect calculator
// and an immutable Config. Detectors over-report on purpose; Select applies the
// per-type deduplication and conflict rules.
package pattern

import (
	"fmt"
	"sort"
	"strings"

	"github.com/turtacn/AstroAspect-Intelligence/internal/domain/aspect"
	"github.com/turtacn/AstroAspect-Intelligence/pkg/types/chart"
)

// Type tags a pattern.
type Type string

const (
	TSquare         Type = "T-Square"
	GrandTrine      Type = "Grand Trine"
	GrandSquare     Type = "Grand Square"
	Kite            Type = "Kite"
	Cradle          Type = "Cradle"
	Yod             Type = "Yod"
	Stellium        Type = "Stellium"
	ClusteredSquare Type = "Clustered Square"
	Hub             Type = "Multiple Aspect"
)

// OutputOrder is the order in which selected patterns are emitted.
var OutputOrder = []Type{
	TSquare, ClusteredSquare, Yod, Cradle, GrandTrine, Kite, GrandSquare, Stellium, Hub,
}

// Pattern is one detected configuration.
type Pattern struct {
	Type   Type           `json:"type"`
	Bodies []chart.BodyID `json:"bodies"`
	// Aspects are the supporting aspects that justify the pattern.
	Aspects []aspect.Aspect `json:"aspects"`

	// Target is the focal body of a Multiple Aspect hub.
	Target chart.BodyID `json:"target,omitempty"`
	// GroupA and GroupB are the two clusters of a Clustered Square.
	GroupA      []chart.BodyID `json:"group_a,omitempty"`
	GroupB      []chart.BodyID `json:"group_b,omitempty"`
	SquareCount int            `json:"square_count,omitempty"`

	AvgOrb     float64 `json:"avg_orb"`
	Importance float64 `json:"importance"`
	Score      float64 `json:"score"`
}

// Key identifies the pattern by its unordered body set.
func (p Pattern) Key() string {
	names := make([]string, len(p.Bodies))
	for i, b := range p.Bodies {
		names[i] = string(b)
	}
	sort.Strings(names)
	return strings.Join(names, "|")
}

// Contains reports whether b participates in the pattern.
func (p Pattern) Contains(b chart.BodyID) bool {
	for _, x := range p.Bodies {
		if x == b {
			return true
		}
	}
	return false
}

// Shared counts the bodies p has in common with q.
func (p Pattern) Shared(q Pattern) int {
	n := 0
	for _, b := range p.Bodies {
		if q.Contains(b) {
			n++
		}
	}
	return n
}

// Descriptors renders the supporting aspects for display.
func (p Pattern) Descriptors() []string {
	out := make([]string, len(p.Aspects))
	for i, a := range p.Aspects {
		out[i] = a.Describe()
	}
	return out
}

// Config holds the thresholds and policy limits used by detection and selection.
type Config struct {
	// ConjunctionOrb is the adjacency threshold for stellium components.
	ConjunctionOrb float64
	// ClusterOrb bounds every pairwise distance inside a clustered-square group.
	ClusterOrb float64
	// MaxClusterSize is the largest group a clustered square considers.
	MaxClusterSize int
	// MinStelliumSize is the smallest component reported as a stellium.
	MinStelliumSize int

	YodMaxAvgOrb    float64
	CradleMaxAvgOrb float64
	CradleLimit     int
	// ClusteredSquareLimit is how many clustered squares survive selection.
	ClusteredSquareLimit int

	// OrbPenalty scales average orb in the composite score.
	OrbPenalty float64

	weights map[chart.BodyID]float64
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		ConjunctionOrb:       8,
		ClusterOrb:           15,
		MaxClusterSize:       6,
		MinStelliumSize:      3,
		YodMaxAvgOrb:         6,
		CradleMaxAvgOrb:      7,
		CradleLimit:          2,
		ClusteredSquareLimit: 1,
		OrbPenalty:           0.15,
		weights:              defaultWeights(),
	}
}

// WithWeights returns a copy using w as the importance table.
func (c Config) WithWeights(w map[chart.BodyID]float64) Config {
	out := c
	out.weights = make(map[chart.BodyID]float64, len(w))
	for b, v := range w {
		out.weights[b] = v
	}
	return out
}

// Weight returns the importance weight of b; unknown bodies weigh 0.
func (c Config) Weight(b chart.BodyID) float64 {
	if c.weights == nil {
		return defaultWeights()[b]
	}
	return c.weights[b]
}

// Validate rejects thresholds the detectors cannot work with.
func (c Config) Validate() error {
	switch {
	case c.ConjunctionOrb < 0:
		return fmt.Errorf("pattern: conjunction orb must not be negative")
	case c.ClusterOrb < 0:
		return fmt.Errorf("pattern: cluster orb must not be negative")
	case c.MaxClusterSize < 2:
		return fmt.Errorf("pattern: max cluster size must be at least 2")
	case c.MinStelliumSize < 2:
		return fmt.Errorf("pattern: min stellium size must be at least 2")
	case c.CradleLimit < 0 || c.ClusteredSquareLimit < 0:
		return fmt.Errorf("pattern: selection limits must not be negative")
	case c.OrbPenalty < 0:
		return fmt.Errorf("pattern: orb penalty must not be negative")
	}
	return nil
}

// combinations calls fn with every k-subset of [0, n) in lexicographic order.
func combinations(n, k int, fn func(idx []int)) {
	if k > n || k <= 0 {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		fn(idx)
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// permutations3 calls fn with every ordered triple of distinct bodies, in
// lexicographic index order.
func permutations3(bodies []chart.BodyID, fn func(a, b, c chart.BodyID)) {
	for i := range bodies {
		for j := range bodies {
			if j == i {
				continue
			}
			for k := range bodies {
				if k == i || k == j {
					continue
				}
				fn(bodies[i], bodies[j], bodies[k])
			}
		}
	}
}

func pick(bodies []chart.BodyID, idx []int) []chart.BodyID {
	out := make([]chart.BodyID, len(idx))
	for i, x := range idx {
		out[i] = bodies[x]
	}
	return out
}

//Personal.AI order the ending
