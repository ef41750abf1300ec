package aspect

import (
	"sort"

	"github.com/turtacn/AstroAspect-Intelligence/pkg/types/chart"
)

// Calculator classifies body pairs with a primary classifier and a manual
// fallback, so pairs the primary cannot handle are still reported.
type Calculator struct {
	cfg      Config
	primary  Classifier
	fallback Classifier
}

// Option customises a Calculator.
type Option func(*Calculator)

// WithPrimary replaces the primary classifier. Nil disables it.
func WithPrimary(c Classifier) Option {
	return func(calc *Calculator) { calc.primary = c }
}

// NewCalculator builds a Calculator over cfg. The default primary is an
// EphemerisClassifier and the fallback is always the ManualClassifier.
func NewCalculator(cfg Config, opts ...Option) *Calculator {
	c := &Calculator{
		cfg:      cfg.clone(),
		primary:  NewEphemerisClassifier(),
		fallback: ManualClassifier{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the calculator's orb configuration.
func (c *Calculator) Config() Config { return c.cfg.clone() }

// classify consults both paths and keeps the closer result; the primary wins ties.
func (c *Calculator) classify(p Pair, kinds []Kind) (Aspect, bool) {
	var (
		prim   Aspect
		primOK bool
	)
	if c.primary != nil {
		prim, primOK = c.primary.Classify(p, kinds, c.cfg)
	}
	man, manOK := c.fallback.Classify(p, kinds, c.cfg)
	switch {
	case primOK && manOK && man.Orb < prim.Orb:
		return man, true
	case primOK:
		return prim, true
	case manOK:
		return man, true
	}
	return Aspect{}, false
}

func (c *Calculator) pair(ps chart.Positions, a, b chart.BodyID) (Pair, bool) {
	pa, ok := ps.Lookup(a)
	if !ok {
		return Pair{}, false
	}
	pb, ok := ps.Lookup(b)
	if !ok {
		return Pair{}, false
	}
	return Pair{Body1: a, Body2: b, Lon1: pa.Longitude, Lon2: pb.Longitude}, true
}

// Between returns the closest enabled aspect between a and b.
func (c *Calculator) Between(ps chart.Positions, a, b chart.BodyID) (Aspect, bool) {
	p, ok := c.pair(ps, a, b)
	if !ok {
		return Aspect{}, false
	}
	return c.classify(p, c.cfg.enabled)
}

// BetweenAny returns the closest aspect between a and b among kinds.
func (c *Calculator) BetweenAny(ps chart.Positions, a, b chart.BodyID, kinds ...Kind) (Aspect, bool) {
	p, ok := c.pair(ps, a, b)
	if !ok {
		return Aspect{}, false
	}
	return c.classify(p, kinds)
}

// Check reports whether a and b form kind within its effective orb. The kind
// need not be enabled; detectors use it for their fixed invariants.
func (c *Calculator) Check(ps chart.Positions, a, b chart.BodyID, kind Kind) (Aspect, bool) {
	return c.BetweenAny(ps, a, b, kind)
}

// Aspects classifies every pair of roster bodies with a position and
// returns the results sorted by orb ascending. Equal orbs keep roster order.
func (c *Calculator) Aspects(ps chart.Positions) []Aspect {
	roster := chart.Roster()
	out := make([]Aspect, 0, len(roster))
	for i := 0; i < len(roster); i++ {
		for j := i + 1; j < len(roster); j++ {
			if a, ok := c.Between(ps, roster[i], roster[j]); ok {
				out = append(out, a)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Orb < out[j].Orb })
	return out
}

//Personal.AI order the ending
