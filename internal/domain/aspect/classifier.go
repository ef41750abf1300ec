package aspect

import (
	"fmt"

	"github.com/turtacn/AstroAspect-Intelligence/pkg/types/chart"
)

// Source records which classification path produced an Aspect.
type Source string

const (
	SourcePrimary Source = "primary"
	SourceManual  Source = "manual"
)

// Aspect is a classified relationship between two bodies. Body1 precedes
// Body2 in the order the pair was examined.
type Aspect struct {
	Body1 chart.BodyID `json:"body1"`
	Body2 chart.BodyID `json:"body2"`
	Kind  Kind         `json:"kind"`
	// Distance is the measured separation in [0, 180].
	Distance float64 `json:"distance"`
	// Orb is |Distance - Kind.Angle()|.
	Orb    float64 `json:"orb"`
	Source Source  `json:"source"`
}

// Involves reports whether b is one of the two bodies.
func (a Aspect) Involves(b chart.BodyID) bool {
	return a.Body1 == b || a.Body2 == b
}

// Other returns the partner of b, or "" when b is not part of the aspect.
func (a Aspect) Other(b chart.BodyID) chart.BodyID {
	switch b {
	case a.Body1:
		return a.Body2
	case a.Body2:
		return a.Body1
	}
	return ""
}

// Describe renders "Sun Opposition Moon (orb: 1.2°)".
func (a Aspect) Describe() string {
	return fmt.Sprintf("%s %s %s (orb: %.1f°)", a.Body1, a.Kind, a.Body2, a.Orb)
}

// Pair is the input to a Classifier.
type Pair struct {
	Body1, Body2 chart.BodyID
	Lon1, Lon2   float64
}

// Classifier decides whether a pair forms one of the candidate kinds.
// Implementations return false when no candidate fits or when they cannot
// handle the bodies involved.
type Classifier interface {
	Classify(p Pair, kinds []Kind, cfg Config) (Aspect, bool)
}

// ClassifierFunc adapts a function to Classifier.
type ClassifierFunc func(p Pair, kinds []Kind, cfg Config) (Aspect, bool)

// Classify calls f.
func (f ClassifierFunc) Classify(p Pair, kinds []Kind, cfg Config) (Aspect, bool) {
	return f(p, kinds, cfg)
}

// closest picks the candidate whose ideal angle is nearest the measured
// separation and whose orb fits. Ties keep the earlier candidate.
func closest(p Pair, kinds []Kind, cfg Config, src Source) (Aspect, bool) {
	d := AngularDistance(p.Lon1, p.Lon2)
	best := Aspect{}
	found := false
	for _, k := range kinds {
		if !k.Valid() {
			continue
		}
		orb := d - k.Angle()
		if orb < 0 {
			orb = -orb
		}
		if !cfg.Within(k, orb) {
			continue
		}
		if !found || orb < best.Orb {
			best = Aspect{Body1: p.Body1, Body2: p.Body2, Kind: k, Distance: d, Orb: orb, Source: src}
			found = true
		}
	}
	return best, found
}

// ManualClassifier computes aspects directly from angular distance. It
// handles every body and is the fallback path of the Calculator.
type ManualClassifier struct{}

// Classify implements Classifier.
func (ManualClassifier) Classify(p Pair, kinds []Kind, cfg Config) (Aspect, bool) {
	return closest(p, kinds, cfg, SourceManual)
}

// EphemerisClassifier models an ephemeris library's aspect routine: it only
// recognises the kinds it supports and refuses bodies it has no aspect data
// for (by default the chart angles and the lunar node).
type EphemerisClassifier struct {
	unsupportedBodies map[chart.BodyID]bool
	supportedKinds    map[Kind]bool
}

// NewEphemerisClassifier returns a classifier that supports the major kinds
// and refuses the Ascendant, MC and North Node.
func NewEphemerisClassifier() *EphemerisClassifier {
	return NewRestrictedClassifier(
		[]chart.BodyID{chart.Ascendant, chart.MC, chart.NorthNode},
		MajorKinds(),
	)
}

// NewRestrictedClassifier builds an EphemerisClassifier with explicit limits.
func NewRestrictedClassifier(unsupported []chart.BodyID, kinds []Kind) *EphemerisClassifier {
	c := &EphemerisClassifier{
		unsupportedBodies: make(map[chart.BodyID]bool, len(unsupported)),
		supportedKinds:    make(map[Kind]bool, len(kinds)),
	}
	for _, b := range unsupported {
		c.unsupportedBodies[b] = true
	}
	for _, k := range kinds {
		c.supportedKinds[k] = true
	}
	return c
}

// Classify implements Classifier.
func (c *EphemerisClassifier) Classify(p Pair, kinds []Kind, cfg Config) (Aspect, bool) {
	if c.unsupportedBodies[p.Body1] || c.unsupportedBodies[p.Body2] {
		return Aspect{}, false
	}
	supported := make([]Kind, 0, len(kinds))
	for _, k := range kinds {
		if c.supportedKinds[k] {
			supported = append(supported, k)
		}
	}
	return closest(p, supported, cfg, SourcePrimary)
}

//Personal.AI order the ending
