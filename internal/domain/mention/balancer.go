// Package mention spreads the narration of aspects and patterns across the
// bodies that take part in them, so no single body carries every mention.
package mention

import (
	"sort"

	"github.com/turtacn/AstroAspect-Intelligence/internal/domain/aspect"
	"github.com/turtacn/AstroAspect-Intelligence/internal/domain/pattern"
	"github.com/turtacn/AstroAspect-Intelligence/pkg/types/chart"
)

const (
	aspectOwners  = 1
	patternOwners = 2
)

// Assignment records which bodies mention each aspect and pattern.
type Assignment struct {
	// AspectOwners[i] is the single body that mentions aspects[i].
	AspectOwners []chart.BodyID `json:"aspect_owners"`
	// PatternOwners[i] holds the two bodies that mention patterns[i], or nil
	// when the pattern has fewer than two bodies.
	PatternOwners [][]chart.BodyID `json:"pattern_owners"`
	// Counts is the number of mentions per involved body.
	Counts map[chart.BodyID]int `json:"counts"`
}

type item struct {
	pattern bool
	index   int
	options []chart.BodyID
	needed  int
}

// Balance assigns each aspect to one of its two bodies and each pattern to two
// of its bodies. Items with fewer options are placed first; every item goes to
// the currently least mentioned options, earlier options winning ties.
func Balance(aspects []aspect.Aspect, patterns []pattern.Pattern) Assignment {
	out := Assignment{
		AspectOwners:  make([]chart.BodyID, len(aspects)),
		PatternOwners: make([][]chart.BodyID, len(patterns)),
		Counts:        make(map[chart.BodyID]int),
	}

	items := make([]item, 0, len(aspects)+len(patterns))
	for i, a := range aspects {
		out.Counts[a.Body1] += 0
		out.Counts[a.Body2] += 0
		items = append(items, item{index: i, options: []chart.BodyID{a.Body1, a.Body2}, needed: aspectOwners})
	}
	for i, p := range patterns {
		for _, b := range p.Bodies {
			out.Counts[b] += 0
		}
		if len(p.Bodies) < patternOwners {
			continue
		}
		items = append(items, item{
			pattern: true,
			index:   i,
			options: append([]chart.BodyID(nil), p.Bodies...),
			needed:  patternOwners,
		})
	}

	sort.SliceStable(items, func(i, j int) bool { return len(items[i].options) < len(items[j].options) })

	for _, it := range items {
		opts := it.options
		sort.SliceStable(opts, func(i, j int) bool { return out.Counts[opts[i]] < out.Counts[opts[j]] })
		selected := opts[:it.needed]
		for _, b := range selected {
			out.Counts[b]++
		}
		if it.pattern {
			out.PatternOwners[it.index] = append([]chart.BodyID(nil), selected...)
		} else {
			out.AspectOwners[it.index] = selected[0]
		}
	}
	return out
}

// Mentions lists what one body should narrate.
type Mentions struct {
	Aspects  []aspect.Aspect
	Patterns []pattern.Pattern
}

// MentionsFor returns the aspects and patterns assigned to body, in input order.
func (a Assignment) MentionsFor(body chart.BodyID, aspects []aspect.Aspect, patterns []pattern.Pattern) Mentions {
	var m Mentions
	for i, owner := range a.AspectOwners {
		if owner == body && i < len(aspects) {
			m.Aspects = append(m.Aspects, aspects[i])
		}
	}
	for i, owners := range a.PatternOwners {
		if i >= len(patterns) {
			break
		}
		for _, o := range owners {
			if o == body {
				m.Patterns = append(m.Patterns, patterns[i])
				break
			}
		}
	}
	return m
}

// Spread is the difference between the most and least mentioned bodies.
func (a Assignment) Spread() int {
	if len(a.Counts) == 0 {
		return 0
	}
	lo, hi := -1, 0
	for _, n := range a.Counts {
		if lo < 0 || n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	}
	return hi - lo
}

//Personal.AI order the ending
