package mention

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/AstroAspect-Intelligence/internal/domain/aspect"
	"github.com/turtacn/AstroAspect-Intelligence/internal/domain/pattern"
	"github.com/turtacn/AstroAspect-Intelligence/pkg/types/chart"
)

func asp(a, b chart.BodyID) aspect.Aspect {
	return aspect.Aspect{Body1: a, Body2: b, Kind: aspect.Square}
}

func TestBalance_AspectsAlternate(t *testing.T) {
	aspects := []aspect.Aspect{
		asp(chart.Sun, chart.Moon),
		asp(chart.Sun, chart.Mars),
		asp(chart.Sun, chart.Venus),
	}

	got := Balance(aspects, nil)
	assert.Equal(t, []chart.BodyID{chart.Sun, chart.Mars, chart.Venus}, got.AspectOwners)
	assert.Equal(t, map[chart.BodyID]int{chart.Sun: 1, chart.Moon: 0, chart.Mars: 1, chart.Venus: 1}, got.Counts)
	assert.Equal(t, 1, got.Spread())
}

func TestBalance_PatternsTakeTwoOwners(t *testing.T) {
	aspects := []aspect.Aspect{asp(chart.Sun, chart.Moon)}
	patterns := []pattern.Pattern{
		{Type: pattern.TSquare, Bodies: []chart.BodyID{chart.Sun, chart.Moon, chart.Mars}},
	}

	got := Balance(aspects, patterns)
	assert.Equal(t, chart.Sun, got.AspectOwners[0])
	require.Len(t, got.PatternOwners, 1)
	assert.Equal(t, []chart.BodyID{chart.Moon, chart.Mars}, got.PatternOwners[0])
	assert.Equal(t, 1, got.Counts[chart.Sun])
	assert.Equal(t, 1, got.Counts[chart.Moon])
	assert.Equal(t, 1, got.Counts[chart.Mars])
}

func TestBalance_SmallItemsFirst(t *testing.T) {
	// The pattern is listed first but the aspect has fewer options.
	patterns := []pattern.Pattern{
		{Type: pattern.GrandTrine, Bodies: []chart.BodyID{chart.Sun, chart.Moon, chart.Jupiter}},
	}
	aspects := []aspect.Aspect{asp(chart.Sun, chart.Moon)}

	got := Balance(aspects, patterns)
	assert.Equal(t, chart.Sun, got.AspectOwners[0])
	assert.Equal(t, []chart.BodyID{chart.Moon, chart.Jupiter}, got.PatternOwners[0])
}

func TestBalance_SingleBodyPatternIsUnassigned(t *testing.T) {
	patterns := []pattern.Pattern{{Type: pattern.Stellium, Bodies: []chart.BodyID{chart.Sun}}}

	got := Balance(nil, patterns)
	assert.Nil(t, got.PatternOwners[0])
	assert.Equal(t, map[chart.BodyID]int{chart.Sun: 0}, got.Counts)
}

func TestBalance_DoesNotReorderInputBodies(t *testing.T) {
	bodies := []chart.BodyID{chart.Sun, chart.Moon, chart.Mars}
	patterns := []pattern.Pattern{{Type: pattern.TSquare, Bodies: bodies}}
	aspects := []aspect.Aspect{asp(chart.Sun, chart.Moon), asp(chart.Moon, chart.Sun)}

	Balance(aspects, patterns)
	assert.Equal(t, []chart.BodyID{chart.Sun, chart.Moon, chart.Mars}, bodies)
}

func TestBalance_EveryItemCovered(t *testing.T) {
	aspects := []aspect.Aspect{
		asp(chart.Sun, chart.Moon), asp(chart.Moon, chart.Mars), asp(chart.Mars, chart.Venus),
		asp(chart.Venus, chart.Sun), asp(chart.Jupiter, chart.Sun),
	}
	patterns := []pattern.Pattern{
		{Bodies: []chart.BodyID{chart.Sun, chart.Moon, chart.Mars, chart.Venus}},
		{Bodies: []chart.BodyID{chart.Jupiter, chart.Saturn, chart.Sun}},
	}

	got := Balance(aspects, patterns)
	total := 0
	for i, owner := range got.AspectOwners {
		assert.True(t, aspects[i].Involves(owner))
	}
	for i, owners := range got.PatternOwners {
		require.Len(t, owners, 2)
		assert.NotEqual(t, owners[0], owners[1])
		for _, o := range owners {
			assert.True(t, patterns[i].Contains(o))
		}
	}
	for _, n := range got.Counts {
		total += n
	}
	assert.Equal(t, len(aspects)+2*len(patterns), total)
}

func TestAssignment_MentionsFor(t *testing.T) {
	aspects := []aspect.Aspect{asp(chart.Sun, chart.Moon), asp(chart.Sun, chart.Mars)}
	patterns := []pattern.Pattern{
		{Type: pattern.TSquare, Bodies: []chart.BodyID{chart.Sun, chart.Moon, chart.Mars}},
	}
	got := Balance(aspects, patterns)

	mars := got.MentionsFor(chart.Mars, aspects, patterns)
	assert.Equal(t, []aspect.Aspect{aspects[1]}, mars.Aspects)

	total := 0
	for _, b := range []chart.BodyID{chart.Sun, chart.Moon, chart.Mars} {
		total += len(got.MentionsFor(b, aspects, patterns).Patterns)
	}
	assert.Equal(t, 2, total)
	assert.Empty(t, got.MentionsFor(chart.Pluto, aspects, patterns).Aspects)
}

func TestAssignment_SpreadEmpty(t *testing.T) {
	assert.Zero(t, Balance(nil, nil).Spread())
}

//Personal.AI order the ending
