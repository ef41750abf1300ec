package aspect

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/AstroAspect-Intelligence/pkg/types/chart"
)

func positions(lons map[chart.BodyID]float64) chart.Positions {
	ps := make(chart.Positions, len(lons))
	for b, l := range lons {
		ps[b] = chart.NewPosition(l)
	}
	return ps
}

func TestCalculator_ScenarioA(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	ps := positions(map[chart.BodyID]float64{chart.Sun: 0, chart.Moon: 60, chart.Mercury: 120})

	got := calc.Aspects(ps)
	require.Len(t, got, 3)

	assert.Equal(t, Aspect{Body1: chart.Sun, Body2: chart.Moon, Kind: Sextile, Distance: 60, Orb: 0, Source: SourcePrimary}, got[0])
	assert.Equal(t, Aspect{Body1: chart.Sun, Body2: chart.Mercury, Kind: Trine, Distance: 120, Orb: 0, Source: SourcePrimary}, got[1])
	assert.Equal(t, Aspect{Body1: chart.Moon, Body2: chart.Mercury, Kind: Sextile, Distance: 60, Orb: 0, Source: SourcePrimary}, got[2])
}

func TestCalculator_SortedByOrb(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	ps := positions(map[chart.BodyID]float64{
		chart.Sun: 0, chart.Moon: 95, chart.Mars: 181, chart.Venus: 241.5,
	})

	got := calc.Aspects(ps)
	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Orb, got[i].Orb)
	}
}

func TestCalculator_FallbackForUnsupportedBodies(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	ps := positions(map[chart.BodyID]float64{chart.Sun: 10, chart.Ascendant: 100, chart.NorthNode: 190})

	got := calc.Aspects(ps)
	require.Len(t, got, 3)
	kinds := make([]Kind, 0, len(got))
	for _, a := range got {
		assert.Equal(t, SourceManual, a.Source, a.Describe())
		kinds = append(kinds, a.Kind)
	}
	assert.ElementsMatch(t, []Kind{Square, Opposition, Square}, kinds)
}

func TestCalculator_MinorKindsUseManualPath(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	ps := positions(map[chart.BodyID]float64{chart.Sun: 0, chart.Moon: 151})

	a, ok := calc.Between(ps, chart.Sun, chart.Moon)
	require.True(t, ok)
	assert.Equal(t, Quincunx, a.Kind)
	assert.InDelta(t, 1, a.Orb, 1e-9)
	assert.Equal(t, SourceManual, a.Source)
}

func TestCalculator_PrefersClosestKind(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	// 112° is 8° from trine and 4° from sesquiquintile; both fit.
	ps := positions(map[chart.BodyID]float64{chart.Sun: 0, chart.Moon: 112})

	a, ok := calc.Between(ps, chart.Sun, chart.Moon)
	require.True(t, ok)
	assert.Equal(t, Sesquiquintile, a.Kind)
	assert.InDelta(t, 4, a.Orb, 1e-9)
}

func TestCalculator_InclusiveBoundaryAndCeiling(t *testing.T) {
	ps := positions(map[chart.BodyID]float64{chart.Sun: 0, chart.Moon: 98})

	a, ok := NewCalculator(DefaultConfig()).Between(ps, chart.Sun, chart.Moon)
	require.True(t, ok)
	assert.Equal(t, Square, a.Kind)
	assert.Equal(t, 8.0, a.Orb)

	_, ok = NewCalculator(DefaultConfig().WithCeiling(5)).Between(ps, chart.Sun, chart.Moon)
	assert.False(t, ok)
}

func TestCalculator_MissingBodiesAreSkipped(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	ps := positions(map[chart.BodyID]float64{chart.Sun: 0, chart.Moon: 180})

	for _, a := range calc.Aspects(ps) {
		assert.False(t, a.Involves(chart.Mars))
	}
	_, ok := calc.Check(ps, chart.Sun, chart.Mars, Conjunction)
	assert.False(t, ok)
}

func TestCalculator_CheckSpecificKind(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	ps := positions(map[chart.BodyID]float64{chart.Sun: 0, chart.Moon: 88})

	sq, ok := calc.Check(ps, chart.Sun, chart.Moon, Square)
	require.True(t, ok)
	assert.InDelta(t, 2, sq.Orb, 1e-9)

	_, ok = calc.Check(ps, chart.Sun, chart.Moon, Trine)
	assert.False(t, ok)

	// Semiquintile is not enabled but Check still evaluates it.
	ps2 := positions(map[chart.BodyID]float64{chart.Sun: 0, chart.Moon: 37})
	sq2, ok := calc.Check(ps2, chart.Sun, chart.Moon, Semiquintile)
	require.True(t, ok)
	assert.InDelta(t, 1, sq2.Orb, 1e-9)
	_, ok = calc.Between(ps2, chart.Sun, chart.Moon)
	assert.False(t, ok)
}

func TestCalculator_PrimaryDisabled(t *testing.T) {
	calc := NewCalculator(DefaultConfig(), WithPrimary(nil))
	ps := positions(map[chart.BodyID]float64{chart.Sun: 0, chart.Moon: 120})

	a, ok := calc.Between(ps, chart.Sun, chart.Moon)
	require.True(t, ok)
	assert.Equal(t, SourceManual, a.Source)
}

func TestCalculator_CustomPrimary(t *testing.T) {
	calls := 0
	primary := ClassifierFunc(func(p Pair, kinds []Kind, cfg Config) (Aspect, bool) {
		calls++
		return Aspect{}, false
	})
	calc := NewCalculator(DefaultConfig(), WithPrimary(primary))
	ps := positions(map[chart.BodyID]float64{chart.Sun: 0, chart.Moon: 120})

	a, ok := calc.Between(ps, chart.Sun, chart.Moon)
	require.True(t, ok)
	assert.Equal(t, 1, calls)
	assert.Equal(t, SourceManual, a.Source)
	assert.Equal(t, Trine, a.Kind)
}

func TestCalculator_OrbBoundProperty(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for _, ceiling := range []float64{0, 2, 6} {
		cfg := DefaultConfig().WithCeiling(ceiling)
		calc := NewCalculator(cfg)
		for trial := 0; trial < 50; trial++ {
			lons := make(map[chart.BodyID]float64)
			for _, b := range chart.Roster() {
				lons[b] = r.Float64() * 360
			}
			for _, a := range calc.Aspects(positions(lons)) {
				assert.LessOrEqual(t, a.Orb, cfg.MaxOrb(a.Kind), a.Describe())
			}
		}
	}
}

func TestAspect_Helpers(t *testing.T) {
	a := Aspect{Body1: chart.Sun, Body2: chart.Moon, Kind: Opposition, Orb: 1.23}
	assert.True(t, a.Involves(chart.Moon))
	assert.Equal(t, chart.Sun, a.Other(chart.Moon))
	assert.Equal(t, chart.BodyID(""), a.Other(chart.Mars))
	assert.Equal(t, "Sun Opposition Moon (orb: 1.2°)", a.Describe())
}

//Personal.AI order the ending
