package pattern

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/AstroAspect-Intelligence/pkg/types/chart"
)

func randomChart(r *rand.Rand) chart.Positions {
	lons := make(map[chart.BodyID]float64)
	for _, b := range chart.Roster() {
		lons[b] = r.Float64() * 360
	}
	return at(lons)
}

func TestEngine_OutputOrder(t *testing.T) {
	e := newTestEngine()
	ps := at(map[chart.BodyID]float64{
		chart.Sun: 0, chart.Moon: 90, chart.Mars: 180,
		chart.Mercury: 2, chart.Venus: 4,
	})

	got := e.Detect(ps)
	require.NotEmpty(t, got)

	rank := make(map[Type]int, len(OutputOrder))
	for i, typ := range OutputOrder {
		rank[typ] = i
	}
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, rank[got[i-1].Type], rank[got[i].Type])
	}
	assert.Equal(t, TSquare, got[0].Type)
}

func TestEngine_Properties(t *testing.T) {
	e := newTestEngine()
	r := rand.New(rand.NewSource(1234))

	for trial := 0; trial < 40; trial++ {
		ps := randomChart(r)
		got := e.Detect(ps)

		seen := make(map[Type]map[string]bool)
		var yods, cradles []Pattern
		for _, p := range got {
			if seen[p.Type] == nil {
				seen[p.Type] = make(map[string]bool)
			}
			assert.False(t, seen[p.Type][p.Key()], "duplicate %s %s", p.Type, p.Key())
			seen[p.Type][p.Key()] = true

			switch p.Type {
			case Yod:
				yods = append(yods, p)
				for _, b := range p.Bodies {
					assert.False(t, b.IsAngle(), "yod contains angle %s", b)
				}
			case Cradle:
				cradles = append(cradles, p)
			}
		}

		for i := range yods {
			for j := i + 1; j < len(yods); j++ {
				assert.Zero(t, yods[i].Shared(yods[j]), "yods share a body")
			}
		}
		for i := range cradles {
			for j := i + 1; j < len(cradles); j++ {
				assert.NotEqual(t, 3, cradles[i].Shared(cradles[j]), "cradles share exactly three bodies")
			}
		}
		assert.LessOrEqual(t, len(cradles), e.cfg.CradleLimit)
	}
}

func TestEngine_Idempotent(t *testing.T) {
	e := newTestEngine()
	r := rand.New(rand.NewSource(99))
	for trial := 0; trial < 10; trial++ {
		ps := randomChart(r)
		first := e.Detect(ps)
		second := e.Detect(ps)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("detect not deterministic (-first +second):\n%s", diff)
		}
	}
}

func TestEngine_UnknownType(t *testing.T) {
	e := newTestEngine()
	assert.Nil(t, e.DetectType(Type("Mystic Rectangle"), chart.Positions{}))
}

//Personal.AI order the ending
