package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoster(t *testing.T) {
	r := Roster()
	require.Len(t, r, 13)
	assert.Equal(t, Sun, r[0])
	assert.Equal(t, MC, r[12])

	r[0] = Pluto
	assert.Equal(t, Sun, Roster()[0], "Roster must return a copy")

	p := PlanetRoster()
	require.Len(t, p, 11)
	for _, b := range p {
		assert.False(t, b.IsAngle(), "%s is an angle", b)
	}
	assert.Contains(t, p, NorthNode)
}

func TestBodyPredicates(t *testing.T) {
	assert.True(t, Ascendant.IsAngle())
	assert.True(t, MC.IsAngle())
	assert.False(t, Sun.IsAngle())

	for _, b := range []BodyID{Sun, Moon, Mercury, Venus, Mars} {
		assert.True(t, b.IsPersonal(), "%s", b)
	}
	assert.False(t, Jupiter.IsPersonal())
	assert.True(t, SouthNode.IsNode())

	assert.Equal(t, 0, RosterIndex(Sun))
	assert.Equal(t, 10, RosterIndex(NorthNode))
	assert.Equal(t, -1, RosterIndex(SouthNode))
}

func TestParseBodyID(t *testing.T) {
	cases := []struct {
		in   string
		want BodyID
		ok   bool
	}{
		{"Sun", Sun, true},
		{"  moon ", Moon, true},
		{"North Node", NorthNode, true},
		{"north_node", NorthNode, true},
		{"ASC", Ascendant, true},
		{"Midheaven", MC, true},
		{"mc", MC, true},
		{"South Node", SouthNode, true},
		{"Chiron", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseBodyID(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestSignElements(t *testing.T) {
	cases := map[Sign]Element{
		Aries: Fire, Leo: Fire, Sagittarius: Fire,
		Taurus: Earth, Virgo: Earth, Capricorn: Earth,
		Gemini: Air, Libra: Air, Aquarius: Air,
		Cancer: Water, Scorpio: Water, Pisces: Water,
	}
	for s, e := range cases {
		assert.Equal(t, e, s.Element(), "%s", s)
	}
	assert.Equal(t, "Sign(12)", Sign(12).String())
}

func TestParseSign(t *testing.T) {
	s, ok := ParseSign("sagittarius")
	require.True(t, ok)
	assert.Equal(t, Sagittarius, s)

	_, ok = ParseSign("Ophiuchus")
	assert.False(t, ok)
}

func TestNormalizeLongitude(t *testing.T) {
	cases := map[float64]float64{
		0:     0,
		359.5: 359.5,
		360:   0,
		725:   5,
		-10:   350,
		-720:  0,
	}
	for in, want := range cases {
		assert.InDelta(t, want, NormalizeLongitude(in), 1e-9, "input %v", in)
	}
}

func TestNewPosition(t *testing.T) {
	p := NewPosition(132.35)
	assert.Equal(t, Leo, p.Sign)
	assert.InDelta(t, 12.35, p.SignDegree, 1e-9)
	assert.Equal(t, "12.3° Leo", p.Display())

	wrapped := NewPosition(-15)
	assert.Equal(t, Pisces, wrapped.Sign)
	assert.InDelta(t, 345, wrapped.Longitude, 1e-9)
}

func TestPositions(t *testing.T) {
	ps := Positions{Sun: NewPosition(10), Moon: NewPosition(100)}

	assert.True(t, ps.Has(Sun, Moon))
	assert.False(t, ps.Has(Sun, Mars))

	_, ok := ps.Lookup(Mars)
	assert.False(t, ok)

	assert.Equal(t, []BodyID{Sun, Moon}, ps.Present([]BodyID{Sun, Mars, Moon}))
}

//Personal.AI order the ending
