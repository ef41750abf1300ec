package aspect

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAngularDistance(t *testing.T) {
	cases := []struct {
		name string
		a, b float64
		want float64
	}{
		{"same point", 42, 42, 0},
		{"simple", 10, 70, 60},
		{"wraps past 360", 350, 10, 20},
		{"exact opposition", 0, 180, 180},
		{"just over half", 0, 181, 179},
		{"reversed", 300, 30, 90},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, AngularDistance(tc.a, tc.b), 1e-9)
		})
	}
}

func TestAngularDistance_SymmetricAndBounded(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		a := r.Float64() * 360
		b := r.Float64() * 360
		d := AngularDistance(a, b)
		assert.Equal(t, d, AngularDistance(b, a))
		assert.GreaterOrEqual(t, d, 0.0)
		assert.LessOrEqual(t, d, 180.0)
	}
}

func TestDeviation(t *testing.T) {
	assert.InDelta(t, 2, Deviation(0, 92, Square), 1e-9)
	assert.InDelta(t, 3, Deviation(10, 187, Opposition), 1e-9)
}

func TestKind(t *testing.T) {
	assert.Equal(t, "Quincunx", Quincunx.String())
	assert.Equal(t, 150.0, Quincunx.Angle())
	assert.True(t, Trine.IsMajor())
	assert.False(t, Quincunx.IsMajor())
	assert.Equal(t, "Kind(99)", Kind(99).String())
	assert.Len(t, AllKinds(), 13)

	k, ok := ParseKind("sesquiquintile")
	require.True(t, ok)
	assert.Equal(t, Sesquiquintile, k)

	text, err := Opposition.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Opposition", string(text))

	var back Kind
	require.NoError(t, back.UnmarshalText([]byte("Opposition")))
	assert.Equal(t, Opposition, back)
	assert.Error(t, back.UnmarshalText([]byte("Septile")))
}

func TestConfig_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	for _, k := range MajorKinds() {
		assert.Equal(t, MajorOrb, cfg.MaxOrb(k), "%s", k)
	}
	assert.Equal(t, MinorOrb, cfg.MaxOrb(Quincunx))

	enabled := cfg.Enabled()
	assert.NotContains(t, enabled, Semiquintile)
	assert.NotContains(t, enabled, Sesquisquare)
	assert.Len(t, enabled, 11)
}

func TestConfig_Ceiling(t *testing.T) {
	cfg := DefaultConfig().WithCeiling(3)
	assert.Equal(t, 3.0, cfg.MaxOrb(Square))
	assert.Equal(t, 3.0, cfg.MaxOrb(Quincunx))
	assert.Equal(t, MajorOrb, cfg.TableOrb(Square))

	loose := DefaultConfig().WithCeiling(6)
	assert.Equal(t, 6.0, loose.MaxOrb(Trine))
	assert.Equal(t, MinorOrb, loose.MaxOrb(Quintile), "ceiling above the table keeps the table")

	assert.Equal(t, 0.0, DefaultConfig().WithCeiling(-1).Ceiling())
}

func TestConfig_Immutable(t *testing.T) {
	base := DefaultConfig()
	narrowed := base.WithKinds(Conjunction, Opposition).WithOrb(Opposition, 10)

	assert.Len(t, base.Enabled(), 11)
	assert.Equal(t, MajorOrb, base.MaxOrb(Opposition))
	assert.Equal(t, []Kind{Conjunction, Opposition}, narrowed.Enabled())
	assert.Equal(t, 10.0, narrowed.MaxOrb(Opposition))

	got := base.Enabled()
	got[0] = Opposition
	assert.Equal(t, Conjunction, base.Enabled()[0])
}

func TestConfig_Validate(t *testing.T) {
	assert.Error(t, DefaultConfig().WithKinds().Validate())
	assert.Error(t, DefaultConfig().WithOrb(Trine, -1).Validate())
}

func TestConfig_WithinIsInclusive(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.Within(Square, 8))
	assert.False(t, cfg.Within(Square, 8.0001))
}

//Personal.AI order the ending
