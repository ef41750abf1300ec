package aspect

import (
	"fmt"
	"math"
)

const (
	// MajorOrb is the tolerance for conjunction, sextile, square, trine and opposition.
	MajorOrb = 8.0
	// MinorOrb is the tolerance for every other kind.
	MinorOrb = 4.0
)

// Config is the immutable orb table and kind selection handed to the
// calculator and detectors. Build one with DefaultConfig and derive variants
// with the With* methods.
type Config struct {
	orbs    [numKinds]float64
	enabled []Kind
	ceiling float64
}

// DefaultConfig enables every defined kind except semiquintile and
// sesquisquare, majors at 8° and minors at 4°, with no ceiling.
func DefaultConfig() Config {
	var c Config
	for k := Conjunction; k < numKinds; k++ {
		if k.IsMajor() {
			c.orbs[k] = MajorOrb
		} else {
			c.orbs[k] = MinorOrb
		}
		if k != Semiquintile && k != Sesquisquare {
			c.enabled = append(c.enabled, k)
		}
	}
	return c
}

// WithCeiling returns a copy whose effective orb for every kind is
// min(table, ceiling). A non-positive ceiling removes the cap.
func (c Config) WithCeiling(ceiling float64) Config {
	out := c.clone()
	if ceiling <= 0 || math.IsNaN(ceiling) || math.IsInf(ceiling, 0) {
		out.ceiling = 0
	} else {
		out.ceiling = ceiling
	}
	return out
}

// WithOrb returns a copy with the table orb for k replaced.
func (c Config) WithOrb(k Kind, orb float64) Config {
	out := c.clone()
	if k.Valid() {
		out.orbs[k] = orb
	}
	return out
}

// WithKinds returns a copy that classifies only the given kinds.
func (c Config) WithKinds(kinds ...Kind) Config {
	out := c.clone()
	out.enabled = make([]Kind, 0, len(kinds))
	for _, k := range kinds {
		if k.Valid() {
			out.enabled = append(out.enabled, k)
		}
	}
	return out
}

func (c Config) clone() Config {
	out := c
	out.enabled = append([]Kind(nil), c.enabled...)
	return out
}

// Ceiling returns the global cap, 0 when uncapped.
func (c Config) Ceiling() float64 { return c.ceiling }

// TableOrb returns the uncapped table value for k.
func (c Config) TableOrb(k Kind) float64 {
	if !k.Valid() {
		return 0
	}
	return c.orbs[k]
}

// MaxOrb returns the effective tolerance for k.
func (c Config) MaxOrb(k Kind) float64 {
	orb := c.TableOrb(k)
	if c.ceiling > 0 && c.ceiling < orb {
		return c.ceiling
	}
	return orb
}

// Enabled returns a copy of the kinds the calculator reports.
func (c Config) Enabled() []Kind {
	return append([]Kind(nil), c.enabled...)
}

// Within reports whether orb fits k's effective tolerance. The bound is inclusive.
func (c Config) Within(k Kind, orb float64) bool {
	return orb <= c.MaxOrb(k)
}

// Validate rejects negative orbs and empty kind selections.
func (c Config) Validate() error {
	if len(c.enabled) == 0 {
		return fmt.Errorf("aspect: no kinds enabled")
	}
	for k := Conjunction; k < numKinds; k++ {
		if c.orbs[k] < 0 || math.IsNaN(c.orbs[k]) {
			return fmt.Errorf("aspect: invalid orb %v for %s", c.orbs[k], k)
		}
	}
	return nil
}

//Personal.AI order the ending
