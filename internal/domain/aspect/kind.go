package aspect

import (
	"fmt"
	"strings"
)

// Kind identifies an aspect by its ideal angle.
type Kind int

const (
	Conjunction Kind = iota
	Semisextile
	Semiquintile
	Semisquare
	Sextile
	Quintile
	Square
	Sesquiquintile
	Trine
	Sesquisquare
	Biquintile
	Quincunx
	Opposition

	numKinds
)

var kindInfo = [numKinds]struct {
	name  string
	angle float64
	major bool
}{
	Conjunction:    {"Conjunction", 0, true},
	Semisextile:    {"Semisextile", 30, false},
	Semiquintile:   {"Semiquintile", 36, false},
	Semisquare:     {"Semisquare", 45, false},
	Sextile:        {"Sextile", 60, true},
	Quintile:       {"Quintile", 72, false},
	Square:         {"Square", 90, true},
	Sesquiquintile: {"Sesquiquintile", 108, false},
	Trine:          {"Trine", 120, true},
	Sesquisquare:   {"Sesquisquare", 135, false},
	Biquintile:     {"Biquintile", 144, false},
	Quincunx:       {"Quincunx", 150, false},
	Opposition:     {"Opposition", 180, true},
}

// AllKinds returns every defined kind in ascending angle order.
func AllKinds() []Kind {
	out := make([]Kind, 0, numKinds)
	for k := Conjunction; k < numKinds; k++ {
		out = append(out, k)
	}
	return out
}

// MajorKinds returns conjunction, sextile, square, trine and opposition.
func MajorKinds() []Kind {
	return []Kind{Conjunction, Sextile, Square, Trine, Opposition}
}

// Valid reports whether k is a defined kind.
func (k Kind) Valid() bool { return k >= Conjunction && k < numKinds }

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindInfo[k].name
}

// Angle returns the ideal separation in degrees.
func (k Kind) Angle() float64 {
	if !k.Valid() {
		return -1
	}
	return kindInfo[k].angle
}

// IsMajor reports whether k is one of the five Ptolemaic aspects.
func (k Kind) IsMajor() bool {
	return k.Valid() && kindInfo[k].major
}

// ParseKind resolves a case-insensitive kind name.
func ParseKind(s string) (Kind, bool) {
	for k := Conjunction; k < numKinds; k++ {
		if strings.EqualFold(kindInfo[k].name, strings.TrimSpace(s)) {
			return k, true
		}
	}
	return 0, false
}

// MarshalText renders the kind name.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("aspect: invalid kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	v, ok := ParseKind(string(b))
	if !ok {
		return fmt.Errorf("aspect: unknown kind %q", string(b))
	}
	*k = v
	return nil
}

//Personal.AI order the ending
