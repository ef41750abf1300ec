// Package chart defines the body roster, zodiac signs and position records
// shared by the aspect engine and its transports.
package chart

import (
	"fmt"
	"math"
	"strings"
)

// BodyID names one of the fixed chart bodies.
type BodyID string

const (
	Sun       BodyID = "Sun"
	Moon      BodyID = "Moon"
	Mercury   BodyID = "Mercury"
	Venus     BodyID = "Venus"
	Mars      BodyID = "Mars"
	Jupiter   BodyID = "Jupiter"
	Saturn    BodyID = "Saturn"
	Uranus    BodyID = "Uranus"
	Neptune   BodyID = "Neptune"
	Pluto     BodyID = "Pluto"
	NorthNode BodyID = "North Node"
	SouthNode BodyID = "South Node"
	Ascendant BodyID = "Ascendant"
	MC        BodyID = "MC"
)

var roster = [...]BodyID{
	Sun, Moon, Mercury, Venus, Mars,
	Jupiter, Saturn, Uranus, Neptune, Pluto,
	NorthNode, Ascendant, MC,
}

// Roster returns the 13 analysed bodies in canonical order.
func Roster() []BodyID {
	out := make([]BodyID, len(roster))
	copy(out, roster[:])
	return out
}

// PlanetRoster returns the roster without the chart angles.
func PlanetRoster() []BodyID {
	out := make([]BodyID, 0, len(roster)-2)
	for _, b := range roster {
		if !b.IsAngle() {
			out = append(out, b)
		}
	}
	return out
}

// IsAngle reports whether b is the Ascendant or the MC.
func (b BodyID) IsAngle() bool {
	return b == Ascendant || b == MC
}

// IsPersonal reports whether b is Sun, Moon, Mercury, Venus or Mars.
func (b BodyID) IsPersonal() bool {
	switch b {
	case Sun, Moon, Mercury, Venus, Mars:
		return true
	}
	return false
}

// IsNode reports whether b is a lunar node.
func (b BodyID) IsNode() bool {
	return b == NorthNode || b == SouthNode
}

// RosterIndex returns the canonical position of b, or -1 when b is not analysed.
func RosterIndex(b BodyID) int {
	for i, r := range roster {
		if r == b {
			return i
		}
	}
	return -1
}

var bodyAliases = map[string]BodyID{
	"northnode":  NorthNode,
	"north_node": NorthNode,
	"truenode":   NorthNode,
	"node":       NorthNode,
	"southnode":  SouthNode,
	"south_node": SouthNode,
	"asc":        Ascendant,
	"midheaven":  MC,
}

// ParseBodyID resolves a case-insensitive body name or common alias.
func ParseBodyID(s string) (BodyID, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return "", false
	}
	for _, b := range append(roster[:], SouthNode) {
		if strings.ToLower(string(b)) == key {
			return b, true
		}
	}
	b, ok := bodyAliases[key]
	return b, ok
}

// Element is one of the four classical elements.
type Element string

const (
	Fire  Element = "Fire"
	Earth Element = "Earth"
	Air   Element = "Air"
	Water Element = "Water"
)

// Sign is a zodiac sign, Aries = 0 through Pisces = 11.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

var signElements = [4]Element{Fire, Earth, Air, Water}

func (s Sign) String() string {
	if s < Aries || s > Pisces {
		return fmt.Sprintf("Sign(%d)", int(s))
	}
	return signNames[s]
}

// Element returns the sign's element; signs cycle Fire, Earth, Air, Water.
func (s Sign) Element() Element {
	return signElements[((int(s)%4)+4)%4]
}

// ParseSign resolves a case-insensitive sign name.
func ParseSign(name string) (Sign, bool) {
	n := strings.TrimSpace(name)
	for i, s := range signNames {
		if strings.EqualFold(s, n) {
			return Sign(i), true
		}
	}
	return 0, false
}

// NormalizeLongitude folds any finite real into [0, 360).
func NormalizeLongitude(lon float64) float64 {
	l := math.Mod(lon, 360)
	if l < 0 {
		l += 360
	}
	if l >= 360 {
		l = 0
	}
	return l
}

// SignOf returns the sign containing the longitude.
func SignOf(lon float64) Sign {
	return Sign(int(math.Floor(NormalizeLongitude(lon) / 30)))
}

// Position is one body's ecliptic placement. Sign and SignDegree are carried
// for display and the element check; geometry uses Longitude only.
type Position struct {
	Longitude  float64 `json:"longitude" yaml:"longitude"`
	Sign       Sign    `json:"sign" yaml:"sign"`
	SignDegree float64 `json:"sign_degree" yaml:"sign_degree"`
}

// NewPosition normalizes lon and derives sign and in-sign degree from it.
func NewPosition(lon float64) Position {
	l := NormalizeLongitude(lon)
	s := SignOf(l)
	return Position{Longitude: l, Sign: s, SignDegree: l - float64(s)*30}
}

// Display renders "12.3° Aries".
func (p Position) Display() string {
	return fmt.Sprintf("%.1f° %s", p.SignDegree, p.Sign)
}

// Positions maps bodies to their placements for one chart. Absent keys mean
// the position could not be computed upstream.
type Positions map[BodyID]Position

// Lookup returns the position of b.
func (ps Positions) Lookup(b BodyID) (Position, bool) {
	p, ok := ps[b]
	return p, ok
}

// Has reports whether every body in bs has a position.
func (ps Positions) Has(bs ...BodyID) bool {
	for _, b := range bs {
		if _, ok := ps[b]; !ok {
			return false
		}
	}
	return true
}

// Present filters bodies down to those with a position, keeping order.
func (ps Positions) Present(bodies []BodyID) []BodyID {
	out := make([]BodyID, 0, len(bodies))
	for _, b := range bodies {
		if _, ok := ps[b]; ok {
			out = append(out, b)
		}
	}
	return out
}

//Personal.AI order the ending
