package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"

	"github.com/turtacn/AstroAspect-Intelligence/internal/config"
	"github.com/turtacn/AstroAspect-Intelligence/internal/domain/aspect"
	"github.com/turtacn/AstroAspect-Intelligence/internal/domain/mention"
	"github.com/turtacn/AstroAspect-Intelligence/internal/domain/pattern"
	"github.com/turtacn/AstroAspect-Intelligence/pkg/errors"
	"github.com/turtacn/AstroAspect-Intelligence/pkg/types/chart"
)

// Engine is an immutable snapshot of the engine configuration. It is safe
// for concurrent use; each Run builds its own calculator.
type Engine struct {
	aspects  aspect.Config
	patterns pattern.Config
	revision string
}

// NewEngine validates ec and freezes it into an Engine.
func NewEngine(ec config.EngineConfig) (*Engine, error) {
	ac, err := ec.AspectConfig()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidEngineConfig, "invalid aspect configuration")
	}
	pc := ec.PatternConfig()
	if err := pc.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidEngineConfig, "invalid pattern configuration")
	}
	sum := sha256.Sum256([]byte(fmt.Sprintf("%v|%v", ac, pc)))
	return &Engine{aspects: ac, patterns: pc, revision: hex.EncodeToString(sum[:8])}, nil
}

// Revision identifies the configuration; it changes whenever a threshold does.
func (e *Engine) Revision() string { return e.revision }

// AspectConfig returns the orb configuration applied for maxOrb. A request
// ceiling only narrows the configured one.
func (e *Engine) AspectConfig(maxOrb float64) aspect.Config {
	cfg := e.aspects
	if maxOrb > 0 && (cfg.Ceiling() == 0 || maxOrb < cfg.Ceiling()) {
		cfg = cfg.WithCeiling(maxOrb)
	}
	return cfg
}

// Run derives aspects, patterns and mentions for ps.
func (e *Engine) Run(ps chart.Positions, maxOrb float64) Result {
	calc := aspect.NewCalculator(e.AspectConfig(maxOrb))
	aspects := calc.Aspects(ps)
	patterns := pattern.NewEngine(calc, e.patterns).Detect(ps)
	assignment := mention.Balance(aspects, patterns)
	return buildResult(ps, aspects, patterns, assignment)
}

// Fingerprint is a stable digest of everything Run depends on.
func (e *Engine) Fingerprint(ps chart.Positions, maxOrb float64) string {
	h := sha256.New()
	h.Write([]byte(e.revision))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatFloat(e.AspectConfig(maxOrb).Ceiling(), 'g', -1, 64)))
	for _, b := range chart.Roster() {
		p, ok := ps[b]
		if !ok {
			continue
		}
		fmt.Fprintf(h, "|%s=%.9f/%d/%.9f", b, p.Longitude, p.Sign, p.SignDegree)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func buildResult(ps chart.Positions, aspects []aspect.Aspect, patterns []pattern.Pattern, a mention.Assignment) Result {
	res := Result{
		Positions: make(map[string]PositionView, len(ps)),
		Aspects:   make([]AspectView, len(aspects)),
		Patterns:  make([]PatternView, len(patterns)),
	}
	for b, p := range ps {
		res.Positions[string(b)] = PositionView{
			Longitude:  p.Longitude,
			Sign:       p.Sign.String(),
			SignDegree: p.SignDegree,
			Display:    p.Display(),
		}
	}
	for i, asp := range aspects {
		res.Aspects[i] = AspectView{
			Body1:       string(asp.Body1),
			Body2:       string(asp.Body2),
			Kind:        asp.Kind.String(),
			Angle:       asp.Kind.Angle(),
			Distance:    asp.Distance,
			Orb:         asp.Orb,
			Source:      string(asp.Source),
			Description: asp.Describe(),
		}
		if i < len(a.AspectOwners) {
			res.Aspects[i].Owner = string(a.AspectOwners[i])
		}
	}
	for i, p := range patterns {
		v := PatternView{
			Type:        string(p.Type),
			Bodies:      names(p.Bodies),
			Aspects:     p.Descriptors(),
			Target:      string(p.Target),
			GroupA:      names(p.GroupA),
			GroupB:      names(p.GroupB),
			SquareCount: p.SquareCount,
			AvgOrb:      p.AvgOrb,
			Importance:  p.Importance,
			Score:       p.Score,
		}
		if i < len(a.PatternOwners) {
			v.Owners = names(a.PatternOwners[i])
		}
		res.Patterns[i] = v
	}
	res.Mentions = mentionView(a)
	return res
}

func mentionView(a mention.Assignment) MentionView {
	mv := MentionView{
		Counts: make(map[string]int, len(a.Counts)),
		Bodies: make(map[string]BodyMentions, len(a.Counts)),
		Spread: a.Spread(),
	}
	for b, n := range a.Counts {
		mv.Counts[string(b)] = n
		mv.Bodies[string(b)] = BodyMentions{Aspects: []int{}, Patterns: []int{}}
	}
	for i, owner := range a.AspectOwners {
		if owner == "" {
			continue
		}
		bm := mv.Bodies[string(owner)]
		bm.Aspects = append(bm.Aspects, i)
		mv.Bodies[string(owner)] = bm
	}
	for i, owners := range a.PatternOwners {
		for _, owner := range owners {
			bm := mv.Bodies[string(owner)]
			bm.Patterns = append(bm.Patterns, i)
			mv.Bodies[string(owner)] = bm
		}
	}
	return mv
}

func names(bodies []chart.BodyID) []string {
	if len(bodies) == 0 {
		return nil
	}
	out := make([]string, len(bodies))
	for i, b := range bodies {
		out[i] = string(b)
	}
	return out
}

// patternTypes lists the type of every pattern in r, sorted.
func patternTypes(r Result) []string {
	out := make([]string, len(r.Patterns))
	for i, p := range r.Patterns {
		out[i] = p.Type
	}
	sort.Strings(out)
	return out
}

//Personal.AI order the ending
