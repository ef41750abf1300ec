package pattern

import (
	"github.com/turtacn/AstroAspect-Intelligence/internal/domain/aspect"
	"github.com/turtacn/AstroAspect-Intelligence/pkg/types/chart"
)

// Engine runs every detector and its selection rule over one chart.
type Engine struct {
	calc *aspect.Calculator
	cfg  Config
}

// NewEngine returns an Engine using calc for aspect checks.
func NewEngine(calc *aspect.Calculator, cfg Config) *Engine {
	return &Engine{calc: calc, cfg: cfg}
}

// Config returns the engine's pattern configuration.
func (e *Engine) Config() Config { return e.cfg }

// Detect returns the selected patterns of every type, grouped in OutputOrder.
func (e *Engine) Detect(ps chart.Positions) []Pattern {
	var out []Pattern
	for _, typ := range OutputOrder {
		out = append(out, e.DetectType(typ, ps)...)
	}
	return out
}

// DetectType runs one detector and its selection rule.
func (e *Engine) DetectType(typ Type, ps chart.Positions) []Pattern {
	detect, ok := Detectors[typ]
	if !ok {
		return nil
	}
	return Select(typ, detect(ps, e.calc, e.cfg), e.cfg)
}

//Personal.AI order the ending
