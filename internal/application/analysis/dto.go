package analysis

import "time"

// PositionInput is one body's placement as supplied by a caller. A nil
// Longitude marks the body as not computed upstream. Sign and SignDegree are
// optional; when Sign is empty both are derived from the longitude.
type PositionInput struct {
	Longitude  *float64 `json:"longitude" yaml:"longitude"`
	Sign       string   `json:"sign,omitempty" yaml:"sign,omitempty"`
	SignDegree *float64 `json:"sign_degree,omitempty" yaml:"sign_degree,omitempty"`
}

// AnalyzeRequest asks for the aspects, patterns and mentions of one chart.
type AnalyzeRequest struct {
	ChartID string `json:"chart_id" yaml:"chart_id"`
	// Positions is keyed by body name; aliases such as "asc" are accepted.
	Positions map[string]PositionInput `json:"positions" yaml:"positions"`
	// MaxOrb caps every aspect's orb for this request; 0 keeps the engine default.
	MaxOrb float64 `json:"max_orb,omitempty" yaml:"max_orb,omitempty"`
}

// PositionView is a normalized placement echoed back to the caller.
type PositionView struct {
	Longitude  float64 `json:"longitude" yaml:"longitude"`
	Sign       string  `json:"sign" yaml:"sign"`
	SignDegree float64 `json:"sign_degree" yaml:"sign_degree"`
	Display    string  `json:"display" yaml:"display"`
}

// AspectView is the transport form of aspect.Aspect.
type AspectView struct {
	Body1       string  `json:"body1" yaml:"body1"`
	Body2       string  `json:"body2" yaml:"body2"`
	Kind        string  `json:"kind" yaml:"kind"`
	Angle       float64 `json:"angle" yaml:"angle"`
	Distance    float64 `json:"distance" yaml:"distance"`
	Orb         float64 `json:"orb" yaml:"orb"`
	Source      string  `json:"source" yaml:"source"`
	Description string  `json:"description" yaml:"description"`
	Owner       string  `json:"owner,omitempty" yaml:"owner,omitempty"`
}

// PatternView is the transport form of pattern.Pattern.
type PatternView struct {
	Type        string   `json:"type" yaml:"type"`
	Bodies      []string `json:"bodies" yaml:"bodies"`
	Aspects     []string `json:"aspects" yaml:"aspects"`
	Target      string   `json:"target,omitempty" yaml:"target,omitempty"`
	GroupA      []string `json:"group_a,omitempty" yaml:"group_a,omitempty"`
	GroupB      []string `json:"group_b,omitempty" yaml:"group_b,omitempty"`
	SquareCount int      `json:"square_count,omitempty" yaml:"square_count,omitempty"`
	AvgOrb      float64  `json:"avg_orb" yaml:"avg_orb"`
	Importance  float64  `json:"importance" yaml:"importance"`
	Score       float64  `json:"score" yaml:"score"`
	Owners      []string `json:"owners,omitempty" yaml:"owners,omitempty"`
}

// BodyMentions lists, by index into the response's Aspects and Patterns,
// what one body narrates.
type BodyMentions struct {
	Aspects  []int `json:"aspects" yaml:"aspects"`
	Patterns []int `json:"patterns" yaml:"patterns"`
}

// MentionView is the transport form of mention.Assignment.
type MentionView struct {
	Counts map[string]int          `json:"counts" yaml:"counts"`
	Bodies map[string]BodyMentions `json:"bodies" yaml:"bodies"`
	Spread int                     `json:"spread" yaml:"spread"`
}

// SkippedBody records an input entry that was ignored.
type SkippedBody struct {
	Body   string `json:"body" yaml:"body"`
	Reason string `json:"reason" yaml:"reason"`
}

// Skip reasons.
const (
	ReasonUnknownBody = "unknown_body"
	ReasonMissing     = "missing_longitude"
	ReasonNonFinite   = "non_finite_longitude"
	ReasonNotAnalysed = "not_analysed"
	ReasonDuplicate   = "duplicate_body"
)

// Result is the deterministic part of an analysis; it depends only on the
// positions and the engine configuration and is what the cache stores.
type Result struct {
	Positions map[string]PositionView `json:"positions" yaml:"positions"`
	Aspects   []AspectView            `json:"aspects" yaml:"aspects"`
	Patterns  []PatternView           `json:"patterns" yaml:"patterns"`
	Mentions  MentionView             `json:"mentions" yaml:"mentions"`
}

// AnalyzeResponse is the outcome of one analysis.
type AnalyzeResponse struct {
	AnalysisID  string        `json:"analysis_id" yaml:"analysis_id"`
	ChartID     string        `json:"chart_id,omitempty" yaml:"chart_id,omitempty"`
	GeneratedAt time.Time     `json:"generated_at" yaml:"generated_at"`
	Cached      bool          `json:"cached" yaml:"cached"`
	Skipped     []SkippedBody `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Result      `yaml:",inline"`
}

// ErrorView is the transport form of a per-item failure.
type ErrorView struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// BatchItem is one entry of a batch response, in request order.
type BatchItem struct {
	Index    int              `json:"index" yaml:"index"`
	Response *AnalyzeResponse `json:"response,omitempty" yaml:"response,omitempty"`
	Error    *ErrorView       `json:"error,omitempty" yaml:"error,omitempty"`
}

// BatchResponse is the outcome of AnalyzeBatch.
type BatchResponse struct {
	Items     []BatchItem `json:"items" yaml:"items"`
	Succeeded int         `json:"succeeded" yaml:"succeeded"`
	Failed    int         `json:"failed" yaml:"failed"`
}

//Personal.AI order the ending
