// Package fmea implements the Failure Mode and Effects Analysis core:
// validation of rated variables, Risk Priority Number scoring, risk tier
// classification, heatmap aggregation and DoE factor selection.
//
// Everything in this package is pure. A run is built from an explicit
// slice of RawEntry values and every derived value is recomputed from it.
package fmea

// Bounds for ratings and for the number of variables in a run.
const (
	MinRating = 1
	MaxRating = 10

	MinVariables = 1
	MaxVariables = 30

	// DefaultNumVars is the initial variable count offered by input collectors.
	DefaultNumVars = 5

	// DefaultRating is the initial value of each rating slider.
	DefaultRating = 5
)

// RawEntry is one variable as collected from the user, before validation.
type RawEntry struct {
	Name          string `json:"name" yaml:"name"`
	Severity      int    `json:"severity" yaml:"severity" validate:"min=1,max=10"`
	Occurrence    int    `json:"occurrence" yaml:"occurrence" validate:"min=1,max=10"`
	Detectability int    `json:"detectability" yaml:"detectability" validate:"min=1,max=10"`
}

// VariableEntry is a validated variable. The name is trimmed, non-empty and
// unique within its run; every rating lies in [MinRating, MaxRating].
type VariableEntry struct {
	Name          string `json:"name" yaml:"name"`
	Severity      int    `json:"severity" yaml:"severity"`
	Occurrence    int    `json:"occurrence" yaml:"occurrence"`
	Detectability int    `json:"detectability" yaml:"detectability"`
}

// AssessmentRun is the validated input of one assessment.
type AssessmentRun struct {
	NumVars int
	Entries []VariableEntry
}

// RiskLevel is the tier derived from an RPN.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// AllRiskLevels returns the tiers in ascending order of risk.
func AllRiskLevels() []RiskLevel {
	return []RiskLevel{RiskLow, RiskMedium, RiskHigh}
}

// SuggestedForDoE reports whether variables at this level belong in the
// Design of Experiments.
func (l RiskLevel) SuggestedForDoE() bool {
	return l == RiskMedium || l == RiskHigh
}

// ScoredVariable is a VariableEntry with its RPN and risk level.
type ScoredVariable struct {
	VariableEntry `yaml:",inline"`
	RPN           int       `json:"rpn" yaml:"rpn"`
	RiskLevel     RiskLevel `json:"risk_level" yaml:"risk_level"`
}

// Result is the full output of a successful assessment.
type Result struct {
	NumVars   int              `json:"num_vars" yaml:"num_vars"`
	Variables []ScoredVariable `json:"variables" yaml:"variables"`
	DoE       Selection        `json:"doe" yaml:"doe"`
	Heatmap   Heatmap          `json:"heatmap" yaml:"heatmap"`
}

// CountByLevel returns how many variables fall into each risk level.
func (r *Result) CountByLevel() map[RiskLevel]int {
	counts := make(map[RiskLevel]int, 3)
	for _, v := range r.Variables {
		counts[v.RiskLevel]++
	}
	return counts
}
