package fmea

// Classification thresholds. An RPN at or below LowMaxRPN is Low, at or
// below MediumMaxRPN is Medium, anything above is High.
const (
	LowMaxRPN    = 100
	MediumMaxRPN = 200
)

// RPN returns the Risk Priority Number severity × occurrence × detectability.
func RPN(severity, occurrence, detectability int) int {
	return severity * occurrence * detectability
}

// Classify maps an RPN to its risk level.
func Classify(rpn int) RiskLevel {
	switch {
	case rpn <= LowMaxRPN:
		return RiskLow
	case rpn <= MediumMaxRPN:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// Score derives the ScoredVariable of a validated entry.
func Score(e VariableEntry) ScoredVariable {
	rpn := RPN(e.Severity, e.Occurrence, e.Detectability)
	return ScoredVariable{
		VariableEntry: e,
		RPN:           rpn,
		RiskLevel:     Classify(rpn),
	}
}

// ScoreAll scores every entry of run, preserving input order.
func ScoreAll(run *AssessmentRun) []ScoredVariable {
	scored := make([]ScoredVariable, len(run.Entries))
	for i, e := range run.Entries {
		scored[i] = Score(e)
	}
	return scored
}
