package fmea

import "testing"

func TestRPN_AllRatings(t *testing.T) {
	for s := MinRating; s <= MaxRating; s++ {
		for o := MinRating; o <= MaxRating; o++ {
			for d := MinRating; d <= MaxRating; d++ {
				got := RPN(s, o, d)
				if got != s*o*d {
					t.Fatalf("RPN(%d,%d,%d) = %d, want %d", s, o, d, got, s*o*d)
				}
				if got < 1 || got > 1000 {
					t.Fatalf("RPN(%d,%d,%d) = %d, outside [1,1000]", s, o, d, got)
				}
			}
		}
	}
}

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		rpn  int
		want RiskLevel
	}{
		{1, RiskLow},
		{100, RiskLow},
		{101, RiskMedium},
		{150, RiskMedium},
		{200, RiskMedium},
		{201, RiskHigh},
		{512, RiskHigh},
		{1000, RiskHigh},
	}
	for _, tt := range tests {
		if got := Classify(tt.rpn); got != tt.want {
			t.Errorf("Classify(%d) = %s, want %s", tt.rpn, got, tt.want)
		}
	}
}

func TestScore(t *testing.T) {
	e := VariableEntry{Name: "Temp", Severity: 8, Occurrence: 8, Detectability: 8}
	got := Score(e)

	if got.RPN != 512 {
		t.Errorf("RPN = %d, want 512", got.RPN)
	}
	if got.RiskLevel != RiskHigh {
		t.Errorf("RiskLevel = %s, want High", got.RiskLevel)
	}
	if got.VariableEntry != e {
		t.Errorf("entry = %+v, want %+v", got.VariableEntry, e)
	}
}

func TestScore_Idempotent(t *testing.T) {
	e := VariableEntry{Name: "Mixing time", Severity: 4, Occurrence: 6, Detectability: 5}
	first := Score(e)
	second := Score(e)
	if first != second {
		t.Errorf("Score not deterministic: %+v vs %+v", first, second)
	}
}

func TestScoreAll_PreservesOrder(t *testing.T) {
	run := &AssessmentRun{
		NumVars: 3,
		Entries: []VariableEntry{
			{Name: "c", Severity: 1, Occurrence: 1, Detectability: 1},
			{Name: "a", Severity: 10, Occurrence: 10, Detectability: 10},
			{Name: "b", Severity: 5, Occurrence: 5, Detectability: 5},
		},
	}
	scored := ScoreAll(run)
	want := []string{"c", "a", "b"}
	for i, v := range scored {
		if v.Name != want[i] {
			t.Errorf("scored[%d] = %q, want %q", i, v.Name, want[i])
		}
	}
}

func TestRiskLevel_SuggestedForDoE(t *testing.T) {
	if RiskLow.SuggestedForDoE() {
		t.Error("Low should not be suggested")
	}
	if !RiskMedium.SuggestedForDoE() || !RiskHigh.SuggestedForDoE() {
		t.Error("Medium and High should be suggested")
	}
}
