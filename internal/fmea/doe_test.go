package fmea

import "testing"

func TestSelectDoE_PartitionComplete(t *testing.T) {
	var all []ScoredVariable
	for s := 1; s <= 10; s += 3 {
		for o := 1; o <= 10; o += 2 {
			all = append(all, scored(s, o, 5))
		}
	}

	sel := SelectDoE(all)
	if len(sel.Suggested)+len(sel.Excluded) != len(all) {
		t.Fatalf("partitions cover %d of %d", len(sel.Suggested)+len(sel.Excluded), len(all))
	}
	for _, v := range sel.Suggested {
		if v.RiskLevel == RiskLow {
			t.Errorf("Low variable %+v in suggested", v)
		}
	}
	for _, v := range sel.Excluded {
		if v.RiskLevel != RiskLow {
			t.Errorf("%s variable %+v in excluded", v.RiskLevel, v)
		}
	}
}

func TestSelectDoE_StableOrder(t *testing.T) {
	in := []ScoredVariable{
		Score(VariableEntry{Name: "low1", Severity: 1, Occurrence: 1, Detectability: 1}),
		Score(VariableEntry{Name: "med", Severity: 5, Occurrence: 5, Detectability: 5}),
		Score(VariableEntry{Name: "low2", Severity: 2, Occurrence: 2, Detectability: 2}),
		Score(VariableEntry{Name: "high", Severity: 10, Occurrence: 10, Detectability: 10}),
	}
	sel := SelectDoE(in)

	if sel.Suggested[0].Name != "med" || sel.Suggested[1].Name != "high" {
		t.Errorf("suggested order = %v", names(sel.Suggested))
	}
	if sel.Excluded[0].Name != "low1" || sel.Excluded[1].Name != "low2" {
		t.Errorf("excluded order = %v", names(sel.Excluded))
	}
}

func TestSelectDoE_NothingSuggested(t *testing.T) {
	sel := SelectDoE([]ScoredVariable{scored(1, 1, 1), scored(4, 5, 5)})
	if sel.HasSuggestions() {
		t.Error("expected no suggestions")
	}
	if sel.Suggested == nil {
		t.Error("Suggested should be an empty slice, not nil")
	}
}

func names(vs []ScoredVariable) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Name
	}
	return out
}
