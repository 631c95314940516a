package fmea

import (
	"encoding/json"
	"testing"
)

func scored(s, o, d int) ScoredVariable {
	return Score(VariableEntry{Name: "v", Severity: s, Occurrence: o, Detectability: d})
}

func TestAggregate_Mean(t *testing.T) {
	h := Aggregate([]ScoredVariable{scored(5, 5, 5), scored(5, 5, 7)})

	cell, ok := h.Cell(5, 5)
	if !ok {
		t.Fatal("expected cell (5,5)")
	}
	if cell.MeanRPN != 150 {
		t.Errorf("mean = %v, want 150", cell.MeanRPN)
	}
	if cell.Count != 2 {
		t.Errorf("count = %d, want 2", cell.Count)
	}
}

func TestAggregate_AbsentCells(t *testing.T) {
	h := Aggregate([]ScoredVariable{scored(8, 8, 8)})
	if _, ok := h.Mean(5, 5); ok {
		t.Error("(5,5) has no entries and must be absent")
	}
	if h.Len() != 1 {
		t.Errorf("Len = %d, want 1", h.Len())
	}
}

func TestAggregate_Empty(t *testing.T) {
	h := Aggregate(nil)
	if h.Len() != 0 {
		t.Errorf("Len = %d, want 0", h.Len())
	}
	if _, _, ok := h.Range(); ok {
		t.Error("empty heatmap should have no range")
	}
}

func TestHeatmap_OrderingAndAxes(t *testing.T) {
	h := Aggregate([]ScoredVariable{
		scored(9, 2, 1),
		scored(3, 7, 1),
		scored(3, 2, 1),
	})

	cells := h.Cells()
	want := []CellKey{{3, 2}, {3, 7}, {9, 2}}
	for i, k := range want {
		if cells[i].Severity != k.Severity || cells[i].Occurrence != k.Occurrence {
			t.Errorf("cells[%d] = (%d,%d), want (%d,%d)", i,
				cells[i].Severity, cells[i].Occurrence, k.Severity, k.Occurrence)
		}
	}

	sev := h.Severities()
	if len(sev) != 2 || sev[0] != 3 || sev[1] != 9 {
		t.Errorf("Severities = %v, want [3 9]", sev)
	}
	occ := h.Occurrences()
	if len(occ) != 2 || occ[0] != 2 || occ[1] != 7 {
		t.Errorf("Occurrences = %v, want [2 7]", occ)
	}

	lo, hi, ok := h.Range()
	if !ok || lo != 6 || hi != 21 {
		t.Errorf("Range = %v, %v, %v; want 6, 21, true", lo, hi, ok)
	}
}

func TestHeatmapCell_Rounded(t *testing.T) {
	tests := []struct {
		mean float64
		want int
	}{
		{150, 150},
		{150.4, 150},
		{150.5, 150},
		{151.5, 152},
		{150.6, 151},
	}
	for _, tt := range tests {
		c := HeatmapCell{MeanRPN: tt.mean}
		if got := c.Rounded(); got != tt.want {
			t.Errorf("Rounded(%v) = %d, want %d", tt.mean, got, tt.want)
		}
	}
}

func TestHeatmap_JSONRoundTrip(t *testing.T) {
	h := Aggregate([]ScoredVariable{scored(5, 5, 5), scored(2, 3, 4)})
	data, err := json.Marshal(h)
	if err != nil {
		t.Fatal(err)
	}

	var back Heatmap
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Len() != 2 {
		t.Fatalf("Len = %d, want 2", back.Len())
	}
	if m, ok := back.Mean(2, 3); !ok || m != 24 {
		t.Errorf("mean(2,3) = %v, %v; want 24", m, ok)
	}
}

func TestRoundRPN_HalfToEven(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{62.5, 62},
		{63.5, 64},
		{150, 150},
		{149.4, 149},
	}
	for _, tt := range tests {
		if got := RoundRPN(tt.in); got != tt.want {
			t.Errorf("RoundRPN(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
