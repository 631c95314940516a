package fmea

import (
	"encoding/json"
	"math"
	"sort"
)

// CellKey identifies a heatmap cell.
type CellKey struct {
	Severity   int
	Occurrence int
}

// HeatmapCell is the mean RPN of every variable sharing a
// (severity, occurrence) pair.
type HeatmapCell struct {
	Severity   int     `json:"severity" yaml:"severity"`
	Occurrence int     `json:"occurrence" yaml:"occurrence"`
	MeanRPN    float64 `json:"mean_rpn" yaml:"mean_rpn"`
	Count      int     `json:"count" yaml:"count"`
}

// Rounded returns the mean RPN as every display shows it. See RoundRPN.
func (c HeatmapCell) Rounded() int {
	return RoundRPN(c.MeanRPN)
}

// RoundRPN rounds a mean RPN half-to-even. Every presenter formats mean
// values through it so the grid, legend and image agree.
func RoundRPN(v float64) int {
	return int(math.RoundToEven(v))
}

// Heatmap is a sparse severity × occurrence table of mean RPN. Pairs with
// no variables are absent rather than zero.
type Heatmap struct {
	cells map[CellKey]HeatmapCell
}

// Aggregate builds the heatmap of a scored run.
func Aggregate(scored []ScoredVariable) Heatmap {
	sums := make(map[CellKey]int, len(scored))
	counts := make(map[CellKey]int, len(scored))
	for _, v := range scored {
		k := CellKey{Severity: v.Severity, Occurrence: v.Occurrence}
		sums[k] += v.RPN
		counts[k]++
	}

	cells := make(map[CellKey]HeatmapCell, len(sums))
	for k, sum := range sums {
		cells[k] = HeatmapCell{
			Severity:   k.Severity,
			Occurrence: k.Occurrence,
			MeanRPN:    float64(sum) / float64(counts[k]),
			Count:      counts[k],
		}
	}
	return Heatmap{cells: cells}
}

// Len returns the number of observed cells.
func (h Heatmap) Len() int {
	return len(h.cells)
}

// Cell returns the cell at (severity, occurrence), if observed.
func (h Heatmap) Cell(severity, occurrence int) (HeatmapCell, bool) {
	c, ok := h.cells[CellKey{Severity: severity, Occurrence: occurrence}]
	return c, ok
}

// Mean returns the mean RPN at (severity, occurrence), if observed.
func (h Heatmap) Mean(severity, occurrence int) (float64, bool) {
	c, ok := h.Cell(severity, occurrence)
	return c.MeanRPN, ok
}

// Cells returns the observed cells ordered by severity, then occurrence.
func (h Heatmap) Cells() []HeatmapCell {
	out := make([]HeatmapCell, 0, len(h.cells))
	for _, c := range h.cells {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Severity == out[j].Severity {
			return out[i].Occurrence < out[j].Occurrence
		}
		return out[i].Severity < out[j].Severity
	})
	return out
}

// Severities returns the distinct observed severities in ascending order.
func (h Heatmap) Severities() []int {
	return h.distinct(func(k CellKey) int { return k.Severity })
}

// Occurrences returns the distinct observed occurrences in ascending order.
func (h Heatmap) Occurrences() []int {
	return h.distinct(func(k CellKey) int { return k.Occurrence })
}

// Range returns the smallest and largest mean RPN. ok is false for an
// empty heatmap.
func (h Heatmap) Range() (lo, hi float64, ok bool) {
	for _, c := range h.cells {
		if !ok {
			lo, hi, ok = c.MeanRPN, c.MeanRPN, true
			continue
		}
		lo = math.Min(lo, c.MeanRPN)
		hi = math.Max(hi, c.MeanRPN)
	}
	return lo, hi, ok
}

func (h Heatmap) distinct(axis func(CellKey) int) []int {
	seen := make(map[int]bool)
	var out []int
	for k := range h.cells {
		v := axis(k)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}

// MarshalJSON encodes the heatmap as its ordered cell list.
func (h Heatmap) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Cells())
}

// UnmarshalJSON rebuilds the heatmap from a cell list.
func (h *Heatmap) UnmarshalJSON(data []byte) error {
	var cells []HeatmapCell
	if err := json.Unmarshal(data, &cells); err != nil {
		return err
	}
	h.cells = make(map[CellKey]HeatmapCell, len(cells))
	for _, c := range cells {
		h.cells[CellKey{Severity: c.Severity, Occurrence: c.Occurrence}] = c
	}
	return nil
}

// MarshalYAML encodes the heatmap as its ordered cell list.
func (h Heatmap) MarshalYAML() (any, error) {
	return h.Cells(), nil
}
