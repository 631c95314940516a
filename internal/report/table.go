package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/fmea/internal/fmea"
)

// VariableHeaders are the column names of every variable table.
var VariableHeaders = []string{"Variable", "Severity", "Occurrence", "Detectability", "RPN", "Risk Level"}

// VariableRows converts scored variables to table rows.
func VariableRows(vars []fmea.ScoredVariable) [][]string {
	rows := make([][]string, len(vars))
	for i, v := range vars {
		rows[i] = []string{
			v.Name,
			strconv.Itoa(v.Severity),
			strconv.Itoa(v.Occurrence),
			strconv.Itoa(v.Detectability),
			strconv.Itoa(v.RPN),
			string(v.RiskLevel),
		}
	}
	return rows
}

// HeatmapGrid lays the heatmap out as a pivot table: one row per observed
// severity, one column per observed occurrence, both ascending. Absent
// cells are empty strings.
func HeatmapGrid(h fmea.Heatmap) (headers []string, rows [][]string) {
	occ := h.Occurrences()
	headers = make([]string, 0, len(occ)+1)
	headers = append(headers, "Severity \\ Occurrence")
	for _, o := range occ {
		headers = append(headers, strconv.Itoa(o))
	}

	for _, s := range h.Severities() {
		row := make([]string, 0, len(occ)+1)
		row = append(row, strconv.Itoa(s))
		for _, o := range occ {
			if c, ok := h.Cell(s, o); ok {
				row = append(row, strconv.Itoa(c.Rounded()))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return headers, rows
}

// NewTable builds an unstyled bordered table.
func NewTable(headers []string, rows [][]string) *table.Table {
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			return cell
		})
}

func writeTable(w io.Writer, r *Report, opts Options) error {
	var b strings.Builder

	if r.Title != "" {
		fmt.Fprintf(&b, "FMEA assessment: %s\n", r.Title)
	} else {
		b.WriteString("FMEA assessment\n")
	}
	fmt.Fprintf(&b, "Run %s · %d variables · %d high, %d medium, %d low\n\n",
		r.RunID, r.NumVars, r.Counts[fmea.RiskHigh], r.Counts[fmea.RiskMedium], r.Counts[fmea.RiskLow])

	b.WriteString(HeadingScores + "\n")
	b.WriteString(NewTable(VariableHeaders, VariableRows(r.Variables)).String())
	b.WriteString("\n\n")

	b.WriteString(HeadingDoE + "\n")
	if r.DoE.HasSuggestions() {
		b.WriteString(NewTable(VariableHeaders, VariableRows(r.DoE.Suggested)).String())
	} else {
		b.WriteString(MsgNoSuggestions)
	}
	b.WriteString("\n\n")

	if opts.ShowLow {
		b.WriteString(HeadingLow + "\n")
		if len(r.DoE.Excluded) > 0 {
			b.WriteString(NewTable(VariableHeaders, VariableRows(r.DoE.Excluded)).String())
		} else {
			b.WriteString(MsgNoLowRisk)
		}
		b.WriteString("\n\n")
	}

	b.WriteString(HeadingHeatmap + "\n")
	headers, rows := HeatmapGrid(r.Heatmap)
	b.WriteString(NewTable(headers, rows).String())
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}
