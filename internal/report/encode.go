package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/fmea/internal/fmea"
)

func writeJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	return enc.Close()
}

// CSVHeader is the header of CSV output. Variable records fill the first
// eight columns; heatmap records fill severity, occurrence, mean_rpn and
// count.
var CSVHeader = []string{
	"record", "name", "severity", "occurrence", "detectability",
	"rpn", "risk_level", "doe", "mean_rpn", "count",
}

// writeCSV emits one record per variable followed by one record per
// heatmap cell.
func writeCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for _, v := range r.Variables {
		rec := []string{
			"variable",
			v.Name,
			strconv.Itoa(v.Severity),
			strconv.Itoa(v.Occurrence),
			strconv.Itoa(v.Detectability),
			strconv.Itoa(v.RPN),
			string(v.RiskLevel),
			strconv.FormatBool(v.RiskLevel.SuggestedForDoE()),
			"",
			"",
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write CSV record: %w", err)
		}
	}

	for _, c := range r.Heatmap.Cells() {
		rec := []string{
			"heatmap",
			"",
			strconv.Itoa(c.Severity),
			strconv.Itoa(c.Occurrence),
			"",
			"",
			"",
			"",
			strconv.FormatFloat(c.MeanRPN, 'f', -1, 64),
			strconv.Itoa(c.Count),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write CSV record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeMarkdown(w io.Writer, r *Report, opts Options) error {
	var b strings.Builder

	title := "FMEA Risk Assessment"
	if r.Title != "" {
		title += ": " + r.Title
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Run `%s` · %d variables\n\n", r.RunID, r.NumVars)

	fmt.Fprintf(&b, "## %s\n\n", HeadingScores)
	markdownTable(&b, VariableHeaders, VariableRows(r.Variables))

	fmt.Fprintf(&b, "## %s\n\n", HeadingDoE)
	if r.DoE.HasSuggestions() {
		markdownTable(&b, VariableHeaders, VariableRows(r.DoE.Suggested))
	} else {
		b.WriteString(MsgNoSuggestions + "\n\n")
	}

	if opts.ShowLow {
		fmt.Fprintf(&b, "## %s\n\n", HeadingLow)
		if len(r.DoE.Excluded) > 0 {
			markdownTable(&b, VariableHeaders, VariableRows(r.DoE.Excluded))
		} else {
			b.WriteString(MsgNoLowRisk + "\n\n")
		}
	}

	fmt.Fprintf(&b, "## %s\n\n", HeadingHeatmap)
	headers, rows := HeatmapGrid(r.Heatmap)
	markdownTable(&b, headers, rows)

	_, err := io.WriteString(w, b.String())
	return err
}

func markdownTable(b *strings.Builder, headers []string, rows [][]string) {
	b.WriteString("| " + strings.Join(escapeCells(headers), " | ") + " |\n")
	seps := make([]string, len(headers))
	for i := range seps {
		seps[i] = "---"
	}
	b.WriteString("| " + strings.Join(seps, " | ") + " |\n")
	for _, row := range rows {
		b.WriteString("| " + strings.Join(escapeCells(row), " | ") + " |\n")
	}
	b.WriteString("\n")
}

func escapeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.ReplaceAll(c, "|", "\\|")
	}
	return out
}

// Summary is a one-line description of a result, used in log lines.
func Summary(res *fmea.Result) string {
	c := res.CountByLevel()
	return fmt.Sprintf("%d variables: %d high, %d medium, %d low; %d suggested for DoE",
		res.NumVars, c[fmea.RiskHigh], c[fmea.RiskMedium], c[fmea.RiskLow], len(res.DoE.Suggested))
}
