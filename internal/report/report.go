// Package report renders assessment results: terminal tables, JSON, YAML,
// CSV and Markdown documents, the heatmap image and the guidance notes.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/fmea/internal/fmea"
)

// Report is a Result stamped with a run id and generation time.
type Report struct {
	RunID       string                 `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time              `json:"generated_at" yaml:"generated_at"`
	Title       string                 `json:"title,omitempty" yaml:"title,omitempty"`
	NumVars     int                    `json:"num_vars" yaml:"num_vars"`
	Counts      map[fmea.RiskLevel]int `json:"counts" yaml:"counts"`
	Variables   []fmea.ScoredVariable  `json:"variables" yaml:"variables"`
	DoE         fmea.Selection         `json:"doe" yaml:"doe"`
	Heatmap     fmea.Heatmap           `json:"heatmap" yaml:"heatmap"`
}

// New wraps res in a Report with a fresh run id.
func New(title string, res *fmea.Result) *Report {
	counts := make(map[fmea.RiskLevel]int, len(fmea.AllRiskLevels()))
	for _, l := range fmea.AllRiskLevels() {
		counts[l] = 0
	}
	for l, n := range res.CountByLevel() {
		counts[l] = n
	}
	return &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Title:       strings.TrimSpace(title),
		NumVars:     res.NumVars,
		Counts:      counts,
		Variables:   res.Variables,
		DoE:         res.DoE,
		Heatmap:     res.Heatmap,
	}
}

// Format is an output encoding.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
)

// Formats lists every supported output format.
func Formats() []Format {
	return []Format{FormatTable, FormatJSON, FormatYAML, FormatCSV, FormatMarkdown}
}

// ParseFormat resolves a format name. "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatYAML, FormatCSV, FormatMarkdown:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	case "":
		return FormatTable, nil
	default:
		names := make([]string, 0, len(Formats()))
		for _, f := range Formats() {
			names = append(names, string(f))
		}
		return "", fmt.Errorf("unknown format %q: must be one of %s", s, strings.Join(names, ", "))
	}
}

// Options tune human-readable output.
type Options struct {
	// ShowLow includes the low-risk (excluded) table in table and markdown
	// output. Data formats always carry both partitions.
	ShowLow bool
}

// Section headings and messages shared by the table, markdown and TUI
// presenters.
const (
	HeadingScores    = "Risk Priority Number (RPN) and Risk Levels"
	HeadingDoE       = "Suggested Variables for DoE (Medium and High Risk)"
	HeadingLow       = "Low Risk Variables (usually excluded from DoE)"
	HeadingHeatmap   = "Heatmap: Severity vs Occurrence (mean RPN)"
	MsgNoSuggestions = "No variables classified as Medium or High risk, so no variables suggested for DoE."
	MsgNoLowRisk     = "No variables classified as Low risk."
	MsgFixErrors     = "Please fix the following errors before proceeding:"
)

// Write renders r to w in the given format.
func Write(w io.Writer, r *Report, f Format, opts Options) error {
	switch f {
	case FormatTable:
		return writeTable(w, r, opts)
	case FormatJSON:
		return writeJSON(w, r)
	case FormatYAML:
		return writeYAML(w, r)
	case FormatCSV:
		return writeCSV(w, r)
	case FormatMarkdown:
		return writeMarkdown(w, r, opts)
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

// WriteErrors renders validation errors the way every presenter shows
// them: a heading followed by one bullet per problem.
func WriteErrors(w io.Writer, errs fmea.ValidationErrors) error {
	var b strings.Builder
	b.WriteString(MsgFixErrors)
	b.WriteString("\n")
	for _, msg := range errs.Messages() {
		b.WriteString("  • ")
		b.WriteString(msg)
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
