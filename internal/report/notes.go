package report

import (
	"fmt"
	"strings"

	"github.com/abhisek/fmea/internal/fmea"
)

// NotesTitle heads the guidance notes.
const NotesTitle = "Notes (ICH Q9 risk management context)"

// Note is one guidance bullet, optionally with nested points.
type Note struct {
	Text   string   `json:"text"`
	Points []string `json:"points,omitempty"`
}

// GuidanceNotes returns the risk-management guidance shown alongside every
// assessment. The thresholds are taken from the scoring constants.
func GuidanceNotes() []Note {
	return []Note{
		{Text: fmt.Sprintf("Severity, Occurrence and Detectability are rated from %d (low) to %d (high).",
			fmea.MinRating, fmea.MaxRating)},
		{Text: "RPN (Risk Priority Number) = Severity × Occurrence × Detectability and is used to rank risks."},
		{
			Text: "Under ICH Q9 and common pharmaceutical practice:",
			Points: []string{
				fmt.Sprintf("Low risk (RPN ≤ %d): acceptable or needs minimal control, usually left out of the DoE.",
					fmea.LowMaxRPN),
				fmt.Sprintf("Medium risk (%d ≤ RPN ≤ %d): monitor and include in the DoE for optimization.",
					fmea.LowMaxRPN+1, fmea.MediumMaxRPN),
				fmt.Sprintf("High risk (RPN > %d): needs strong control measures and must be in the DoE.",
					fmea.MediumMaxRPN),
			},
		},
		{Text: "Use the ranking to focus experimental effort on the factors that matter."},
		{Text: "Risk mitigation, verification and continuous monitoring still apply under ICH Q9."},
	}
}

// Notes renders the guidance notes as plain text.
func Notes() string {
	var b strings.Builder
	b.WriteString(NotesTitle)
	b.WriteString("\n\n")
	for _, n := range GuidanceNotes() {
		b.WriteString("- " + n.Text + "\n")
		for _, p := range n.Points {
			b.WriteString("    - " + p + "\n")
		}
	}
	return b.String()
}
