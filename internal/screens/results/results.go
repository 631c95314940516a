package results

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"go.uber.org/zap"

	"github.com/abhisek/fmea/internal/fmea"
	"github.com/abhisek/fmea/internal/report"
	"github.com/abhisek/fmea/internal/router"
	"github.com/abhisek/fmea/internal/screen"
	"github.com/abhisek/fmea/internal/screens/notes"
	"github.com/abhisek/fmea/internal/ui/layout"
	"github.com/abhisek/fmea/internal/ui/theme"
)

// riskColumn is the index of the Risk Level column in variable tables.
const riskColumn = 5

// ResultsScreen shows a finished assessment.
type ResultsScreen struct {
	report  *report.Report
	showLow bool
	offset  int
	width   int
	height  int
	log     *zap.SugaredLogger
}

var _ screen.Screen = (*ResultsScreen)(nil)

// New creates a ResultsScreen for res.
func New(title string, res *fmea.Result, log *zap.SugaredLogger) *ResultsScreen {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &ResultsScreen{
		report: report.New(title, res),
		log:    log,
	}
}

func (r *ResultsScreen) Init() tea.Cmd {
	r.log.Infow("assessment shown", "run_id", r.report.RunID, "variables", r.report.NumVars)
	return nil
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if size, ok := msg.(screen.SizeMsg); ok {
		r.width, r.height = size.Width, size.Height
		r.clampOffset()
		return r, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}

	switch kmsg.String() {
	case "l":
		r.showLow = !r.showLow
		r.log.Debugw("toggle low-risk view", "show_low", r.showLow)
	case "n":
		return r, func() tea.Msg {
			return router.PushScreenMsg{Screen: notes.New()}
		}
	case "r":
		r.log.Debugw("new assessment requested", "run_id", r.report.RunID)
		return r, func() tea.Msg { return router.PopToRootMsg{} }
	case "down", "j":
		r.offset++
	case "up", "k":
		if r.offset > 0 {
			r.offset--
		}
	case "pgdown", "space":
		r.offset += max(r.height-1, 1)
	case "pgup":
		r.offset = max(r.offset-max(r.height-1, 1), 0)
	case "home", "g":
		r.offset = 0
	}
	r.clampOffset()
	return r, nil
}

// clampOffset keeps the scroll offset within the content rendered at the
// last known size. Before the first SizeMsg only the lower bound applies.
func (r *ResultsScreen) clampOffset() {
	if r.height > 0 {
		r.offset = min(r.offset, r.maxOffset(r.width, r.height))
	}
	r.offset = max(r.offset, 0)
}

func (r *ResultsScreen) maxOffset(width, height int) int {
	lines := strings.Count(r.render(width, height), "\n") + 1
	return max(lines-height, 0)
}

// ShowLow reports whether the low-risk table is visible.
func (r *ResultsScreen) ShowLow() bool {
	return r.showLow
}

func (r *ResultsScreen) View(width, height int) string {
	lines := strings.Split(r.render(width, height), "\n")

	start := min(r.offset, max(len(lines)-height, 0))
	end := min(start+height, len(lines))

	return lipgloss.NewStyle().
		Width(width).
		PaddingLeft(2).
		Render(strings.Join(lines[start:end], "\n"))
}

func (r *ResultsScreen) render(width, height int) string {
	rep := r.report
	var sections []string

	summary := fmt.Sprintf("%d variables   %s %d   %s %d   %s %d",
		rep.NumVars,
		theme.RiskBadge(fmea.RiskHigh), rep.Counts[fmea.RiskHigh],
		theme.RiskBadge(fmea.RiskMedium), rep.Counts[fmea.RiskMedium],
		theme.RiskBadge(fmea.RiskLow), rep.Counts[fmea.RiskLow])
	if rep.Title != "" {
		summary = theme.Heading.Render(rep.Title) + "   " + summary
	}
	sections = append(sections, summary)

	sections = append(sections, section(report.HeadingScores, variableTable(rep.Variables)))

	if rep.DoE.HasSuggestions() {
		sections = append(sections, section(report.HeadingDoE, variableTable(rep.DoE.Suggested)))
	} else {
		sections = append(sections, section(report.HeadingDoE, theme.Hint.Render(report.MsgNoSuggestions)))
	}

	if r.showLow {
		if len(rep.DoE.Excluded) > 0 {
			sections = append(sections, section(report.HeadingLow, variableTable(rep.DoE.Excluded)))
		} else {
			sections = append(sections, section(report.HeadingLow, theme.Hint.Render(report.MsgNoLowRisk)))
		}
	}

	heat := heatmapTable(rep.Heatmap)
	if !layout.IsCompactWidth(width) {
		heat = lipgloss.JoinHorizontal(lipgloss.Center, heat, "  ", legend(rep.Heatmap))
	}
	sections = append(sections, section(report.HeadingHeatmap, heat))

	sep := "\n\n"
	if layout.IsCompactHeight(height) {
		sep = "\n"
	}
	return strings.Join(sections, sep)
}

func section(heading, body string) string {
	return theme.Heading.Render(heading) + "\n" + body
}

func variableTable(vars []fmea.ScoredVariable) string {
	rows := report.VariableRows(vars)
	cell := lipgloss.NewStyle().Padding(0, 1).Foreground(theme.Text)
	header := cell.Bold(true).Foreground(theme.Primary)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(report.VariableHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if col == riskColumn && row >= 0 && row < len(vars) {
				return cell.Bold(true).Foreground(theme.RiskColor(vars[row].RiskLevel))
			}
			return cell
		}).
		String()
}

// heatmapTable renders the severity × occurrence grid with each observed
// cell shaded by its mean RPN.
func heatmapTable(h fmea.Heatmap) string {
	headers, rows := report.HeatmapGrid(h)
	lo, hi, _ := h.Range()
	severities := h.Severities()
	occurrences := h.Occurrences()

	cell := lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Center).Foreground(theme.Text)
	axis := cell.Bold(true).Foreground(theme.Primary)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow || col == 0 {
				return axis
			}
			if row < 0 || row >= len(severities) || col-1 >= len(occurrences) {
				return cell
			}
			mean, ok := h.Mean(severities[row], occurrences[col-1])
			if !ok {
				return cell
			}
			bg := report.HeatColor(mean, lo, hi)
			return cell.Background(bg).Foreground(report.InkFor(bg))
		}).
		String()
}

// legend shows the color scale from the highest to the lowest mean RPN.
func legend(h fmea.Heatmap) string {
	lo, hi, ok := h.Range()
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, v := range legendSteps(lo, hi) {
		swatch := lipgloss.NewStyle().Background(report.HeatColor(v, lo, hi)).Render("    ")
		b.WriteString(swatch + " " + theme.Hint.Render(strconv.Itoa(fmea.RoundRPN(v))) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// legendSteps spaces five values evenly from hi down to lo.
func legendSteps(lo, hi float64) []float64 {
	const steps = 5
	out := make([]float64, steps)
	for i := range out {
		out[i] = hi - (hi-lo)*float64(i)/float64(steps-1)
	}
	return out
}

func (r *ResultsScreen) Title() string {
	return "Results"
}

// Status shows the short run id so the screen can be matched to logs.
func (r *ResultsScreen) Status() string {
	id := r.report.RunID
	if len(id) > 8 {
		id = id[:8]
	}
	return "run " + id
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	low := "Show low risk"
	if r.showLow {
		low = "Hide low risk"
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "l", Description: low},
		{Key: "n", Description: "Notes"},
		{Key: "Esc", Description: "Edit"},
		{Key: "r", Description: "New"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
