package notes

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fmea/internal/report"
	"github.com/abhisek/fmea/internal/screen"
	"github.com/abhisek/fmea/internal/ui/layout"
	"github.com/abhisek/fmea/internal/ui/theme"
)

// NotesScreen shows the ICH Q9 guidance notes.
type NotesScreen struct{}

var _ screen.Screen = (*NotesScreen)(nil)

// New creates a new NotesScreen.
func New() *NotesScreen {
	return &NotesScreen{}
}

func (n *NotesScreen) Init() tea.Cmd {
	return nil
}

func (n *NotesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return n, nil
}

func (n *NotesScreen) View(width, height int) string {
	cw := width - 8
	if cw > 90 {
		cw = 90
	}

	var b strings.Builder
	b.WriteString(theme.Heading.Render(report.NotesTitle))
	b.WriteString("\n\n")
	for _, note := range report.GuidanceNotes() {
		b.WriteString(theme.Body.Width(cw - 6).Render("• " + note.Text))
		b.WriteString("\n")
		for _, p := range note.Points {
			b.WriteString(theme.Body.Width(cw - 6).PaddingLeft(4).Render("◦ " + p))
			b.WriteString("\n")
		}
	}

	card := theme.Card.Width(cw).Render(strings.TrimRight(b.String(), "\n"))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card)
}

func (n *NotesScreen) Title() string {
	return "Guidance Notes"
}

func (n *NotesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
